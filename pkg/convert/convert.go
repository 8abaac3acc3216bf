// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Do not use this package if distinguishing between malformed data and zero
values matters; use [strconv] directly instead.
*/
package convert

import "strconv"

// ToIntD converts a string to an int, returning def if the string is empty
// or cannot be parsed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(str); err == nil {
		return v
	}
	return def
}

// ToInt64 converts a string to an int64, reporting whether it parsed.
func ToInt64(str string) (int64, bool) {
	v, err := strconv.ParseInt(str, 10, 64)
	return v, err == nil
}
