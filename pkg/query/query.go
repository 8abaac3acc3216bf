// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued arguments such as "1, 3,7".
package query

import "strings"

// StringSlice splits a comma-separated value into trimmed, non-empty parts.
// It returns nil for an empty input.
func StringSlice(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}

	var res []string
	for _, part := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
