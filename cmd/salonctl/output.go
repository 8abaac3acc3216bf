// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/taibuivan/salonbook/pkg/pagination"
	"github.com/taibuivan/salonbook/pkg/slice"
)

// printTable writes aligned columns followed by a page footer.
func printTable[T any](out io.Writer, page *pagination.Page[T], header []string, row func(T) []string) {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	lines := slice.Map(page.Items, func(item T) string { return strings.Join(row(item), "\t") })

	fmt.Fprintln(writer, strings.Join(header, "\t"))
	for _, line := range lines {
		fmt.Fprintln(writer, line)
	}
	_ = writer.Flush()

	fmt.Fprintf(out, "page %d/%d, %d total\n", page.CurrentPage, page.LastPage, page.Total)
}

// printJSON writes v indented, for single entities.
func printJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printMessage echoes a server message when there is one.
func printMessage(out io.Writer, message, fallback string) {
	if message == "" {
		message = fallback
	}
	fmt.Fprintln(out, message)
}
