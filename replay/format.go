// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package replay

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Truncate shortens s to at most limit characters, replacing the tail with "...".
// Limits too small to hold the ellipsis cut without one.
func Truncate(s string, limit int) string {
	limit = max(limit, 0)
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string(r[:limit])
	}
	return string(r[:limit-len(ellipsis)]) + ellipsis
}

const ellipsis = "..."

// Format renders ev as display lines, one per renderable part.
//
// Text is cut at 200 characters and function call arguments or responses at 100.
// An event without content is printed whole. Parts of other kinds print nothing.
func Format(ev *Event) []string {
	if ev.Content == nil {
		return []string{fmt.Sprintf("[%s]: %s", ev.Author, encode(ev.Raw))}
	}

	var lines []string
	for _, p := range ev.Content.Parts {
		switch {
		case p.Text != nil:
			lines = append(lines, fmt.Sprintf("[%s]: %s", ev.Author, Truncate(*p.Text, maxText)))
		case p.FunctionCall != nil:
			lines = append(lines, fmt.Sprintf("[%s]: Function call %s %s",
				ev.Author, p.FunctionCall.Name, Truncate(encode(p.FunctionCall.Args), maxJSON)))
		case p.FunctionResponse != nil:
			lines = append(lines, fmt.Sprintf("[%s]: Function response %s %s",
				ev.Author, p.FunctionResponse.Name, Truncate(encode(p.FunctionResponse.Response), maxJSON)))
		}
	}
	return lines
}

func encode(v any) string {
	b, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
