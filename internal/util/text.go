// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: all width math goes through go-runewidth so CJK and fullwidth
// characters occupy two columns and truncation never splits a character.

// TruncateWidth truncates a string to a maximum display width, appending
// "..." when something was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads a string with spaces to the given display width,
// truncating first if it is already wider.
func PadRight(s string, width int) string {
	s = TruncateWidth(s, width)
	return runewidth.FillRight(s, width)
}

// Width returns the display width of a string in terminal columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// FirstLine returns the first line of a string, trimmed.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
