// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// wordWrap breaks text into lines no wider than maxWidth terminal cells.
// Existing newlines are preserved; a single word wider than maxWidth is
// hard-broken rather than overflowing.
func wordWrap(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, maxWidth)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, maxWidth int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		// Hard-break oversized words
		for runewidth.StringWidth(word) > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			head := runewidth.Truncate(word, maxWidth, "")
			lines = append(lines, head)
			word = word[len(head):]
		}

		switch {
		case current == "":
			current = word
		case runewidth.StringWidth(current)+1+runewidth.StringWidth(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// maxLineWidth returns the widest line of a multi-line string in cells.
func maxLineWidth(text string) int {
	max := 0
	for _, line := range strings.Split(text, "\n") {
		if w := runewidth.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
