package types

import "unicode/utf8"

// ComputeColumn converts a byte offset within line to a 1-indexed column
// counted in runes.
func ComputeColumn(line string, byteOffset int) int {
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	if byteOffset < 0 {
		byteOffset = 0
	}
	return utf8.RuneCountInString(line[:byteOffset]) + 1
}

// ContextLines returns up to n lines before and after lines[i].
func ContextLines(lines []string, i, n int) (before, after []string) {
	if n <= 0 || i < 0 || i >= len(lines) {
		return nil, nil
	}

	start := i - n
	if start < 0 {
		start = 0
	}
	end := i + n + 1
	if end > len(lines) {
		end = len(lines)
	}

	if start < i {
		before = append([]string(nil), lines[start:i]...)
	}
	if i+1 < end {
		after = append([]string(nil), lines[i+1:end]...)
	}
	return before, after
}
