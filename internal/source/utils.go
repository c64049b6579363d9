package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line index overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// бинпоиск: количество переводов строки строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	var startOff uint32
	if lo > 0 {
		startOff = lineIdx[lo-1] + 1
	}
	line, err := safecast.Conv[uint32](lo + 1)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	return LineCol{Line: line, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных путях и ключах кэша
	return filepath.ToSlash(filepath.Clean(p))
}

// BaseName returns the last element of a slash or OS path.
func BaseName(p string) string {
	p = filepath.ToSlash(p)
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// RelativePath returns path relative to baseDir in slash form.
// Paths outside baseDir fall back to the absolute form.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// SplitLines splits text into lines keeping the line breaks attached.
// A run of consecutive line breaks stays with the line before it, so
// "aaa\r\n\n\n\r\n" is a single line.
func SplitLines(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		for i < len(text) && text[i] != '\n' && text[i] != '\r' {
			i++
		}
		for i < len(text) && (text[i] == '\n' || text[i] == '\r') {
			i++
		}
		out = append(out, text[start:i])
		start = i
	}
	return out
}
