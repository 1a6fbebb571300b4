// Package source implements the linter's source loader (spec.md §4.1, C1):
// reading a script's bytes, detecting its encoding and line-ending style,
// and splitting it into an indexed, immutable sequence of raw lines.
package source

import (
	"errors"
	"fmt"
	"os"
)

// Default maximum input size, per spec.md §5.
const DefaultMaxSize = 10 * 1024 * 1024

// LineEnding identifies the dominant (or mixed) line-ending style of a file.
type LineEnding int

const (
	LineEndingCRLF LineEnding = iota
	LineEndingLF
	LineEndingCR
	LineEndingMixed
)

func (e LineEnding) String() string {
	switch e {
	case LineEndingCRLF:
		return "CRLF"
	case LineEndingLF:
		return "LF"
	case LineEndingCR:
		return "CR"
	case LineEndingMixed:
		return "Mixed"
	default:
		return "unknown"
	}
}

// Sentinel load errors, per spec.md §6/§7. Callers match with errors.Is.
var (
	ErrFileNotFound  = errors.New("source: file not found")
	ErrFileTooLarge  = errors.New("source: file exceeds maximum size")
	ErrDecodeFailure = errors.New("source: unable to decode file contents")
)

// RawLine is a single decoded line before classification, carrying the
// terminator it was split on so rules that care about line endings (S005,
// W018) can inspect it without re-scanning the raw bytes.
type RawLine struct {
	// Index is the 1-based line number.
	Index int
	// Text is the decoded line with its terminator stripped.
	Text string
	// Ending is the terminator this particular line was split on.
	Ending LineEnding
}

// Script is the immutable result of loading and decoding one file.
type Script struct {
	Path            string
	RawBytes        []byte
	Encoding        Encoding
	LineEndingStyle LineEnding
	Lines           []RawLine
}

// Options bounds loader behavior.
type Options struct {
	// MaxSize caps the number of bytes read. Zero means DefaultMaxSize.
	MaxSize int64
}

// Load reads path, detects its encoding and line endings, and splits it into
// RawLines. It never panics and never partially analyzes a file: on error,
// the returned Script is nil.
func Load(path string, opts Options) (*Script, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s (%d bytes, limit %d)", ErrFileTooLarge, path, info.Size(), maxSize)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	return Decode(path, raw)
}

// Decode builds a Script from already-read bytes, sharing the detection and
// splitting logic with Load. Exposed so callers (the call-follower, tests)
// can analyze in-memory content without a filesystem round trip.
func Decode(path string, raw []byte) (*Script, error) {
	text, enc, err := DetectAndDecode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, path, err)
	}

	lines, style := splitLines(text)
	return &Script{
		Path:            path,
		RawBytes:        raw,
		Encoding:        enc,
		LineEndingStyle: style,
		Lines:           lines,
	}, nil
}

// splitLines splits decoded text on any of CRLF/LF/CR, preserving each
// line's original terminator, and classifies the file's overall line-ending
// style per spec.md §4.1: Mixed when more than one non-zero terminator count
// remains after excluding the dominant one by less than 95%.
func splitLines(text string) ([]RawLine, LineEnding) {
	var lines []RawLine
	counts := map[LineEnding]int{}

	start := 0
	index := 1
	n := len(text)
	for i := 0; i < n; i++ {
		switch text[i] {
		case '\r':
			if i+1 < n && text[i+1] == '\n' {
				lines = append(lines, RawLine{Index: index, Text: text[start:i], Ending: LineEndingCRLF})
				counts[LineEndingCRLF]++
				i++
			} else {
				lines = append(lines, RawLine{Index: index, Text: text[start:i], Ending: LineEndingCR})
				counts[LineEndingCR]++
			}
			start = i + 1
			index++
		case '\n':
			lines = append(lines, RawLine{Index: index, Text: text[start:i], Ending: LineEndingLF})
			counts[LineEndingLF]++
			start = i + 1
			index++
		}
	}
	if start < n {
		lines = append(lines, RawLine{Index: index, Text: text[start:], Ending: -1})
	} else if len(lines) == 0 && n == 0 {
		// Empty file: zero lines, per spec.md §8 boundary cases.
		return nil, LineEndingLF
	}

	return lines, dominantStyle(counts)
}

func dominantStyle(counts map[LineEnding]int) LineEnding {
	total := 0
	best := LineEndingLF
	bestCount := -1
	for style, c := range counts {
		total += c
		if c > bestCount {
			bestCount = c
			best = style
		}
	}
	if total == 0 {
		return LineEndingLF
	}
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	if nonZero <= 1 {
		return best
	}
	if float64(bestCount)/float64(total) >= 0.95 {
		return best
	}
	return LineEndingMixed
}
