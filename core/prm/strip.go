// Package prm implements the parsing engine shared by every PRM table:
// comment stripping, the signature-checked loader, the line cursor, the
// token combinator and the three multi-line block patterns.
package prm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

const (
	blockOpen   = "/*"
	blockClose  = "*/"
	lineComment = "//"
)

// Line is one cleaned content line.
type Line struct {
	No   int    // 1-based line number in the raw file
	Text string // Trimmed, non-empty, comment-free
}

// Fields splits the line into whitespace-separated tokens.
func (l Line) Fields() []string {
	return strings.Fields(l.Text)
}

func (l Line) String() string {
	return fmt.Sprintf("%d: %s", l.No, l.Text)
}

// StripState carries the "inside a block comment" flag from one raw line to
// the next. The zero value is the state at the start of a file.
type StripState struct {
	inBlock bool
}

// InBlock reports whether the next line starts inside a block comment.
func (s StripState) InBlock() bool {
	return s.inBlock
}

// Strip removes comments from one raw line and returns the trimmed remainder
// (empty if nothing is left) together with the state for the following line.
//
// A block comment closed on the same line is replaced by a single space, so
// "x /*c*/ y" becomes "x y" and "10/*c*/20" stays two tokens rather than
// joining into "1020". An unterminated "/*" keeps only the text before
// it. A "//" is honored only when no "/*" remains on the line.
func (s StripState) Strip(raw string) (string, StripState) {
	line := raw
	opened := false
	for {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		if s.inBlock {
			end := strings.Index(line, blockClose)
			if end < 0 {
				line = ""
				break
			}
			line = line[end+len(blockClose):]
			s.inBlock = false
			continue
		}

		if start := strings.Index(line, blockOpen); start >= 0 {
			tail := line[start+len(blockOpen):]
			if end := strings.Index(tail, blockClose); end >= 0 {
				line = strings.TrimRightFunc(line[:start], unicode.IsSpace) + " " +
					strings.TrimLeftFunc(tail[end+len(blockClose):], unicode.IsSpace)
				continue
			}
			// The prefix is still scanned for "//" but never for a closer.
			line = line[:start]
			opened = true
			continue
		}

		if pos := strings.Index(line, lineComment); pos >= 0 {
			line = line[:pos]
			continue
		}
		break
	}

	if opened {
		s.inBlock = true
	}
	return line, s
}

// StripLines runs the stripper over a whole file, starting outside any
// comment, and returns the non-empty results.
func StripLines(raw []string) []Line {
	var (
		state StripState
		lines []Line
		text  string
	)
	for i, r := range raw {
		text, state = state.Strip(r)
		if text != "" {
			lines = append(lines, Line{No: i + 1, Text: text})
		}
	}
	return lines
}

// ReadLines reads r line by line and strips it.
func ReadLines(r io.Reader) ([]Line, error) {
	var raw []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw = append(raw, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return StripLines(raw), nil
}

// Texts returns the text of each line.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
