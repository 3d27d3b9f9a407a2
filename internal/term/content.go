package term

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

// Content is the text shown in the terminal document.
type Content struct {
	lines    []string
	width    int
	headings []int
}

// NewContent builds content from lines. Tabs are expanded and lines
// starting with '#' are treated as headings.
func NewContent(lines []string) *Content {
	c := &Content{lines: make([]string, len(lines))}
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		c.lines[i] = line
		c.width = max(c.width, runewidth.StringWidth(line))
		if strings.HasPrefix(line, "#") {
			c.headings = append(c.headings, i)
		}
	}
	return c
}

// LoadContent reads newline separated text from r.
func LoadContent(r io.Reader) (*Content, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewContent(lines), nil
}

// Len returns the number of lines.
func (c *Content) Len() int {
	return len(c.lines)
}

// Width returns the display width of the widest line.
func (c *Content) Width() int {
	return c.width
}

// Line returns line i, or "" when out of range.
func (c *Content) Line(i int) string {
	if i < 0 || i >= len(c.lines) {
		return ""
	}
	return c.lines[i]
}

// IsHeading reports whether line i is a heading.
func (c *Content) IsHeading(i int) bool {
	return strings.HasPrefix(c.Line(i), "#")
}

// Headings returns the heading line numbers in order.
func (c *Content) Headings() []int {
	return c.headings
}

// NextHeading returns the first heading after line.
func (c *Content) NextHeading(line int) (int, bool) {
	for _, h := range c.headings {
		if h > line {
			return h, true
		}
	}
	return 0, false
}

// PrevHeading returns the last heading before line.
func (c *Content) PrevHeading(line int) (int, bool) {
	for i := len(c.headings) - 1; i >= 0; i-- {
		if c.headings[i] < line {
			return c.headings[i], true
		}
	}
	return 0, false
}
