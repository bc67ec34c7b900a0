// Package format splits report text into display blocks, one per line.
package format

import (
	"iter"
	"regexp"
	"strings"
)

// Kind identifies how a block is displayed.
type Kind int

const (
	Heading Kind = iota
	ListItem
	NumberedItem
	Paragraph
	LineBreak
)

func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case ListItem:
		return "list-item"
	case NumberedItem:
		return "numbered-item"
	case Paragraph:
		return "paragraph"
	case LineBreak:
		return "line-break"
	}
	return "unknown"
}

// Block is one display unit derived from one input line.
type Block struct {
	Kind Kind
	Text string
}

const bullet = "•"

var numberedPrefix = regexp.MustCompile(`^\d+\.\s*`)

// Classify maps a single line to its block. It looks at no other line.
func Classify(line string) Block {
	switch {
	case len(line) >= 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
		return Block{Kind: Heading, Text: strings.ReplaceAll(line, "**", "")}
	case strings.HasPrefix(line, bullet):
		return Block{Kind: ListItem, Text: strings.TrimSpace(strings.TrimPrefix(line, bullet))}
	case numberedPrefix.MatchString(line):
		return Block{Kind: NumberedItem, Text: numberedPrefix.ReplaceAllString(line, "")}
	case strings.TrimSpace(line) != "":
		return Block{Kind: Paragraph, Text: line}
	}
	return Block{Kind: LineBreak}
}

// Blocks yields one block per line of text, in order. The sequence can be
// ranged over any number of times and always yields the same blocks.
func Blocks(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		rest := text
		for {
			line, tail, more := strings.Cut(rest, "\n")
			if !yield(Classify(strings.TrimSuffix(line, "\r"))) {
				return
			}
			if !more {
				return
			}
			rest = tail
		}
	}
}

// Parse collects Blocks into a slice.
func Parse(text string) []Block {
	var out []Block
	for b := range Blocks(text) {
		out = append(out, b)
	}
	return out
}
