// Package report builds ordered, typed report sections and renders them to text.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the body type of a section.
type Kind int

const (
	KindParagraph Kind = iota
	KindBullets
	KindNumbered
)

var kindNames = [...]string{"paragraph", "bullets", "numbered"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "paragraph"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if string(b) == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("report: unknown section kind %q", b)
}

// Bullet is the glyph that prefixes list items in rendered text.
const Bullet = "•"

// Section is a heading followed by lines of one kind. Either part may be empty.
type Section struct {
	Heading string   `json:"heading,omitempty"`
	Kind    Kind     `json:"kind"`
	Lines   []string `json:"lines,omitempty"`
}

// Report is an ordered list of sections under a title.
type Report struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// New starts a report with the given title.
func New(title string) *Report {
	return &Report{Title: title}
}

// Paragraph appends a section whose lines render as plain text.
func (r *Report) Paragraph(heading string, lines ...string) *Report {
	return r.add(heading, KindParagraph, lines)
}

// Bullets appends a bulleted list section.
func (r *Report) Bullets(heading string, items ...string) *Report {
	return r.add(heading, KindBullets, items)
}

// Numbered appends a numbered list section.
func (r *Report) Numbered(heading string, items ...string) *Report {
	return r.add(heading, KindNumbered, items)
}

func (r *Report) add(heading string, kind Kind, lines []string) *Report {
	r.Sections = append(r.Sections, Section{Heading: heading, Kind: kind, Lines: lines})
	return r
}

// Section returns the first section with the given heading.
func (r Report) Section(heading string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Heading == heading {
			return s, true
		}
	}
	return Section{}, false
}

// Text renders the report to the markdown-like display format:
// "**Heading**" lines, "• item" bullets, "1. item" numbered items and
// one blank line between sections.
func (r Report) Text() string {
	var b strings.Builder
	if r.Title != "" {
		b.WriteString("**" + r.Title + "**\n")
	}
	for i, s := range r.Sections {
		if i > 0 || r.Title != "" {
			b.WriteString("\n")
		}
		if s.Heading != "" {
			b.WriteString("**" + s.Heading + "**\n")
		}
		for j, line := range s.Lines {
			switch s.Kind {
			case KindBullets:
				b.WriteString(Bullet + " " + line)
			case KindNumbered:
				b.WriteString(strconv.Itoa(j+1) + ". " + line)
			default:
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// String implements fmt.Stringer.
func (r Report) String() string { return r.Text() }

// MarshalJSON adds the rendered text next to the sections.
func (r Report) MarshalJSON() ([]byte, error) {
	type plain Report
	return json.Marshal(struct {
		plain
		Text string `json:"text"`
	}{plain(r), r.Text()})
}
