package format

import (
	"reflect"
	"testing"

	"github.com/theirongolddev/finchat/internal/report"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		want Block
	}{
		{"**Summary:**", Block{Heading, "Summary:"}},
		{"**1. Spending Pattern Analysis**", Block{Heading, "1. Spending Pattern Analysis"}},
		{"• foo", Block{ListItem, "foo"}},
		{"•   padded  ", Block{ListItem, "padded"}},
		{"1. Automate savings transfers", Block{NumberedItem, "Automate savings transfers"}},
		{"12.no space", Block{NumberedItem, "no space"}},
		{"2. **Use the debt avalanche method** - Pay minimums", Block{NumberedItem, "**Use the debt avalanche method** - Pay minimums"}},
		{"Monthly Income: $4,000", Block{Paragraph, "Monthly Income: $4,000"}},
		{"**", Block{Paragraph, "**"}},
		{"", Block{LineBreak, ""}},
		{"   ", Block{LineBreak, ""}},
		{"1 not numbered", Block{Paragraph, "1 not numbered"}},
	}
	for _, c := range cases {
		if got := Classify(c.line); got != c.want {
			t.Errorf("Classify(%q) = %+v, want %+v", c.line, got, c.want)
		}
	}
}

func TestBlocksPreservesOrderAndCount(t *testing.T) {
	text := "**Head**\n\n• a\n1. b\nplain\r\n"
	got := Parse(text)
	want := []Block{
		{Heading, "Head"},
		{LineBreak, ""},
		{ListItem, "a"},
		{NumberedItem, "b"},
		{Paragraph, "plain"},
		{LineBreak, ""},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse = %+v\nwant %+v", got, want)
	}
}

func TestBlocksIsRestartable(t *testing.T) {
	seq := Blocks("**A**\n• b\n\nc")
	var first, second []Block
	for b := range seq {
		first = append(first, b)
	}
	for b := range seq {
		second = append(second, b)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("second pass differs: %+v vs %+v", first, second)
	}
	if len(first) != 4 {
		t.Fatalf("len = %d, want 4", len(first))
	}
}

func TestBlocksStopsEarly(t *testing.T) {
	n := 0
	for range Blocks("a\nb\nc\nd") {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("iterated %d blocks, want 2", n)
	}
}

func TestReportTextRoundTrip(t *testing.T) {
	r := report.New("Plan").
		Paragraph("Overview:", "Income is steady").
		Bullets("Tips:", "save", "track").
		Numbered("Steps", "automate", "review")

	var headings, items, numbered, paras int
	for b := range Blocks(r.Text()) {
		switch b.Kind {
		case Heading:
			headings++
		case ListItem:
			items++
		case NumberedItem:
			numbered++
		case Paragraph:
			paras++
		}
	}
	if headings != 4 || items != 2 || numbered != 2 || paras != 1 {
		t.Fatalf("headings=%d items=%d numbered=%d paras=%d", headings, items, numbered, paras)
	}
}
