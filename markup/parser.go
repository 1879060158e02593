// Package markup parses the limited inline <b>/<i>/<u> tag subset into
// formatted text segments.
package markup

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	markupLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Tag", Pattern: `(?i)</?[biu]\s*/?>`},
		{Name: "Chunk", Pattern: `[^<]+|<`},
	})

	markupParser = participle.MustBuild[sequence](
		participle.Lexer(markupLexer),
	)

	// openTag matches a well-formed opening (or self-closing) tag of one
	// of the three recognized kinds. Unrelated tags like <div> never match.
	openTag = regexp.MustCompile(`(?i)<[biu]\s*/?>`)

	anyTag = regexp.MustCompile(`<[^>]+>`)
)

// sequence is the parsed token stream: tags interleaved with raw text.
type sequence struct {
	Nodes []node `parser:"@@*"`
}

type node struct {
	Tag   string `parser:"  @Tag"`
	Chunk string `parser:"| @Chunk"`
}

// Segment is a run of text with uniform formatting. Segments never own
// font resources; styling is resolved at draw time.
type Segment struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
}

// HasMarkup reports whether text contains a well-formed <b>, <i> or <u>
// opening tag. Used to auto-enable markup mode without an explicit flag.
func HasMarkup(text string) bool {
	return text != "" && openTag.MatchString(text)
}

// Strip removes every <...> tag, keeping only the content.
func Strip(text string) string {
	return anyTag.ReplaceAllString(text, "")
}

// Parse splits text into formatted segments. Tag names act as three
// independent toggles: a flag is set while its name appears anywhere in
// the active-tag stack. Closing tags for inactive names are dropped
// silently; opening tags left unmatched implicitly close at end of input.
// Input without a well-formed opening tag comes back as one plain segment.
func Parse(text string) []Segment {
	if !HasMarkup(text) {
		return []Segment{{Text: text}}
	}

	seq, err := markupParser.ParseString("", text)
	if err != nil {
		return []Segment{{Text: text}}
	}

	var (
		segments []Segment
		stack    []string
		buf      strings.Builder
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		segments = append(segments, Segment{
			Text:      buf.String(),
			Bold:      active(stack, "b"),
			Italic:    active(stack, "i"),
			Underline: active(stack, "u"),
		})
		buf.Reset()
	}

	for _, n := range seq.Nodes {
		if n.Tag == "" {
			buf.WriteString(n.Chunk)
			continue
		}
		name, closing := decodeTag(n.Tag)
		// Text accumulated so far carries the formatting that was active
		// up to this tag boundary.
		flush()
		if closing {
			stack = remove(stack, name)
		} else {
			stack = append(stack, name)
		}
	}
	flush()

	if len(segments) == 0 {
		return []Segment{{Text: text}}
	}
	return segments
}

// decodeTag extracts the tag name and whether the tag is a closing one.
// The optional self-closing slash does not make a tag closing.
func decodeTag(tag string) (name string, closing bool) {
	inner := strings.ToLower(strings.Trim(tag, "<> \t"))
	if rest, ok := strings.CutPrefix(inner, "/"); ok {
		return strings.TrimSpace(rest), true
	}
	inner = strings.TrimSpace(strings.TrimSuffix(inner, "/"))
	return inner, false
}

func active(stack []string, name string) bool {
	for _, s := range stack {
		if s == name {
			return true
		}
	}
	return false
}

// remove drops the first occurrence of name; a miss is a no-op.
func remove(stack []string, name string) []string {
	for i, s := range stack {
		if s == name {
			return append(stack[:i], stack[i+1:]...)
		}
	}
	return stack
}
