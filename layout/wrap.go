package layout

import (
	"strings"

	"golang.org/x/image/font"

	"github.com/ByLCY/signboard/markup"
)

// Wrap greedily packs words into lines no wider than maxWidth. Words are
// atomic: one wider than maxWidth is placed alone on its own line rather
// than split. Input with no words yields one line holding the original
// text.
func Wrap(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	var current []string
	for _, word := range words {
		candidate := strings.Join(current, " ")
		if candidate != "" {
			candidate += " "
		}
		candidate += word

		if TextWidth(face, candidate) <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
		} else {
			// Single word wider than the budget: overflow, never split.
			lines = append(lines, word)
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// WrapSegments wraps formatted segments with the same greedy algorithm,
// exploding each segment into per-word units and inserting a synthetic
// single-space segment between consecutive words. The space inherits the
// formatting of the segment supplying the word that follows it, so styled
// runs stay contiguous.
func WrapSegments(segments []markup.Segment, faces FaceSource, size, maxWidth int) [][]markup.Segment {
	var lines [][]markup.Segment
	var current []markup.Segment
	currentWidth := 0

	for _, seg := range segments {
		face := faces.Face(size, seg.Bold, seg.Italic)
		for _, word := range strings.Fields(seg.Text) {
			wordSeg := markup.Segment{Text: word, Bold: seg.Bold, Italic: seg.Italic, Underline: seg.Underline}
			wordWidth := TextWidth(face, word)

			spaceWidth := 0
			if len(current) > 0 {
				spaceWidth = TextWidth(face, " ")
			}

			if len(current) > 0 && currentWidth+spaceWidth+wordWidth > maxWidth {
				lines = append(lines, current)
				current = []markup.Segment{wordSeg}
				currentWidth = wordWidth
				continue
			}
			if len(current) > 0 {
				current = append(current, markup.Segment{Text: " ", Bold: seg.Bold, Italic: seg.Italic, Underline: seg.Underline})
				currentWidth += spaceWidth
			}
			current = append(current, wordSeg)
			currentWidth += wordWidth
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}

	if len(lines) == 0 {
		return [][]markup.Segment{{{Text: ""}}}
	}
	return lines
}
