package layout

// Search bounds an auto font size search. The paddings here are distinct
// from (and tighter than) the body-text paddings so auto-sized text can
// use more of the canvas.
type Search struct {
	Min         int
	Max         int
	Iterations  int // probe ceiling; 0 means the default of 10
	LineSpacing int

	PaddingH      int
	PaddingTop    int
	PaddingBottom int
}

const defaultIterations = 10

// AutoSize binary-searches [s.Min, s.Max] for the largest font size whose
// wrapped layout fits both the width and height budgets. Each probe
// re-wraps the text at the midpoint size, sums line ink heights plus
// inter-line spacing, and checks the widest line. Returns s.Min when no
// probed size fits.
func AutoSize(text string, faces FaceSource, width, height int, s Search) int {
	low, high := s.Min, s.Max
	best := s.Min

	maxWidth := width - 2*s.PaddingH
	availHeight := height - s.PaddingTop - s.PaddingBottom

	iterations := s.Iterations
	if iterations <= 0 {
		iterations = defaultIterations
	}
	for i := 0; i < iterations; i++ {
		if low > high {
			break
		}
		mid := (low + high) / 2
		face := faces.Face(mid, false, false)

		lines := Wrap(text, face, maxWidth)
		totalHeight, widest := 0, 0
		for _, line := range lines {
			b := Bounds(face, line)
			totalHeight += b.Dy()
			if b.Dx() > widest {
				widest = b.Dx()
			}
		}
		if len(lines) > 1 {
			totalHeight += (len(lines) - 1) * s.LineSpacing
		}

		if totalHeight <= availHeight && widest <= maxWidth {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return best
}
