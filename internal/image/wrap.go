package imagepkg

import "strings"

// TextCanvas is the subset of a canvas the wrap engine needs.
type TextCanvas interface {
	MeasureText(text string, f Font) float64
	FillText(text string, x, y float64, st TextStyle)
}

// WrapLines breaks text greedily on whitespace so that no line measures
// wider than maxWidth, except a single word that is wider on its own.
// Words are never split. Empty text yields one empty line.
func WrapLines(text string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(text)
	var lines []string
	line := ""
	for n, word := range words {
		trial := line + word + " "
		if measure(trial) > maxWidth && n > 0 {
			lines = append(lines, strings.TrimSpace(line))
			line = word + " "
			continue
		}
		line = trial
	}
	return append(lines, strings.TrimSpace(line))
}

// Baselines returns n baselines lineHeight apart, centered on y.
func Baselines(y float64, n int, lineHeight float64) []float64 {
	out := make([]float64, n)
	start := y - float64(n-1)*lineHeight/2
	for i := range out {
		out[i] = start + float64(i)*lineHeight
	}
	return out
}

// WrapText wraps text with the style's font, draws the block vertically
// centered on y and returns the drawn lines.
func WrapText(c TextCanvas, text string, x, y, maxWidth, lineHeight float64, st TextStyle) []string {
	lines := WrapLines(text, maxWidth, func(s string) float64 {
		return c.MeasureText(s, st.Font)
	})
	for i, by := range Baselines(y, len(lines), lineHeight) {
		c.FillText(lines[i], x, by, st)
	}
	return lines
}
