package imagepkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// tenPerRune measures every rune as ten pixels wide.
func tenPerRune(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{name: "empty", text: "", maxWidth: 100, want: []string{""}},
		{name: "fits", text: "summer bash", maxWidth: 200, want: []string{"summer bash"}},
		{name: "breaks", text: "one two three four", maxWidth: 90, want: []string{"one two", "three", "four"}},
		{name: "long word kept whole", text: "supercalifragilistic ok", maxWidth: 50, want: []string{"supercalifragilistic", "ok"}},
		{name: "collapses whitespace", text: "  a \n\t b  ", maxWidth: 100, want: []string{"a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapLines(tt.text, tt.maxWidth, tenPerRune))
		})
	}
}

func TestWrapLinesKeepsEveryWord(t *testing.T) {
	text := "Annual community picnic with games music and food for the whole family"
	for _, width := range []float64{40, 120, 250, 1000} {
		lines := WrapLines(text, width, tenPerRune)
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
		for _, line := range lines {
			if strings.Contains(line, " ") {
				assert.LessOrEqual(t, tenPerRune(line), width, "line %q", line)
			}
		}
	}
}

func TestBaselinesCentered(t *testing.T) {
	assert.Equal(t, []float64{100}, Baselines(100, 1, 40))
	assert.Equal(t, []float64{80, 120}, Baselines(100, 2, 40))

	got := Baselines(300, 5, 30)
	assert.Len(t, got, 5)
	assert.InDelta(t, 300, (got[0]+got[4])/2, 1e-9)
	assert.InDelta(t, 30, got[1]-got[0], 1e-9)
}

type textCall struct {
	text string
	x, y float64
}

type recordingText struct {
	calls []textCall
}

func (r *recordingText) MeasureText(text string, _ Font) float64 { return tenPerRune(text) }

func (r *recordingText) FillText(text string, x, y float64, _ TextStyle) {
	r.calls = append(r.calls, textCall{text, x, y})
}

func TestWrapTextDrawsCenteredBlock(t *testing.T) {
	rec := &recordingText{}
	lines := WrapText(rec, "one two three four", 50, 200, 90, 20, TextStyle{})

	assert.Equal(t, []string{"one two", "three", "four"}, lines)
	assert.Equal(t, []textCall{
		{"one two", 50, 180},
		{"three", 50, 200},
		{"four", 50, 220},
	}, rec.calls)
}
