// Package preview renders the theme table as terminal swatches.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"skytheme/model"
)

const (
	barWidth   = 24
	labelWidth = 10
)

var (
	caption = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888"))

	swatchLabel = lipgloss.NewStyle().
			Width(9).
			Foreground(lipgloss.Color("#888888"))
)

// Render returns one block per theme: a label drawn in the theme's text color
// on its gradient midpoint, a gradient bar and the scalar color swatches.
func Render(themes []model.Theme) string {
	blocks := make([]string, 0, len(themes))
	for _, t := range themes {
		blocks = append(blocks, renderTheme(t))
	}
	return strings.Join(blocks, "\n\n")
}

func renderTheme(t model.Theme) string {
	label := lipgloss.NewStyle().
		Bold(true).
		Width(labelWidth).
		Foreground(lipgloss.Color(t.Text)).
		Background(lipgloss.Color(t.Gradient.Middle)).
		Render(" " + string(t.ID))

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		label,
		" ",
		GradientBar(t.Gradient, barWidth),
		" ",
		caption.Render(fmt.Sprintf("%s / %s / %s", t.Gradient.Start, t.Gradient.Middle, t.Gradient.End)),
	)

	rows := []string{
		header,
		swatch("button", t.Button),
		swatch("accent", t.Accent),
		swatch("highlight", t.Highlight),
		caption.Render(fmt.Sprintf("text %s, muted %s, border %s", t.Text, t.MutedText, t.Border)),
		caption.Render(fmt.Sprintf("classes %s | %s | %s", t.MainTextClass, t.SecondaryTextClass, t.WeatherCardClass)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func swatch(name, hex string) string {
	block := lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Render("    ")
	return lipgloss.JoinHorizontal(lipgloss.Top, swatchLabel.Render(name), block, " ", caption.Render(hex))
}

// GradientBar renders width cells blended through the three stops in Lab
// space. Stops that fail to parse render as a plain bar.
func GradientBar(g model.Gradient, width int) string {
	cells := GradientCells(g, width)
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c)).Render(" "))
	}
	return b.String()
}

// GradientCells returns width hex colors sampled along the gradient.
func GradientCells(g model.Gradient, width int) []string {
	if width <= 0 {
		return nil
	}
	var stops [3]colorful.Color
	for i, hex := range g.Stops() {
		c, err := colorful.Hex(hex)
		if err != nil {
			cells := make([]string, width)
			for j := range cells {
				cells[j] = g.Middle
			}
			return cells
		}
		stops[i] = c
	}
	start, middle, end := stops[0], stops[1], stops[2]

	cells := make([]string, width)
	for i := range cells {
		pos := 0.0
		if width > 1 {
			pos = float64(i) / float64(width-1)
		}
		var c colorful.Color
		if pos < 0.5 {
			c = start.BlendLab(middle, pos*2)
		} else {
			c = middle.BlendLab(end, (pos-0.5)*2)
		}
		cells[i] = c.Clamped().Hex()
	}
	return cells
}
