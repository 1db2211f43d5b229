package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytheme/model"
	"skytheme/palette"
)

func TestRenderMentionsEveryTheme(t *testing.T) {
	out := Render(palette.All())
	for _, theme := range palette.All() {
		assert.Contains(t, out, string(theme.ID))
		assert.Contains(t, out, theme.Button)
		assert.Contains(t, out, theme.MainTextClass)
	}
}

func TestGradientCellsEndpoints(t *testing.T) {
	g := palette.MustLookup(model.Rainy).Gradient
	cells := GradientCells(g, 9)
	require.Len(t, cells, 9)
	assert.Equal(t, g.Start, cells[0])
	assert.Equal(t, g.Middle, cells[4])
	assert.Equal(t, g.End, cells[8])
}

func TestGradientCellsEdgeCases(t *testing.T) {
	assert.Nil(t, GradientCells(model.Gradient{}, 0))
	assert.Len(t, GradientCells(palette.MustLookup(model.Mist).Gradient, 1), 1)

	bad := model.Gradient{Start: "nope", Middle: "#000000", End: "#ffffff"}
	assert.Equal(t, []string{"#000000", "#000000"}, GradientCells(bad, 2))
}
