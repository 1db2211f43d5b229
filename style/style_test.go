package style

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytheme/model"
	"skytheme/palette"
)

func TestGradientCSS(t *testing.T) {
	rainy := palette.MustLookup(model.Rainy)
	assert.Equal(t,
		"linear-gradient(135deg, #0ea5e9 20%, #0369a1 50%, #075985 80%)",
		GradientCSS(rainy.Gradient))
}

func TestParseGradientRoundTrip(t *testing.T) {
	for _, theme := range palette.All() {
		g, err := ParseGradient(GradientCSS(theme.Gradient))
		require.NoError(t, err, theme.ID)
		assert.Equal(t, GradientAngle, g.Direction)

		positions := []string{g.ColorStops[0].Position, g.ColorStops[1].Position, g.ColorStops[2].Position}
		assert.Equal(t, []string{"20%", "50%", "80%"}, positions)

		back, err := g.Gradient()
		require.NoError(t, err)
		assert.Equal(t, theme.Gradient, back)
	}
}

func TestParseGradientVariables(t *testing.T) {
	g, err := ParseGradient(TailwindGradientCSS())
	require.NoError(t, err)
	want := LinearGradient{
		Direction: "135deg",
		ColorStops: []ColorStop{
			{Color: "var(--tw-gradient-from)", Position: "20%"},
			{Color: "var(--tw-gradient-middle)", Position: "50%"},
			{Color: "var(--tw-gradient-to)", Position: "80%"},
		},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("ParseGradient() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGradientErrors(t *testing.T) {
	for _, in := range []string{
		"radial-gradient(#fff, #000)",
		"linear-gradient()",
		"linear-gradient(135deg)",
		"linear-gradient(135deg, #fff 20% extra)",
	} {
		_, err := ParseGradient(in)
		assert.Error(t, err, in)
	}

	g, err := ParseGradient("linear-gradient(#fff, #000)")
	require.NoError(t, err)
	_, err = g.Gradient()
	assert.Error(t, err)
}

func TestStylesheetRules(t *testing.T) {
	css := Stylesheet(palette.All())
	rules := ParseRules(css)
	require.Len(t, rules, 2*len(palette.All()))

	for i, theme := range palette.All() {
		utility := rules[2*i]
		assert.Equal(t, "."+string(theme.ID)+"-gradient", utility.Selector)
		decls := utility.Declarations()
		require.Len(t, decls, 1)
		assert.Equal(t, "background-image", decls[0][0])

		g, err := ParseGradient(decls[0][1])
		require.NoError(t, err)
		back, err := g.Gradient()
		require.NoError(t, err)
		assert.Equal(t, theme.Gradient, back)

		vars := rules[2*i+1]
		assert.Equal(t, `[data-theme="`+string(theme.ID)+`"]`, vars.Selector)
		props := map[string]string{}
		for _, d := range vars.Declarations() {
			props[d[0]] = d[1]
		}
		assert.Equal(t, theme.Button, props["--theme-button"])
		assert.Equal(t, theme.MutedText, props["--theme-muted-text"])
		assert.Equal(t, theme.Border, props["--theme-border"])
		assert.Equal(t, theme.Gradient.Middle, props["--tw-gradient-middle"])
	}
}

func TestThemeRulesSingleTheme(t *testing.T) {
	css := ThemeRules(palette.MustLookup(model.Snow))
	assert.Contains(t, css, ".snow-gradient {")
	assert.NotContains(t, css, "sunny")
}

func TestParseRulesNested(t *testing.T) {
	rules := ParseRules("/* a */ @media (x) { .a { b: c; } } .d { e: f; }")
	require.Len(t, rules, 2)
	assert.Equal(t, "@media (x)", rules[0].Selector)
	assert.Equal(t, ".a { b: c; }", rules[0].Body)
	assert.Equal(t, ".d", rules[1].Selector)
}

func TestTailwindConfig(t *testing.T) {
	doc := TailwindConfig(palette.All(), nil)
	assert.Equal(t, DefaultContent, doc.Content)
	require.Len(t, doc.Theme.Extend.Colors, 7)
	require.Len(t, doc.Theme.Extend.BackgroundImage, 7)

	rainy := doc.Theme.Extend.Colors[model.Rainy]
	assert.Equal(t, "#0284c7", rainy.BtnBg)
	assert.Equal(t, TailwindGradientCSS(), doc.Theme.Extend.BackgroundImage["rainy-gradient"])

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"backgroundImage"`))
	assert.True(t, strings.Contains(string(data), `"plugins":[]`))
}

func TestTailwindConfigCustomContent(t *testing.T) {
	content := []string{"./web/**/*.html"}
	doc := TailwindConfig(palette.All(), content)
	content[0] = "changed"
	assert.Equal(t, []string{"./web/**/*.html"}, doc.Content)
}
