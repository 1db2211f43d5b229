package palette

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytheme/model"
)

func TestTableIsValid(t *testing.T) {
	require.NoError(t, ValidateTable())
}

func TestTableCoversEnumInOrder(t *testing.T) {
	want := []model.ThemeID{
		model.Sunny, model.Cloudy, model.Rainy, model.Snow,
		model.Thunder, model.Mist, model.Night,
	}
	assert.Equal(t, want, IDs())
	assert.Len(t, All(), len(want))
}

func TestRequiredFieldsAndAliases(t *testing.T) {
	for _, theme := range All() {
		t.Run(string(theme.ID), func(t *testing.T) {
			w := theme.ToWire()
			for name, v := range map[string]string{
				"gradient.start":     w.Gradient.Start,
				"gradient.middle":    w.Gradient.Middle,
				"gradient.end":       w.Gradient.End,
				"button":             w.Button,
				"accent":             w.Accent,
				"text":               w.Text,
				"mutedText":          w.MutedText,
				"highlight":          w.Highlight,
				"border":             w.Border,
				"weatherCardClass":   w.WeatherCardClass,
				"mainTextClass":      w.MainTextClass,
				"secondaryTextClass": w.SecondaryTextClass,
			} {
				assert.NotEmpty(t, v, name)
			}
			assert.Equal(t, w.Button, w.BtnBg)
			assert.Equal(t, w.Accent, w.AccentColor)
			assert.Equal(t, w.Text, w.TextColor)
		})
	}
}

func TestTextClassPolarity(t *testing.T) {
	for _, theme := range All() {
		if theme.ID == model.Snow {
			assert.Equal(t, "text-gray-900", theme.MainTextClass)
			assert.Equal(t, "text-gray-900/60", theme.SecondaryTextClass)
			continue
		}
		assert.Equal(t, "text-white", theme.MainTextClass, theme.ID)
		assert.Equal(t, "text-white/60", theme.SecondaryTextClass, theme.ID)
	}
}

func TestRainyExample(t *testing.T) {
	rainy, ok := Lookup(model.Rainy)
	require.True(t, ok)
	assert.Equal(t, model.Gradient{Start: "#0ea5e9", Middle: "#0369a1", End: "#075985"}, rainy.Gradient)
	assert.Equal(t, "#0284c7", rainy.Button)
	assert.Equal(t, "text-white", rainy.MainTextClass)
}

func TestAllReturnsCopy(t *testing.T) {
	themes := All()
	themes[0].Button = "#000000"
	assert.Equal(t, "#ea580c", MustLookup(model.Sunny).Button)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" Rainy ")
	require.NoError(t, err)
	assert.Equal(t, model.Rainy, id)

	_, err = ParseID("hail")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTheme))
}

func TestMustLookupPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustLookup("hail") })
}

func TestValidateRejects(t *testing.T) {
	base := MustLookup(model.Cloudy)

	tests := []struct {
		name   string
		mutate func(*model.Theme)
	}{
		{"unknown id", func(th *model.Theme) { th.ID = "hail" }},
		{"empty button", func(th *model.Theme) { th.Button = "" }},
		{"short hex", func(th *model.Theme) { th.Accent = "#fff" }},
		{"border without alpha", func(th *model.Theme) { th.Border = "#94a3b8" }},
		{"muted text not rgba", func(th *model.Theme) { th.MutedText = "#f8fafc" }},
		{"muted text drifted from text", func(th *model.Theme) { th.MutedText = "rgba(0, 0, 0, 0.7)" }},
		{"border drifted from button", func(th *model.Theme) { th.Border = "#00000080" }},
		{"missing card class", func(th *model.Theme) { th.WeatherCardClass = "" }},
		{"dark text on dark background", func(th *model.Theme) {
			th.MainTextClass = "text-gray-900"
			th.SecondaryTextClass = "text-gray-900/60"
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			th := base
			tc.mutate(&th)
			assert.Error(t, Validate(th))
		})
	}
}

func TestValidateThemesRejectsDuplicates(t *testing.T) {
	sunny := MustLookup(model.Sunny)
	assert.Error(t, ValidateThemes([]model.Theme{sunny, sunny}))
}

func TestValidateTableRejectsMissingTheme(t *testing.T) {
	themes := All()
	err := validateTable(themes[:len(themes)-1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"night": missing from table`)

	assert.NoError(t, validateTable(themes))
}

func TestIsLightBackground(t *testing.T) {
	for _, theme := range All() {
		light, err := IsLightBackground(theme.Gradient)
		require.NoError(t, err)
		assert.Equal(t, theme.ID == model.Snow, light, theme.ID)
	}
}
