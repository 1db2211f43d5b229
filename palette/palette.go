// Package palette holds the immutable weather theme table.
package palette

import (
	"errors"
	"fmt"
	"strings"

	"skytheme/model"
)

// ErrUnknownTheme is returned for identifiers outside the theme enum.
var ErrUnknownTheme = errors.New("unknown theme")

const (
	lightMainText      = "text-white"
	lightSecondaryText = "text-white/60"
	darkMainText       = "text-gray-900"
	darkSecondaryText  = "text-gray-900/60"
)

var table = []model.Theme{
	{
		ID:                 model.Sunny,
		Gradient:           model.Gradient{Start: "#f97316", Middle: "#c2410c", End: "#7c2d12"},
		Button:             "#ea580c",
		Accent:             "#fb923c",
		Text:               "#fff7ed",
		MutedText:          "rgba(255, 247, 237, 0.7)",
		Highlight:          "#fdba74",
		Border:             "#ea580c80",
		WeatherCardClass:   "from-orange-500/20 to-orange-800/20",
		MainTextClass:      lightMainText,
		SecondaryTextClass: lightSecondaryText,
	},
	{
		ID:                 model.Cloudy,
		Gradient:           model.Gradient{Start: "#64748b", Middle: "#475569", End: "#334155"},
		Button:             "#94a3b8",
		Accent:             "#cbd5e1",
		Text:               "#f8fafc",
		MutedText:          "rgba(248, 250, 252, 0.7)",
		Highlight:          "#e2e8f0",
		Border:             "#94a3b880",
		WeatherCardClass:   "from-gray-500/20 to-gray-800/20",
		MainTextClass:      lightMainText,
		SecondaryTextClass: lightSecondaryText,
	},
	{
		ID:                 model.Rainy,
		Gradient:           model.Gradient{Start: "#0ea5e9", Middle: "#0369a1", End: "#075985"},
		Button:             "#0284c7",
		Accent:             "#38bdf8",
		Text:               "#f0f9ff",
		MutedText:          "rgba(240, 249, 255, 0.7)",
		Highlight:          "#7dd3fc",
		Border:             "#0284c780",
		WeatherCardClass:   "from-blue-500/20 to-blue-800/20",
		MainTextClass:      lightMainText,
		SecondaryTextClass: lightSecondaryText,
	},
	{
		// Light background, so the text classes flip to dark.
		ID:                 model.Snow,
		Gradient:           model.Gradient{Start: "#e2e8f0", Middle: "#cbd5e1", End: "#94a3b8"},
		Button:             "#64748b",
		Accent:             "#f1f5f9",
		Text:               "#1e293b",
		MutedText:          "rgba(30, 41, 59, 0.7)",
		Highlight:          "#f8fafc",
		Border:             "#64748b80",
		WeatherCardClass:   "from-gray-200/20 to-gray-400/20",
		MainTextClass:      darkMainText,
		SecondaryTextClass: darkSecondaryText,
	},
	{
		ID:                 model.Thunder,
		Gradient:           model.Gradient{Start: "#6b21a8", Middle: "#581c87", End: "#3b0764"},
		Button:             "#7e22ce",
		Accent:             "#a855f7",
		Text:               "#faf5ff",
		MutedText:          "rgba(250, 245, 255, 0.7)",
		Highlight:          "#d8b4fe",
		Border:             "#7e22ce80",
		WeatherCardClass:   "from-purple-500/20 to-purple-800/20",
		MainTextClass:      lightMainText,
		SecondaryTextClass: lightSecondaryText,
	},
	{
		ID:                 model.Mist,
		Gradient:           model.Gradient{Start: "#9ca3af", Middle: "#6b7280", End: "#4b5563"},
		Button:             "#6b7280",
		Accent:             "#d1d5db",
		Text:               "#f9fafb",
		MutedText:          "rgba(249, 250, 251, 0.7)",
		Highlight:          "#e5e7eb",
		Border:             "#6b728080",
		WeatherCardClass:   "from-gray-400/20 to-gray-600/20",
		MainTextClass:      lightMainText,
		SecondaryTextClass: lightSecondaryText,
	},
	{
		ID:                 model.Night,
		Gradient:           model.Gradient{Start: "#1e1b4b", Middle: "#0f172a", End: "#020617"},
		Button:             "#1e293b",
		Accent:             "#334155",
		Text:               "#f8fafc",
		MutedText:          "rgba(248, 250, 252, 0.7)",
		Highlight:          "#94a3b8",
		Border:             "#1e293b80",
		WeatherCardClass:   "from-gray-800/20 to-gray-900/20",
		MainTextClass:      lightMainText,
		SecondaryTextClass: lightSecondaryText,
	},
}

// All returns a copy of every theme in table order.
func All() []model.Theme {
	return append([]model.Theme(nil), table...)
}

// IDs returns the theme identifiers in table order.
func IDs() []model.ThemeID {
	ids := make([]model.ThemeID, 0, len(table))
	for _, t := range table {
		ids = append(ids, t.ID)
	}
	return ids
}

// Lookup returns the theme for id.
func Lookup(id model.ThemeID) (model.Theme, bool) {
	for _, t := range table {
		if t.ID == id {
			return t, true
		}
	}
	return model.Theme{}, false
}

// MustLookup is Lookup for identifiers known at compile time. It panics if id
// is not in the table.
func MustLookup(id model.ThemeID) model.Theme {
	t, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("palette: %v: %q", ErrUnknownTheme, id))
	}
	return t
}

// ParseID validates a theme identifier coming from outside the program.
func ParseID(s string) (model.ThemeID, error) {
	id := model.ThemeID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Lookup(id); !ok {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTheme, s, idList())
	}
	return id, nil
}

func idList() string {
	ids := IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
