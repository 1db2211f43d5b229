package style

import (
	"skytheme/model"
)

// DefaultContent is the set of source patterns the toolchain scans to decide
// which generated utilities to keep.
var DefaultContent = []string{
	"./index.html",
	"./src/**/*.{vue,js,ts,jsx,tsx}",
}

// Document is the configuration handed to the styling toolchain.
type Document struct {
	Content []string `json:"content" yaml:"content"`
	Theme   struct {
		Extend Extend `json:"extend" yaml:"extend"`
	} `json:"theme" yaml:"theme"`
	Plugins []string `json:"plugins" yaml:"plugins"`
}

type Extend struct {
	Colors          map[model.ThemeID]model.Wire `json:"colors" yaml:"colors"`
	BackgroundImage map[string]string            `json:"backgroundImage" yaml:"backgroundImage"`
}

// TailwindConfig builds the toolchain document for themes. A nil content
// falls back to DefaultContent.
func TailwindConfig(themes []model.Theme, content []string) Document {
	if content == nil {
		content = DefaultContent
	}

	var doc Document
	doc.Content = append([]string(nil), content...)
	doc.Plugins = []string{}
	doc.Theme.Extend = Extend{
		Colors:          make(map[model.ThemeID]model.Wire, len(themes)),
		BackgroundImage: make(map[string]string, len(themes)),
	}
	for _, t := range themes {
		doc.Theme.Extend.Colors[t.ID] = t.ToWire()
		doc.Theme.Extend.BackgroundImage[GradientClass(t.ID)] = TailwindGradientCSS()
	}
	return doc
}
