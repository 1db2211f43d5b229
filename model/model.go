package model

// ThemeID identifies one weather-condition theme.
type ThemeID string

const (
	Sunny   ThemeID = "sunny"
	Cloudy  ThemeID = "cloudy"
	Rainy   ThemeID = "rainy"
	Snow    ThemeID = "snow"
	Thunder ThemeID = "thunder"
	Mist    ThemeID = "mist"
	Night   ThemeID = "night"
)

// ThemeIDs lists every identifier in table order.
var ThemeIDs = []ThemeID{Sunny, Cloudy, Rainy, Snow, Thunder, Mist, Night}

// Gradient is the three-stop background of a theme.
type Gradient struct {
	Start  string
	Middle string
	End    string
}

// Stops returns the gradient colors in order.
func (g Gradient) Stops() [3]string {
	return [3]string{g.Start, g.Middle, g.End}
}

type Theme struct {
	ID       ThemeID
	Gradient Gradient

	Button    string
	Accent    string
	Text      string
	MutedText string // rgba(), text color with alpha
	Highlight string
	Border    string // #rrggbbaa, button color with alpha

	WeatherCardClass   string
	MainTextClass      string
	SecondaryTextClass string
}

// Wire is the serialized layout consumed by the styling toolchain. BtnBg,
// AccentColor and TextColor mirror Button, Accent and Text.
type Wire struct {
	Gradient           WireGradient `json:"gradient" yaml:"gradient"`
	Button             string       `json:"button" yaml:"button"`
	Accent             string       `json:"accent" yaml:"accent"`
	Text               string       `json:"text" yaml:"text"`
	MutedText          string       `json:"mutedText" yaml:"mutedText"`
	Highlight          string       `json:"highlight" yaml:"highlight"`
	Border             string       `json:"border" yaml:"border"`
	BtnBg              string       `json:"btnBg" yaml:"btnBg"`
	AccentColor        string       `json:"accentColor" yaml:"accentColor"`
	TextColor          string       `json:"textColor" yaml:"textColor"`
	WeatherCardClass   string       `json:"weatherCardClass" yaml:"weatherCardClass"`
	MainTextClass      string       `json:"mainTextClass" yaml:"mainTextClass"`
	SecondaryTextClass string       `json:"secondaryTextClass" yaml:"secondaryTextClass"`
}

type WireGradient struct {
	Start  string `json:"start" yaml:"start"`
	Middle string `json:"middle" yaml:"middle"`
	End    string `json:"end" yaml:"end"`
}

// ToWire converts a theme to its serialized layout, filling the alias keys.
func (t Theme) ToWire() Wire {
	return Wire{
		Gradient: WireGradient{
			Start:  t.Gradient.Start,
			Middle: t.Gradient.Middle,
			End:    t.Gradient.End,
		},
		Button:             t.Button,
		Accent:             t.Accent,
		Text:               t.Text,
		MutedText:          t.MutedText,
		Highlight:          t.Highlight,
		Border:             t.Border,
		BtnBg:              t.Button,
		AccentColor:        t.Accent,
		TextColor:          t.Text,
		WeatherCardClass:   t.WeatherCardClass,
		MainTextClass:      t.MainTextClass,
		SecondaryTextClass: t.SecondaryTextClass,
	}
}

// FromWire converts a serialized record back into a Theme. Alias keys are not
// checked here.
func (w Wire) FromWire(id ThemeID) Theme {
	return Theme{
		ID: id,
		Gradient: Gradient{
			Start:  w.Gradient.Start,
			Middle: w.Gradient.Middle,
			End:    w.Gradient.End,
		},
		Button:             w.Button,
		Accent:             w.Accent,
		Text:               w.Text,
		MutedText:          w.MutedText,
		Highlight:          w.Highlight,
		Border:             w.Border,
		WeatherCardClass:   w.WeatherCardClass,
		MainTextClass:      w.MainTextClass,
		SecondaryTextClass: w.SecondaryTextClass,
	}
}

// ThemeWithID is the API shape of a single theme.
type ThemeWithID struct {
	ID ThemeID `json:"id"`
	Wire
}

// Artifact describes a generated file in the data directory.
type Artifact struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	ModTime string `json:"mod_time"`
}
