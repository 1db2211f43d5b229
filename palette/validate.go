package palette

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"skytheme/model"
)

// Gradient midpoints brighter than this get dark text classes.
const lightBackgroundLuminance = 0.4

var (
	hexColorRegex      = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	hexAlphaColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{8}$`)
	rgbaColorRegex     = regexp.MustCompile(`^rgba\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*(0|1|0?\.\d+)\s*\)$`)
)

// ValidateTable checks every theme in the table and that the table covers the
// whole enum exactly once.
func ValidateTable() error {
	return validateTable(table)
}

func validateTable(themes []model.Theme) error {
	return errors.Join(ValidateThemes(themes), checkCoverage(themes))
}

// checkCoverage reports every enum value with no theme record.
func checkCoverage(themes []model.Theme) error {
	present := make(map[model.ThemeID]bool, len(themes))
	for _, t := range themes {
		present[t.ID] = true
	}
	var errs []error
	for _, id := range model.ThemeIDs {
		if !present[id] {
			errs = append(errs, fmt.Errorf("theme %q: missing from table", id))
		}
	}
	return errors.Join(errs...)
}

// ValidateThemes checks each theme and rejects duplicate identifiers.
func ValidateThemes(themes []model.Theme) error {
	seen := make(map[model.ThemeID]bool, len(themes))
	var errs []error
	for _, t := range themes {
		if seen[t.ID] {
			errs = append(errs, fmt.Errorf("theme %q: duplicate entry", t.ID))
			continue
		}
		seen[t.ID] = true
		if err := Validate(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks a single theme record.
func Validate(t model.Theme) error {
	if _, ok := Lookup(t.ID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, t.ID)
	}

	fields := []struct {
		name  string
		value string
		re    *regexp.Regexp
	}{
		{"gradient.start", t.Gradient.Start, hexColorRegex},
		{"gradient.middle", t.Gradient.Middle, hexColorRegex},
		{"gradient.end", t.Gradient.End, hexColorRegex},
		{"button", t.Button, hexColorRegex},
		{"accent", t.Accent, hexColorRegex},
		{"text", t.Text, hexColorRegex},
		{"mutedText", t.MutedText, rgbaColorRegex},
		{"highlight", t.Highlight, hexColorRegex},
		{"border", t.Border, hexAlphaColorRegex},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("theme %q: %s is required", t.ID, f.name)
		}
		if !f.re.MatchString(f.value) {
			return fmt.Errorf("theme %q: %s has unexpected format %q", t.ID, f.name, f.value)
		}
		if _, err := csscolorparser.Parse(f.value); err != nil {
			return fmt.Errorf("theme %q: %s: %w", t.ID, f.name, err)
		}
	}

	classes := map[string]string{
		"weatherCardClass":   t.WeatherCardClass,
		"mainTextClass":      t.MainTextClass,
		"secondaryTextClass": t.SecondaryTextClass,
	}
	for name, value := range classes {
		if value == "" {
			return fmt.Errorf("theme %q: %s is required", t.ID, name)
		}
	}

	if err := sameRGB(t.Text, t.MutedText); err != nil {
		return fmt.Errorf("theme %q: mutedText: %w", t.ID, err)
	}
	if err := sameRGB(t.Button, t.Border); err != nil {
		return fmt.Errorf("theme %q: border: %w", t.ID, err)
	}

	light, err := IsLightBackground(t.Gradient)
	if err != nil {
		return fmt.Errorf("theme %q: %w", t.ID, err)
	}
	wantMain, wantSecondary := lightMainText, lightSecondaryText
	if light {
		wantMain, wantSecondary = darkMainText, darkSecondaryText
	}
	if t.MainTextClass != wantMain || t.SecondaryTextClass != wantSecondary {
		return fmt.Errorf("theme %q: text classes %q/%q do not contrast with background, want %q/%q",
			t.ID, t.MainTextClass, t.SecondaryTextClass, wantMain, wantSecondary)
	}

	return nil
}

// IsLightBackground reports whether dark text is needed on the gradient.
func IsLightBackground(g model.Gradient) (bool, error) {
	l, err := Luminance(g.Middle)
	if err != nil {
		return false, err
	}
	return l > lightBackgroundLuminance, nil
}

// Luminance returns the relative luminance of a hex color.
func Luminance(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", hex, err)
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b, nil
}

func sameRGB(base, derived string) error {
	a, err := csscolorparser.Parse(base)
	if err != nil {
		return err
	}
	b, err := csscolorparser.Parse(derived)
	if err != nil {
		return err
	}
	if to255(a.R) != to255(b.R) || to255(a.G) != to255(b.G) || to255(a.B) != to255(b.B) {
		return fmt.Errorf("%q does not share the color of %q", derived, base)
	}
	return nil
}

func to255(v float64) int {
	return int(math.Round(v * 255))
}
