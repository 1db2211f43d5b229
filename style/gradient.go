package style

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"skytheme/model"
)

const (
	// GradientAngle is the direction of every theme gradient.
	GradientAngle = "135deg"

	startPosition  = "20%"
	middlePosition = "50%"
	endPosition    = "80%"
)

var linearGradientRegex = regexp.MustCompile(`^linear-gradient\((.*)\)$`)

// ColorStop is one color along a gradient.
type ColorStop struct {
	Color    string
	Position string
}

// LinearGradient is a parsed linear-gradient() value.
type LinearGradient struct {
	Direction  string
	ColorStops []ColorStop
}

// GradientCSS renders the concrete background-image value for g.
func GradientCSS(g model.Gradient) string {
	return fmt.Sprintf("linear-gradient(%s, %s %s, %s %s, %s %s)",
		GradientAngle,
		g.Start, startPosition,
		g.Middle, middlePosition,
		g.End, endPosition)
}

// TailwindGradientCSS renders the gradient in terms of the toolchain's
// gradient variables. It is the same for every theme.
func TailwindGradientCSS() string {
	return fmt.Sprintf("linear-gradient(%s, var(--tw-gradient-from) %s, var(--tw-gradient-middle) %s, var(--tw-gradient-to) %s)",
		GradientAngle, startPosition, middlePosition, endPosition)
}

// ParseGradient parses a linear-gradient() value.
func ParseGradient(css string) (LinearGradient, error) {
	css = strings.TrimSpace(css)
	m := linearGradientRegex.FindStringSubmatch(css)
	if m == nil {
		return LinearGradient{}, errors.New("invalid gradient syntax")
	}

	params := splitParams(m[1])
	if len(params) == 0 {
		return LinearGradient{}, errors.New("no parameters in gradient")
	}

	var g LinearGradient
	first := strings.TrimSpace(params[0])
	if strings.HasSuffix(first, "deg") || strings.HasPrefix(first, "to ") {
		g.Direction = first
		params = params[1:]
	}
	if len(params) == 0 {
		return LinearGradient{}, errors.New("no color stops in gradient")
	}

	for _, p := range params {
		parts := strings.Fields(strings.TrimSpace(p))
		switch len(parts) {
		case 1:
			g.ColorStops = append(g.ColorStops, ColorStop{Color: parts[0]})
		case 2:
			g.ColorStops = append(g.ColorStops, ColorStop{Color: parts[0], Position: parts[1]})
		default:
			return LinearGradient{}, fmt.Errorf("invalid color stop %q", strings.TrimSpace(p))
		}
	}
	return g, nil
}

// Gradient converts a three-stop parse result back to a theme gradient.
func (g LinearGradient) Gradient() (model.Gradient, error) {
	if len(g.ColorStops) != 3 {
		return model.Gradient{}, fmt.Errorf("want 3 color stops, got %d", len(g.ColorStops))
	}
	return model.Gradient{
		Start:  g.ColorStops[0].Color,
		Middle: g.ColorStops[1].Color,
		End:    g.ColorStops[2].Color,
	}, nil
}

// splitParams splits on top-level commas, leaving var(...) and rgba(...) intact.
func splitParams(params string) []string {
	var parts []string
	var buf strings.Builder
	nesting := 0

	for _, r := range params {
		switch r {
		case ',':
			if nesting == 0 {
				parts = append(parts, buf.String())
				buf.Reset()
				continue
			}
		case '(':
			nesting++
		case ')':
			if nesting > 0 {
				nesting--
			}
		}
		buf.WriteRune(r)
	}
	if buf.Len() > 0 {
		parts = append(parts, buf.String())
	}
	return parts
}
