// Package codec serializes the theme table in the layout the styling
// toolchain reads, and loads it back.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"skytheme/model"
	"skytheme/palette"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrAliasMismatch is returned when an alias key disagrees with the field
	// it mirrors.
	ErrAliasMismatch = errors.New("alias does not match primary field")
	// ErrMissingTheme is returned when a decoded table lacks a theme.
	ErrMissingTheme = errors.New("missing theme")
	// ErrDuplicateTheme is returned when two keys name the same theme, such
	// as "rainy" and "Rainy".
	ErrDuplicateTheme = errors.New("duplicate theme")
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want json or yaml)", s)
	}
}

// Marshal encodes themes keyed by identifier, preserving the given order.
func Marshal(format Format, themes []model.Theme) ([]byte, error) {
	switch format {
	case FormatJSON:
		return marshalJSON(themes)
	case FormatYAML:
		return marshalYAML(themes)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func marshalJSON(themes []model.Theme) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, t := range themes {
		key, err := json.Marshal(string(t.ID))
		if err != nil {
			return nil, err
		}
		value, err := json.MarshalIndent(t.ToWire(), "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.ID, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(themes)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func marshalYAML(themes []model.Theme) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, t := range themes {
		var value yaml.Node
		if err := value.Encode(t.ToWire()); err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.ID, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t.ID)},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes and validates a complete theme table. Themes are returned
// in table order.
func Unmarshal(format Format, data []byte) ([]model.Theme, error) {
	raw := map[string]model.Wire{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

	byID := make(map[model.ThemeID]model.Theme, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		id, err := palette.ParseID(key)
		if err != nil {
			return nil, err
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTheme, key)
		}
		w := raw[key]
		if err := checkAliases(id, w); err != nil {
			return nil, err
		}
		t := w.FromWire(id)
		if err := palette.Validate(t); err != nil {
			return nil, err
		}
		byID[id] = t
	}

	themes := make([]model.Theme, 0, len(byID))
	for _, id := range palette.IDs() {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingTheme, id)
		}
		themes = append(themes, t)
	}
	return themes, nil
}

func checkAliases(id model.ThemeID, w model.Wire) error {
	pairs := []struct {
		alias, primary       string
		aliasVal, primaryVal string
	}{
		{"btnBg", "button", w.BtnBg, w.Button},
		{"accentColor", "accent", w.AccentColor, w.Accent},
		{"textColor", "text", w.TextColor, w.Text},
	}
	for _, p := range pairs {
		if p.aliasVal != p.primaryVal {
			return fmt.Errorf("theme %q: %w: %s=%q, %s=%q",
				id, ErrAliasMismatch, p.alias, p.aliasVal, p.primary, p.primaryVal)
		}
	}
	return nil
}
