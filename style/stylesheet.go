package style

import (
	"strings"

	"skytheme/model"
)

// Rule is a single selector block of a generated stylesheet.
type Rule struct {
	Selector string
	Body     string
}

// Stylesheet renders the gradient utility and the custom-property block for
// each theme, in the order given.
func Stylesheet(themes []model.Theme) string {
	var b strings.Builder
	b.WriteString("/* Generated by skytheme. Do not edit. */\n")
	for _, t := range themes {
		b.WriteString("\n")
		b.WriteString(ThemeRules(t))
	}
	return b.String()
}

// ThemeRules renders the rules for a single theme.
func ThemeRules(t model.Theme) string {
	var b strings.Builder

	b.WriteString(".")
	b.WriteString(GradientClass(t.ID))
	b.WriteString(" {\n")
	writeDecl(&b, "background-image", GradientCSS(t.Gradient))
	b.WriteString("}\n")

	b.WriteString(`[data-theme="`)
	b.WriteString(string(t.ID))
	b.WriteString("\"] {\n")
	writeDecl(&b, "--tw-gradient-from", t.Gradient.Start)
	writeDecl(&b, "--tw-gradient-middle", t.Gradient.Middle)
	writeDecl(&b, "--tw-gradient-to", t.Gradient.End)
	writeDecl(&b, "--theme-button", t.Button)
	writeDecl(&b, "--theme-accent", t.Accent)
	writeDecl(&b, "--theme-text", t.Text)
	writeDecl(&b, "--theme-muted-text", t.MutedText)
	writeDecl(&b, "--theme-highlight", t.Highlight)
	writeDecl(&b, "--theme-border", t.Border)
	b.WriteString("}\n")

	return b.String()
}

// GradientClass is the utility class name for a theme's gradient.
func GradientClass(id model.ThemeID) string {
	return string(id) + "-gradient"
}

func writeDecl(b *strings.Builder, prop, value string) {
	b.WriteString("  ")
	b.WriteString(prop)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString(";\n")
}

// ParseRules splits CSS into its top-level selector blocks. Comments are
// skipped.
func ParseRules(css string) []Rule {
	var rules []Rule
	pos := 0
	for pos < len(css) {
		pos = skipComments(css, pos)
		open := strings.Index(css[pos:], "{")
		if open == -1 {
			break
		}
		open += pos
		end := findBlockEnd(css, open)
		selector := strings.TrimSpace(css[pos:open])
		body := ""
		if end-1 > open {
			body = strings.TrimSpace(css[open+1 : end-1])
		}
		if selector != "" {
			rules = append(rules, Rule{Selector: selector, Body: body})
		}
		pos = end
	}
	return rules
}

// Declarations returns the property/value pairs of a rule body in order.
func (r Rule) Declarations() [][2]string {
	var decls [][2]string
	for _, part := range strings.Split(r.Body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		decls = append(decls, [2]string{strings.TrimSpace(prop), strings.TrimSpace(value)})
	}
	return decls
}

func skipComments(css string, pos int) int {
	for {
		for pos < len(css) && (css[pos] == ' ' || css[pos] == '\n' || css[pos] == '\r' || css[pos] == '\t') {
			pos++
		}
		if !strings.HasPrefix(css[pos:], "/*") {
			return pos
		}
		end := strings.Index(css[pos:], "*/")
		if end == -1 {
			return len(css)
		}
		pos += end + 2
	}
}

// findBlockEnd returns the position just past the brace matching the first
// '{' at or after startPos.
func findBlockEnd(content string, startPos int) int {
	if startPos >= len(content) {
		return len(content)
	}

	openBrace := strings.Index(content[startPos:], "{")
	if openBrace == -1 {
		return len(content)
	}
	openBrace += startPos

	depth := 1
	pos := openBrace + 1
	for pos < len(content) && depth > 0 {
		switch content[pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		pos++
	}

	return pos
}
