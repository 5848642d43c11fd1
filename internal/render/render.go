// Package render writes parsed pages as styled terminal text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/raphi011/tldr/internal/config"
	"github.com/raphi011/tldr/internal/page"
)

// namedColors maps config color names to ANSI palette indices.
var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright-black":   "8",
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
}

// color resolves a config color value to a lipgloss color.
// Named colors map to the ANSI palette; anything else (hex values,
// numeric indices) is passed through.
func color(name string) lipgloss.Color {
	if idx, ok := namedColors[name]; ok {
		return lipgloss.Color(idx)
	}
	return lipgloss.Color(name)
}

// styleFor builds a lipgloss style from a config line style.
func styleFor(ls config.LineStyle) lipgloss.Style {
	s := lipgloss.NewStyle()
	if ls.Foreground != "" {
		s = s.Foreground(color(ls.Foreground))
	}
	if ls.Background != "" {
		s = s.Background(color(ls.Background))
	}
	return s.Bold(ls.Bold).Underline(ls.Underline).Italic(ls.Italic)
}

// Renderer writes pages to a stream using a resolved style config.
// Output is deterministic for a fixed (page, config, color profile).
type Renderer struct {
	w       io.Writer
	compact bool

	title    lipgloss.Style
	desc     lipgloss.Style
	text     lipgloss.Style
	code     lipgloss.Style
	variable lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// Compact drops the blank separator lines between sections.
func Compact() Option {
	return func(r *Renderer) { r.compact = true }
}

// New creates a Renderer writing to w with styles resolved from cfg.
func New(w io.Writer, cfg config.Config, opts ...Option) *Renderer {
	r := &Renderer{
		w:        w,
		compact:  cfg.Display.Compact,
		title:    styleFor(cfg.Style.Title),
		desc:     styleFor(cfg.Style.Description),
		text:     styleFor(cfg.Style.ExampleText),
		code:     styleFor(cfg.Style.ExampleCode),
		variable: styleFor(cfg.Style.ExampleVariable),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the parsed page. Command lines are indented; blank
// lines separate sections unless compact mode is on.
func (r *Renderer) Render(lines []page.Line) {
	for _, l := range lines {
		switch l.Kind {
		case page.Title:
			r.blank()
			fmt.Fprintln(r.w, r.title.Render(l.Text))
		case page.Description:
			fmt.Fprintln(r.w, r.desc.Render(l.Text))
		case page.ExampleText:
			r.blank()
			fmt.Fprintln(r.w, r.text.Render(l.Text))
		case page.ExampleCode:
			fmt.Fprintln(r.w, "    "+r.renderCommand(l.Text))
		}
	}
	r.blank()
}

// Raw writes page text verbatim, without parsing or styling.
func (r *Renderer) Raw(text string) {
	io.WriteString(r.w, text)
}

func (r *Renderer) blank() {
	if !r.compact {
		fmt.Fprintln(r.w)
	}
}

// renderCommand styles a command line, giving {{placeholder}} spans the
// variable sub-style. The braces themselves are stripped.
func (r *Renderer) renderCommand(text string) string {
	var b strings.Builder
	rest := text
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			break
		}
		end += open
		if open > 0 {
			b.WriteString(r.code.Render(rest[:open]))
		}
		b.WriteString(r.variable.Render(rest[open+2 : end]))
		rest = rest[end+2:]
	}
	if rest != "" {
		b.WriteString(r.code.Render(rest))
	}
	return b.String()
}
