// Package markdown turns answer text into terminal output. It is the only
// place that sanitizes model output; callers pass text through unchanged.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

const defaultWidth = 76

// Renderer maps markdown to displayable terminal text.
type Renderer interface {
	Render(markdown string) (string, error)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(markdown string) (string, error)

func (f RenderFunc) Render(markdown string) (string, error) {
	return f(markdown)
}

// Options configures a TermRenderer.
type Options struct {
	// Style is a glamour standard style name ("dark", "light", "notty", ...)
	// or "auto" to detect the terminal background.
	Style string
	Width int
}

// TermRenderer renders with glamour and re-creates itself on resize.
type TermRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// New builds a glamour-backed renderer.
func New(opts Options) (*TermRenderer, error) {
	t := &TermRenderer{style: opts.Style, width: opts.Width}
	if t.width <= 0 {
		t.width = defaultWidth
	}
	if err := t.build(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TermRenderer) build() error {
	styleOpt := glamour.WithAutoStyle()
	if t.style != "" && t.style != "auto" {
		styleOpt = glamour.WithStandardStyle(t.style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(t.width))
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	t.renderer = r
	return nil
}

// Resize changes the wrap width.
func (t *TermRenderer) Resize(width int) error {
	if width <= 0 || width == t.width {
		return nil
	}
	t.width = width
	return t.build()
}

// Render sanitizes the input and renders it.
func (t *TermRenderer) Render(markdown string) (string, error) {
	out, err := t.renderer.Render(Sanitize(markdown))
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// PlainRenderer wraps sanitized text without interpreting markdown. It backs
// the view when glamour cannot be initialized.
type PlainRenderer struct {
	Width int
}

func (p PlainRenderer) Render(markdown string) (string, error) {
	return Plain(markdown, p.Width), nil
}

// Plain returns sanitized text word-wrapped to width.
func Plain(markdown string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return wordwrap.String(Sanitize(markdown), width)
}

var (
	escapeSequence = regexp.MustCompile(`\x1b(\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(\x07|\x1b\\)|[@-Z\\-_])`)
	scriptBlock    = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)>`)
	htmlTag        = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(\s[^<>]*)?/?>`)
	htmlBreak      = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// Sanitize removes terminal escape sequences, control characters and raw HTML
// markup. Text between tags is kept; script and style bodies are dropped.
func Sanitize(text string) string {
	text = escapeSequence.ReplaceAllString(text, "")
	text = scriptBlock.ReplaceAllString(text, "")
	text = htmlBreak.ReplaceAllString(text, "\n")
	text = htmlTag.ReplaceAllString(text, "")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
