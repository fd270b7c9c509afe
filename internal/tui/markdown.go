package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/rivo/tview"
)

// markdownRenderer caches glamour renderers by wrap width. A fixed standard
// style is used instead of auto detection, which can block on terminal
// queries.
type markdownRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[string]*glamour.TermRenderer
}

func newMarkdownRenderer(style string) *markdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &markdownRenderer{style: style, renderers: make(map[string]*glamour.TermRenderer)}
}

// Render returns md as tview-tagged text. It falls back to the escaped
// source when rendering fails.
func (m *markdownRenderer) Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	if m == nil || m.style == "none" {
		return tview.Escape(md)
	}

	key := m.style + ":" + strconv.Itoa(width)
	m.mu.Lock()
	r := m.renderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			m.mu.Unlock()
			return tview.Escape(md)
		}
		m.renderers[key] = rr
		r = rr
	}
	m.mu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return tview.Escape(md)
	}
	return tview.TranslateANSI(strings.TrimRight(out, "\n"))
}
