package tui

import (
	"sort"
	"strings"
)

// PaletteController holds command palette state independent of any widget.
type PaletteController struct {
	commands []Command
	query    string
	filtered []Command
	cursor   int
}

// NewPaletteController returns a controller listing all commands.
func NewPaletteController(commands []Command) *PaletteController {
	p := &PaletteController{commands: commands}
	p.Reset()
	return p
}

// Reset clears the query and cursor.
func (p *PaletteController) Reset() {
	p.query = ""
	p.cursor = 0
	p.filter()
}

// Query returns the current query.
func (p *PaletteController) Query() string { return p.query }

// SetQuery replaces the query and refilters.
func (p *PaletteController) SetQuery(q string) {
	p.query = q
	p.cursor = 0
	p.filter()
}

// Filtered returns the commands matching the query, best match first.
func (p *PaletteController) Filtered() []Command { return p.filtered }

// Cursor returns the index of the highlighted command.
func (p *PaletteController) Cursor() int { return p.cursor }

func (p *PaletteController) MoveCursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *PaletteController) MoveCursorDown() {
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

// Selected returns the highlighted command.
func (p *PaletteController) Selected() (Command, bool) {
	if p.cursor < 0 || p.cursor >= len(p.filtered) {
		return Command{}, false
	}
	return p.filtered[p.cursor], true
}

// Shortcut returns the command bound to r.
func (p *PaletteController) Shortcut(r rune) (Command, bool) {
	for _, cmd := range p.commands {
		if cmd.ShortcutRune != 0 && cmd.ShortcutRune == r {
			return cmd, true
		}
	}
	return Command{}, false
}

func (p *PaletteController) filter() {
	q := strings.ToLower(strings.TrimSpace(p.query))
	if q == "" {
		p.filtered = append([]Command(nil), p.commands...)
		return
	}
	type scored struct {
		cmd   Command
		score int
	}
	var matches []scored
	for _, cmd := range p.commands {
		if s := matchScore(cmd, q); s > 0 {
			matches = append(matches, scored{cmd, s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	p.filtered = make([]Command, 0, len(matches))
	for _, m := range matches {
		p.filtered = append(p.filtered, m.cmd)
	}
}

// matchScore ranks title prefixes over title substrings over keyword hits.
func matchScore(cmd Command, q string) int {
	title := strings.ToLower(cmd.Title)
	switch {
	case strings.HasPrefix(title, q):
		return 3
	case strings.Contains(title, q):
		return 2
	}
	for _, k := range cmd.Keywords {
		if strings.HasPrefix(strings.ToLower(k), q) {
			return 1
		}
	}
	return 0
}
