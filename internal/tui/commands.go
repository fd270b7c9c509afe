package tui

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/issues"
	"github.com/roeyazroel/linear-board/internal/logger"
)

// FormatShortcut returns a human-readable string for a shortcut.
func FormatShortcut(r rune) string {
	if r == 0 {
		return ""
	}
	return strings.ToUpper(string(r))
}

// Command represents a command that can be executed from the palette.
type Command struct {
	ID              string
	Title           string
	Keywords        []string
	ShortcutRune    rune   // The rune for the keyboard shortcut (e.g., 'r' for refresh)
	ShortcutDisplay string // Custom display text for shortcut, overrides ShortcutRune display
	Run             func(a *App)
}

// Shortcut returns the display text of the command's shortcut.
func (c Command) Shortcut() string {
	if c.ShortcutDisplay != "" {
		return c.ShortcutDisplay
	}
	return FormatShortcut(c.ShortcutRune)
}

// DefaultCommands returns the commands available in the palette.
func DefaultCommands() []Command {
	return []Command{
		{
			ID:           "refresh",
			Title:        "Refresh issues",
			Keywords:     []string{"refresh", "reload", "retry"},
			ShortcutRune: 'r',
			Run: func(a *App) {
				a.refresh()
			},
		},
		{
			ID:           "create_issue",
			Title:        "Create issue",
			Keywords:     []string{"new", "create", "add", "issue"},
			ShortcutRune: 'n',
			Run: func(a *App) {
				a.ShowCreateIssueModal()
			},
		},
		{
			ID:           "edit_issue",
			Title:        "Edit title and description",
			Keywords:     []string{"edit", "title", "description", "rename"},
			ShortcutRune: 'e',
			Run: func(a *App) {
				a.ShowEditIssueModal()
			},
		},
		{
			ID:           "set_state",
			Title:        "Set status",
			Keywords:     []string{"status", "state", "move", "workflow"},
			ShortcutRune: 's',
			Run: func(a *App) {
				a.withSelected(func(rec issues.Record) {
					a.ShowPicker("Status", dimensionChoices(board.DimState, a.Team()), rec.StateID, func(id string) {
						a.run("set state", func(ctx context.Context) error {
							return a.board.SetState(ctx, rec.ID, id)
						})
					})
				})
			},
		},
		{
			ID:           "set_priority",
			Title:        "Set priority",
			Keywords:     []string{"priority", "urgent", "high", "low"},
			ShortcutRune: 'p',
			Run: func(a *App) {
				a.withSelected(func(rec issues.Record) {
					current := strconv.Itoa(int(rec.Priority))
					a.ShowPicker("Priority", dimensionChoices(board.DimPriority, nil), current, func(id string) {
						p, ok := issues.ParsePriority(id)
						if !ok {
							return
						}
						a.run("set priority", func(ctx context.Context) error {
							return a.board.SetPriority(ctx, rec.ID, p)
						})
					})
				})
			},
		},
		{
			ID:           "toggle_label",
			Title:        "Toggle label",
			Keywords:     []string{"label", "labels", "tag"},
			ShortcutRune: 'l',
			Run: func(a *App) {
				a.withSelected(func(rec issues.Record) {
					choices := dimensionChoices(board.DimLabel, a.Team())
					for i := range choices {
						if rec.HasLabel(choices[i].ID) {
							choices[i].Label = "✓ " + choices[i].Label
						}
					}
					a.ShowPicker("Toggle label", choices, "", func(id string) {
						a.run("toggle label", func(ctx context.Context) error {
							return a.board.ToggleLabel(ctx, rec.ID, id)
						})
					})
				})
			},
		},
		{
			ID:           "set_assignee",
			Title:        "Assign",
			Keywords:     []string{"assign", "assignee", "owner", "unassign"},
			ShortcutRune: 'a',
			Run: func(a *App) {
				a.withSelected(func(rec issues.Record) {
					current := rec.AssigneeID
					if current == "" {
						current = board.Unassigned
					}
					a.ShowPicker("Assignee", dimensionChoices(board.DimAssignee, a.Team()), current, func(id string) {
						if id == board.Unassigned {
							id = ""
						}
						a.run("set assignee", func(ctx context.Context) error {
							return a.board.SetAssignee(ctx, rec.ID, id)
						})
					})
				})
			},
		},
		{
			ID:           "add_comment",
			Title:        "Add comment",
			Keywords:     []string{"comment", "reply", "note"},
			ShortcutRune: 'c',
			Run: func(a *App) {
				a.ShowCommentModal()
			},
		},
		{
			ID:           "filter",
			Title:        "Filter issues",
			Keywords:     []string{"filter", "status", "priority", "label", "assignee"},
			ShortcutRune: 'f',
			Run: func(a *App) {
				a.ShowFilterMenu()
			},
		},
		{
			ID:           "toggle_mine",
			Title:        "Toggle my issues",
			Keywords:     []string{"mine", "my", "author"},
			ShortcutRune: 'm',
			Run: func(a *App) {
				a.board.SetMineOnly(!a.board.Snapshot().Filter.MineOnly)
			},
		},
		{
			ID:           "clear_filters",
			Title:        "Clear filters",
			Keywords:     []string{"clear", "reset", "filter"},
			ShortcutRune: 'x',
			Run: func(a *App) {
				a.board.ClearFilters()
			},
		},
		{
			ID:           "open_browser",
			Title:        "Open issue in browser",
			Keywords:     []string{"open", "browser", "web", "url"},
			ShortcutRune: 'o',
			Run: func(a *App) {
				a.withSelected(func(rec issues.Record) {
					if rec.URL == "" {
						a.setFlash("Issue has no URL")
						return
					}
					if err := a.openURL(rec.URL); err != nil {
						a.setFlash("Could not open browser")
					}
				})
			},
		},
		{
			ID:           "copy_id",
			Title:        "Copy issue identifier",
			Keywords:     []string{"copy", "yank", "id", "identifier"},
			ShortcutRune: 'y',
			Run: func(a *App) {
				a.withSelected(func(rec issues.Record) {
					if err := a.copyText(rec.Identifier); err != nil {
						a.setFlash("Could not copy to clipboard")
						return
					}
					a.setFlash("Copied " + rec.Identifier)
				})
			},
		},
		{
			ID:              "dismiss",
			Title:           "Dismiss error",
			Keywords:        []string{"dismiss", "error", "clear"},
			ShortcutDisplay: "Esc",
			Run: func(a *App) {
				a.dismiss()
			},
		},
		{
			ID:           "quit",
			Title:        "Quit",
			Keywords:     []string{"quit", "exit"},
			ShortcutRune: 'q',
			Run: func(a *App) {
				a.Stop()
			},
		},
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		logger.Warning("tui.commands: unsupported OS for opening URLs os=%s", runtime.GOOS)
		return nil
	}

	if err := cmd.Start(); err != nil {
		logger.ErrorWithErr(err, "tui.commands: failed to open URL url=%s", url)
		return err
	}

	logger.Debug("tui.commands: opened URL in browser url=%s", url)
	return nil
}

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		cmd = exec.Command("xclip", "-selection", "clipboard")
	case "windows":
		cmd = exec.Command("clip")
	default:
		logger.Warning("tui.commands: unsupported OS for clipboard operations os=%s", runtime.GOOS)
		return nil
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		logger.ErrorWithErr(err, "tui.commands: failed to get stdin pipe for clipboard command")
		return err
	}
	if err := cmd.Start(); err != nil {
		logger.ErrorWithErr(err, "tui.commands: failed to start clipboard command")
		return err
	}
	if _, err := stdin.Write([]byte(text)); err != nil {
		logger.ErrorWithErr(err, "tui.commands: failed to write to clipboard")
		return err
	}
	if err := stdin.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}
