package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/issues"
)

// choice is one selectable option in a picker or filter modal.
type choice struct {
	ID    string
	Label string
	Color string
}

// dimensionChoices lists the options of a filter dimension for the team.
func dimensionChoices(d board.Dimension, tc *issues.TeamContext) []choice {
	var out []choice
	switch d {
	case board.DimPriority:
		for _, p := range issues.AllPriorities {
			out = append(out, choice{ID: fmt.Sprintf("%d", int(p)), Label: p.String(), Color: issues.PriorityColor(p)})
		}
		return out
	case board.DimAssignee:
		out = append(out, choice{ID: board.Unassigned, Label: "Unassigned"})
	}
	if tc == nil {
		return out
	}
	switch d {
	case board.DimState:
		for _, s := range tc.States {
			out = append(out, choice{ID: s.ID, Label: s.Name, Color: issues.StatusColor(s.Name)})
		}
	case board.DimLabel:
		for _, l := range tc.Labels {
			out = append(out, choice{ID: l.ID, Label: l.Name, Color: l.Color})
		}
	case board.DimAssignee:
		for _, m := range tc.Members {
			out = append(out, choice{ID: m.ID, Label: memberLabel(m)})
		}
	}
	return out
}

func memberLabel(m issues.Member) string {
	name := m.Name
	if m.DisplayName != "" && m.DisplayName != m.Name {
		name = fmt.Sprintf("%s (%s)", m.Name, m.DisplayName)
	}
	if m.IsMe {
		name += " (me)"
	}
	return name
}

// choiceLabels maps selected ids back to labels, keeping unknown ids as-is.
func choiceLabels(ids []string, choices []choice) []string {
	byID := make(map[string]string, len(choices))
	for _, c := range choices {
		byID[c.ID] = c.Label
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			out = append(out, l)
			continue
		}
		out = append(out, id)
	}
	return out
}

// filterSummary renders the active filter dimensions as a short line.
func filterSummary(f board.Filter, tc *issues.TeamContext) string {
	var parts []string
	for _, d := range []board.Dimension{board.DimState, board.DimPriority, board.DimLabel, board.DimAssignee} {
		values := f.Values(d)
		if len(values) == 0 {
			continue
		}
		labels := choiceLabels(values, dimensionChoices(d, tc))
		parts = append(parts, fmt.Sprintf("%s: %s", d, strings.Join(labels, ", ")))
	}
	if f.MineOnly {
		parts = append(parts, "mine")
	}
	return strings.Join(parts, " | ")
}

// editMarker marks rows with an in-flight or rolled back edit.
func editMarker(snap board.Snapshot, issueID string) string {
	if snap.AnyBusy(issueID) {
		return "[yellow]…[-]"
	}
	for k, st := range snap.Edits {
		if k.IssueID == issueID && st == board.RolledBack {
			return "[red]![-]"
		}
	}
	return " "
}

func priorityTag(p issues.Priority) string {
	return fmt.Sprintf("[%s]%s[-]", issues.PriorityColor(p), p)
}

func stateTag(name string) string {
	if name == "" {
		return "[gray]-[-]"
	}
	return fmt.Sprintf("[%s]%s[-]", issues.StatusColor(name), tview.Escape(name))
}

func labelNames(labels []issues.Label) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Name == "" {
			continue
		}
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}

// issueRowCells returns the table cells of one issue row.
func issueRowCells(rec issues.Record, snap board.Snapshot) []string {
	assignee := rec.AssigneeName
	if assignee == "" {
		assignee = "[gray]unassigned[-]"
	} else {
		assignee = tview.Escape(assignee)
	}
	return []string{
		editMarker(snap, rec.ID),
		tview.Escape(rec.Identifier),
		tview.Escape(rec.Title),
		stateTag(rec.StateName),
		priorityTag(rec.Priority),
		assignee,
		tview.Escape(labelNames(rec.Labels)),
	}
}

var issueColumns = []string{"", "ID", "Title", "Status", "Priority", "Assignee", "Labels"}

// errorLine renders the current error with a retry hint when it is transient.
func errorLine(e *issues.Error) string {
	if e == nil {
		return ""
	}
	text := fmt.Sprintf("[red]%s[-]", tview.Escape(e.UserMessage()))
	if e.Retryable() {
		if e.RetryAfter > 0 {
			text += fmt.Sprintf(" [gray](retry in %s, r: refresh)[-]", e.RetryAfter.Round(time.Second))
		} else {
			text += " [gray](r: retry)[-]"
		}
	}
	return text
}

// statusLine builds the status bar from a snapshot and an optional flash
// message.
func statusLine(snap board.Snapshot, flash string) string {
	parts := []string{"[gray]:: palette | Tab: pane | Esc: dismiss | q: quit[-]"}
	switch {
	case snap.Loading:
		parts = append(parts, "[yellow]Loading…[-]")
	case len(snap.Visible) == 0:
		parts = append(parts, fmt.Sprintf("[gray]No issues (%d total)[-]", snap.Total))
	default:
		parts = append(parts, fmt.Sprintf("[aqua]%d of %d issues[-]", len(snap.Visible), snap.Total))
	}
	if s := filterSummary(snap.Filter, snap.Team); s != "" {
		parts = append(parts, "[yellow]"+tview.Escape(s)+"[-]")
	}
	if flash != "" {
		parts = append(parts, "[orange]"+tview.Escape(flash)+"[-]")
	}
	if e := errorLine(snap.Error); e != "" {
		parts = append(parts, e)
	}
	return strings.Join(parts, " | ")
}

// detailsHeader renders the metadata block above the description.
func detailsHeader(rec issues.Record, snap board.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]%s[::-] %s\n\n", tview.Escape(rec.Identifier), tview.Escape(rec.Title))
	row := func(label, value string, f issues.Field) {
		suffix := ""
		switch snap.Status(rec.ID, f) {
		case board.Pending:
			suffix = " [yellow](saving…)[-]"
		case board.RolledBack:
			suffix = " [red](reverted)[-]"
		}
		fmt.Fprintf(&b, "[gray]%-9s[-] %s%s\n", label, value, suffix)
	}
	row("Status", stateTag(rec.StateName), issues.FieldState)
	row("Priority", priorityTag(rec.Priority), issues.FieldPriority)
	assignee := rec.AssigneeName
	if assignee == "" {
		assignee = "unassigned"
	}
	row("Assignee", tview.Escape(assignee), issues.FieldAssignee)
	labels := labelNames(rec.Labels)
	if labels == "" {
		labels = "none"
	}
	row("Labels", tview.Escape(labels), issues.FieldLabels)
	if !rec.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "[gray]%-9s[-] %s\n", "Updated", rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	if rec.URL != "" {
		fmt.Fprintf(&b, "[gray]%-9s[-] %s\n", "URL", tview.Escape(rec.URL))
	}
	if snap.Status(rec.ID, issues.FieldContent) == board.Pending {
		b.WriteString("[yellow]Saving title and description…[-]\n")
	}
	return b.String()
}

func commentAuthor(c issues.Comment) string {
	if c.User == nil || c.User.Name == "" {
		return "Unknown"
	}
	return c.User.Name
}

// commentsText renders comments oldest first, each body through md.
func commentsText(comments []issues.Comment, md *markdownRenderer, width int) string {
	if len(comments) == 0 {
		return "[gray]No comments[-]"
	}
	var b strings.Builder
	for i, c := range comments {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[::b]%s[::-] [gray]%s[-]\n", tview.Escape(commentAuthor(c)), c.CreatedAt.Local().Format("2006-01-02 15:04"))
		b.WriteString(md.Render(c.Body, width))
	}
	return b.String()
}
