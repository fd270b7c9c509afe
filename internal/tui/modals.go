package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/issues"
)

const modalPage = "modal"

// center places p in the middle of the screen at the given size.
func center(p tview.Primitive, width, height int) *tview.Flex {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func (a *App) showModal(p tview.Primitive, focus tview.Primitive, width, height int) {
	a.pages.RemovePage(modalPage)
	a.pages.AddPage(modalPage, center(p, width, height), true, true)
	a.app.SetFocus(focus)
}

func (a *App) closeModal() {
	a.pages.RemovePage(modalPage)
	a.updateFocus()
}

// ShowPicker shows a single-choice list. current, when present, starts
// highlighted.
func (a *App) ShowPicker(title string, choices []choice, current string, onSelect func(id string)) {
	if len(choices) == 0 {
		a.setFlash("Nothing to choose from")
		return
	}
	list := tview.NewList().ShowSecondaryText(false)
	list.SetBorder(true).SetTitle(" " + title + " ")
	for i, c := range choices {
		label := tview.Escape(c.Label)
		if c.Color != "" {
			label = "[" + c.Color + "]●[-] " + label
		}
		list.AddItem(label, "", 0, func() {
			a.closeModal()
			onSelect(c.ID)
		})
		if c.ID == current {
			list.SetCurrentItem(i)
		}
	}
	list.SetDoneFunc(a.closeModal)
	height := len(choices) + 2
	if height > 20 {
		height = 20
	}
	a.showModal(list, list, 50, height)
}

// ShowFilterMenu asks for a dimension, then shows its multi-select.
func (a *App) ShowFilterMenu() {
	dims := []choice{
		{ID: board.DimState.String(), Label: "Status"},
		{ID: board.DimPriority.String(), Label: "Priority"},
		{ID: board.DimLabel.String(), Label: "Label"},
		{ID: board.DimAssignee.String(), Label: "Assignee"},
	}
	a.ShowPicker("Filter by", dims, "", func(id string) {
		d, ok := board.ParseDimension(id)
		if !ok {
			return
		}
		a.ShowFilterModal(d)
	})
}

// ShowFilterModal shows a checkbox per option of dimension d.
func (a *App) ShowFilterModal(d board.Dimension) {
	choices := dimensionChoices(d, a.Team())
	if len(choices) == 0 {
		a.setFlash("No " + d.String() + " options loaded yet")
		return
	}
	selected := make(map[string]bool)
	for _, v := range a.board.Snapshot().Filter.Values(d) {
		selected[v] = true
	}

	form := tview.NewForm()
	for _, c := range choices {
		form.AddCheckbox(c.Label, selected[c.ID], func(checked bool) {
			selected[c.ID] = checked
		})
	}
	apply := func(values []string) {
		a.closeModal()
		if err := a.board.SetFilter(d, values); err != nil {
			a.setFlash(err.Error())
		}
	}
	form.AddButton("Apply", func() {
		var values []string
		for _, c := range choices {
			if selected[c.ID] {
				values = append(values, c.ID)
			}
		}
		apply(values)
	})
	form.AddButton("Clear", func() { apply(nil) })
	form.AddButton("Cancel", a.closeModal)
	form.SetCancelFunc(a.closeModal)
	form.SetBorder(true).SetTitle(" Filter: " + d.String() + " ")

	height := len(choices)*2 + 5
	if height > 30 {
		height = 30
	}
	a.showModal(form, form, 50, height)
}

// ShowCreateIssueModal shows the new issue form.
func (a *App) ShowCreateIssueModal() {
	var in issues.CreateInput
	in.Priority = issues.NoPriority

	form := tview.NewForm()
	form.AddInputField("Title", "", 60, nil, func(text string) { in.Title = text })
	form.AddTextArea("Description", "", 60, 8, 0, func(text string) { in.Description = text })

	priorities := dimensionChoices(board.DimPriority, nil)
	form.AddDropDown("Priority", choiceNames(priorities), len(priorities)-1, func(_ string, i int) {
		if i < 0 {
			return
		}
		if p, ok := issues.ParsePriority(priorities[i].ID); ok {
			in.Priority = p
		}
	})
	if tc := a.Team(); tc != nil && len(tc.States) > 0 {
		states := dimensionChoices(board.DimState, tc)
		names := append([]string{"Team default"}, choiceNames(states)...)
		form.AddDropDown("Status", names, 0, func(_ string, i int) {
			in.StateID = ""
			if i > 0 {
				in.StateID = states[i-1].ID
			}
		})
	}

	form.AddButton("Create", func() {
		a.closeModal()
		input := in
		a.run("create issue", func(ctx context.Context) error {
			rec, err := a.board.CreateIssue(ctx, input)
			if err != nil {
				return err
			}
			a.selectIssue(rec.ID)
			return nil
		})
	})
	form.AddButton("Cancel", a.closeModal)
	form.SetCancelFunc(a.closeModal)
	form.SetBorder(true).SetTitle(" New issue ")
	a.showModal(form, form, 80, 20)
}

// ShowEditIssueModal shows the title and description editor for the
// selected issue.
func (a *App) ShowEditIssueModal() {
	a.withSelected(func(rec issues.Record) {
		title, description := rec.Title, rec.Description

		form := tview.NewForm()
		form.AddInputField("Title", title, 60, nil, func(text string) { title = text })
		form.AddTextArea("Description", description, 60, 10, 0, func(text string) { description = text })
		form.AddButton("Save", func() {
			a.closeModal()
			t, d := title, description
			a.run("edit content", func(ctx context.Context) error {
				return a.board.EditContent(ctx, rec.ID, t, d)
			})
		})
		form.AddButton("Cancel", a.closeModal)
		form.SetCancelFunc(a.closeModal)
		form.SetBorder(true).SetTitle(" Edit " + rec.Identifier + " ")
		a.showModal(form, form, 80, 20)
	})
}

// ShowCommentModal shows the comment composer for the selected issue.
func (a *App) ShowCommentModal() {
	a.withSelected(func(rec issues.Record) {
		var body string

		post := func() {
			a.closeModal()
			text := body
			a.run("add comment", func(ctx context.Context) error {
				_, err := a.board.AddComment(ctx, rec.ID, text)
				return err
			})
		}

		form := tview.NewForm()
		form.AddTextArea("Comment", "", 60, 8, 0, func(text string) { body = text })
		form.AddButton("Post", post)
		form.AddButton("Cancel", a.closeModal)
		form.SetCancelFunc(a.closeModal)
		form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			// Ctrl+S posts from inside the text area.
			if event.Key() == tcell.KeyCtrlS {
				post()
				return nil
			}
			return event
		})
		form.SetBorder(true).SetTitle(" Comment on " + rec.Identifier + " ")
		a.showModal(form, form, 80, 16)
	})
}

// selectIssue moves the cursor to id on the next render.
func (a *App) selectIssue(id string) {
	a.mu.Lock()
	a.selectedID = id
	a.mu.Unlock()
	a.QueueUpdateDraw(a.render)
}

func choiceNames(choices []choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}
	return out
}
