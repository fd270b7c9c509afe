package tui

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/config"
	"github.com/roeyazroel/linear-board/internal/issues"
	"github.com/roeyazroel/linear-board/internal/logger"
)

// Board is the view-state the renderer reads and the intents it forwards.
// *board.Controller implements it.
type Board interface {
	Snapshot() board.Snapshot
	Subscribe(fn func()) func()
	Refresh(ctx context.Context) error
	SetFilter(d board.Dimension, values []string) error
	SetMineOnly(on bool)
	ClearFilters()
	ClearError()
	CreateIssue(ctx context.Context, in issues.CreateInput) (issues.Record, error)
	SetState(ctx context.Context, issueID, stateID string) error
	SetPriority(ctx context.Context, issueID string, p issues.Priority) error
	SetAssignee(ctx context.Context, issueID, assigneeID string) error
	EditContent(ctx context.Context, issueID, title, description string) error
	ToggleLabel(ctx context.Context, issueID, labelID string) error
	AddComment(ctx context.Context, issueID, body string) (issues.Comment, error)
}

// FocusTarget indicates which pane has focus.
type FocusTarget int

const (
	FocusIssues FocusTarget = iota
	FocusDetails
	FocusPalette
)

// App is the main application controller that manages all UI components.
// It holds no issue state of its own beyond the last rendered snapshot.
type App struct {
	app    *tview.Application
	board  Board
	config config.Config
	md     *markdownRenderer

	// UI components
	pages                  *tview.Pages
	mainLayout             *tview.Flex
	issuesTable            *tview.Table
	detailsView            *tview.Flex
	detailsDescriptionView *tview.TextView
	detailsCommentsView    *tview.TextView
	statusBar              *tview.TextView
	paletteModal           *tview.Flex
	paletteInput           *tview.InputField
	paletteList            *tview.List
	paletteCtrl            *PaletteController

	// Render state (protected by mu)
	mu          sync.Mutex
	snap        board.Snapshot
	selectedID  string
	flash       string
	focusedPane FocusTarget

	unsubscribe func()

	// Overridable in tests
	queueUpdateDraw func(func())
	spawn           func(func())
	openURL         func(string) error
	copyText        func(string) error

	// UI update mutex (for test safety when queueUpdateDraw executes immediately)
	uiUpdateMu sync.Mutex
}

// NewApp builds the UI over b.
func NewApp(b Board, cfg config.Config) *App {
	a := &App{
		app:         tview.NewApplication(),
		board:       b,
		config:      cfg,
		md:          newMarkdownRenderer(cfg.MarkdownStyle),
		pages:       tview.NewPages(),
		focusedPane: FocusIssues,
		openURL:     openURL,
		copyText:    copyToClipboard,
		spawn:       func(f func()) { go f() },
	}
	a.paletteCtrl = NewPaletteController(DefaultCommands())
	// QueueUpdateDraw blocks until the event loop runs f, and board intents
	// notify from the event goroutine itself.
	a.queueUpdateDraw = func(f func()) {
		go a.app.QueueUpdateDraw(f)
	}

	a.buildLayout()
	a.bindGlobalKeys()
	a.render()
	return a
}

// Run starts the application and blocks until it exits.
func (a *App) Run() error {
	a.app.SetRoot(a.pages, true).EnableMouse(true)
	a.unsubscribe = a.board.Subscribe(func() {
		a.QueueUpdateDraw(a.render)
	})
	defer a.unsubscribe()

	a.refresh()
	return a.app.Run()
}

// Stop ends the event loop.
func (a *App) Stop() {
	a.app.Stop()
}

// QueueUpdateDraw queues a UI update function to be run in the main thread.
func (a *App) QueueUpdateDraw(f func()) {
	if a.queueUpdateDraw != nil {
		a.uiUpdateMu.Lock()
		defer a.uiUpdateMu.Unlock()
		a.queueUpdateDraw(f)
		return
	}
	go a.app.QueueUpdateDraw(f)
}

func (a *App) buildLayout() {
	a.issuesTable = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.issuesTable.SetBorder(true).SetTitle(" Issues ")
	a.issuesTable.SetSelectionChangedFunc(func(row, _ int) {
		a.onRowSelected(row)
	})

	a.detailsDescriptionView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetScrollable(true)
	a.detailsDescriptionView.SetBorder(true).SetTitle(" Details ")
	a.detailsCommentsView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetScrollable(true)
	a.detailsCommentsView.SetBorder(true).SetTitle(" Comments ")
	a.detailsView = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.detailsDescriptionView, 0, 3, false).
		AddItem(a.detailsCommentsView, 0, 2, false)

	a.statusBar = tview.NewTextView().SetDynamicColors(true)

	content := tview.NewFlex().
		AddItem(a.issuesTable, 0, 3, true).
		AddItem(a.detailsView, 0, 2, false)
	a.mainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false)

	a.paletteModal = a.buildPaletteModal()

	a.pages.AddPage("main", a.mainLayout, true, true)
	a.pages.AddPage("palette", a.paletteModal, true, false)
	a.updateFocus()
}

func (a *App) buildPaletteModal() *tview.Flex {
	a.paletteInput = tview.NewInputField().SetLabel("> ")
	a.paletteList = tview.NewList().ShowSecondaryText(false)
	box := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.paletteInput, 1, 0, true).
		AddItem(a.paletteList, 0, 1, false)
	box.SetBorder(true).SetTitle(" Commands ")
	return center(box, 60, 18)
}

// bindGlobalKeys sets up global keyboard shortcuts.
func (a *App) bindGlobalKeys() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if name, _ := a.pages.GetFrontPage(); name != "main" && name != "palette" {
			// Modals handle their own keys.
			return event
		}
		if a.focusedPane == FocusPalette {
			return a.handlePaletteKey(event)
		}

		switch event.Key() {
		case tcell.KeyCtrlC:
			a.app.Stop()
			return nil
		case tcell.KeyEscape:
			a.dismiss()
			return nil
		case tcell.KeyTab, tcell.KeyBacktab:
			if a.focusedPane == FocusIssues {
				a.focusedPane = FocusDetails
			} else {
				a.focusedPane = FocusIssues
			}
			a.updateFocus()
			return nil
		case tcell.KeyRune:
			if event.Rune() == ':' {
				a.openPalette()
				return nil
			}
			if a.focusedPane == FocusIssues {
				if cmd, ok := a.paletteCtrl.Shortcut(event.Rune()); ok {
					cmd.Run(a)
					return nil
				}
			}
		}
		return event
	})
}

func (a *App) handlePaletteKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		a.closePalette()
		return nil
	case tcell.KeyEnter:
		if cmd, ok := a.paletteCtrl.Selected(); ok {
			a.closePalette()
			cmd.Run(a)
		}
		return nil
	case tcell.KeyUp:
		a.paletteCtrl.MoveCursorUp()
		a.updatePaletteList()
		return nil
	case tcell.KeyDown:
		a.paletteCtrl.MoveCursorDown()
		a.updatePaletteList()
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		q := []rune(a.paletteCtrl.Query())
		if len(q) > 0 {
			a.paletteCtrl.SetQuery(string(q[:len(q)-1]))
			a.paletteInput.SetText(a.paletteCtrl.Query())
			a.updatePaletteList()
		}
		return nil
	case tcell.KeyRune:
		a.paletteCtrl.SetQuery(a.paletteCtrl.Query() + string(event.Rune()))
		a.paletteInput.SetText(a.paletteCtrl.Query())
		a.updatePaletteList()
		return nil
	}
	return event
}

func (a *App) openPalette() {
	a.paletteCtrl.Reset()
	a.paletteInput.SetText("")
	a.updatePaletteList()
	a.pages.ShowPage("palette")
	a.pages.SendToFront("palette")
	a.focusedPane = FocusPalette
	a.updateFocus()
}

func (a *App) closePalette() {
	a.pages.HidePage("palette")
	a.focusedPane = FocusIssues
	a.updateFocus()
}

func (a *App) updatePaletteList() {
	a.paletteList.Clear()
	for _, cmd := range a.paletteCtrl.Filtered() {
		title := cmd.Title
		if s := cmd.Shortcut(); s != "" {
			title += "  [gray]" + s + "[-]"
		}
		a.paletteList.AddItem(title, "", 0, nil)
	}
	if a.paletteList.GetItemCount() > 0 {
		a.paletteList.SetCurrentItem(a.paletteCtrl.Cursor())
	}
}

func (a *App) updateFocus() {
	switch a.focusedPane {
	case FocusPalette:
		a.app.SetFocus(a.paletteInput)
	case FocusDetails:
		a.app.SetFocus(a.detailsDescriptionView)
	default:
		a.app.SetFocus(a.issuesTable)
	}
}

// dismiss clears the flash message and the current error.
func (a *App) dismiss() {
	a.mu.Lock()
	a.flash = ""
	a.mu.Unlock()
	a.board.ClearError()
	a.render()
}

// render redraws every pane from a fresh snapshot. Must run on the UI
// goroutine.
func (a *App) render() {
	snap := a.board.Snapshot()

	a.mu.Lock()
	a.snap = snap
	selected := a.selectedID
	flash := a.flash
	a.mu.Unlock()

	a.renderTable(snap, selected)
	a.renderDetails()
	a.statusBar.SetText(statusLine(snap, flash))
}

func (a *App) renderTable(snap board.Snapshot, selectedID string) {
	a.issuesTable.Clear()
	for col, name := range issueColumns {
		a.issuesTable.SetCell(0, col, tview.NewTableCell(name).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
	row := 1
	for i, rec := range snap.Visible {
		for col, text := range issueRowCells(rec, snap) {
			cell := tview.NewTableCell(text).SetReference(rec.ID)
			if col == 2 {
				cell.SetExpansion(1)
			}
			a.issuesTable.SetCell(i+1, col, cell)
		}
		if rec.ID == selectedID {
			row = i + 1
		}
	}
	if len(snap.Visible) == 0 {
		a.mu.Lock()
		a.selectedID = ""
		a.mu.Unlock()
		return
	}
	// Selecting a row fires onRowSelected, which records the selection.
	a.issuesTable.Select(row, 0)
}

func (a *App) onRowSelected(row int) {
	cell := a.issuesTable.GetCell(row, 1)
	id, _ := cell.GetReference().(string)
	a.mu.Lock()
	changed := id != a.selectedID
	a.selectedID = id
	a.mu.Unlock()
	if changed {
		a.renderDetails()
	}
}

func (a *App) renderDetails() {
	rec, ok := a.SelectedIssue()
	if !ok {
		a.detailsDescriptionView.SetText("[gray]No issue selected[-]")
		a.detailsCommentsView.SetText("")
		return
	}
	a.mu.Lock()
	snap := a.snap
	a.mu.Unlock()

	_, _, width, _ := a.detailsDescriptionView.GetInnerRect()
	if width <= 0 {
		width = 80
	}
	text := detailsHeader(rec, snap)
	if desc := a.md.Render(rec.Description, width); desc != "" {
		text += "\n" + desc
	} else {
		text += "\n[gray]No description[-]"
	}
	a.detailsDescriptionView.SetText(text).ScrollToBeginning()

	comments := commentsText(rec.Comments, a.md, width)
	if snap.Busy(rec.ID, issues.FieldComments) {
		comments += "\n\n[yellow]Posting comment…[-]"
	}
	a.detailsCommentsView.SetTitle(" Comments ")
	if n := len(rec.Comments); n > 0 {
		a.detailsCommentsView.SetTitle(" Comments (" + strconv.Itoa(n) + ") ")
	}
	a.detailsCommentsView.SetText(comments).ScrollToEnd()
}

// SelectedIssue returns the issue under the cursor in the last rendered
// snapshot.
func (a *App) SelectedIssue() (issues.Record, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.selectedID == "" {
		return issues.Record{}, false
	}
	return a.snap.Find(a.selectedID)
}

// Team returns the team context of the last rendered snapshot.
func (a *App) Team() *issues.TeamContext {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap.Team
}

func (a *App) setFlash(msg string) {
	a.mu.Lock()
	a.flash = msg
	a.mu.Unlock()
	a.QueueUpdateDraw(a.render)
}

func (a *App) refresh() {
	a.run("refresh", func(ctx context.Context) error {
		return a.board.Refresh(ctx)
	})
}

// run executes an intent off the UI goroutine. Errors other than a busy
// field are surfaced by the board itself through the snapshot.
func (a *App) run(op string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	a.flash = ""
	a.mu.Unlock()
	a.spawn(func() {
		err := fn(context.Background())
		switch {
		case err == nil:
		case errors.Is(err, board.ErrFieldBusy):
			a.setFlash("Another change to this field is still saving")
		case errors.Is(err, board.ErrClosed):
		default:
			logger.Debug("tui.app: intent failed op=%s error=%v", op, err)
		}
	})
}

// withSelected runs fn for the selected issue or flashes a hint.
func (a *App) withSelected(fn func(rec issues.Record)) {
	rec, ok := a.SelectedIssue()
	if !ok {
		a.setFlash("No issue selected")
		return
	}
	fn(rec)
}
