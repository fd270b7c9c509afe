// Package board owns the in-memory issue collection, the filter selection and
// the optimistic edit state that renderers read through Snapshot.
package board

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/roeyazroel/linear-board/internal/issues"
	"github.com/roeyazroel/linear-board/internal/logger"
)

var (
	// ErrFieldBusy is returned when an edit of the same issue field is in flight.
	ErrFieldBusy = errors.New("board: field edit already in flight")
	// ErrUnknownIssue is returned for edits of issues the board does not hold.
	ErrUnknownIssue = errors.New("board: unknown issue")
	// ErrClosed is returned by intents issued after Close.
	ErrClosed = errors.New("board: controller closed")
)

// Service is the remote side of the board, implemented by *issues.Adapter.
type Service interface {
	ListTeamContext(ctx context.Context) (issues.TeamContext, error)
	ListIssues(ctx context.Context, tc issues.TeamContext) ([]issues.Record, error)
	CreateIssue(ctx context.Context, tc issues.TeamContext, in issues.CreateInput) (issues.Record, error)
	UpdateIssueField(ctx context.Context, issueID string, u issues.Update) error
	AddComment(ctx context.Context, issueID, body string) (issues.Comment, error)
}

// Options configures business rules layered above the Service.
type Options struct {
	// AuthorTag is the title prefix that marks issues as mine.
	AuthorTag string
	// TagTitles prefixes created titles with AuthorTag.
	TagTitles bool
	// DefaultStates names the states selected by the first successful refresh.
	DefaultStates []string
}

// EditStatus is the state of one (issue, field) edit.
type EditStatus int

const (
	Idle EditStatus = iota
	Pending
	RolledBack
)

func (s EditStatus) String() string {
	switch s {
	case Pending:
		return "pending"
	case RolledBack:
		return "rolled back"
	default:
		return "idle"
	}
}

// EditKey identifies an independently editable field of an issue.
type EditKey struct {
	IssueID string
	Field   issues.Field
}

type editEntry struct {
	status EditStatus
	token  string
	// prior and optimistic hold the field value before and after the edit.
	prior      issues.Record
	optimistic issues.Record
}

// Controller is safe for concurrent use. It never holds its lock across a
// Service call.
type Controller struct {
	svc  Service
	opts Options

	mu                 sync.Mutex
	records            []issues.Record
	index              map[string]int
	filter             Filter
	stateFilterTouched bool
	defaultsApplied    bool
	team               *issues.TeamContext
	edits              map[EditKey]*editEntry
	err                *issues.Error
	errFromRefresh     bool
	loading            bool
	refreshGen         int64
	closed             bool

	// version counts changes to records or filter; the projection is
	// recomputed only when it moves.
	version     uint64
	projVersion uint64
	projection  []issues.Record
	projValid   bool

	subsMu  sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New returns a Controller over svc.
func New(svc Service, opts Options) *Controller {
	return &Controller{
		svc:   svc,
		opts:  opts,
		index: make(map[string]int),
		edits: make(map[EditKey]*editEntry),
		subs:  make(map[int]func()),
	}
}

// Subscribe registers fn to be called after every state change. The returned
// func removes the subscription.
func (c *Controller) Subscribe(fn func()) func() {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

func (c *Controller) notify() {
	c.subsMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Close drops all subscribers. Remote calls that settle afterwards change
// nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.subsMu.Lock()
	c.subs = make(map[int]func())
	c.subsMu.Unlock()
}

// setErrorLocked replaces the current error.
func (c *Controller) setErrorLocked(e *issues.Error, fromRefresh bool) {
	c.err = e
	c.errFromRefresh = fromRefresh
}

// ClearError dismisses the current error.
func (c *Controller) ClearError() {
	c.mu.Lock()
	c.err = nil
	c.errFromRefresh = false
	c.mu.Unlock()
	c.notify()
}

// Refresh loads the team context (once) and the full issue list. A refresh
// that finishes after a newer one started is discarded. Fields with a pending
// edit keep their optimistic value.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.refreshGen++
	gen := c.refreshGen
	c.loading = true
	team := c.team
	c.mu.Unlock()
	c.notify()

	logger.Debug("board: refresh started generation=%d", gen)

	var tc issues.TeamContext
	if team != nil {
		tc = *team
	} else {
		loaded, err := c.svc.ListTeamContext(ctx)
		if err != nil {
			return c.failRefresh(gen, err)
		}
		tc = loaded
	}

	records, err := c.svc.ListIssues(ctx, tc)
	if err != nil {
		return c.failRefresh(gen, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if gen != c.refreshGen {
		c.mu.Unlock()
		logger.Debug("board: discarding stale refresh generation=%d", gen)
		return nil
	}

	c.team = &tc
	c.replaceRecordsLocked(records)
	c.applyDefaultStatesLocked(tc)
	c.loading = false
	if c.errFromRefresh {
		c.setErrorLocked(nil, false)
	}
	count := len(c.records)
	c.mu.Unlock()

	logger.Info("board: refresh complete issues=%d generation=%d", count, gen)
	c.notify()
	return nil
}

func (c *Controller) failRefresh(gen int64, err error) error {
	e := issues.Categorize("refresh", err)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return e
	}
	if gen == c.refreshGen {
		c.loading = false
		c.setErrorLocked(e, true)
	}
	c.mu.Unlock()
	logger.ErrorWithErr(err, "board: refresh failed category=%s", e.Category)
	c.notify()
	return e
}

// replaceRecordsLocked installs fetched records, keeping pending field values
// and dropping rolled-back markers.
func (c *Controller) replaceRecordsLocked(fetched []issues.Record) {
	records := make([]issues.Record, 0, len(fetched))
	index := make(map[string]int, len(fetched))
	for _, r := range fetched {
		if _, dup := index[r.ID]; dup {
			continue
		}
		if i, ok := c.index[r.ID]; ok {
			current := c.records[i]
			for key, entry := range c.edits {
				if key.IssueID == r.ID && entry.status == Pending {
					copyField(&r, current, key.Field)
				}
			}
		}
		index[r.ID] = len(records)
		records = append(records, r)
	}

	for key, entry := range c.edits {
		if entry.status == RolledBack {
			delete(c.edits, key)
		}
	}

	c.records = records
	c.index = index
	c.version++
}

func (c *Controller) applyDefaultStatesLocked(tc issues.TeamContext) {
	if c.defaultsApplied {
		return
	}
	c.defaultsApplied = true
	if c.stateFilterTouched || len(c.opts.DefaultStates) == 0 {
		return
	}
	var ids []string
	for _, name := range c.opts.DefaultStates {
		for _, s := range tc.States {
			if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
				ids = append(ids, s.ID)
			}
		}
	}
	if len(ids) == 0 {
		return
	}
	c.filter.StateIDs = dedupe(ids)
	c.version++
}

// SetFilter replaces the selection of one dimension.
func (c *Controller) SetFilter(d Dimension, values []string) error {
	c.mu.Lock()
	f, err := c.filter.with(d, values)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.filter = f
	if d == DimState {
		c.stateFilterTouched = true
	}
	c.version++
	c.mu.Unlock()
	c.notify()
	return nil
}

// SetMineOnly toggles the author-tag predicate.
func (c *Controller) SetMineOnly(on bool) {
	c.mu.Lock()
	c.filter.MineOnly = on
	c.version++
	c.mu.Unlock()
	c.notify()
}

// ClearFilters empties every dimension.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	c.filter = Filter{}
	c.stateFilterTouched = true
	c.version++
	c.mu.Unlock()
	c.notify()
}

// visibleLocked returns the cached projection, recomputing it when records or
// the filter changed.
func (c *Controller) visibleLocked() []issues.Record {
	if !c.projValid || c.projVersion != c.version {
		c.projection = project(c.records, c.filter, c.opts.AuthorTag)
		c.projVersion = c.version
		c.projValid = true
	}
	return c.projection
}

// Visible returns the filtered, sorted issues.
func (c *Controller) Visible() []issues.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]issues.Record(nil), c.visibleLocked()...)
}

// Snapshot returns a consistent copy of the state renderers display.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Visible: append([]issues.Record(nil), c.visibleLocked()...),
		Total:   len(c.records),
		Filter:  c.filter.clone(),
		Edits:   make(map[EditKey]EditStatus, len(c.edits)),
		Tokens:  make(map[EditKey]string, len(c.edits)),
		Error:   c.err,
		Loading: c.loading,
	}
	for k, e := range c.edits {
		s.Edits[k] = e.status
		s.Tokens[k] = e.token
	}
	if c.team != nil {
		tc := *c.team
		s.Team = &tc
	}
	return s
}

// Issue returns the record with id, visible or not.
func (c *Controller) Issue(id string) (issues.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return issues.Record{}, false
	}
	return c.records[i].Clone(), true
}

// UpdateField optimistically applies u and sends it to the Service. A second
// edit of the same field while the first is in flight returns ErrFieldBusy
// without a remote call.
func (c *Controller) UpdateField(ctx context.Context, issueID string, u issues.Update) error {
	if u.Field == issues.FieldComments {
		return c.reject(&issues.Error{Category: issues.Validation, Op: "update field", Message: "use AddComment for comments"})
	}
	if u.Field == issues.FieldContent {
		title, err := issues.NormalizeTitle(u.Title)
		if err != nil {
			return c.reject(err)
		}
		u.Title = title
	}
	if u.Field == issues.FieldPriority {
		u.Priority = issues.NormalizePriority(int(u.Priority))
	}
	return c.runEdit(ctx, issueID, u.Field, func(issues.Record) (issues.Update, error) {
		return u, nil
	})
}

// SetState moves the issue to another workflow state.
func (c *Controller) SetState(ctx context.Context, issueID, stateID string) error {
	return c.UpdateField(ctx, issueID, issues.Update{Field: issues.FieldState, StateID: stateID})
}

// SetPriority changes the issue priority.
func (c *Controller) SetPriority(ctx context.Context, issueID string, p issues.Priority) error {
	return c.UpdateField(ctx, issueID, issues.Update{Field: issues.FieldPriority, Priority: p})
}

// SetAssignee assigns the issue; an empty id unassigns.
func (c *Controller) SetAssignee(ctx context.Context, issueID, assigneeID string) error {
	return c.UpdateField(ctx, issueID, issues.Update{Field: issues.FieldAssignee, AssigneeID: assigneeID})
}

// EditContent replaces title and description together.
func (c *Controller) EditContent(ctx context.Context, issueID, title, description string) error {
	return c.UpdateField(ctx, issueID, issues.Update{
		Field:       issues.FieldContent,
		Title:       title,
		Description: description,
	})
}

// ToggleLabel adds or removes labelID based on the local optimistic label set
// and sends the complete resulting set.
func (c *Controller) ToggleLabel(ctx context.Context, issueID, labelID string) error {
	return c.runEdit(ctx, issueID, issues.FieldLabels, func(cur issues.Record) (issues.Update, error) {
		ids := make([]string, 0, len(cur.Labels)+1)
		found := false
		for _, l := range cur.Labels {
			if l.ID == labelID {
				found = true
				continue
			}
			ids = append(ids, l.ID)
		}
		if !found {
			ids = append(ids, labelID)
		}
		return issues.Update{Field: issues.FieldLabels, LabelIDs: ids}, nil
	})
}

// reject stores a local validation failure as the current error.
func (c *Controller) reject(err error) error {
	e := issues.Categorize("validate", err)
	c.mu.Lock()
	c.setErrorLocked(e, false)
	c.mu.Unlock()
	c.notify()
	return e
}

// beginLocked claims the (issue, field) pair. It fails when the pair is
// pending.
func (c *Controller) beginLocked(key EditKey) (int, *editEntry, error) {
	if c.closed {
		return 0, nil, ErrClosed
	}
	i, ok := c.index[key.IssueID]
	if !ok {
		return 0, nil, ErrUnknownIssue
	}
	if e, ok := c.edits[key]; ok && e.status == Pending {
		return 0, nil, ErrFieldBusy
	}
	entry := &editEntry{status: Pending, token: uuid.NewString()}
	c.edits[key] = entry
	return i, entry, nil
}

// ownsLocked reports whether token still identifies the current edit of key.
func (c *Controller) ownsLocked(key EditKey, token string) bool {
	e, ok := c.edits[key]
	return ok && e.token == token
}

func (c *Controller) runEdit(ctx context.Context, issueID string, field issues.Field,
	build func(cur issues.Record) (issues.Update, error)) error {
	key := EditKey{IssueID: issueID, Field: field}

	c.mu.Lock()
	i, entry, err := c.beginLocked(key)
	if err != nil {
		c.mu.Unlock()
		if errors.Is(err, ErrFieldBusy) {
			logger.Debug("board: edit rejected, busy issue=%s field=%s", issueID, field)
		}
		return err
	}
	cur := c.records[i]
	u, err := build(cur)
	if err != nil {
		delete(c.edits, key)
		c.mu.Unlock()
		return err
	}
	entry.prior = cur.Clone()
	entry.optimistic = cur.Clone()
	applyUpdate(&entry.optimistic, u, c.team)
	copyField(&c.records[i], entry.optimistic, field)
	c.version++
	c.mu.Unlock()

	logger.Debug("board: edit pending issue=%s field=%s token=%s", issueID, field, entry.token)
	c.notify()

	remoteErr := c.svc.UpdateIssueField(ctx, issueID, u)
	return c.settle(key, entry, remoteErr)
}

// settle commits or rolls back an edit. The prior value is restored only if
// the record still holds the optimistic one.
func (c *Controller) settle(key EditKey, entry *editEntry, remoteErr error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return remoteErr
	}

	if remoteErr == nil {
		if c.ownsLocked(key, entry.token) {
			delete(c.edits, key)
		}
		c.mu.Unlock()
		logger.Debug("board: edit committed issue=%s field=%s token=%s", key.IssueID, key.Field, entry.token)
		c.notify()
		return nil
	}

	e := issues.Categorize("update "+key.Field.String(), remoteErr)
	if i, ok := c.index[key.IssueID]; ok && key.Field != issues.FieldComments &&
		fieldEqual(c.records[i], entry.optimistic, key.Field) {
		copyField(&c.records[i], entry.prior, key.Field)
		c.version++
	}
	if c.ownsLocked(key, entry.token) {
		entry.status = RolledBack
	}
	c.setErrorLocked(e, false)
	c.mu.Unlock()

	logger.Warning("board: edit rolled back issue=%s field=%s token=%s category=%s",
		key.IssueID, key.Field, entry.token, e.Category)
	c.notify()
	return e
}

// CreateIssue validates the input, applies the author tag when configured and
// inserts the created record. Invalid input never reaches the Service.
func (c *Controller) CreateIssue(ctx context.Context, in issues.CreateInput) (issues.Record, error) {
	title, err := issues.NormalizeTitle(in.Title)
	if err != nil {
		return issues.Record{}, c.reject(err)
	}
	if c.opts.TagTitles && c.opts.AuthorTag != "" && !strings.HasPrefix(title, c.opts.AuthorTag) {
		title, err = issues.NormalizeTitle(c.opts.AuthorTag + " " + title)
		if err != nil {
			return issues.Record{}, c.reject(err)
		}
	}
	in.Title = title
	in.Description = strings.TrimSpace(in.Description)
	in.Priority = issues.NormalizePriority(int(in.Priority))

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return issues.Record{}, ErrClosed
	}
	team := c.team
	c.mu.Unlock()

	var tc issues.TeamContext
	if team != nil {
		tc = *team
	} else {
		tc, err = c.svc.ListTeamContext(ctx)
		if err != nil {
			return issues.Record{}, c.fail("create issue", err)
		}
	}

	rec, err := c.svc.CreateIssue(ctx, tc, in)
	if err != nil {
		return issues.Record{}, c.fail("create issue", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return rec, nil
	}
	if c.team == nil {
		c.team = &tc
	}
	if _, exists := c.index[rec.ID]; !exists {
		c.records = append([]issues.Record{rec}, c.records...)
		c.reindexLocked()
		c.version++
	}
	c.mu.Unlock()

	logger.Info("board: created issue=%s", rec.Identifier)
	c.notify()
	return rec, nil
}

// AddComment posts a comment and appends it on success. Only one comment per
// issue may be in flight.
func (c *Controller) AddComment(ctx context.Context, issueID, body string) (issues.Comment, error) {
	body, err := issues.NormalizeCommentBody(body)
	if err != nil {
		return issues.Comment{}, c.reject(err)
	}

	key := EditKey{IssueID: issueID, Field: issues.FieldComments}
	c.mu.Lock()
	_, entry, err := c.beginLocked(key)
	c.mu.Unlock()
	if err != nil {
		return issues.Comment{}, err
	}
	c.notify()

	comment, remoteErr := c.svc.AddComment(ctx, issueID, body)
	if remoteErr != nil {
		return issues.Comment{}, c.settle(key, entry, remoteErr)
	}

	c.mu.Lock()
	if !c.closed {
		if i, ok := c.index[issueID]; ok {
			rec := &c.records[i]
			// A refresh may already have fetched the new comment.
			if !slices.ContainsFunc(rec.Comments, func(x issues.Comment) bool { return x.ID == comment.ID }) {
				rec.Comments = append(rec.Comments[:len(rec.Comments):len(rec.Comments)], comment)
				c.version++
			}
		}
	}
	c.mu.Unlock()
	return comment, c.settle(key, entry, nil)
}

func (c *Controller) fail(op string, err error) error {
	e := issues.Categorize(op, err)
	c.mu.Lock()
	if !c.closed {
		c.setErrorLocked(e, false)
	}
	c.mu.Unlock()
	logger.ErrorWithErr(err, "board: %s failed category=%s", op, e.Category)
	c.notify()
	return e
}

func (c *Controller) reindexLocked() {
	c.index = make(map[string]int, len(c.records))
	for i, r := range c.records {
		c.index[r.ID] = i
	}
}

// LoadTeam returns the team context, fetching it on first use.
func (c *Controller) LoadTeam(ctx context.Context) (issues.TeamContext, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return issues.TeamContext{}, ErrClosed
	}
	team := c.team
	c.mu.Unlock()
	if team != nil {
		return *team, nil
	}

	tc, err := c.svc.ListTeamContext(ctx)
	if err != nil {
		return issues.TeamContext{}, c.fail("load team", err)
	}
	c.mu.Lock()
	if c.team == nil {
		c.team = &tc
	}
	tc = *c.team
	c.mu.Unlock()
	c.notify()
	return tc, nil
}

// Team returns the loaded team context, if any.
func (c *Controller) Team() (issues.TeamContext, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.team == nil {
		return issues.TeamContext{}, false
	}
	return *c.team, true
}
