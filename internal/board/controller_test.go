package board

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roeyazroel/linear-board/internal/issues"
)

type updateCall struct {
	IssueID string
	Update  issues.Update
}

type fakeService struct {
	mu sync.Mutex

	team      issues.TeamContext
	teamErr   error
	teamCalls int

	// lists is consumed one entry per ListIssues call; the last entry repeats.
	lists   [][]issues.Record
	listErr error
	// listGates, when set for a call index, blocks that call until closed.
	listGates map[int]chan struct{}
	listCalls int

	updates   []updateCall
	updateErr error
	// updateGate blocks UpdateIssueField until closed; entered is signalled
	// when a call arrives.
	updateGate chan struct{}
	entered    chan issues.Field

	creates   []issues.CreateInput
	created   issues.Record
	createErr error

	comments   int
	comment    issues.Comment
	commentErr error
	// commentGate blocks AddComment until closed; commentEntered is
	// signalled when a call arrives.
	commentGate    chan struct{}
	commentEntered chan struct{}
}

func (f *fakeService) ListTeamContext(context.Context) (issues.TeamContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teamCalls++
	return f.team, f.teamErr
}

func (f *fakeService) ListIssues(ctx context.Context, _ issues.TeamContext) ([]issues.Record, error) {
	f.mu.Lock()
	call := f.listCalls
	f.listCalls++
	gate := f.listGates[call]
	var recs []issues.Record
	if len(f.lists) > 0 {
		idx := call
		if idx >= len(f.lists) {
			idx = len(f.lists) - 1
		}
		recs = cloneAll(f.lists[idx])
	}
	err := f.listErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return recs, err
}

func (f *fakeService) CreateIssue(_ context.Context, _ issues.TeamContext, in issues.CreateInput) (issues.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, in)
	if f.createErr != nil {
		return issues.Record{}, f.createErr
	}
	rec := f.created
	rec.Title = in.Title
	return rec, nil
}

func (f *fakeService) UpdateIssueField(_ context.Context, issueID string, u issues.Update) error {
	f.mu.Lock()
	f.updates = append(f.updates, updateCall{IssueID: issueID, Update: u})
	gate, entered, err := f.updateGate, f.entered, f.updateErr
	f.mu.Unlock()

	if entered != nil {
		entered <- u.Field
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeService) AddComment(_ context.Context, _ string, body string) (issues.Comment, error) {
	f.mu.Lock()
	gate, entered := f.commentGate, f.commentEntered
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments++
	if f.commentErr != nil {
		return issues.Comment{}, f.commentErr
	}
	c := f.comment
	c.Body = body
	return c, nil
}

func (f *fakeService) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func cloneAll(in []issues.Record) []issues.Record {
	out := make([]issues.Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

func rec(id string, p issues.Priority, stateID string) issues.Record {
	return issues.Record{ID: id, Identifier: id, Title: "issue " + id, Priority: p, StateID: stateID}
}

var testTeam = issues.TeamContext{
	Team: issues.Team{ID: "t-1", Key: "ENG"},
	States: []issues.WorkflowState{
		{ID: "s1", Name: "Todo"},
		{ID: "s2", Name: "In Progress"},
		{ID: "s3", Name: "Done"},
	},
	Labels: []issues.Label{
		{ID: "bug", Name: "Bug", Color: "#ff0000"},
		{ID: "ui", Name: "UI"},
	},
	Members: []issues.Member{{ID: "u-1", Name: "Ada"}},
}

func newLoaded(t *testing.T, opts Options, records ...issues.Record) (*Controller, *fakeService) {
	t.Helper()
	svc := &fakeService{team: testTeam, lists: [][]issues.Record{records}}
	c := New(svc, opts)
	require.NoError(t, c.Refresh(context.Background()))
	return c, svc
}

func ids(records []issues.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestVisible_IsIdempotent(t *testing.T) {
	c, _ := newLoaded(t, Options{},
		rec("a", issues.Low, "s1"), rec("b", issues.Urgent, "s2"), rec("c", issues.NoPriority, "s1"))
	require.NoError(t, c.SetFilter(DimState, []string{"s1", "s2"}))

	first := c.Visible()
	second := c.Visible()
	assert.Equal(t, first, second)
	assert.Equal(t, c.Snapshot().Visible, first)
}

func TestVisible_SortLaw(t *testing.T) {
	c, _ := newLoaded(t, Options{},
		rec("n1", issues.NoPriority, ""),
		rec("l1", issues.Low, ""),
		rec("u1", issues.Urgent, ""),
		rec("m1", issues.Medium, ""),
		rec("n2", issues.NoPriority, ""),
		rec("h1", issues.High, ""),
		rec("u2", issues.Urgent, ""),
		rec("l2", issues.Low, ""),
	)

	visible := c.Visible()
	for i := 0; i+1 < len(visible); i++ {
		assert.GreaterOrEqual(t, visible[i].Priority.Rank(), visible[i+1].Priority.Rank(),
			"%s before %s", visible[i].ID, visible[i+1].ID)
	}
	assert.Equal(t, []string{"u1", "u2", "h1", "m1", "l1", "l2", "n1", "n2"}, ids(visible))
}

func TestVisible_FilterConjunction(t *testing.T) {
	records := []issues.Record{
		rec("a", issues.High, "s1"),
		rec("b", issues.High, "s2"),
		rec("c", issues.Low, "s1"),
		rec("d", issues.Low, "s2"),
	}
	records[0].Labels = []issues.Label{{ID: "bug"}}
	records[1].Labels = []issues.Label{{ID: "bug"}}
	records[2].Labels = []issues.Label{{ID: "ui"}}
	records[0].AssigneeID = "u-1"
	records[2].AssigneeID = "u-1"

	c, _ := newLoaded(t, Options{}, records...)

	require.NoError(t, c.SetFilter(DimState, []string{"s1"}))
	assert.ElementsMatch(t, []string{"a", "c"}, ids(c.Visible()))

	require.NoError(t, c.SetFilter(DimLabel, []string{"bug"}))
	assert.Equal(t, []string{"a"}, ids(c.Visible()))

	require.NoError(t, c.SetFilter(DimState, nil))
	assert.Equal(t, []string{"a", "b"}, ids(c.Visible()))

	require.NoError(t, c.SetFilter(DimPriority, []string{"high"}))
	require.NoError(t, c.SetFilter(DimAssignee, []string{"u-1"}))
	assert.Equal(t, []string{"a"}, ids(c.Visible()))

	require.NoError(t, c.SetFilter(DimAssignee, []string{Unassigned}))
	assert.Equal(t, []string{"b"}, ids(c.Visible()))

	c.ClearFilters()
	assert.Len(t, c.Visible(), 4)
}

func TestSetFilter_RejectsUnknownPriority(t *testing.T) {
	c, _ := newLoaded(t, Options{}, rec("a", issues.High, "s1"))
	err := c.SetFilter(DimPriority, []string{"someday"})
	assert.True(t, issues.IsCategory(err, issues.Validation))
	assert.Empty(t, c.Snapshot().Filter.Priorities)
}

func TestVisible_MineOnly(t *testing.T) {
	mine := rec("a", issues.Low, "s1")
	mine.Title = "[ada] fix login"
	other := rec("b", issues.Urgent, "s1")
	c, _ := newLoaded(t, Options{AuthorTag: "[ada]"}, mine, other)

	c.SetMineOnly(true)
	assert.Equal(t, []string{"a"}, ids(c.Visible()))
	c.SetMineOnly(false)
	assert.Equal(t, []string{"b", "a"}, ids(c.Visible()))
}

func TestScenario_StateFilterThenClear(t *testing.T) {
	c, _ := newLoaded(t, Options{},
		rec("A", issues.Urgent, "s1"),
		rec("B", issues.Low, "s2"),
	)

	require.NoError(t, c.SetFilter(DimState, []string{"s1"}))
	assert.Equal(t, []string{"A"}, ids(c.Visible()))

	require.NoError(t, c.SetFilter(DimState, nil))
	assert.Equal(t, []string{"A", "B"}, ids(c.Visible()))
}

func TestUpdateField_RollsBackOnFailure(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))
	svc.updateErr = errors.New("service exploded")

	err := c.SetPriority(context.Background(), "a", issues.High)
	require.Error(t, err)

	snap := c.Snapshot()
	got, ok := snap.Find("a")
	require.True(t, ok)
	assert.Equal(t, issues.Medium, got.Priority)
	require.NotNil(t, snap.Error)
	assert.Equal(t, issues.ServiceInternal, snap.Error.Category)
	assert.Equal(t, RolledBack, snap.Status("a", issues.FieldPriority))
	assert.False(t, snap.Busy("a", issues.FieldPriority))
}

func TestUpdateField_CommitKeepsOptimisticValue(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))

	require.NoError(t, c.SetState(context.Background(), "a", "s2"))
	got, _ := c.Issue("a")
	assert.Equal(t, "s2", got.StateID)
	assert.Equal(t, "In Progress", got.StateName)
	assert.Equal(t, Idle, c.Snapshot().Status("a", issues.FieldState))
	require.Len(t, svc.updates, 1)
	assert.Equal(t, issues.FieldState, svc.updates[0].Update.Field)
}

func TestUpdateField_PendingLockRejectsSecondEdit(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))
	svc.updateGate = make(chan struct{})
	svc.entered = make(chan issues.Field, 4)

	done := make(chan error, 1)
	go func() { done <- c.SetPriority(context.Background(), "a", issues.High) }()
	<-svc.entered

	assert.True(t, c.Snapshot().Busy("a", issues.FieldPriority))
	err := c.SetPriority(context.Background(), "a", issues.High)
	assert.ErrorIs(t, err, ErrFieldBusy)
	assert.Equal(t, 1, svc.updateCount())

	// A different field of the same issue proceeds independently.
	other := make(chan error, 1)
	go func() { other <- c.SetState(context.Background(), "a", "s2") }()
	assert.Equal(t, issues.FieldState, <-svc.entered)
	assert.Equal(t, 2, svc.updateCount())

	close(svc.updateGate)
	require.NoError(t, <-done)
	require.NoError(t, <-other)

	got, _ := c.Issue("a")
	assert.Equal(t, issues.High, got.Priority)
	assert.Equal(t, "s2", got.StateID)
}

func TestUpdateField_UnknownIssue(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))
	err := c.SetPriority(context.Background(), "missing", issues.High)
	assert.ErrorIs(t, err, ErrUnknownIssue)
	assert.Zero(t, svc.updateCount())
}

func TestEditContent_ValidatesTitle(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))
	err := c.EditContent(context.Background(), "a", "   ", "desc")
	assert.True(t, issues.IsCategory(err, issues.Validation))
	assert.Zero(t, svc.updateCount())
	require.NotNil(t, c.Snapshot().Error)

	require.NoError(t, c.EditContent(context.Background(), "a", "  new title ", "desc"))
	got, _ := c.Issue("a")
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "desc", got.Description)
}

func TestToggleLabel_RoundTrip(t *testing.T) {
	start := rec("a", issues.Medium, "s1")
	start.Labels = []issues.Label{{ID: "ui", Name: "UI"}}
	c, svc := newLoaded(t, Options{}, start)

	require.NoError(t, c.ToggleLabel(context.Background(), "a", "bug"))
	got, _ := c.Issue("a")
	assert.ElementsMatch(t, []string{"ui", "bug"}, got.LabelIDs())
	assert.Equal(t, "Bug", got.Labels[1].Name, "label resolved from team context")
	assert.ElementsMatch(t, []string{"ui", "bug"}, svc.updates[0].Update.LabelIDs)

	require.NoError(t, c.ToggleLabel(context.Background(), "a", "bug"))
	got, _ = c.Issue("a")
	assert.ElementsMatch(t, []string{"ui"}, got.LabelIDs())
	assert.Equal(t, []string{"ui"}, svc.updates[1].Update.LabelIDs)
}

func TestCreateIssue_EmptyTitleNeverCallsService(t *testing.T) {
	c, svc := newLoaded(t, Options{})

	_, err := c.CreateIssue(context.Background(), issues.CreateInput{Title: ""})
	require.Error(t, err)
	assert.True(t, issues.IsCategory(err, issues.Validation))
	assert.Empty(t, svc.creates)
	assert.Equal(t, issues.Validation, c.Snapshot().Error.Category)
}

func TestCreateIssue_TagsTitleAndInserts(t *testing.T) {
	c, svc := newLoaded(t, Options{AuthorTag: "[ada]", TagTitles: true}, rec("a", issues.Low, "s1"))
	svc.created = issues.Record{ID: "new", Identifier: "ENG-9", Priority: issues.Urgent}

	created, err := c.CreateIssue(context.Background(), issues.CreateInput{Title: "  Login broken ", Priority: issues.Urgent})
	require.NoError(t, err)
	assert.Equal(t, "[ada] Login broken", created.Title)
	require.Len(t, svc.creates, 1)
	assert.Equal(t, "[ada] Login broken", svc.creates[0].Title)

	_, err = c.CreateIssue(context.Background(), issues.CreateInput{Title: "[ada] already tagged"})
	require.NoError(t, err)
	assert.Equal(t, "[ada] already tagged", svc.creates[1].Title)

	assert.Equal(t, "new", c.Visible()[0].ID)
}

func TestCreateIssue_ServiceErrorIsStored(t *testing.T) {
	c, svc := newLoaded(t, Options{})
	svc.createErr = errors.New("You lack permission to create issues")

	_, err := c.CreateIssue(context.Background(), issues.CreateInput{Title: "x"})
	assert.True(t, issues.IsCategory(err, issues.Permission))
	assert.Equal(t, issues.Permission, c.Snapshot().Error.Category)
}

func TestRefresh_PreservesPendingFields(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))
	svc.updateGate = make(chan struct{})
	svc.entered = make(chan issues.Field, 1)
	svc.updateErr = errors.New("boom")

	done := make(chan error, 1)
	go func() { done <- c.SetPriority(context.Background(), "a", issues.Urgent) }()
	<-svc.entered

	// Server still reports the old priority and a new title.
	stale := rec("a", issues.Medium, "s1")
	stale.Title = "renamed remotely"
	svc.mu.Lock()
	svc.lists = [][]issues.Record{{stale}}
	svc.listCalls = 0
	svc.mu.Unlock()

	require.NoError(t, c.Refresh(context.Background()))
	got, _ := c.Issue("a")
	assert.Equal(t, issues.Urgent, got.Priority, "pending field keeps optimistic value")
	assert.Equal(t, "renamed remotely", got.Title, "other fields take fetched values")

	close(svc.updateGate)
	require.Error(t, <-done)
	got, _ = c.Issue("a")
	assert.Equal(t, issues.Medium, got.Priority)
	assert.Equal(t, RolledBack, c.Snapshot().Status("a", issues.FieldPriority))

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, Idle, c.Snapshot().Status("a", issues.FieldPriority), "refresh clears rolled back markers")
}

func TestRefresh_DiscardsStaleResult(t *testing.T) {
	gate := make(chan struct{})
	svc := &fakeService{
		team: testTeam,
		lists: [][]issues.Record{
			{rec("old", issues.Low, "s1")},
			{rec("new", issues.High, "s1")},
		},
		listGates: map[int]chan struct{}{0: gate},
	}
	c := New(svc, Options{})

	first := make(chan error, 1)
	go func() { first <- c.Refresh(context.Background()) }()
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return svc.listCalls == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, c.Refresh(context.Background()))
	close(gate)
	require.NoError(t, <-first)

	assert.Equal(t, []string{"new"}, ids(c.Visible()))
	assert.False(t, c.Snapshot().Loading)
}

func TestRefresh_ErrorThenRecovery(t *testing.T) {
	svc := &fakeService{team: testTeam, listErr: errors.New("dial tcp: connection refused: rate limit")}
	c := New(svc, Options{})

	err := c.Refresh(context.Background())
	require.Error(t, err)
	snap := c.Snapshot()
	require.NotNil(t, snap.Error)
	assert.True(t, snap.Error.Retryable())
	assert.False(t, snap.Loading)

	svc.mu.Lock()
	svc.listErr = nil
	svc.lists = [][]issues.Record{{rec("a", issues.Low, "s1")}}
	svc.mu.Unlock()
	require.NoError(t, c.Refresh(context.Background()))
	assert.Nil(t, c.Snapshot().Error)
}

func TestRefresh_TeamConfigurationError(t *testing.T) {
	svc := &fakeService{teamErr: &issues.Error{Category: issues.Configuration, Message: "No team found for this API key."}}
	c := New(svc, Options{})
	err := c.Refresh(context.Background())
	assert.True(t, issues.IsCategory(err, issues.Configuration))
	assert.Zero(t, svc.listCalls)
}

func TestRefresh_DefaultStatesAppliedOnce(t *testing.T) {
	opts := Options{DefaultStates: []string{"todo", "In Progress"}}
	c, _ := newLoaded(t, opts,
		rec("a", issues.Low, "s1"), rec("b", issues.Low, "s2"), rec("c", issues.Low, "s3"))

	assert.Equal(t, []string{"s1", "s2"}, c.Snapshot().Filter.StateIDs)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(c.Visible()))

	require.NoError(t, c.SetFilter(DimState, nil))
	require.NoError(t, c.Refresh(context.Background()))
	assert.Empty(t, c.Snapshot().Filter.StateIDs)
}

func TestRefresh_DefaultStatesSkippedWhenTouched(t *testing.T) {
	svc := &fakeService{team: testTeam, lists: [][]issues.Record{{rec("a", issues.Low, "s3")}}}
	c := New(svc, Options{DefaultStates: []string{"Todo"}})
	require.NoError(t, c.SetFilter(DimState, []string{"s3"}))
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"s3"}, c.Snapshot().Filter.StateIDs)
}

func TestAddComment(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Low, "s1"))
	svc.comment = issues.Comment{ID: "c-1"}

	_, err := c.AddComment(context.Background(), "a", "   ")
	assert.True(t, issues.IsCategory(err, issues.Validation))
	assert.Zero(t, svc.comments)

	comment, err := c.AddComment(context.Background(), "a", " hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", comment.Body)
	got, _ := c.Issue("a")
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "c-1", got.Comments[0].ID)
	assert.False(t, c.Snapshot().Busy("a", issues.FieldComments))

	svc.commentErr = errors.New("Entity not found")
	_, err = c.AddComment(context.Background(), "a", "again")
	assert.True(t, issues.IsCategory(err, issues.NotFound))
	got, _ = c.Issue("a")
	assert.Len(t, got.Comments, 1)
}

func TestAddComment_RefreshAlreadyHoldsComment(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Low, "s1"))
	svc.comment = issues.Comment{ID: "c-1"}
	svc.commentGate = make(chan struct{})
	svc.commentEntered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		_, err := c.AddComment(context.Background(), "a", "hello")
		done <- err
	}()
	<-svc.commentEntered

	fetched := rec("a", issues.Low, "s1")
	fetched.Comments = []issues.Comment{{ID: "c-1", Body: "hello"}}
	svc.mu.Lock()
	svc.lists = [][]issues.Record{{fetched}}
	svc.listCalls = 0
	svc.mu.Unlock()
	require.NoError(t, c.Refresh(context.Background()))

	close(svc.commentGate)
	require.NoError(t, <-done)
	got, _ := c.Issue("a")
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "c-1", got.Comments[0].ID)
	assert.False(t, c.Snapshot().Busy("a", issues.FieldComments))
}

func TestEditTokens(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))
	svc.updateErr = errors.New("boom")

	require.Error(t, c.SetPriority(context.Background(), "a", issues.Urgent))
	key := EditKey{IssueID: "a", Field: issues.FieldPriority}
	first := c.Snapshot().Tokens[key]
	_, err := uuid.Parse(first)
	require.NoError(t, err)

	require.Error(t, c.SetPriority(context.Background(), "a", issues.High))
	second := c.Snapshot().Tokens[key]
	assert.NotEqual(t, first, second, "each edit gets its own token")

	c.mu.Lock()
	assert.True(t, c.ownsLocked(key, second))
	assert.False(t, c.ownsLocked(key, first), "a settled edit no longer owns the field")
	c.mu.Unlock()
}

func TestSubscribeAndClose(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))

	var calls atomic.Int32
	unsubscribe := c.Subscribe(func() { calls.Add(1) })
	c.SetMineOnly(true)
	assert.Equal(t, int32(1), calls.Load())
	unsubscribe()
	c.SetMineOnly(false)
	assert.Equal(t, int32(1), calls.Load())

	c.Subscribe(func() { calls.Add(1) })
	svc.updateGate = make(chan struct{})
	svc.entered = make(chan issues.Field, 1)
	svc.updateErr = errors.New("boom")
	done := make(chan error, 1)
	go func() { done <- c.SetPriority(context.Background(), "a", issues.High) }()
	<-svc.entered

	c.Close()
	before := calls.Load()
	close(svc.updateGate)
	<-done

	got, _ := c.Issue("a")
	assert.Equal(t, issues.High, got.Priority, "settlement after close changes nothing")
	assert.Nil(t, c.Snapshot().Error)
	assert.Equal(t, before, calls.Load())
	assert.ErrorIs(t, c.Refresh(context.Background()), ErrClosed)
}

func TestErrorsReplaceEachOther(t *testing.T) {
	c, svc := newLoaded(t, Options{}, rec("a", issues.Medium, "s1"))
	svc.updateErr = errors.New("Invalid API key")
	_ = c.SetPriority(context.Background(), "a", issues.High)
	assert.Equal(t, issues.Authentication, c.Snapshot().Error.Category)

	svc.updateErr = errors.New("Rate limit exceeded")
	_ = c.SetState(context.Background(), "a", "s2")
	assert.Equal(t, issues.RateLimit, c.Snapshot().Error.Category)

	c.ClearError()
	assert.Nil(t, c.Snapshot().Error)
}

func TestLoadTeam_FetchesOnce(t *testing.T) {
	svc := &fakeService{team: testTeam, lists: [][]issues.Record{{rec("a", issues.High, "s1")}}}
	c := New(svc, Options{})

	tc, err := c.LoadTeam(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ENG", tc.Team.Key)

	_, err = c.LoadTeam(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 1, svc.teamCalls)
}

func TestLoadTeam_ErrorIsStored(t *testing.T) {
	svc := &fakeService{teamErr: &issues.Error{Category: issues.Configuration, Message: "no team"}}
	c := New(svc, Options{})

	_, err := c.LoadTeam(context.Background())
	require.Error(t, err)
	assert.True(t, issues.IsCategory(err, issues.Configuration))
	snap := c.Snapshot()
	require.NotNil(t, snap.Error)
	assert.Equal(t, "no team", snap.Error.Message)
	_, ok := c.Team()
	assert.False(t, ok)
}
