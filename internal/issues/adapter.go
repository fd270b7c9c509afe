package issues

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/roeyazroel/linear-board/internal/linearapi"
	"github.com/roeyazroel/linear-board/internal/logger"
)

// Client is the subset of *linearapi.Client the Adapter uses.
type Client interface {
	ListTeams(ctx context.Context) ([]linearapi.Team, error)
	ListWorkflowStates(ctx context.Context, teamID string) ([]linearapi.WorkflowState, error)
	ListIssueLabels(ctx context.Context, teamID string) ([]linearapi.IssueLabel, error)
	ListUsers(ctx context.Context, teamID string) ([]linearapi.User, error)
	FetchIssues(ctx context.Context, params linearapi.FetchIssuesParams) ([]linearapi.Issue, error)
	FetchIssueComments(ctx context.Context, issueID string) ([]linearapi.Comment, error)
	CreateIssue(ctx context.Context, input linearapi.CreateIssueInput) (linearapi.Issue, error)
	UpdateIssue(ctx context.Context, input linearapi.UpdateIssueInput) (linearapi.Issue, error)
	CreateComment(ctx context.Context, input linearapi.CreateCommentInput) (linearapi.Comment, error)
}

// AdapterOptions tunes the Adapter.
type AdapterOptions struct {
	// TeamKey selects the team by key; empty picks the first team.
	TeamKey string
	// PageSize is the number of issues requested per page.
	PageSize int
	// RelationConcurrency bounds the per-issue comment loads in flight.
	RelationConcurrency int
}

// Adapter translates between Records and the Linear API. Every error it
// returns is an *Error. It never retries.
type Adapter struct {
	client Client
	opts   AdapterOptions
}

// NewAdapter returns an Adapter over client.
func NewAdapter(client Client, opts AdapterOptions) *Adapter {
	if opts.RelationConcurrency <= 0 {
		opts.RelationConcurrency = 8
	}
	return &Adapter{client: client, opts: opts}
}

// ListTeamContext resolves the team and fetches its states, labels and
// members concurrently.
func (a *Adapter) ListTeamContext(ctx context.Context) (TeamContext, error) {
	teams, err := a.client.ListTeams(ctx)
	if err != nil {
		return TeamContext{}, Categorize("list teams", err)
	}

	team, err := a.pickTeam(teams)
	if err != nil {
		return TeamContext{}, err
	}

	tc := TeamContext{Team: team}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		states, err := a.client.ListWorkflowStates(gctx, team.ID)
		if err != nil {
			return Categorize("list workflow states", err)
		}
		tc.States = normalizeStates(states)
		return nil
	})
	g.Go(func() error {
		labels, err := a.client.ListIssueLabels(gctx, team.ID)
		if err != nil {
			return Categorize("list labels", err)
		}
		tc.Labels = normalizeLabels(labels)
		return nil
	})
	g.Go(func() error {
		users, err := a.client.ListUsers(gctx, team.ID)
		if err != nil {
			return Categorize("list members", err)
		}
		tc.Members = normalizeMembers(users)
		return nil
	})
	if err := g.Wait(); err != nil {
		return TeamContext{}, err
	}

	logger.Info("issues: team context loaded team=%s states=%d labels=%d members=%d",
		team.Key, len(tc.States), len(tc.Labels), len(tc.Members))
	return tc, nil
}

func (a *Adapter) pickTeam(teams []linearapi.Team) (Team, error) {
	if len(teams) == 0 {
		return Team{}, &Error{
			Category: Configuration,
			Op:       "list teams",
			Message:  "No team found for this API key.",
		}
	}
	if a.opts.TeamKey == "" {
		t := teams[0]
		return Team{ID: t.ID, Key: t.Key, Name: t.Name}, nil
	}
	for _, t := range teams {
		if strings.EqualFold(t.Key, a.opts.TeamKey) {
			return Team{ID: t.ID, Key: t.Key, Name: t.Name}, nil
		}
	}
	return Team{}, &Error{
		Category: Configuration,
		Op:       "list teams",
		Message:  fmt.Sprintf("Team %q not found for this API key.", a.opts.TeamKey),
	}
}

// ListIssues pages through the team's issues and loads each issue's comments.
// An issue whose comments fail to load is logged and dropped.
func (a *Adapter) ListIssues(ctx context.Context, tc TeamContext) ([]Record, error) {
	apiIssues, err := a.client.FetchIssues(ctx, linearapi.FetchIssuesParams{
		TeamID:  tc.Team.ID,
		First:   a.opts.PageSize,
		// Creation order keeps records stable across refreshes.
		OrderBy: linearapi.OrderByCreatedAt,
		OnProgress: func(p linearapi.IssueFetchProgress) {
			logger.Debug("issues: fetched page=%d total=%d", p.Page, p.Fetched)
		},
	})
	if err != nil {
		return nil, Categorize("list issues", err)
	}

	loaded := make([]bool, len(apiIssues))
	var g errgroup.Group
	g.SetLimit(a.opts.RelationConcurrency)
	for i := range apiIssues {
		g.Go(func() error {
			comments, err := a.client.FetchIssueComments(ctx, apiIssues[i].ID)
			if err != nil {
				logger.Warning("issues: dropping %s, comments failed to load: %v",
					apiIssues[i].Identifier, err)
				return nil
			}
			apiIssues[i].Comments = comments
			loaded[i] = true
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, Categorize("list issues", err)
	}

	records := make([]Record, 0, len(apiIssues))
	seen := make(map[string]struct{}, len(apiIssues))
	for i, issue := range apiIssues {
		if !loaded[i] {
			continue
		}
		if _, dup := seen[issue.ID]; dup {
			continue
		}
		seen[issue.ID] = struct{}{}
		records = append(records, normalizeIssue(issue))
	}
	if dropped := len(apiIssues) - len(records); dropped > 0 {
		logger.Warning("issues: %d of %d issues dropped", dropped, len(apiIssues))
	}
	return records, nil
}

// CreateIssue creates an issue in the team. The title is sent unchanged.
func (a *Adapter) CreateIssue(ctx context.Context, tc TeamContext, in CreateInput) (Record, error) {
	created, err := a.client.CreateIssue(ctx, linearapi.CreateIssueInput{
		TeamID:      tc.Team.ID,
		Title:       in.Title,
		Description: in.Description,
		StateID:     in.StateID,
		AssigneeID:  in.AssigneeID,
		Priority:    int(NormalizePriority(int(in.Priority))),
		LabelIDs:    in.LabelIDs,
	})
	if err != nil {
		return Record{}, Categorize("create issue", err)
	}
	return normalizeIssue(created), nil
}

// UpdateIssueField sends exactly one field group to the service.
func (a *Adapter) UpdateIssueField(ctx context.Context, issueID string, u Update) error {
	input := linearapi.UpdateIssueInput{ID: issueID}
	switch u.Field {
	case FieldState:
		input.StateID = &u.StateID
	case FieldPriority:
		p := int(NormalizePriority(int(u.Priority)))
		input.Priority = &p
	case FieldLabels:
		ids := append([]string{}, u.LabelIDs...)
		input.LabelIDs = &ids
	case FieldAssignee:
		input.AssigneeID = &u.AssigneeID
	case FieldContent:
		input.Title = &u.Title
		input.Description = &u.Description
	default:
		return &Error{
			Category: Validation,
			Op:       "update " + u.Field.String(),
			Message:  fmt.Sprintf("field %s cannot be updated", u.Field),
		}
	}

	if _, err := a.client.UpdateIssue(ctx, input); err != nil {
		return Categorize("update "+u.Field.String(), err)
	}
	return nil
}

// AddComment posts a comment on the issue.
func (a *Adapter) AddComment(ctx context.Context, issueID, body string) (Comment, error) {
	c, err := a.client.CreateComment(ctx, linearapi.CreateCommentInput{IssueID: issueID, Body: body})
	if err != nil {
		return Comment{}, Categorize("add comment", err)
	}
	return normalizeComment(c), nil
}
