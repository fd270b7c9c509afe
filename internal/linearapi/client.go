package linearapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/roeyazroel/linear-board/internal/logger"
	"github.com/shurcooL/graphql"
)

// parseTime safely parses an RFC3339 time string, returning zero time on error.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IssueFilter is a custom scalar type for Linear's IssueFilter input.
// It allows passing complex filter objects to the GraphQL API.
type IssueFilter map[string]interface{}

// GetGraphQLType returns the GraphQL type name for the filter.
func (IssueFilter) GetGraphQLType() string {
	return "IssueFilter"
}

// MarshalJSON implements json.Marshaler for IssueFilter.
func (f IssueFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(f))
}

// IssueCreateInput is a custom scalar type for Linear's IssueCreateInput.
// The Go type name must match the GraphQL type name exactly.
type IssueCreateInput map[string]interface{}

// GetGraphQLType returns the GraphQL type name for the input.
func (IssueCreateInput) GetGraphQLType() string {
	return "IssueCreateInput"
}

// MarshalJSON implements json.Marshaler for IssueCreateInput.
func (i IssueCreateInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(i))
}

// IssueUpdateInput is a custom scalar type for Linear's IssueUpdateInput.
// The Go type name must match the GraphQL type name exactly.
type IssueUpdateInput map[string]interface{}

// GetGraphQLType returns the GraphQL type name for the input.
func (IssueUpdateInput) GetGraphQLType() string {
	return "IssueUpdateInput"
}

// MarshalJSON implements json.Marshaler for IssueUpdateInput.
func (i IssueUpdateInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(i))
}

// CommentCreateInput is a custom scalar type for Linear's CommentCreateInput.
// The Go type name must match the GraphQL type name exactly.
type CommentCreateInput map[string]interface{}

// GetGraphQLType returns the GraphQL type name for the input.
func (CommentCreateInput) GetGraphQLType() string {
	return "CommentCreateInput"
}

// MarshalJSON implements json.Marshaler for CommentCreateInput.
func (c CommentCreateInput) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(c))
}

// PaginationOrderBy is a custom type for Linear's PaginationOrderBy enum.
// Valid values are "createdAt" and "updatedAt".
type PaginationOrderBy string

// GetGraphQLType returns the GraphQL type name for the enum.
func (PaginationOrderBy) GetGraphQLType() string {
	return "PaginationOrderBy"
}

// Common PaginationOrderBy values.
const (
	OrderByCreatedAt PaginationOrderBy = "createdAt"
	OrderByUpdatedAt PaginationOrderBy = "updatedAt"
)

const (
	// DefaultEndpoint is the default Linear API GraphQL endpoint.
	DefaultEndpoint = "https://api.linear.app/graphql"

	defaultPageSize  = 50
	commentsPageSize = 100
)

// ClientConfig contains configuration for creating a new Linear API client.
type ClientConfig struct {
	// Token is the Linear API key for authentication.
	Token string
	// Endpoint is the GraphQL API endpoint (defaults to Linear's production endpoint).
	Endpoint string
	// HTTPClient is an optional custom HTTP client (useful for testing).
	HTTPClient *http.Client
	// Timeout is the HTTP request timeout (defaults to 30s).
	Timeout time.Duration
}

// Client is a client for interacting with the Linear GraphQL API.
type Client struct {
	client *graphql.Client
}

// Team represents a Linear team.
type Team struct {
	ID   string
	Key  string
	Name string
}

// User represents a Linear user.
type User struct {
	ID          string
	Name        string
	DisplayName string
	Email       string
	IsMe        bool
}

// WorkflowState represents a workflow state in a Linear team.
type WorkflowState struct {
	ID       string
	Name     string
	Type     string // backlog, unstarted, started, completed, canceled
	Position float64
	TeamID   string
}

// IssueLabel represents a label that can be applied to issues.
type IssueLabel struct {
	ID    string
	Name  string
	Color string // Hex color code (e.g., "#ff0000")
}

// Comment represents a comment on a Linear issue.
type Comment struct {
	ID        string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    *User // nil for comments posted by integrations
	IssueID   string
}

// Issue represents a Linear issue as returned by list and mutation queries.
// Comments are only populated by FetchIssueComments.
type Issue struct {
	ID          string
	Identifier  string
	Title       string
	Description *string
	StateID     string
	State       string
	AssigneeID  string
	Assignee    string
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	TeamID      string
	URL         string
	Labels      []IssueLabel
	Comments    []Comment
}

// IssueFetchProgress describes progress for a paginated issue fetch.
type IssueFetchProgress struct {
	Page    int
	Fetched int
}

// IssuePage is a single page of issues plus the cursor for the next one.
type IssuePage struct {
	Issues    []Issue
	HasNext   bool
	EndCursor *string
}

// FetchIssuesParams contains parameters for fetching issues.
type FetchIssuesParams struct {
	TeamID string
	// OrderBy is the API sort order; updatedAt when empty.
	OrderBy PaginationOrderBy
	First   int
	// OnProgress is an optional callback invoked after each page is fetched.
	OnProgress func(IssueFetchProgress)
}

// CreateIssueInput contains input for creating a new issue.
type CreateIssueInput struct {
	TeamID      string
	Title       string
	Description string
	StateID     string
	AssigneeID  string
	Priority    int
	LabelIDs    []string
}

// UpdateIssueInput contains input for updating an issue.
type UpdateIssueInput struct {
	ID          string
	Title       *string
	Description *string
	StateID     *string
	AssigneeID  *string // empty string = unassign
	Priority    *int
	LabelIDs    *[]string // nil = no change, empty slice = clear all, non-empty = set labels
}

// CreateCommentInput contains input for creating a new comment.
type CreateCommentInput struct {
	IssueID string
	Body    string
}

// NewClient creates a new Linear API client with the provided configuration.
func NewClient(cfg ClientConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var httpClient *http.Client
	if cfg.HTTPClient != nil {
		// Use provided HTTP client but wrap its transport with auth
		httpClient = cfg.HTTPClient
		if httpClient.Transport == nil {
			httpClient.Transport = http.DefaultTransport
		}
		httpClient.Transport = &authTransport{
			Token: cfg.Token,
			Base:  httpClient.Transport,
		}
	} else {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				Token: cfg.Token,
				Base:  http.DefaultTransport,
			},
		}
	}

	return &Client{client: graphql.NewClient(endpoint, httpClient)}
}

// authTransport adds the Authorization header to requests and turns non-2xx
// responses into *StatusError so callers can inspect the status and body.
type authTransport struct {
	Token string
	Base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", t.Token)
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	return nil, newStatusError(resp)
}

// userNode, labelNode, issueNode and commentNode mirror the GraphQL selections
// shared by several queries.
type userNode struct {
	ID          graphql.String
	Name        graphql.String
	DisplayName graphql.String
	Email       graphql.String
	IsMe        graphql.Boolean
}

func (n userNode) toUser() User {
	return User{
		ID:          string(n.ID),
		Name:        string(n.Name),
		DisplayName: string(n.DisplayName),
		Email:       string(n.Email),
		IsMe:        bool(n.IsMe),
	}
}

type labelNode struct {
	ID    graphql.String
	Name  graphql.String
	Color graphql.String
}

func toLabels(nodes []labelNode) []IssueLabel {
	labels := make([]IssueLabel, 0, len(nodes))
	for _, n := range nodes {
		labels = append(labels, IssueLabel{
			ID:    string(n.ID),
			Name:  string(n.Name),
			Color: string(n.Color),
		})
	}
	return labels
}

type issueNode struct {
	ID         graphql.String
	Identifier graphql.String
	Title      graphql.String
	State      *struct {
		ID   graphql.String
		Name graphql.String
	}
	Assignee *struct {
		ID   graphql.String
		Name graphql.String
	}
	Priority    graphql.Float
	UpdatedAt   graphql.String
	CreatedAt   graphql.String
	Description *graphql.String
	Team        struct {
		ID graphql.String
	}
	Labels struct {
		Nodes []labelNode
	}
	URL graphql.String
}

func (n issueNode) toIssue() Issue {
	issue := Issue{
		ID:         string(n.ID),
		Identifier: string(n.Identifier),
		Title:      string(n.Title),
		Priority:   int(n.Priority),
		CreatedAt:  parseTime(string(n.CreatedAt)),
		UpdatedAt:  parseTime(string(n.UpdatedAt)),
		TeamID:     string(n.Team.ID),
		URL:        string(n.URL),
		Labels:     toLabels(n.Labels.Nodes),
	}
	if n.State != nil {
		issue.StateID = string(n.State.ID)
		issue.State = string(n.State.Name)
	}
	if n.Assignee != nil {
		issue.AssigneeID = string(n.Assignee.ID)
		issue.Assignee = string(n.Assignee.Name)
	}
	if n.Description != nil {
		description := string(*n.Description)
		issue.Description = &description
	}
	return issue
}

type commentNode struct {
	ID        graphql.String
	Body      graphql.String
	CreatedAt graphql.String
	UpdatedAt graphql.String
	User      *userNode
}

func (n commentNode) toComment(issueID string) Comment {
	comment := Comment{
		ID:        string(n.ID),
		Body:      string(n.Body),
		CreatedAt: parseTime(string(n.CreatedAt)),
		UpdatedAt: parseTime(string(n.UpdatedAt)),
		IssueID:   issueID,
	}
	if n.User != nil {
		author := n.User.toUser()
		comment.Author = &author
	}
	return comment
}

// ListTeams fetches all teams the user has access to.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var query struct {
		Teams struct {
			Nodes []struct {
				ID   graphql.String
				Key  graphql.String
				Name graphql.String
			}
		} `graphql:"teams"`
	}

	err := c.client.Query(ctx, &query, nil)
	if err != nil {
		logger.ErrorWithErr(err, "API: ListTeams failed")
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teams := make([]Team, 0, len(query.Teams.Nodes))
	for _, node := range query.Teams.Nodes {
		teams = append(teams, Team{
			ID:   string(node.ID),
			Key:  string(node.Key),
			Name: string(node.Name),
		})
	}

	return teams, nil
}

// ListUsers fetches all members of a team.
func (c *Client) ListUsers(ctx context.Context, teamID string) ([]User, error) {
	var query struct {
		Team struct {
			Members struct {
				Nodes []userNode
			}
		} `graphql:"team(id: $teamId)"`
	}

	variables := map[string]interface{}{
		"teamId": graphql.String(teamID),
	}

	err := c.client.Query(ctx, &query, variables)
	if err != nil {
		logger.ErrorWithErr(err, "API: ListUsers failed for team %s", teamID)
		return nil, fmt.Errorf("list users for team %s: %w", teamID, err)
	}

	users := make([]User, 0, len(query.Team.Members.Nodes))
	for _, node := range query.Team.Members.Nodes {
		users = append(users, node.toUser())
	}

	return users, nil
}

// ListWorkflowStates fetches all workflow states for a team, ordered by position.
func (c *Client) ListWorkflowStates(ctx context.Context, teamID string) ([]WorkflowState, error) {
	var query struct {
		Team struct {
			States struct {
				Nodes []struct {
					ID       graphql.String
					Name     graphql.String
					Type     graphql.String
					Position graphql.Float
				}
			}
		} `graphql:"team(id: $teamId)"`
	}

	variables := map[string]interface{}{
		"teamId": graphql.String(teamID),
	}

	err := c.client.Query(ctx, &query, variables)
	if err != nil {
		logger.ErrorWithErr(err, "API: ListWorkflowStates failed for team %s", teamID)
		return nil, fmt.Errorf("list workflow states for team %s: %w", teamID, err)
	}

	states := make([]WorkflowState, 0, len(query.Team.States.Nodes))
	for _, node := range query.Team.States.Nodes {
		states = append(states, WorkflowState{
			ID:       string(node.ID),
			Name:     string(node.Name),
			Type:     string(node.Type),
			Position: float64(node.Position),
			TeamID:   teamID,
		})
	}
	sort.SliceStable(states, func(i, j int) bool {
		return states[i].Position < states[j].Position
	})

	return states, nil
}

// buildIssueFilter builds the GraphQL issue filter for the given params.
func buildIssueFilter(params FetchIssuesParams) IssueFilter {
	filter := make(IssueFilter)
	if params.TeamID != "" {
		filter["team"] = map[string]interface{}{"id": map[string]interface{}{"eq": params.TeamID}}
	}
	return filter
}

// FetchIssuesPage fetches one page of issues starting after the given cursor.
func (c *Client) FetchIssuesPage(ctx context.Context, params FetchIssuesParams, after *string) (IssuePage, error) {
	first := params.First
	if first <= 0 {
		first = defaultPageSize
	}

	orderBy := params.OrderBy
	if orderBy != OrderByCreatedAt {
		orderBy = OrderByUpdatedAt
	}

	var query struct {
		Issues struct {
			Nodes    []issueNode
			PageInfo struct {
				HasNextPage graphql.Boolean
				EndCursor   graphql.String
			}
		} `graphql:"issues(first: $first, after: $after, filter: $filter, orderBy: $orderBy)"`
	}

	var cursor *graphql.String
	if after != nil {
		value := graphql.String(*after)
		cursor = &value
	}

	variables := map[string]interface{}{
		"first":   graphql.Int(first),
		"filter":  buildIssueFilter(params),
		"orderBy": orderBy,
		"after":   cursor,
	}

	err := c.client.Query(ctx, &query, variables)
	if err != nil {
		logger.ErrorWithErr(err, "API: FetchIssuesPage failed")
		return IssuePage{}, fmt.Errorf("fetch issues: %w", err)
	}

	page := IssuePage{
		Issues:  make([]Issue, 0, len(query.Issues.Nodes)),
		HasNext: bool(query.Issues.PageInfo.HasNextPage),
	}
	for _, node := range query.Issues.Nodes {
		page.Issues = append(page.Issues, node.toIssue())
	}
	if page.HasNext {
		endCursor := string(query.Issues.PageInfo.EndCursor)
		page.EndCursor = &endCursor
	}

	return page, nil
}

// FetchIssues fetches every page of issues matching params.
func (c *Client) FetchIssues(ctx context.Context, params FetchIssuesParams) ([]Issue, error) {
	var after *string
	pageNum := 0
	issues := make([]Issue, 0)
	for {
		page, err := c.FetchIssuesPage(ctx, params, after)
		if err != nil {
			return nil, err
		}
		issues = append(issues, page.Issues...)

		pageNum++
		if params.OnProgress != nil {
			params.OnProgress(IssueFetchProgress{
				Page:    pageNum,
				Fetched: len(issues),
			})
		}

		if !page.HasNext || page.EndCursor == nil {
			break
		}
		after = page.EndCursor
	}

	return issues, nil
}

// FetchIssueComments fetches every comment of one issue, oldest first.
func (c *Client) FetchIssueComments(ctx context.Context, issueID string) ([]Comment, error) {
	var query struct {
		Issue struct {
			ID       graphql.String
			Comments struct {
				Nodes    []commentNode
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
			} `graphql:"comments(first: $first, after: $after, orderBy: createdAt)"`
		} `graphql:"issue(id: $id)"`
	}

	comments := make([]Comment, 0)
	var cursor *graphql.String
	for {
		variables := map[string]interface{}{
			"id":    graphql.String(issueID),
			"first": graphql.Int(commentsPageSize),
			"after": cursor,
		}
		if err := c.client.Query(ctx, &query, variables); err != nil {
			logger.ErrorWithErr(err, "API: FetchIssueComments failed for issue %s", issueID)
			return nil, fmt.Errorf("fetch comments for issue %s: %w", issueID, err)
		}
		for _, node := range query.Issue.Comments.Nodes {
			comments = append(comments, node.toComment(issueID))
		}

		page := query.Issue.Comments.PageInfo
		if !bool(page.HasNextPage) || page.EndCursor == "" {
			break
		}
		next := page.EndCursor
		cursor = &next
		query.Issue.Comments.Nodes = nil
	}

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// CreateIssue creates a new issue.
func (c *Client) CreateIssue(ctx context.Context, input CreateIssueInput) (Issue, error) {
	var mutation struct {
		IssueCreate struct {
			Success graphql.Boolean
			Issue   issueNode
		} `graphql:"issueCreate(input: $input)"`
	}

	issueInput := make(IssueCreateInput)
	issueInput["teamId"] = graphql.ID(input.TeamID)
	issueInput["title"] = graphql.String(input.Title)
	if input.Description != "" {
		issueInput["description"] = graphql.String(input.Description)
	}
	if input.StateID != "" {
		issueInput["stateId"] = graphql.ID(input.StateID)
	}
	if input.AssigneeID != "" {
		issueInput["assigneeId"] = graphql.ID(input.AssigneeID)
	}
	if input.Priority > 0 {
		issueInput["priority"] = graphql.Int(input.Priority)
	}
	if len(input.LabelIDs) > 0 {
		issueInput["labelIds"] = toIDs(input.LabelIDs)
	}

	variables := map[string]interface{}{
		"input": issueInput,
	}

	err := c.client.Mutate(ctx, &mutation, variables)
	if err != nil {
		logger.ErrorWithErr(err, "API: CreateIssue failed")
		return Issue{}, fmt.Errorf("create issue: %w", err)
	}

	if !bool(mutation.IssueCreate.Success) {
		logger.Error("API: CreateIssue operation failed (success=false)")
		return Issue{}, fmt.Errorf("create issue: %w", ErrOperationFailed)
	}

	return mutation.IssueCreate.Issue.toIssue(), nil
}

// UpdateIssue updates an existing issue. Only non-nil input fields are sent.
func (c *Client) UpdateIssue(ctx context.Context, input UpdateIssueInput) (Issue, error) {
	var mutation struct {
		IssueUpdate struct {
			Success graphql.Boolean
			Issue   issueNode
		} `graphql:"issueUpdate(id: $id, input: $input)"`
	}

	issueInput := make(IssueUpdateInput)
	if input.Title != nil {
		issueInput["title"] = graphql.String(*input.Title)
	}
	if input.Description != nil {
		issueInput["description"] = graphql.String(*input.Description)
	}
	if input.StateID != nil {
		if *input.StateID == "" {
			issueInput["stateId"] = (*graphql.ID)(nil)
		} else {
			issueInput["stateId"] = graphql.ID(*input.StateID)
		}
	}
	if input.AssigneeID != nil {
		if *input.AssigneeID == "" {
			// Unassign by passing null
			issueInput["assigneeId"] = (*graphql.ID)(nil)
		} else {
			issueInput["assigneeId"] = graphql.ID(*input.AssigneeID)
		}
	}
	if input.Priority != nil {
		issueInput["priority"] = graphql.Int(*input.Priority)
	}
	if input.LabelIDs != nil {
		issueInput["labelIds"] = toIDs(*input.LabelIDs)
	}

	variables := map[string]interface{}{
		"id":    graphql.String(input.ID),
		"input": issueInput,
	}

	err := c.client.Mutate(ctx, &mutation, variables)
	if err != nil {
		logger.ErrorWithErr(err, "API: UpdateIssue failed for issue %s", input.ID)
		return Issue{}, fmt.Errorf("update issue %s: %w", input.ID, err)
	}

	if !bool(mutation.IssueUpdate.Success) {
		logger.Error("API: UpdateIssue operation failed (success=false) for issue %s", input.ID)
		return Issue{}, fmt.Errorf("update issue %s: %w", input.ID, ErrOperationFailed)
	}

	return mutation.IssueUpdate.Issue.toIssue(), nil
}

// toIDs converts a string slice to []graphql.ID for mutations.
func toIDs(ids []string) []graphql.ID {
	out := make([]graphql.ID, len(ids))
	for i, id := range ids {
		out[i] = graphql.ID(id)
	}
	return out
}

// CreateComment creates a new comment on an issue.
func (c *Client) CreateComment(ctx context.Context, input CreateCommentInput) (Comment, error) {
	var mutation struct {
		CommentCreate struct {
			Success graphql.Boolean
			Comment commentNode
		} `graphql:"commentCreate(input: $input)"`
	}

	commentInput := make(CommentCreateInput)
	commentInput["issueId"] = graphql.ID(input.IssueID)
	commentInput["body"] = graphql.String(input.Body)

	variables := map[string]interface{}{
		"input": commentInput,
	}

	err := c.client.Mutate(ctx, &mutation, variables)
	if err != nil {
		logger.ErrorWithErr(err, "API: CreateComment failed for issue %s", input.IssueID)
		return Comment{}, fmt.Errorf("create comment: %w", err)
	}

	if !bool(mutation.CommentCreate.Success) {
		logger.Error("API: CreateComment operation failed (success=false) for issue %s", input.IssueID)
		return Comment{}, fmt.Errorf("create comment: %w", ErrOperationFailed)
	}

	return mutation.CommentCreate.Comment.toComment(input.IssueID), nil
}

// ListWorkspaceLabels fetches all workspace-level labels (not scoped to a team).
func (c *Client) ListWorkspaceLabels(ctx context.Context) ([]IssueLabel, error) {
	var query struct {
		IssueLabels struct {
			Nodes []labelNode
		} `graphql:"issueLabels(first: 250)"`
	}

	err := c.client.Query(ctx, &query, nil)
	if err != nil {
		logger.ErrorWithErr(err, "API: ListWorkspaceLabels failed")
		return nil, fmt.Errorf("list workspace labels: %w", err)
	}

	return toLabels(query.IssueLabels.Nodes), nil
}

// ListTeamLabels fetches labels scoped to a specific team.
func (c *Client) ListTeamLabels(ctx context.Context, teamID string) ([]IssueLabel, error) {
	var query struct {
		Team struct {
			Labels struct {
				Nodes []labelNode
			}
		} `graphql:"team(id: $teamId)"`
	}

	variables := map[string]interface{}{
		"teamId": graphql.String(teamID),
	}

	err := c.client.Query(ctx, &query, variables)
	if err != nil {
		logger.ErrorWithErr(err, "API: ListTeamLabels failed for team %s", teamID)
		return nil, fmt.Errorf("list team labels for team %s: %w", teamID, err)
	}

	return toLabels(query.Team.Labels.Nodes), nil
}

// ListIssueLabels fetches both workspace and team labels, merges them, and returns a sorted list.
// Labels are de-duplicated by ID, with team labels taking precedence.
func (c *Client) ListIssueLabels(ctx context.Context, teamID string) ([]IssueLabel, error) {
	workspaceLabels, err := c.ListWorkspaceLabels(ctx)
	if err != nil {
		return nil, err
	}

	teamLabels, err := c.ListTeamLabels(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return mergeLabels(workspaceLabels, teamLabels), nil
}

// mergeLabels de-duplicates by ID (later sets win) and sorts by name.
func mergeLabels(sets ...[]IssueLabel) []IssueLabel {
	labelMap := make(map[string]IssueLabel)
	for _, set := range sets {
		for _, lbl := range set {
			labelMap[lbl.ID] = lbl
		}
	}

	labels := make([]IssueLabel, 0, len(labelMap))
	for _, lbl := range labelMap {
		labels = append(labels, lbl)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].Name == labels[j].Name {
			return labels[i].ID < labels[j].ID
		}
		return labels[i].Name < labels[j].Name
	})

	return labels
}
