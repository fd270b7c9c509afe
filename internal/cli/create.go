package cli

import (
	"github.com/spf13/cobra"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/issues"
	"github.com/roeyazroel/linear-board/internal/logger"
)

type createOptions struct {
	title       string
	description string
	priority    string
	labels      []string
	state       string
	assignee    string
}

func newCreateCmd(s *session) *cobra.Command {
	var opts createOptions
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue in the configured team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return createRun(cmd, s, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.title, "title", "t", "", "Issue title (required)")
	f.StringVarP(&opts.description, "description", "d", "", "Issue description (markdown)")
	f.StringVarP(&opts.priority, "priority", "p", "none", "Priority: urgent, high, medium, low, none")
	f.StringSliceVarP(&opts.labels, "label", "l", nil, "Label name or id")
	f.StringVar(&opts.state, "state", "", "Workflow state name or id (team default when empty)")
	f.StringVar(&opts.assignee, "assignee", "", `Assignee name, email or "me"`)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func createRun(cmd *cobra.Command, s *session, opts createOptions) error {
	priority, ok := issues.ParsePriority(opts.priority)
	if !ok {
		return unknown("priority", opts.priority)
	}

	cfg, err := s.load()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctrl := s.controller(cfg)
	defer ctrl.Close()

	in := issues.CreateInput{
		Title:       opts.title,
		Description: opts.description,
		Priority:    priority,
	}
	if len(opts.labels) > 0 || opts.state != "" || opts.assignee != "" {
		tc, err := ctrl.LoadTeam(cmd.Context())
		if err != nil {
			return err
		}
		if in.LabelIDs, err = resolveLabels(tc, opts.labels); err != nil {
			return err
		}
		if opts.state != "" {
			ids, err := resolveStates(tc, []string{opts.state})
			if err != nil {
				return err
			}
			in.StateID = ids[0]
		}
		if opts.assignee != "" {
			id, err := resolveAssignee(tc, opts.assignee)
			if err != nil {
				return err
			}
			if id != board.Unassigned {
				in.AssigneeID = id
			}
		}
	}

	rec, err := ctrl.CreateIssue(cmd.Context(), in)
	if err != nil {
		return err
	}
	s.ui.Success("Created %s: %s", cyan(rec.Identifier), rec.Title)
	if rec.URL != "" {
		s.ui.Info("%s", rec.URL)
	}
	return nil
}
