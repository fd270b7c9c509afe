package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/issues"
	"github.com/roeyazroel/linear-board/internal/logger"
)

type listOptions struct {
	states     []string
	priorities []string
	labels     []string
	assignees  []string
	mine       bool
	allStates  bool
	output     string
}

func newListCmd(s *session) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the team's issues",
		Long: `List prints the issues the board would show, sorted by priority.
Without --state the configured default states are used; --all-states shows every state.
Repeated flags of one kind are OR-ed; different kinds are AND-ed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRun(cmd, s, opts)
		},
	}
	f := cmd.Flags()
	f.StringSliceVar(&opts.states, "state", nil, "Workflow state name or id")
	f.StringSliceVar(&opts.priorities, "priority", nil, "Priority: urgent, high, medium, low, none")
	f.StringSliceVar(&opts.labels, "label", nil, "Label name or id")
	f.StringSliceVar(&opts.assignees, "assignee", nil, `Assignee name, email, "me" or "none"`)
	f.BoolVar(&opts.mine, "mine", false, "Only issues whose title starts with the author tag")
	f.BoolVar(&opts.allStates, "all-states", false, "Ignore the default state filter")
	f.StringVarP(&opts.output, "output", "o", "table", "Output format: table, json or yaml")
	return cmd
}

func listRun(cmd *cobra.Command, s *session, opts listOptions) error {
	format := strings.ToLower(opts.output)
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	cfg, err := s.load()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctrl := s.controller(cfg)
	defer ctrl.Close()
	if err := ctrl.Refresh(cmd.Context()); err != nil {
		return err
	}
	tc, _ := ctrl.Team()
	if err := applyListFilters(ctrl, tc, opts); err != nil {
		return err
	}

	records := ctrl.Visible()
	logger.Debug("cli: list visible=%d", len(records))
	switch format {
	case "json":
		enc := json.NewEncoder(s.ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml":
		enc := yaml.NewEncoder(s.ui.Out)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(records) == 0 {
		s.ui.Info("No issues found.")
		return nil
	}
	table := s.ui.Table([]string{"ID", "Title", "Status", "Priority", "Assignee", "Labels"})
	for _, r := range records {
		assignee := r.AssigneeName
		if assignee == "" {
			assignee = faint("-")
		}
		_ = table.Append([]string{
			cyan(r.Identifier),
			r.Title,
			StateColor(r.StateName),
			PriorityColor(r.Priority),
			assignee,
			labelList(r.Labels),
		})
	}
	return table.Render()
}

func applyListFilters(ctrl *board.Controller, tc issues.TeamContext, opts listOptions) error {
	if opts.allStates {
		if err := ctrl.SetFilter(board.DimState, nil); err != nil {
			return err
		}
	}
	if len(opts.states) > 0 {
		ids, err := resolveStates(tc, opts.states)
		if err != nil {
			return err
		}
		if err := ctrl.SetFilter(board.DimState, ids); err != nil {
			return err
		}
	}
	if len(opts.priorities) > 0 {
		if err := ctrl.SetFilter(board.DimPriority, opts.priorities); err != nil {
			return err
		}
	}
	if len(opts.labels) > 0 {
		ids, err := resolveLabels(tc, opts.labels)
		if err != nil {
			return err
		}
		if err := ctrl.SetFilter(board.DimLabel, ids); err != nil {
			return err
		}
	}
	if len(opts.assignees) > 0 {
		ids, err := resolveAssignees(tc, opts.assignees)
		if err != nil {
			return err
		}
		if err := ctrl.SetFilter(board.DimAssignee, ids); err != nil {
			return err
		}
	}
	ctrl.SetMineOnly(opts.mine)
	return nil
}

func labelList(labels []issues.Label) string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}
