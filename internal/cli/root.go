// Package cli wires configuration, the Linear adapter and the board
// controller into the linear-board command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/config"
	"github.com/roeyazroel/linear-board/internal/issues"
	"github.com/roeyazroel/linear-board/internal/linearapi"
	"github.com/roeyazroel/linear-board/internal/logger"
	"github.com/roeyazroel/linear-board/internal/tui"
)

// BuildInfo is stamped into the binary via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("linear-board %s (commit: %s, built: %s, %s/%s)",
		b.Version, b.Commit, b.Date, runtime.GOOS, runtime.GOARCH)
}

// deps are the collaborators commands construct their work from. Tests swap
// them for fakes.
type deps struct {
	ui         *UI
	stdin      io.Reader
	loadConfig func(path string) (config.Config, error)
	newService func(cfg config.Config) board.Service
	runTUI     func(b *board.Controller, cfg config.Config) error
	setKey     func(key string) error
	deleteKey  func() error
}

func defaultDeps() *deps {
	return &deps{
		ui:         NewUI(),
		stdin:      os.Stdin,
		loadConfig: config.Load,
		newService: newAdapter,
		runTUI: func(b *board.Controller, cfg config.Config) error {
			return tui.NewApp(b, cfg).Run()
		},
		setKey:    config.SetAPIKey,
		deleteKey: config.DeleteAPIKey,
	}
}

func newAdapter(cfg config.Config) board.Service {
	client := linearapi.NewClient(linearapi.ClientConfig{
		Token:    cfg.LinearAPIKey,
		Endpoint: cfg.APIEndpoint,
		Timeout:  cfg.Timeout,
	})
	return issues.NewAdapter(client, issues.AdapterOptions{
		TeamKey:             cfg.TeamKey,
		PageSize:            cfg.PageSize,
		RelationConcurrency: cfg.RelationConcurrency,
	})
}

// session holds state shared by one command invocation.
type session struct {
	*deps
	configPath string
	verbose    bool
}

// load resolves and validates configuration, then starts logging.
func (s *session) load() (config.Config, error) {
	cfg, err := s.loadConfig(s.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if s.verbose {
		logger.InitWriter(s.ui.ErrOut, logger.LevelDebug)
	} else if err := logger.Init(cfg.LogFile, logger.ParseLevel(cfg.LogLevel)); err != nil {
		return config.Config{}, err
	}
	logger.Debug("cli: configuration loaded endpoint=%s team=%s key_source=%s",
		cfg.APIEndpoint, cfg.TeamKey, cfg.KeySource)
	return cfg, nil
}

func (s *session) controller(cfg config.Config) *board.Controller {
	return board.New(s.newService(cfg), board.Options{
		AuthorTag:     cfg.AuthorTag,
		TagTitles:     cfg.TagTitles,
		DefaultStates: cfg.DefaultStates,
	})
}

// NewRootCmd builds the command tree. With no subcommand it starts the TUI.
func NewRootCmd(info BuildInfo) *cobra.Command {
	return newRootCmd(info, defaultDeps())
}

func newRootCmd(info BuildInfo, d *deps) *cobra.Command {
	s := &session{deps: d}

	root := &cobra.Command{
		Use:   "linear-board",
		Short: "Terminal board for Linear issues",
		Long: `linear-board shows the issues of one Linear team as a filterable board.
Edits are applied immediately and reverted if Linear rejects them.`,
		Version:           info.String(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := s.load()
			if err != nil {
				return err
			}
			defer logger.Close()

			logger.Info("cli: starting board version=%s", info.Version)
			ctrl := s.controller(cfg)
			defer ctrl.Close()
			return s.runTUI(ctrl, cfg)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetOut(d.ui.Out)
	root.SetErr(d.ui.ErrOut)

	root.PersistentFlags().StringVar(&s.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	root.PersistentFlags().BoolVar(&s.verbose, "verbose", false, "Log to stderr at debug level")

	root.AddCommand(
		newListCmd(s),
		newCreateCmd(s),
		newKeyCmd(s),
		newVersionCmd(info, d.ui),
	)
	return root
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, info BuildInfo) int {
	d := defaultDeps()
	return execute(ctx, newRootCmd(info, d), d.ui)
}

func execute(ctx context.Context, root *cobra.Command, ui *UI) int {
	if err := root.ExecuteContext(ctx); err != nil {
		ui.Error("%s", describe(err))
		return 1
	}
	return 0
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	if e, ok := issues.AsError(err); ok {
		return e.UserMessage()
	}
	if errors.Is(err, config.ErrMissingAPIKey) {
		return err.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}

func newVersionCmd(info BuildInfo, ui *UI) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(ui.Out, info.String())
		},
	}
}
