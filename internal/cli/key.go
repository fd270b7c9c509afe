package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roeyazroel/linear-board/internal/config"
)

func newKeyCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Linear API key stored in the OS keyring",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set [api-key]",
			Short: "Store an API key (read from stdin when omitted)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				key := ""
				if len(args) == 1 {
					key = args[0]
				} else {
					line, err := bufio.NewReader(s.stdin).ReadString('\n')
					if err != nil && line == "" {
						return fmt.Errorf("reading api key from stdin: %w", err)
					}
					key = line
				}
				key = strings.TrimSpace(key)
				if key == "" {
					return errors.New("api key is empty")
				}
				if err := s.setKey(key); err != nil {
					return err
				}
				s.ui.Success("API key stored in the OS keyring")
				if !strings.HasPrefix(key, "lin_api_") {
					s.ui.Warning("Linear personal API keys usually start with lin_api_")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Remove the stored API key",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				if err := s.deleteKey(); err != nil {
					return err
				}
				s.ui.Success("API key removed")
				s.ui.Info("%s still takes precedence when set", config.LinearAPIKeyEnv)
				return nil
			},
		},
	)
	return cmd
}
