package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/elentirmo/agraph-java-client/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an agraph.yaml config file",
	Long: `Write an agraph.yaml config file in the current directory, filled in from the
current flags and AGRAPH_* environment variables.

Examples:
  agraph init
  agraph init --server http://graph:10035 --user test --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	if !forceInit {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", configFile)
		}
	}

	out := *cfg
	if out.ServerURL == "" {
		out.ServerURL = cfg.URL()
		out.Host, out.Port = "", 0
	}
	if err := out.SaveConfig(configFile); err != nil {
		return &configError{err: fmt.Errorf("failed to create config file: %w", err)}
	}

	formatter.FormatMessage("Created: " + configFile)
	return nil
}
