package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/elentirmo/agraph-java-client/packages/agraph"
)

var (
	repoTempFlag   bool
	repoPrefixFlag string
)

var repoCmd = &cobra.Command{
	Use:     "repo",
	Aliases: []string{"repository", "repos"},
	Short:   "Manage repositories in the current catalog",
	Long: `Manage repositories in the catalog named by --catalog, or the root catalog.

Examples:
  agraph repo list
  agraph repo create people
  agraph repo create --temp --prefix scratch
  agraph repo bulk people on
  agraph repo dupes people spog
  agraph --catalog sales repo size orders`,
}

// withRepository runs fn against the repository named by the first argument.
func withRepository(fn func(cmd *cobra.Command, repo *agraph.Repository, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()
		return fn(cmd, currentCatalog(server).OpenRepository(args[0]), args[1:])
	}
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List repositories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()

		ids, err := currentCatalog(server).ListRepositories(commandContext(cmd))
		if err != nil {
			return err
		}
		formatter.FormatList("Repositories", ids)
		return nil
	},
}

var repoCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a repository, or a randomly named one with --temp",
	Args: func(cmd *cobra.Command, args []string) error {
		if repoTempFlag {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()

		catalog := currentCatalog(server)
		var repo *agraph.Repository
		var err error
		if repoTempFlag {
			repo, err = catalog.CreateTempRepository(commandContext(cmd), repoPrefixFlag)
		} else {
			repo, err = catalog.CreateRepository(commandContext(cmd), args[0])
		}
		if err != nil {
			return err
		}
		formatter.FormatMessage("Created repository " + repo.ID())
		return nil
	},
}

var repoDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()

		if err := currentCatalog(server).DeleteRepository(commandContext(cmd), args[0]); err != nil {
			return err
		}
		formatter.FormatMessage("Deleted repository " + args[0])
		return nil
	},
}

var repoSizeCmd = &cobra.Command{
	Use:   "size <name>",
	Short: "Print the number of statements",
	Args:  cobra.ExactArgs(1),
	RunE: withRepository(func(cmd *cobra.Command, repo *agraph.Repository, _ []string) error {
		n, err := repo.Size(commandContext(cmd))
		if err != nil {
			return err
		}
		formatter.FormatValue("size", n)
		return nil
	}),
}

var repoWritableCmd = &cobra.Command{
	Use:   "writable <name>",
	Short: "Report whether the repository accepts writes",
	Args:  cobra.ExactArgs(1),
	RunE: withRepository(func(cmd *cobra.Command, repo *agraph.Repository, _ []string) error {
		ok, err := repo.IsWritable(commandContext(cmd))
		if err != nil {
			return err
		}
		formatter.FormatValue("writable", ok)
		return nil
	}),
}

var repoBulkCmd = &cobra.Command{
	Use:   "bulk <name> [on|off]",
	Short: "Show or set bulk load mode",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withRepository(func(cmd *cobra.Command, repo *agraph.Repository, rest []string) error {
		ctx := commandContext(cmd)
		if len(rest) == 1 {
			on, err := parseOnOff(rest[0])
			if err != nil {
				return err
			}
			if err := repo.SetBulkMode(ctx, on); err != nil {
				return err
			}
		}
		on, err := repo.IsBulkMode(ctx)
		if err != nil {
			return err
		}
		formatter.FormatValue("bulkMode", on)
		return nil
	}),
}

var repoDupesCmd = &cobra.Command{
	Use:   "dupes <name> [false|spo|spog]",
	Short: "Show or set the duplicate suppression policy",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withRepository(func(cmd *cobra.Command, repo *agraph.Repository, rest []string) error {
		ctx := commandContext(cmd)
		if len(rest) == 1 {
			if err := repo.SetDuplicateSuppressionPolicy(ctx, rest[0]); err != nil {
				return err
			}
		}
		policy, err := repo.DuplicateSuppressionPolicy(ctx)
		if err != nil {
			return err
		}
		formatter.FormatValue("duplicateSuppression", policy)
		return nil
	}),
}

var repoCheckpointCmd = &cobra.Command{
	Use:   "checkpoint <name>",
	Short: "Force a checkpoint",
	Args:  cobra.ExactArgs(1),
	RunE: withRepository(func(cmd *cobra.Command, repo *agraph.Repository, _ []string) error {
		if err := repo.ForceCheckpoint(commandContext(cmd)); err != nil {
			return err
		}
		formatter.FormatMessage("Checkpoint written for " + repo.ID())
		return nil
	}),
}

var repoExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write all statements as N-Quads to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: withRepository(func(cmd *cobra.Command, repo *agraph.Repository, _ []string) error {
		stream, err := repo.ExportStatements(commandContext(cmd))
		if err != nil {
			return err
		}
		defer stream.Close()

		if _, err := io.Copy(cmd.OutOrStdout(), stream); err != nil {
			return fmt.Errorf("exporting %s: %w", repo.ID(), err)
		}
		return nil
	}),
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
	return b, nil
}

func init() {
	repoCreateCmd.Flags().BoolVar(&repoTempFlag, "temp", false, "Create a randomly named repository")
	repoCreateCmd.Flags().StringVar(&repoPrefixFlag, "prefix", "temp", "Name prefix for --temp")

	repoCmd.AddCommand(
		repoListCmd,
		repoCreateCmd,
		repoDeleteCmd,
		repoSizeCmd,
		repoWritableCmd,
		repoBulkCmd,
		repoDupesCmd,
		repoCheckpointCmd,
		repoExportCmd,
	)
}
