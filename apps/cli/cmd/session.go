package cmd

import (
	"github.com/spf13/cobra"
)

var (
	sessionAutocommitFlag bool
	sessionKeepFlag       bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Work with dedicated sessions",
}

var sessionOpenCmd = &cobra.Command{
	Use:   "open <repo>",
	Short: "Open a session on a repository and print its URL",
	Long: `Open a dedicated session on a repository and print its URL. The session is
closed again unless --keep is given, in which case it lives until its lifetime
expires.

Examples:
  agraph session open people
  agraph session open people --keep --autocommit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()
		ctx := commandContext(cmd)

		repo := currentCatalog(server).OpenRepository(args[0])
		session, err := repo.OpenSession(ctx, sessionAutocommitFlag)
		if err != nil {
			return err
		}
		logger.Info().Str("store", repo.Spec()).Str("session", session.URL()).Msg("session opened")

		if err := session.Ping(ctx); err != nil {
			_ = session.Close(ctx)
			return err
		}
		formatter.FormatValue("session", session.URL())

		if sessionKeepFlag {
			return nil
		}
		return session.Close(ctx)
	},
}

func init() {
	sessionOpenCmd.Flags().BoolVar(&sessionAutocommitFlag, "autocommit", false, "Open the session in autocommit mode")
	sessionOpenCmd.Flags().BoolVar(&sessionKeepFlag, "keep", false, "Leave the session open")
	sessionCmd.AddCommand(sessionOpenCmd)
}
