package cmd

import (
	"github.com/spf13/cobra"
)

var versionRemoteFlag bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the client version. With --remote, also ask the server for its version.

Examples:
  agraph version
  agraph version --remote --server http://localhost:10035`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printf(cmd, "agraph version %s\n", version)
		printf(cmd, "Built: %s\n", buildTime)
		if !versionRemoteFlag {
			return nil
		}

		server := newServer()
		defer server.Close()

		v, err := server.Version(commandContext(cmd))
		if err != nil {
			return err
		}
		formatter.FormatValue("server", v)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionRemoteFlag, "remote", "r", false, "Also print the server version")
}
