package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var blankNodesCountFlag int

var blankNodesCmd = &cobra.Command{
	Use:   "blank-nodes <repo>",
	Short: "Allocate blank node ids",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if blankNodesCountFlag < 1 {
			return fmt.Errorf("--count must be at least 1")
		}

		server := newServer()
		defer server.Close()

		nodes, err := currentCatalog(server).OpenRepository(args[0]).BlankNodes(commandContext(cmd), blankNodesCountFlag)
		if err != nil {
			return err
		}
		formatter.FormatList("", nodes)
		return nil
	},
}

func init() {
	blankNodesCmd.Flags().IntVarP(&blankNodesCountFlag, "count", "n", 1, "Number of blank nodes")
}
