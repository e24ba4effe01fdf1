package cmd

import (
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"catalogs"},
	Short:   "List, create and delete catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the server's named catalogs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()

		catalogs, err := server.ListCatalogs(commandContext(cmd))
		if err != nil {
			return err
		}
		formatter.FormatList("Catalogs", catalogs)
		return nil
	},
}

var catalogCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()

		if _, err := server.CreateCatalog(commandContext(cmd), args[0]); err != nil {
			return err
		}
		formatter.FormatMessage("Created catalog " + args[0])
		return nil
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a catalog and all its repositories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server := newServer()
		defer server.Close()

		if err := server.DeleteCatalog(commandContext(cmd), args[0]); err != nil {
			return err
		}
		formatter.FormatMessage("Deleted catalog " + args[0])
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogCreateCmd, catalogDeleteCmd)
}
