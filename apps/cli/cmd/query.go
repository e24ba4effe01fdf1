package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var queryFileFlag string

var queryCmd = &cobra.Command{
	Use:   "query <repo> [sparql]",
	Short: "Run a SPARQL query",
	Long: `Run a SPARQL SELECT or ASK query against a repository. The query is taken from
the argument, from --file, or from stdin when neither is given.

Examples:
  agraph query people 'SELECT ?s WHERE { ?s ?p ?o } LIMIT 10'
  agraph query people 'ASK { ?s a <http://xmlns.com/foaf/0.1/Person> }'
  agraph query people -f report.rq -o json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: queryCommand,
}

func init() {
	queryCmd.Flags().StringVarP(&queryFileFlag, "file", "f", "", "Read the query from a file")
}

func queryCommand(cmd *cobra.Command, args []string) error {
	query, err := readQuery(cmd, args[1:])
	if err != nil {
		return err
	}

	server := newServer()
	defer server.Close()
	repo := currentCatalog(server).OpenRepository(args[0])
	ctx := commandContext(cmd)

	if isAsk(query) {
		ok, err := repo.Ask(ctx, query)
		if err != nil {
			return err
		}
		formatter.FormatValue("result", ok)
		return nil
	}

	result, err := repo.Query(ctx, query)
	if err != nil {
		return err
	}
	formatter.FormatTuples(result)
	return nil
}

func readQuery(cmd *cobra.Command, rest []string) (string, error) {
	switch {
	case len(rest) == 1:
		return rest[0], nil
	case queryFileFlag != "":
		data, err := os.ReadFile(queryFileFlag)
		if err != nil {
			return "", fmt.Errorf("reading query: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading query: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("no query given")
		}
		return string(data), nil
	}
}

// isAsk reports whether the query form is ASK, skipping PREFIX and BASE lines.
func isAsk(query string) bool {
	for _, line := range strings.Split(query, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "PREFIX", "BASE":
			continue
		case "ASK":
			return true
		default:
			return false
		}
	}
	return false
}
