package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/roosterteeth/schema"
)

// optionalRoots are the record types whose optional fields are listed.
var optionalRoots = []struct {
	name  string
	value any
}{
	{"channel", schema.Channel{}},
	{"series", schema.Series{}},
	{"season", schema.Season{}},
	{"episode", schema.Episode{}},
	{"video", schema.Video{}},
}

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the decoded record types",
}

var schemaOptionalCmd = &cobra.Command{
	Use:   "optional",
	Short: "List the fields the API may omit",
	Long: `List, per record type, the JSON paths that may be missing or null in a
response. Every other field is required and its absence is a decode error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := make(map[string][]string, len(optionalRoots))
		var sb strings.Builder
		for _, root := range optionalRoots {
			paths := schema.OptionalFields(root.value)
			fields[root.name] = paths

			fmt.Fprintf(&sb, "%s:\n", root.name)
			for _, p := range paths {
				fmt.Fprintf(&sb, "  %s\n", p)
			}
		}
		return render(cmd, fields, strings.TrimRight(sb.String(), "\n"))
	},
}

func init() {
	schemaCmd.AddCommand(schemaOptionalCmd)
	rootCmd.AddCommand(schemaCmd)
}
