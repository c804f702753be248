// Package cli implements the skuquery command-line tools.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates the skuquery command, which carries both tools as
// subcommands.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skuquery",
		Short: "Case-insensitive property search over SKU data",
		Long: `skuquery searches SKU records for a named property regardless of
where it is nested or how its name is cased.

Data files are JSON, YAML, or JS files that bind the collection to a name
("skus" by default); they are parsed, never executed.`,
		Version: Version,
	}
	silence(cmd)

	cmd.AddCommand(newPathsCommand("paths"))
	cmd.AddCommand(newQueryCommand("query"))

	return cmd
}
