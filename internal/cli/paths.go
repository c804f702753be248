package cli

import (
	"github.com/spf13/cobra"

	"github.com/calumari/skuquery"
	"github.com/calumari/skuquery/internal/source"
)

// NewPathsCommand creates the find-property-paths command.
func NewPathsCommand() *cobra.Command {
	return newPathsCommand("find-property-paths")
}

func newPathsCommand(name string) *cobra.Command {
	opts := DefaultOptions()
	cmd := &cobra.Command{
		Use:   name + " <skus-file> <property-name>",
		Short: "Find every path where a property appears in SKU data",
		Long: `Search all SKUs and report every location where the property appears,
with the full dotted path, the spellings seen there, and how often.

The property name is matched case-insensitively. Arrays are not searched.

Example:
  ` + name + ` /tmp/skus.json transcriptsprovisioned`,
		Args: rangeArgs(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(cmd, args[0], args[1], opts)
		},
	}
	silence(cmd)
	opts.bind(cmd.Flags())
	return cmd
}

func runPaths(cmd *cobra.Command, path, property string, opts Options) error {
	c, err := loadCollection(cmd, path, opts)
	if err != nil {
		return err
	}
	rep := skuquery.EnumeratePaths(c, property)
	opts.logger(cmd.ErrOrStderr()).Debug("enumerated paths",
		"property", property, "paths", rep.UniquePaths, "occurrences", rep.TotalOccurrences)
	return skuquery.WriteJSON(cmd.OutOrStdout(), rep)
}

func loadCollection(cmd *cobra.Command, path string, opts Options) (skuquery.Collection, error) {
	srcOpts, err := opts.sourceOptions(opts.logger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, usageError(cmd, err.Error())
	}
	return source.Load(path, srcOpts...)
}
