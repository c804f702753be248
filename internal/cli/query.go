package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calumari/skuquery"
)

// NewQueryCommand creates the query-by-property command.
func NewQueryCommand() *cobra.Command {
	return newQueryCommand("query-by-property")
}

func newQueryCommand(name string) *cobra.Command {
	opts := DefaultOptions()
	formats, err := skuquery.NewRegistry(skuquery.Builtin())
	if err != nil {
		// builtin formats are statically valid
		panic(err)
	}
	hint := "Output formats: " + formatList(formats)

	cmd := &cobra.Command{
		Use:   name + " <skus-file> <property-name> [output-format]",
		Short: "List SKUs that have a property, wherever it is nested",
		Long: `Search every SKU for the property and report each SKU that has it,
along with where the property was first found and its value.

The property name is matched case-insensitively. Arrays are not searched.
` + hint + `

Examples:
  ` + name + ` /tmp/skus.json dialPlanSmsNodeProvisioned
  ` + name + ` /tmp/skus.json aiReceptionistSendSmsAllowed full
  ` + name + ` /tmp/skus.json transcriptsprovisioned names-only`,
		Args: rangeArgs(2, 3, hint),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := skuquery.DefaultFormat
			if len(args) == 3 {
				format = args[2]
			}
			if _, err := formats.Lookup(format); err != nil {
				return usageError(cmd, hint, err.Error())
			}

			c, err := loadCollection(cmd, args[0], opts)
			if err != nil {
				return err
			}
			rep := skuquery.FindFirstMatches(c, args[1])
			opts.logger(cmd.ErrOrStderr()).Debug("matched records",
				"property", args[1], "records", len(c), "matches", rep.Count, "format", format)
			return formats.Render(cmd.OutOrStdout(), format, rep)
		},
	}
	silence(cmd)
	opts.bind(cmd.Flags())
	return cmd
}

// formatList renders registered format names with the default first.
func formatList(r *skuquery.Registry) string {
	names := slices.DeleteFunc(r.Names(), func(n string) bool { return n == skuquery.DefaultFormat })
	return fmt.Sprintf("%s (default), %s", skuquery.DefaultFormat, strings.Join(names, ", "))
}
