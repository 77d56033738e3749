package kafkaview

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/louisbranch/kafkaview/internal/platform/i18n"
	"github.com/louisbranch/kafkaview/internal/platform/i18n/catalog"
)

func newLabelsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Print the bilingual label catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc := i18n.NewLabeler(opts.locale)
			table := tablewriter.NewWriter(opts.streams.Out)
			table.SetHeader([]string{"Key", "Label", fmt.Sprintf("T (%s)", loc.Locale())})
			table.SetAutoFormatHeaders(false)
			table.SetBorder(false)
			for _, key := range catalog.Default().Keys("labels") {
				table.Append([]string{key, loc.Label(key), loc.T(key)})
			}
			table.Render()
			return nil
		},
	}
}
