package kafkaview

import (
	"context"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/louisbranch/kafkaview/internal/services/console/api"
)

func newGroupsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Inspect consumer groups",
	}
	cmd.AddCommand(newGroupsListCmd(opts))
	return cmd
}

func newGroupsListCmd(opts *options) *cobra.Command {
	var query api.GroupQuery
	cmd := &cobra.Command{
		Use:   "list <cluster-id>",
		Short: "List consumer groups",
		Args:  cobra.ExactArgs(1),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, _ []string) error {
			page, err := rt.client.ListConsumerGroups(ctx, clusterID, query)
			if err != nil {
				return err
			}
			table := rt.table([]string{"Group", "State", "Members", rt.loc.Label("topics"), "Lag"})
			for _, group := range page.List {
				topics := lo.Uniq(lo.FlatMap(group.Members, func(member api.MemberInfo, _ int) []string {
					return member.Assignment
				}))
				table.Append([]string{
					group.GroupID,
					group.State,
					strconv.Itoa(len(group.Members)),
					strings.Join(topics, ","),
					formatOptionalInt64(group.TotalLag),
				})
			}
			table.Render()
			rt.pageFooter(page.Total, page.Page, page.PageSize)
			return nil
		}),
	}
	cmd.Flags().StringVar(&query.Keyword, "keyword", "", "group id filter")
	cmd.Flags().StringVar(&query.Topic, "topic", "", "only groups consuming this topic")
	bindPageFlags(cmd, &query.Page)
	return cmd
}
