package kafkaview

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/louisbranch/kafkaview/internal/services/console/api"
)

func newMessagesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Search, send and review topic messages",
	}
	cmd.AddCommand(
		newMessagesSearchCmd(opts),
		newMessagesSendCmd(opts),
		newMessagesHistoryCmd(opts),
	)
	return cmd
}

func newMessagesSearchCmd(opts *options) *cobra.Command {
	var (
		query                  api.MessageQuery
		startTime, endTime     int64
		startOffset, endOffset int64
	)
	cmd := &cobra.Command{
		Use:   "search <cluster-id> <topic>",
		Short: "Search a topic's messages",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("start-time") {
			query.StartTime = &startTime
		}
		if flags.Changed("end-time") {
			query.EndTime = &endTime
		}
		if flags.Changed("start-offset") {
			query.StartOffset = &startOffset
		}
		if flags.Changed("end-offset") {
			query.EndOffset = &endOffset
		}
		result, err := rt.client.TopicMessages(ctx, clusterID, args[0], query)
		if err != nil {
			return err
		}
		table := rt.table([]string{"Partition", "Offset", "Timestamp", "Key", "Value"})
		for _, message := range result.List {
			table.Append([]string{
				strconv.Itoa(message.Partition),
				strconv.FormatInt(message.Offset, 10),
				formatMillis(message.Timestamp),
				message.Key,
				message.Value,
			})
		}
		table.Render()
		rt.pageFooter(result.Total, result.Page, result.PageSize)
		return nil
	})

	flags := cmd.Flags()
	flags.IntSliceVar(&query.Partitions, "partition", nil, "partition to scan, repeatable")
	flags.Int64Var(&startTime, "start-time", 0, "earliest timestamp in epoch milliseconds")
	flags.Int64Var(&endTime, "end-time", 0, "latest timestamp in epoch milliseconds")
	flags.Int64Var(&startOffset, "start-offset", 0, "first offset")
	flags.Int64Var(&endOffset, "end-offset", 0, "last offset")
	flags.StringVar(&query.Key, "key", "", "exact key")
	flags.StringVar(&query.Keyword, "keyword", "", "value substring")
	flags.IntVar(&query.Limit, "limit", 0, "maximum messages scanned per partition")
	flags.IntVar(&query.Page, "page", 0, "page number")
	flags.IntVar(&query.PageSize, "page-size", 0, "page size")
	flags.StringVar(&query.SortField, "sort-field", "", "sort field")
	flags.StringVar(&query.SortOrder, "sort-order", "", "asc or desc")
	flags.StringVar(&query.ScanDirection, "scan-direction", "", "forward or backward")
	flags.IntVar(&query.Timeout, "scan-timeout", 0, "scan timeout in milliseconds")
	flags.IntVar(&query.RetryCount, "retry-count", 0, "empty poll retries")
	return cmd
}

func newMessagesSendCmd(opts *options) *cobra.Command {
	var (
		req       api.SendMessageRequest
		partition int
	)
	cmd := &cobra.Command{
		Use:   "send <cluster-id> <topic>",
		Short: "Produce a message",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
		if cmd.Flags().Changed("partition") {
			req.Partition = &partition
		}
		if err := rt.client.SendTopicMessage(ctx, clusterID, args[0], req); err != nil {
			return err
		}
		rt.printf("message sent to %s\n", args[0])
		return nil
	})
	flags := cmd.Flags()
	flags.IntVar(&partition, "partition", 0, "target partition; the backend picks one when unset")
	flags.StringVar(&req.Key, "key", "", "message key")
	flags.StringVar(&req.Value, "value", "", "message value")
	flags.IntVar(&req.Count, "count", 0, "number of copies to send")
	return cmd
}

func newMessagesHistoryCmd(opts *options) *cobra.Command {
	var page api.Page
	cmd := &cobra.Command{
		Use:   "history <cluster-id> <topic>",
		Short: "List messages sent through the console",
		Args:  cobra.ExactArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			result, err := rt.client.MessageHistory(ctx, clusterID, args[0], page)
			if err != nil {
				return err
			}
			table := rt.table([]string{"ID", "Partition", "Key", "Value", "Created"})
			for _, item := range result.List {
				partition := "-"
				if item.PartitionID != nil {
					partition = strconv.Itoa(*item.PartitionID)
				}
				table.Append([]string{strconv.FormatInt(item.ID, 10), partition, item.KeyContent, item.ValueContent, item.CreatedAt})
			}
			table.Render()
			rt.pageFooter(result.Total, result.Page, result.PageSize)
			return nil
		}),
	}
	bindPageFlags(cmd, &page)
	return cmd
}

func formatMillis(value int64) string {
	if value <= 0 {
		return "-"
	}
	return time.UnixMilli(value).UTC().Format(time.RFC3339)
}
