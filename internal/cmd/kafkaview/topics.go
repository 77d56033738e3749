package kafkaview

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/louisbranch/kafkaview/internal/services/console/api"
	"github.com/louisbranch/kafkaview/internal/services/console/routepath"
)

func newTopicsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Inspect and manage a cluster's topics",
	}
	cmd.AddCommand(
		newTopicsListCmd(opts),
		newTopicCreateCmd(opts),
		newTopicDeleteCmd(opts),
		newTopicPartitionsCmd(opts),
		newTopicConfigsCmd(opts),
		newTopicSetConfigCmd(opts),
		newTopicProducersCmd(opts),
		newTopicVolumeCmd(opts),
		newTopicsVolumesCmd(opts),
		newTopicsBackfillCmd(opts),
	)
	return cmd
}

func bindPageFlags(cmd *cobra.Command, page *api.Page) {
	cmd.Flags().IntVar(&page.Page, "page", api.DefaultPage, "page number")
	cmd.Flags().IntVar(&page.PageSize, "page-size", api.DefaultPageSize, "page size")
}

// clusterCommand parses the leading cluster id and runs fn behind the guard
// of that cluster's route.
func clusterCommand(opts *options, fn func(ctx context.Context, rt *runtime, clusterID int64, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return opts.withSession(cmd, routepath.Cluster(id), func(ctx context.Context, rt *runtime) error {
			return fn(ctx, rt, id, args[1:])
		})
	}
}

func newTopicsListCmd(opts *options) *cobra.Command {
	var query api.TopicQuery
	cmd := &cobra.Command{
		Use:   "list <cluster-id>",
		Short: "List topics",
		Args:  cobra.ExactArgs(1),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, _ []string) error {
			page, err := rt.client.ListTopics(ctx, clusterID, query)
			if err != nil {
				return err
			}
			table := rt.table([]string{rt.loc.Label("name"), rt.loc.Label("partitions"), "Replicas", rt.loc.Label("messages"), rt.loc.Label("groups")})
			for _, topic := range page.List {
				table.Append([]string{
					topic.Name,
					strconv.Itoa(topic.PartitionCount),
					strconv.Itoa(topic.ReplicationFactor),
					rt.loc.Number(topic.MessageCount),
					strconv.Itoa(topic.ConsumerGroupCount),
				})
			}
			table.Render()
			rt.pageFooter(page.Total, page.Page, page.PageSize)
			return nil
		}),
	}
	cmd.Flags().StringVar(&query.Keyword, "keyword", "", "name filter")
	bindPageFlags(cmd, &query.Page)
	return cmd
}

func newTopicCreateCmd(opts *options) *cobra.Command {
	req := api.CreateTopicRequest{Partitions: 1, ReplicationFactor: 1}
	cmd := &cobra.Command{
		Use:   "create <cluster-id> <topic>",
		Short: "Create a topic",
		Args:  cobra.ExactArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			req.Name = args[0]
			if err := rt.client.CreateTopic(ctx, clusterID, req); err != nil {
				return err
			}
			rt.printf("topic %s created\n", req.Name)
			return nil
		}),
	}
	cmd.Flags().IntVar(&req.Partitions, "partitions", req.Partitions, "partition count")
	cmd.Flags().IntVar(&req.ReplicationFactor, "replication-factor", req.ReplicationFactor, "replication factor")
	return cmd
}

func newTopicDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <cluster-id> <topic>",
		Short: "Delete a topic",
		Args:  cobra.ExactArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			if err := rt.client.DeleteTopic(ctx, clusterID, args[0]); err != nil {
				return err
			}
			rt.printf("topic %s deleted\n", args[0])
			return nil
		}),
	}
}

func newTopicPartitionsCmd(opts *options) *cobra.Command {
	var page api.Page
	cmd := &cobra.Command{
		Use:   "partitions <cluster-id> <topic>",
		Short: "List a topic's partitions",
		Args:  cobra.ExactArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			result, err := rt.client.TopicPartitions(ctx, clusterID, args[0], page)
			if err != nil {
				return err
			}
			table := rt.table([]string{"Partition", "Leader", "Replicas", "ISR", "Start", "End", rt.loc.Label("messages")})
			for _, p := range result.List {
				table.Append([]string{
					strconv.Itoa(p.Partition),
					p.Leader,
					strings.Join(p.Replicas, ","),
					strings.Join(p.ISR, ","),
					strconv.FormatInt(p.StartOffset, 10),
					strconv.FormatInt(p.EndOffset, 10),
					rt.loc.Number(p.MessageCount),
				})
			}
			table.Render()
			rt.pageFooter(result.Total, result.Page, result.PageSize)
			return nil
		}),
	}
	bindPageFlags(cmd, &page)
	return cmd
}

func newTopicConfigsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "configs <cluster-id> <topic>",
		Short: "Show a topic's configuration",
		Args:  cobra.ExactArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			entries, err := rt.client.TopicConfigs(ctx, clusterID, args[0])
			if err != nil {
				return err
			}
			table := rt.table([]string{rt.loc.Label("name"), "Value", "Default", "ReadOnly"})
			for _, entry := range entries {
				value := entry.Value
				if entry.Sensitive {
					value = "******"
				}
				table.Append([]string{entry.Name, value, strconv.FormatBool(entry.Default), strconv.FormatBool(entry.ReadOnly)})
			}
			table.Render()
			return nil
		}),
	}
}

func newTopicSetConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set-config <cluster-id> <topic> <key=value>...",
		Short: "Override topic configuration values",
		Args:  cobra.MinimumNArgs(3),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			configs, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			if err := rt.client.UpdateTopicConfigs(ctx, clusterID, args[0], configs); err != nil {
				return err
			}
			keys := lo.Keys(configs)
			sort.Strings(keys)
			rt.printf("topic %s updated: %s\n", args[0], strings.Join(keys, ", "))
			return nil
		}),
	}
}

func parseAssignments(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid config %q, want key=value", value)
		}
		out[key] = val
	}
	return out, nil
}

func newTopicProducersCmd(opts *options) *cobra.Command {
	var page api.Page
	cmd := &cobra.Command{
		Use:   "producers <cluster-id> <topic>",
		Short: "List a topic's active producers",
		Args:  cobra.ExactArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			result, err := rt.client.TopicProducers(ctx, clusterID, args[0], page)
			if err != nil {
				return err
			}
			table := rt.table([]string{"Partition", "Producer", "Epoch", "Last Sequence", "Last Timestamp", "Txn Start"})
			for _, p := range result.List {
				table.Append([]string{
					strconv.Itoa(p.Partition),
					strconv.FormatInt(p.ProducerID, 10),
					strconv.Itoa(p.ProducerEpoch),
					strconv.FormatInt(p.LastSequence, 10),
					strconv.FormatInt(p.LastTimestamp, 10),
					formatOptionalInt64(p.CurrentTransactionStartOffset),
				})
			}
			table.Render()
			rt.pageFooter(result.Total, result.Page, result.PageSize)
			return nil
		}),
	}
	bindPageFlags(cmd, &page)
	return cmd
}

func newTopicVolumeCmd(opts *options) *cobra.Command {
	days := api.DefaultVolumeDays
	cmd := &cobra.Command{
		Use:   "volume <cluster-id> <topic>",
		Short: "Show a topic's daily produced counts, oldest first",
		Args:  cobra.ExactArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			counts, err := rt.client.TopicVolume(ctx, clusterID, args[0], days)
			if err != nil {
				return err
			}
			rt.printf("%s\n", formatCounts(rt, counts))
			return nil
		}),
	}
	cmd.Flags().IntVar(&days, "days", days, "number of days")
	return cmd
}

func newTopicsVolumesCmd(opts *options) *cobra.Command {
	days := api.DefaultVolumeDays
	cmd := &cobra.Command{
		Use:   "volumes <cluster-id> <topic>...",
		Short: "Show daily produced counts of several topics",
		Args:  cobra.MinimumNArgs(2),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			volumes, err := rt.client.TopicsVolume(ctx, clusterID, args, days)
			if err != nil {
				return err
			}
			names := lo.Keys(volumes)
			sort.Strings(names)
			table := rt.table([]string{rt.loc.Label("name"), rt.loc.Label("messages")})
			for _, name := range names {
				table.Append([]string{name, formatCounts(rt, volumes[name])})
			}
			table.Render()
			return nil
		}),
	}
	cmd.Flags().IntVar(&days, "days", days, "number of days")
	return cmd
}

func newTopicsBackfillCmd(opts *options) *cobra.Command {
	req := api.BackfillRequest{Days: api.DefaultVolumeDays}
	cmd := &cobra.Command{
		Use:   "backfill <cluster-id> [topic...]",
		Short: "Recompute volume history",
		Args:  cobra.MinimumNArgs(1),
		RunE: clusterCommand(opts, func(ctx context.Context, rt *runtime, clusterID int64, args []string) error {
			req.Topics = args
			if !req.All && len(req.Topics) == 0 {
				return fmt.Errorf("name at least one topic or pass --all")
			}
			if err := rt.client.BackfillVolumes(ctx, clusterID, req); err != nil {
				return err
			}
			rt.printf("%s: %d days\n", rt.loc.Label("backfill"), req.Days)
			return nil
		}),
	}
	cmd.Flags().IntVar(&req.Days, "days", req.Days, "number of days")
	cmd.Flags().BoolVar(&req.All, "all", false, "backfill every topic of the cluster")
	return cmd
}

func formatCounts(rt *runtime, counts []int64) string {
	return strings.Join(lo.Map(counts, func(count int64, _ int) string {
		return rt.loc.Number(count)
	}), " ")
}
