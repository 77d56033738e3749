package mcp

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"

	"github.com/louisbranch/kafkaview/internal/services/console/api"
)

// Backend is the slice of api.Client the tools call.
type Backend interface {
	ListClusters(ctx context.Context) ([]api.ClusterInfo, error)
	ListTopics(ctx context.Context, clusterID int64, query api.TopicQuery) (api.PageResult[api.TopicInfo], error)
	TopicConfigs(ctx context.Context, clusterID int64, name string) ([]api.TopicConfigEntry, error)
	ListConsumerGroups(ctx context.Context, clusterID int64, query api.GroupQuery) (api.PageResult[api.ConsumerGroupInfo], error)
	TopicVolume(ctx context.Context, clusterID int64, name string, days int) ([]int64, error)
}

// ClusterListInput is empty; cluster_list takes no arguments.
type ClusterListInput struct{}

// ClusterSummary is one configured cluster without credentials.
type ClusterSummary struct {
	ID               int64  `json:"id" jsonschema:"cluster identifier"`
	Name             string `json:"name" jsonschema:"cluster display name"`
	BootstrapServers string `json:"bootstrap_servers" jsonschema:"comma separated broker addresses"`
	KafkaVersion     string `json:"kafka_version,omitempty" jsonschema:"broker version reported by the backend"`
	SecurityProtocol string `json:"security_protocol,omitempty" jsonschema:"PLAINTEXT, SASL_PLAINTEXT, SASL_SSL or SSL"`
}

// ClusterListResult is the cluster_list output.
type ClusterListResult struct {
	Clusters []ClusterSummary `json:"clusters" jsonschema:"configured clusters"`
}

// ClusterListTool defines the cluster_list tool.
func ClusterListTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "cluster_list",
		Description: "Lists the Kafka clusters configured in the console.",
	}
}

// ClusterListHandler lists clusters. Credentials are never returned.
func ClusterListHandler(backend Backend) sdkmcp.ToolHandlerFor[ClusterListInput, ClusterListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ClusterListInput) (*sdkmcp.CallToolResult, ClusterListResult, error) {
		callCtx, requestID := newCallContext(ctx)
		clusters, err := backend.ListClusters(callCtx)
		if err != nil {
			return nil, ClusterListResult{}, toolError("cluster list", err)
		}
		return callToolResult(requestID), ClusterListResult{Clusters: lo.Map(clusters, toClusterSummary)}, nil
	}
}

func toClusterSummary(cluster api.ClusterInfo, _ int) ClusterSummary {
	return ClusterSummary{
		ID:               cluster.ID,
		Name:             cluster.Name,
		BootstrapServers: cluster.BootstrapServers,
		KafkaVersion:     cluster.KafkaVersion,
		SecurityProtocol: cluster.SecurityProtocol,
	}
}

// TopicListInput selects a page of topics.
type TopicListInput struct {
	ClusterID int64  `json:"cluster_id" jsonschema:"cluster identifier"`
	Keyword   string `json:"keyword,omitempty" jsonschema:"optional topic name filter"`
	Page      int    `json:"page,omitempty" jsonschema:"1-based page number, defaults to 1"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"page size, defaults to 10"`
}

// TopicSummary is one topic row.
type TopicSummary struct {
	Name               string `json:"name" jsonschema:"topic name"`
	PartitionCount     int    `json:"partition_count" jsonschema:"number of partitions"`
	ReplicationFactor  int    `json:"replication_factor" jsonschema:"replicas per partition"`
	MessageCount       int64  `json:"message_count" jsonschema:"messages currently retained"`
	ConsumerGroupCount int    `json:"consumer_group_count" jsonschema:"groups consuming the topic"`
}

// TopicListResult is the topic_list output.
type TopicListResult struct {
	Topics   []TopicSummary `json:"topics" jsonschema:"topics on this page"`
	Total    int64          `json:"total" jsonschema:"total matching topics"`
	Page     int            `json:"page" jsonschema:"returned page number"`
	PageSize int            `json:"page_size" jsonschema:"returned page size"`
}

// TopicListTool defines the topic_list tool.
func TopicListTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "topic_list",
		Description: "Lists topics of a cluster, one page at a time, optionally filtered by keyword.",
	}
}

// TopicListHandler lists one page of topics.
func TopicListHandler(backend Backend) sdkmcp.ToolHandlerFor[TopicListInput, TopicListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input TopicListInput) (*sdkmcp.CallToolResult, TopicListResult, error) {
		if input.ClusterID <= 0 {
			return nil, TopicListResult{}, fmt.Errorf("cluster_id is required")
		}
		callCtx, requestID := newCallContext(ctx)
		page, err := backend.ListTopics(callCtx, input.ClusterID, api.TopicQuery{
			Page:    api.Page{Page: input.Page, PageSize: input.PageSize},
			Keyword: strings.TrimSpace(input.Keyword),
		})
		if err != nil {
			return nil, TopicListResult{}, toolError("topic list", err)
		}
		result := TopicListResult{
			Topics: lo.Map(page.List, func(topic api.TopicInfo, _ int) TopicSummary {
				return TopicSummary{
					Name:               topic.Name,
					PartitionCount:     topic.PartitionCount,
					ReplicationFactor:  topic.ReplicationFactor,
					MessageCount:       topic.MessageCount,
					ConsumerGroupCount: topic.ConsumerGroupCount,
				}
			}),
			Total:    page.Total,
			Page:     page.Page,
			PageSize: page.PageSize,
		}
		return callToolResult(requestID), result, nil
	}
}

// TopicConfigsInput names one topic.
type TopicConfigsInput struct {
	ClusterID int64  `json:"cluster_id" jsonschema:"cluster identifier"`
	Topic     string `json:"topic" jsonschema:"topic name"`
	// NonDefault drops entries still at the broker default.
	NonDefault bool `json:"non_default,omitempty" jsonschema:"only return entries overridden on the topic"`
}

// TopicConfigValue is one topic configuration entry. Sensitive values are
// masked.
type TopicConfigValue struct {
	Name     string `json:"name" jsonschema:"config key"`
	Value    string `json:"value" jsonschema:"current value"`
	Default  bool   `json:"default" jsonschema:"whether the value is the broker default"`
	ReadOnly bool   `json:"read_only" jsonschema:"whether the entry can be changed"`
}

// TopicConfigsResult is the topic_configs output.
type TopicConfigsResult struct {
	Topic   string             `json:"topic" jsonschema:"topic name"`
	Configs []TopicConfigValue `json:"configs" jsonschema:"configuration entries"`
}

// TopicConfigsTool defines the topic_configs tool.
func TopicConfigsTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "topic_configs",
		Description: "Returns the configuration entries of a topic. Sensitive values are masked.",
	}
}

// TopicConfigsHandler reads a topic's configuration.
func TopicConfigsHandler(backend Backend) sdkmcp.ToolHandlerFor[TopicConfigsInput, TopicConfigsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input TopicConfigsInput) (*sdkmcp.CallToolResult, TopicConfigsResult, error) {
		if input.ClusterID <= 0 {
			return nil, TopicConfigsResult{}, fmt.Errorf("cluster_id is required")
		}
		topic := strings.TrimSpace(input.Topic)
		if topic == "" {
			return nil, TopicConfigsResult{}, fmt.Errorf("topic is required")
		}
		callCtx, requestID := newCallContext(ctx)
		entries, err := backend.TopicConfigs(callCtx, input.ClusterID, topic)
		if err != nil {
			return nil, TopicConfigsResult{}, toolError("topic configs", err)
		}
		if input.NonDefault {
			entries = lo.Reject(entries, func(entry api.TopicConfigEntry, _ int) bool { return entry.Default })
		}
		configs := lo.Map(entries, func(entry api.TopicConfigEntry, _ int) TopicConfigValue {
			value := entry.Value
			if entry.Sensitive {
				value = "******"
			}
			return TopicConfigValue{Name: entry.Name, Value: value, Default: entry.Default, ReadOnly: entry.ReadOnly}
		})
		return callToolResult(requestID), TopicConfigsResult{Topic: topic, Configs: configs}, nil
	}
}

// ConsumerGroupListInput selects a page of consumer groups.
type ConsumerGroupListInput struct {
	ClusterID int64  `json:"cluster_id" jsonschema:"cluster identifier"`
	Keyword   string `json:"keyword,omitempty" jsonschema:"optional group id filter"`
	Topic     string `json:"topic,omitempty" jsonschema:"only groups consuming this topic"`
	Page      int    `json:"page,omitempty" jsonschema:"1-based page number, defaults to 1"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"page size, defaults to 10"`
}

// ConsumerGroupSummary is one consumer group row. Lag is nil when the
// backend could not compute it.
type ConsumerGroupSummary struct {
	GroupID  string `json:"group_id" jsonschema:"consumer group id"`
	State    string `json:"state" jsonschema:"group state, for example Stable or Empty"`
	Members  int    `json:"members" jsonschema:"number of members"`
	TotalLag *int64 `json:"total_lag,omitempty" jsonschema:"summed lag across partitions"`
}

// ConsumerGroupListResult is the consumer_group_list output.
type ConsumerGroupListResult struct {
	Groups   []ConsumerGroupSummary `json:"groups" jsonschema:"groups on this page"`
	Total    int64                  `json:"total" jsonschema:"total matching groups"`
	Page     int                    `json:"page" jsonschema:"returned page number"`
	PageSize int                    `json:"page_size" jsonschema:"returned page size"`
}

// ConsumerGroupListTool defines the consumer_group_list tool.
func ConsumerGroupListTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "consumer_group_list",
		Description: "Lists consumer groups of a cluster with their state and total lag.",
	}
}

// ConsumerGroupListHandler lists one page of consumer groups.
func ConsumerGroupListHandler(backend Backend) sdkmcp.ToolHandlerFor[ConsumerGroupListInput, ConsumerGroupListResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ConsumerGroupListInput) (*sdkmcp.CallToolResult, ConsumerGroupListResult, error) {
		if input.ClusterID <= 0 {
			return nil, ConsumerGroupListResult{}, fmt.Errorf("cluster_id is required")
		}
		callCtx, requestID := newCallContext(ctx)
		page, err := backend.ListConsumerGroups(callCtx, input.ClusterID, api.GroupQuery{
			Page:    api.Page{Page: input.Page, PageSize: input.PageSize},
			Keyword: strings.TrimSpace(input.Keyword),
			Topic:   strings.TrimSpace(input.Topic),
		})
		if err != nil {
			return nil, ConsumerGroupListResult{}, toolError("consumer group list", err)
		}
		result := ConsumerGroupListResult{
			Groups: lo.Map(page.List, func(group api.ConsumerGroupInfo, _ int) ConsumerGroupSummary {
				return ConsumerGroupSummary{
					GroupID:  group.GroupID,
					State:    group.State,
					Members:  len(group.Members),
					TotalLag: group.TotalLag,
				}
			}),
			Total:    page.Total,
			Page:     page.Page,
			PageSize: page.PageSize,
		}
		return callToolResult(requestID), result, nil
	}
}

// TopicVolumeInput names one topic and a window in days.
type TopicVolumeInput struct {
	ClusterID int64  `json:"cluster_id" jsonschema:"cluster identifier"`
	Topic     string `json:"topic" jsonschema:"topic name"`
	Days      int    `json:"days,omitempty" jsonschema:"window size in days, defaults to 7"`
}

// TopicVolumeResult is the topic_volume output.
type TopicVolumeResult struct {
	Topic string  `json:"topic" jsonschema:"topic name"`
	Days  int     `json:"days" jsonschema:"window size in days"`
	Daily []int64 `json:"daily" jsonschema:"messages per day, oldest first"`
	Total int64   `json:"total" jsonschema:"messages across the window"`
}

// TopicVolumeTool defines the topic_volume tool.
func TopicVolumeTool() *sdkmcp.Tool {
	return &sdkmcp.Tool{
		Name:        "topic_volume",
		Description: "Returns the daily message volume of a topic over the last N days.",
	}
}

// TopicVolumeHandler reads a topic's daily volume.
func TopicVolumeHandler(backend Backend) sdkmcp.ToolHandlerFor[TopicVolumeInput, TopicVolumeResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input TopicVolumeInput) (*sdkmcp.CallToolResult, TopicVolumeResult, error) {
		if input.ClusterID <= 0 {
			return nil, TopicVolumeResult{}, fmt.Errorf("cluster_id is required")
		}
		topic := strings.TrimSpace(input.Topic)
		if topic == "" {
			return nil, TopicVolumeResult{}, fmt.Errorf("topic is required")
		}
		days := input.Days
		if days <= 0 {
			days = api.DefaultVolumeDays
		}
		callCtx, requestID := newCallContext(ctx)
		daily, err := backend.TopicVolume(callCtx, input.ClusterID, topic, days)
		if err != nil {
			return nil, TopicVolumeResult{}, toolError("topic volume", err)
		}
		if daily == nil {
			daily = []int64{}
		}
		return callToolResult(requestID), TopicVolumeResult{Topic: topic, Days: days, Daily: daily, Total: lo.Sum(daily)}, nil
	}
}
