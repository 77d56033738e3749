package mcp

import (
	"context"
	"errors"
	"testing"

	platformerrors "github.com/louisbranch/kafkaview/internal/platform/errors"
	"github.com/louisbranch/kafkaview/internal/platform/requestctx"
	"github.com/louisbranch/kafkaview/internal/services/console/api"
)

type fakeBackend struct {
	clusters    []api.ClusterInfo
	topics      api.PageResult[api.TopicInfo]
	configs     []api.TopicConfigEntry
	groups      api.PageResult[api.ConsumerGroupInfo]
	volume      []int64
	err         error
	topicQuery  api.TopicQuery
	groupQuery  api.GroupQuery
	clusterID   int64
	topic       string
	days        int
	requestIDs  []string
	calledTimes int
}

func (f *fakeBackend) record(ctx context.Context) {
	f.calledTimes++
	f.requestIDs = append(f.requestIDs, requestctx.RequestIDFromContext(ctx))
}

func (f *fakeBackend) ListClusters(ctx context.Context) ([]api.ClusterInfo, error) {
	f.record(ctx)
	return f.clusters, f.err
}

func (f *fakeBackend) ListTopics(ctx context.Context, clusterID int64, query api.TopicQuery) (api.PageResult[api.TopicInfo], error) {
	f.record(ctx)
	f.clusterID, f.topicQuery = clusterID, query
	return f.topics, f.err
}

func (f *fakeBackend) TopicConfigs(ctx context.Context, clusterID int64, name string) ([]api.TopicConfigEntry, error) {
	f.record(ctx)
	f.clusterID, f.topic = clusterID, name
	return f.configs, f.err
}

func (f *fakeBackend) ListConsumerGroups(ctx context.Context, clusterID int64, query api.GroupQuery) (api.PageResult[api.ConsumerGroupInfo], error) {
	f.record(ctx)
	f.clusterID, f.groupQuery = clusterID, query
	return f.groups, f.err
}

func (f *fakeBackend) TopicVolume(ctx context.Context, clusterID int64, name string, days int) ([]int64, error) {
	f.record(ctx)
	f.clusterID, f.topic, f.days = clusterID, name, days
	return f.volume, f.err
}

func TestClusterListHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		backend := &fakeBackend{clusters: []api.ClusterInfo{
			{ID: 1, Name: "prod", BootstrapServers: "kafka:9092", Password: "secret", SecurityProtocol: "SASL_SSL"},
		}}
		toolResult, result, err := ClusterListHandler(backend)(context.Background(), nil, ClusterListInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil || toolResult.Meta[requestctx.HeaderRequestID] != backend.requestIDs[0] {
			t.Fatalf("expected request id metadata %q, got %+v", backend.requestIDs[0], toolResult)
		}
		if backend.requestIDs[0] == "" {
			t.Fatal("expected a request id on the backend call")
		}
		if len(result.Clusters) != 1 || result.Clusters[0].Name != "prod" || result.Clusters[0].SecurityProtocol != "SASL_SSL" {
			t.Fatalf("unexpected clusters: %+v", result.Clusters)
		}
	})

	t.Run("auth failure asks for login", func(t *testing.T) {
		backend := &fakeBackend{err: platformerrors.New(platformerrors.CodeAPIAuthRequired, "Unauthorized")}
		_, _, err := ClusterListHandler(backend)(context.Background(), nil, ClusterListInput{})
		if !errors.Is(err, errNotLoggedIn) {
			t.Fatalf("expected errNotLoggedIn, got %v", err)
		}
		if platformerrors.CodeOf(err) != platformerrors.CodeAPIAuthRequired {
			t.Fatalf("CodeOf() = %q, want %q", platformerrors.CodeOf(err), platformerrors.CodeAPIAuthRequired)
		}
	})

	t.Run("envelope failure", func(t *testing.T) {
		backend := &fakeBackend{err: platformerrors.New(platformerrors.CodeAPIEnvelope, "cluster unreachable")}
		_, _, err := ClusterListHandler(backend)(context.Background(), nil, ClusterListInput{})
		if err == nil || errors.Is(err, errNotLoggedIn) {
			t.Fatalf("expected plain backend error, got %v", err)
		}
	})
}

func TestTopicListHandler(t *testing.T) {
	t.Run("passes query", func(t *testing.T) {
		backend := &fakeBackend{topics: api.PageResult[api.TopicInfo]{
			List:  []api.TopicInfo{{Name: "orders", PartitionCount: 3, ReplicationFactor: 2, MessageCount: 42}},
			Total: 1, Page: 2, PageSize: 5,
		}}
		_, result, err := TopicListHandler(backend)(context.Background(), nil, TopicListInput{ClusterID: 4, Keyword: " ord ", Page: 2, PageSize: 5})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.clusterID != 4 || backend.topicQuery.Keyword != "ord" || backend.topicQuery.Page.Page != 2 || backend.topicQuery.PageSize != 5 {
			t.Fatalf("unexpected backend call: id=%d query=%+v", backend.clusterID, backend.topicQuery)
		}
		if len(result.Topics) != 1 || result.Topics[0].MessageCount != 42 || result.Total != 1 || result.Page != 2 {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("requires cluster", func(t *testing.T) {
		backend := &fakeBackend{}
		if _, _, err := TopicListHandler(backend)(context.Background(), nil, TopicListInput{}); err == nil {
			t.Fatal("expected error for missing cluster_id")
		}
		if backend.calledTimes != 0 {
			t.Fatalf("backend calls = %d, want 0", backend.calledTimes)
		}
	})
}

func TestTopicConfigsHandler(t *testing.T) {
	entries := []api.TopicConfigEntry{
		{Name: "retention.ms", Value: "1000", Default: false},
		{Name: "cleanup.policy", Value: "delete", Default: true},
		{Name: "sasl.jaas.config", Value: "user=admin", Sensitive: true},
	}

	t.Run("masks sensitive values", func(t *testing.T) {
		backend := &fakeBackend{configs: entries}
		_, result, err := TopicConfigsHandler(backend)(context.Background(), nil, TopicConfigsInput{ClusterID: 1, Topic: " orders "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.topic != "orders" || result.Topic != "orders" {
			t.Fatalf("topic = %q/%q, want orders", backend.topic, result.Topic)
		}
		if len(result.Configs) != 3 || result.Configs[2].Value != "******" {
			t.Fatalf("unexpected configs: %+v", result.Configs)
		}
	})

	t.Run("non default only", func(t *testing.T) {
		backend := &fakeBackend{configs: entries}
		_, result, err := TopicConfigsHandler(backend)(context.Background(), nil, TopicConfigsInput{ClusterID: 1, Topic: "orders", NonDefault: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Configs) != 2 || result.Configs[0].Name != "retention.ms" {
			t.Fatalf("unexpected configs: %+v", result.Configs)
		}
	})

	t.Run("requires topic", func(t *testing.T) {
		if _, _, err := TopicConfigsHandler(&fakeBackend{})(context.Background(), nil, TopicConfigsInput{ClusterID: 1, Topic: " "}); err == nil {
			t.Fatal("expected error for blank topic")
		}
	})
}

func TestConsumerGroupListHandler(t *testing.T) {
	lag := int64(17)
	backend := &fakeBackend{groups: api.PageResult[api.ConsumerGroupInfo]{
		List: []api.ConsumerGroupInfo{
			{GroupID: "billing", State: "Stable", Members: []api.MemberInfo{{}, {}}, TotalLag: &lag},
			{GroupID: "idle", State: "Empty"},
		},
		Total: 2, Page: 1, PageSize: 10,
	}}
	_, result, err := ConsumerGroupListHandler(backend)(context.Background(), nil, ConsumerGroupListInput{ClusterID: 2, Topic: "orders"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.groupQuery.Topic != "orders" {
		t.Fatalf("topic filter = %q, want orders", backend.groupQuery.Topic)
	}
	if len(result.Groups) != 2 || result.Groups[0].Members != 2 || *result.Groups[0].TotalLag != 17 {
		t.Fatalf("unexpected groups: %+v", result.Groups)
	}
	if result.Groups[1].TotalLag != nil {
		t.Fatalf("expected nil lag for idle group, got %v", *result.Groups[1].TotalLag)
	}
}

func TestTopicVolumeHandler(t *testing.T) {
	t.Run("defaults days and sums", func(t *testing.T) {
		backend := &fakeBackend{volume: []int64{1, 2, 3}}
		_, result, err := TopicVolumeHandler(backend)(context.Background(), nil, TopicVolumeInput{ClusterID: 1, Topic: "orders"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.days != api.DefaultVolumeDays || result.Days != api.DefaultVolumeDays {
			t.Fatalf("days = %d/%d, want %d", backend.days, result.Days, api.DefaultVolumeDays)
		}
		if result.Total != 6 {
			t.Fatalf("Total = %d, want 6", result.Total)
		}
	})

	t.Run("empty volume", func(t *testing.T) {
		_, result, err := TopicVolumeHandler(&fakeBackend{})(context.Background(), nil, TopicVolumeInput{ClusterID: 1, Topic: "orders", Days: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Daily == nil || len(result.Daily) != 0 || result.Days != 3 {
			t.Fatalf("unexpected result: %+v", result)
		}
	})
}
