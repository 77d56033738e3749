package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func topicPath(clusterID int64, name string) string {
	return clusterPath(clusterID) + "/topics/" + url.PathEscape(name)
}

// ListTopics returns one page of the cluster's topics.
func (c *Client) ListTopics(ctx context.Context, clusterID int64, query TopicQuery) (PageResult[TopicInfo], error) {
	var page PageResult[TopicInfo]
	if err := c.call(ctx, http.MethodGet, clusterPath(clusterID)+"/topics", query.values(), nil, &page); err != nil {
		return PageResult[TopicInfo]{}, err
	}
	return page, nil
}

// CreateTopic creates a topic.
func (c *Client) CreateTopic(ctx context.Context, clusterID int64, req CreateTopicRequest) error {
	if err := c.validateBody(req); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, clusterPath(clusterID)+"/topics", nil, req, nil)
}

// DeleteTopic deletes a topic.
func (c *Client) DeleteTopic(ctx context.Context, clusterID int64, name string) error {
	if err := c.requireName("topicName", name); err != nil {
		return err
	}
	return c.call(ctx, http.MethodDelete, topicPath(clusterID, name), nil, nil, nil)
}

// TopicPartitions returns one page of a topic's partitions.
func (c *Client) TopicPartitions(ctx context.Context, clusterID int64, name string, page Page) (PageResult[TopicPartitionDetail], error) {
	if err := c.requireName("topicName", name); err != nil {
		return PageResult[TopicPartitionDetail]{}, err
	}
	var result PageResult[TopicPartitionDetail]
	if err := c.call(ctx, http.MethodGet, topicPath(clusterID, name)+"/partitions", page.values(), nil, &result); err != nil {
		return PageResult[TopicPartitionDetail]{}, err
	}
	return result, nil
}

// TopicConfigs returns a topic's configuration entries.
func (c *Client) TopicConfigs(ctx context.Context, clusterID int64, name string) ([]TopicConfigEntry, error) {
	if err := c.requireName("topicName", name); err != nil {
		return nil, err
	}
	var entries []TopicConfigEntry
	if err := c.call(ctx, http.MethodGet, topicPath(clusterID, name)+"/configs", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateTopicConfigs applies configuration overrides to a topic.
func (c *Client) UpdateTopicConfigs(ctx context.Context, clusterID int64, name string, configs map[string]string) error {
	if err := c.requireName("topicName", name); err != nil {
		return err
	}
	if len(configs) == 0 {
		return c.requireName("configs", "")
	}
	return c.call(ctx, http.MethodPut, topicPath(clusterID, name)+"/configs", nil, configs, nil)
}

// TopicProducers returns one page of a topic's active producers.
func (c *Client) TopicProducers(ctx context.Context, clusterID int64, name string, page Page) (PageResult[ProducerInfo], error) {
	if err := c.requireName("topicName", name); err != nil {
		return PageResult[ProducerInfo]{}, err
	}
	var result PageResult[ProducerInfo]
	if err := c.call(ctx, http.MethodGet, topicPath(clusterID, name)+"/producers", page.values(), nil, &result); err != nil {
		return PageResult[ProducerInfo]{}, err
	}
	return result, nil
}

// TopicVolume returns the produced counts of the last days, oldest first.
func (c *Client) TopicVolume(ctx context.Context, clusterID int64, name string, days int) ([]int64, error) {
	if err := c.requireName("topicName", name); err != nil {
		return nil, err
	}
	query := url.Values{"days": {strconv.Itoa(orDefault(days, DefaultVolumeDays))}}
	var counts []int64
	if err := c.call(ctx, http.MethodGet, topicPath(clusterID, name)+"/volume", query, nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// TopicsVolume returns the produced counts of several topics keyed by name.
func (c *Client) TopicsVolume(ctx context.Context, clusterID int64, names []string, days int) (map[string][]int64, error) {
	query := topicsValues(names)
	if len(query["topics"]) == 0 {
		return nil, c.requireName("topics", "")
	}
	query.Set("days", strconv.Itoa(orDefault(days, DefaultVolumeDays)))
	volumes := map[string][]int64{}
	if err := c.call(ctx, http.MethodGet, clusterPath(clusterID)+"/topics/volumes", query, nil, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}

// BackfillVolumes asks the backend to recompute volume history. The
// selection travels as query parameters with an empty body.
func (c *Client) BackfillVolumes(ctx context.Context, clusterID int64, req BackfillRequest) error {
	return c.call(ctx, http.MethodPost, clusterPath(clusterID)+"/topics/volumes/backfill", req.values(), nil, nil)
}
