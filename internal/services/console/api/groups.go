package api

import (
	"context"
	"net/http"
)

// ListConsumerGroups returns one page of the cluster's consumer groups,
// optionally limited to groups consuming Topic.
func (c *Client) ListConsumerGroups(ctx context.Context, clusterID int64, query GroupQuery) (PageResult[ConsumerGroupInfo], error) {
	var page PageResult[ConsumerGroupInfo]
	if err := c.call(ctx, http.MethodGet, clusterPath(clusterID)+"/consumer-groups", query.values(), nil, &page); err != nil {
		return PageResult[ConsumerGroupInfo]{}, err
	}
	return page, nil
}
