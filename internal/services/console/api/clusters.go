package api

import (
	"context"
	"net/http"
	"strconv"
)

// ListClusters returns every registered cluster.
func (c *Client) ListClusters(ctx context.Context) ([]ClusterInfo, error) {
	var clusters []ClusterInfo
	if err := c.call(ctx, http.MethodGet, "/clusters", nil, nil, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

// AddCluster registers a cluster.
func (c *Client) AddCluster(ctx context.Context, cluster ClusterInfo) error {
	if err := c.validateBody(cluster); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPost, "/clusters", nil, cluster, nil)
}

// UpdateCluster replaces a cluster's settings; cluster.ID selects it.
func (c *Client) UpdateCluster(ctx context.Context, cluster ClusterInfo) error {
	if err := c.validateBody(cluster); err != nil {
		return err
	}
	if cluster.ID <= 0 {
		return c.requireName("id", "")
	}
	return c.call(ctx, http.MethodPut, "/clusters", nil, cluster, nil)
}

// DeleteCluster removes a cluster.
func (c *Client) DeleteCluster(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, clusterPath(id), nil, nil, nil)
}

// ClusterMetrics returns the monitor summary of a cluster.
func (c *Client) ClusterMetrics(ctx context.Context, id int64) (ClusterMetrics, error) {
	var metrics ClusterMetrics
	if err := c.call(ctx, http.MethodGet, "/monitor/"+strconv.FormatInt(id, 10), nil, nil, &metrics); err != nil {
		return ClusterMetrics{}, err
	}
	return metrics, nil
}

func clusterPath(id int64) string {
	return "/clusters/" + strconv.FormatInt(id, 10)
}
