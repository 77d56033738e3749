package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"
)

// ClusterListResource defines the cluster listing resource.
func ClusterListResource() *sdkmcp.Resource {
	return &sdkmcp.Resource{
		Name:        "cluster_list",
		Title:       "Clusters",
		Description: "Readable listing of configured Kafka clusters",
		MIMEType:    "application/json",
		URI:         "clusters://list",
	}
}

// ClusterListResourceHandler serves the cluster listing as JSON.
func ClusterListResourceHandler(backend Backend) sdkmcp.ResourceHandler {
	return func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		uri := ClusterListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		callCtx, _ := newCallContext(ctx)
		clusters, err := backend.ListClusters(callCtx)
		if err != nil {
			return nil, toolError("cluster list", err)
		}
		data, err := json.MarshalIndent(ClusterListResult{Clusters: lo.Map(clusters, toClusterSummary)}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal cluster list: %w", err)
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
