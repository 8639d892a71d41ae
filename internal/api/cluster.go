package api

import (
	"context"
	"net/url"
)

// ClusterHealth fetches the server-computed health summary.
func (c *HTTPClient) ClusterHealth(ctx context.Context) (*ClusterHealth, error) {
	var health ClusterHealth
	if err := c.get(ctx, serviceCluster, "/cluster/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Nodes lists all cluster nodes.
func (c *HTTPClient) Nodes(ctx context.Context) ([]Node, error) {
	var nodes []Node
	if err := c.get(ctx, serviceCluster, "/nodes", nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Pods lists pods, optionally scoped to one namespace.
func (c *HTTPClient) Pods(ctx context.Context, namespace string) ([]Pod, error) {
	query := url.Values{}
	if namespace != "" {
		query.Set("namespace", namespace)
	}
	var pods []Pod
	if err := c.get(ctx, serviceCluster, "/pods", query, &pods); err != nil {
		return nil, err
	}
	return pods, nil
}

// Namespaces lists namespace names, used to populate form selects.
func (c *HTTPClient) Namespaces(ctx context.Context) ([]string, error) {
	var namespaces []string
	if err := c.get(ctx, serviceCluster, "/namespaces", nil, &namespaces); err != nil {
		return nil, err
	}
	return namespaces, nil
}
