package api

import (
	"context"
	"fmt"
	"net/url"
)

// OptimizationDashboard fetches the cost summary plus the current
// recommendation list.
func (c *HTTPClient) OptimizationDashboard(ctx context.Context) (*OptimizationDashboard, error) {
	var dashboard OptimizationDashboard
	if err := c.get(ctx, serviceOptimization, "/optimization/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// ApplyRecommendation asks the server to apply one recommendation and
// returns it in its new state.
func (c *HTTPClient) ApplyRecommendation(ctx context.Context, id string) (*Recommendation, error) {
	var rec Recommendation
	path := fmt.Sprintf("/optimization/recommendations/%s/apply", url.PathEscape(id))
	if err := c.post(ctx, serviceOptimization, path, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DismissRecommendation marks one recommendation as dismissed.
func (c *HTTPClient) DismissRecommendation(ctx context.Context, id string) (*Recommendation, error) {
	var rec Recommendation
	path := fmt.Sprintf("/optimization/recommendations/%s/dismiss", url.PathEscape(id))
	if err := c.post(ctx, serviceOptimization, path, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
