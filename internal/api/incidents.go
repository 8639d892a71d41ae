package api

import (
	"context"
	"fmt"
	"net/url"
)

// Incidents lists incidents, optionally filtered by status
// (active, acknowledged, resolved).
func (c *HTTPClient) Incidents(ctx context.Context, status string) ([]Incident, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var incidents []Incident
	if err := c.get(ctx, serviceIncidents, "/incidents", query, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// AcknowledgeIncident marks an incident as seen by an operator.
func (c *HTTPClient) AcknowledgeIncident(ctx context.Context, id string) (*Incident, error) {
	var incident Incident
	path := fmt.Sprintf("/incidents/%s/acknowledge", url.PathEscape(id))
	if err := c.post(ctx, serviceIncidents, path, nil, &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}

// ResolveIncident closes an incident.
func (c *HTTPClient) ResolveIncident(ctx context.Context, id string) (*Incident, error) {
	var incident Incident
	path := fmt.Sprintf("/incidents/%s/resolve", url.PathEscape(id))
	if err := c.post(ctx, serviceIncidents, path, nil, &incident); err != nil {
		return nil, err
	}
	return &incident, nil
}
