package api

import (
	"context"
	"net/url"
)

// Timeline fetches cluster events, newest first. Filtering happens
// server-side through the query; the screen only narrows further on
// what it already has.
func (c *HTTPClient) Timeline(ctx context.Context, opts TimelineOptions) ([]TimelineEvent, error) {
	query := url.Values{}
	if opts.Since > 0 {
		query.Set("since", opts.Since.String())
	}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	if opts.Namespace != "" {
		query.Set("namespace", opts.Namespace)
	}

	var events []TimelineEvent
	if err := c.get(ctx, serviceTimeline, "/timeline", query, &events); err != nil {
		return nil, err
	}
	return events, nil
}
