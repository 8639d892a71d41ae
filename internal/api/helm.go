package api

import (
	"context"
	"fmt"
	"net/url"
)

// Releases lists Helm releases, optionally scoped to one namespace.
func (c *HTTPClient) Releases(ctx context.Context, namespace string) ([]Release, error) {
	query := url.Values{}
	if namespace != "" {
		query.Set("namespace", namespace)
	}
	var releases []Release
	if err := c.get(ctx, serviceHelm, "/helm/releases", query, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

// ReleaseHistory returns the revision history for one release,
// newest revision first.
func (c *HTTPClient) ReleaseHistory(ctx context.Context, namespace, name string) ([]ReleaseRevision, error) {
	var history []ReleaseRevision
	path := fmt.Sprintf("/helm/releases/%s/%s/history", url.PathEscape(namespace), url.PathEscape(name))
	if err := c.get(ctx, serviceHelm, path, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ReleaseValues returns the computed values of one release.
func (c *HTTPClient) ReleaseValues(ctx context.Context, namespace, name string) (map[string]any, error) {
	var values map[string]any
	path := fmt.Sprintf("/helm/releases/%s/%s/values", url.PathEscape(namespace), url.PathEscape(name))
	if err := c.get(ctx, serviceHelm, path, nil, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// InstallRelease installs a chart as a new release and returns the
// resulting release as the server reports it.
func (c *HTTPClient) InstallRelease(ctx context.Context, req InstallRequest) (*Release, error) {
	var release Release
	if err := c.post(ctx, serviceHelm, "/helm/releases", req, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// UpgradeRelease upgrades an existing release.
func (c *HTTPClient) UpgradeRelease(ctx context.Context, namespace, name string, req UpgradeRequest) (*Release, error) {
	var release Release
	path := fmt.Sprintf("/helm/releases/%s/%s", url.PathEscape(namespace), url.PathEscape(name))
	if err := c.put(ctx, serviceHelm, path, req, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// RollbackRelease rolls a release back to a previous revision.
func (c *HTTPClient) RollbackRelease(ctx context.Context, namespace, name string, toRevision int) (*Release, error) {
	var release Release
	path := fmt.Sprintf("/helm/releases/%s/%s/rollback", url.PathEscape(namespace), url.PathEscape(name))
	if err := c.post(ctx, serviceHelm, path, RollbackRequest{ToRevision: toRevision}, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// UninstallRelease removes a release.
func (c *HTTPClient) UninstallRelease(ctx context.Context, namespace, name string) error {
	path := fmt.Sprintf("/helm/releases/%s/%s", url.PathEscape(namespace), url.PathEscape(name))
	return c.delete(ctx, serviceHelm, path)
}

// DryRun renders a chart server-side without applying it.
func (c *HTTPClient) DryRun(ctx context.Context, req DryRunRequest) (*DryRunResult, error) {
	var result DryRunResult
	if err := c.post(ctx, serviceHelm, "/helm/dry-run", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
