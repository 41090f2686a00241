package sdk

import (
	"context"
	"net/http"
)

// HealthReport is the /healthz response.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health fetches the aggregated component health report.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	var report HealthReport
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, &report); err != nil {
		return HealthReport{}, err
	}
	return report, nil
}
