package client

import (
	"context"

	"github.com/relaydesk/relayctl/pkg/api/types"
)

// DashboardStats returns the home dashboard figures. Admins see every
// user's traffic, other users their own.
func (c *Client) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	resp, err := c.get(ctx, "dashboard_stats", apiPrefix+"/dashboard/stats", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	stats := types.DashboardStats{
		TrendData:      []types.TrendPoint{},
		ModelStats:     []types.ModelUsage{},
		AccountRanking: []types.AccountRank{},
		APIKeyRanking:  []types.APIKeyRank{},
	}
	if err := decode(resp, &stats, "dashboard stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminDashboard returns the system-wide user and task counts. Admin only.
func (c *Client) AdminDashboard(ctx context.Context) (*types.AdminDashboard, error) {
	resp, err := c.get(ctx, "admin_dashboard", apiPrefix+"/admin/dashboard", nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var overview types.AdminDashboard
	if err := decode(resp, &overview, "admin dashboard"); err != nil {
		return nil, err
	}
	return &overview, nil
}
