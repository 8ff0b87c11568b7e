package model

// TypeCount is one slice of the assets-by-type aggregate
type TypeCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// StatusCount is one slice of the assets-by-status aggregate
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DashboardStats aggregates the numbers shown on the dashboard
type DashboardStats struct {
	TotalAssets       int64         `json:"total_assets"`
	AllocatedAssets   int64         `json:"allocated_assets"`
	AvailableAssets   int64         `json:"available_assets"`
	TotalEmployees    int64         `json:"total_employees"`
	TotalPurchaseCost string        `json:"total_purchase_cost"`
	AssetsByStatus    []StatusCount `json:"assets_by_status"`
	AssetsByType      []TypeCount   `json:"assets_by_type"`
}
