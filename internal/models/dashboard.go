package models

// DashboardStats is the aggregate snapshot behind the dashboard view
type DashboardStats struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TodaySalesCount  int     `json:"today_sales_count"`
	TodayRevenue     float64 `json:"today_revenue"`
	TotalDebt        float64 `json:"total_debt"`
	LowStockCount    int     `json:"low_stock_count"`
	ProductCount     int     `json:"product_count"`
	CustomerCount    int     `json:"customer_count"`
	RevenueGrowthPct float64 `json:"revenue_growth_pct"` // this 7 days vs previous 7
}
