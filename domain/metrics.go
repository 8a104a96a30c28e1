package domain

// WeekRevenue is one bucket of the weekly revenue trend, keyed by ISO
// year-week (e.g. "2026-W35").
type WeekRevenue struct {
	Week    string  `json:"week"`
	Revenue float64 `json:"revenue"`
}

// MetricsSnapshot holds the KPIs and chart series derived from the
// full sales and customer extents. All fields are zero-valued when the
// store is empty.
type MetricsSnapshot struct {
	TotalRevenue     float64            `json:"total_revenue"`
	AvgOrderValue    float64            `json:"avg_order_value"`
	TotalQuantity    int64              `json:"total_quantity"`
	TotalCustomers   int64              `json:"total_customers"`
	ActiveCustomers  int64              `json:"active_customers"`
	ChurnRate        float64            `json:"churn_rate"`
	ProfitMargin     float64            `json:"profit_margin"`
	WeeklyRevenue    []WeekRevenue      `json:"weekly_revenue_trend"`
	RevenueByProduct map[string]float64 `json:"revenue_by_product"`
	ChurnBreakdown   map[string]int64   `json:"churn_breakdown"`
}
