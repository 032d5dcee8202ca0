package model

// DashboardSummary is the top-level aggregate served at /api/dashboard-summary.
// Change fields are percentages versus the previous period; nil when the
// backend could not compute one.
type DashboardSummary struct {
	TotalRevenue    float64  `json:"totalRevenue"`
	RevenueChange   *float64 `json:"revenueChange"`
	NetProfit       float64  `json:"netProfit"`
	ProfitChange    *float64 `json:"profitChange"`
	TotalExpenses   float64  `json:"totalExpenses"`
	ExpensesChange  *float64 `json:"expensesChange"`
	ActivePartners  int      `json:"activePartners"`
	PartnersChange  *float64 `json:"partnersChange"`
	PendingInvoices int      `json:"pendingInvoices"`
	PendingChange   *float64 `json:"pendingChange"`
}

// Metric is the view model behind a single metric card.
type Metric struct {
	Label          string
	Value          float64
	Change         *float64
	IsCount        bool
	HigherIsBetter bool
}

// Metrics returns the summary as metric cards in display order.
func (s DashboardSummary) Metrics() []Metric {
	return []Metric{
		{Label: "Total Revenue", Value: s.TotalRevenue, Change: s.RevenueChange, HigherIsBetter: true},
		{Label: "Net Profit", Value: s.NetProfit, Change: s.ProfitChange, HigherIsBetter: true},
		{Label: "Expenses", Value: s.TotalExpenses, Change: s.ExpensesChange},
		{Label: "Active Partners", Value: float64(s.ActivePartners), Change: s.PartnersChange, IsCount: true, HigherIsBetter: true},
		{Label: "Pending Invoices", Value: float64(s.PendingInvoices), Change: s.PendingChange, IsCount: true},
	}
}
