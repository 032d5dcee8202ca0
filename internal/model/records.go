// Package model holds the records exchanged with the bizdash backend.
package model

// Billing is one invoice issued to or on behalf of a partner.
type Billing struct {
	ID          int64   `json:"id"`
	PartnerID   int64   `json:"partnerId"`
	PartnerName string  `json:"partnerName"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate"`
	PaidAt      string  `json:"paidAt,omitempty"`
}

// Partner is a business partner sharing in profits.
type Partner struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Company      string  `json:"company"`
	Status       string  `json:"status"`
	SharePercent float64 `json:"sharePercent"`
	JoinedAt     string  `json:"joinedAt"`
}

// CompanySettings is the singleton company profile.
type CompanySettings struct {
	ID              int64   `json:"id"`
	CompanyName     string  `json:"companyName"`
	Currency        string  `json:"currency"`
	FiscalYearStart string  `json:"fiscalYearStart"`
	TaxRate         float64 `json:"taxRate"`
}

// Project is tracked work with a budget.
type Project struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Budget   float64 `json:"budget"`
	Spent    float64 `json:"spent"`
	Progress float64 `json:"progress"` // 0-100
}

// RevenueEntry is revenue and expenses for one period, usually a month.
type RevenueEntry struct {
	Period   string  `json:"period"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// ProfitShare is one partner's slice of distributed profit.
type ProfitShare struct {
	PartnerName string  `json:"partnerName"`
	Amount      float64 `json:"amount"`
}
