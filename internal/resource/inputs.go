package resource

// Payload is a typed write body tagged with the resource it belongs to.
type Payload interface {
	ResourceName() string
}

// Billing statuses accepted by the backend.
const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
	StatusOverdue = "Overdue"
	StatusDraft   = "Draft"
)

// BillingInput creates or patches a billing record. Nil fields are omitted,
// so an update only sends what changed.
type BillingInput struct {
	PartnerID   *int64   `json:"partnerId,omitempty" validate:"omitempty,gt=0" create:"required"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gte=0" create:"required"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=Paid Pending Overdue Draft"`
	DueDate     *string  `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02" create:"required"`
}

// ResourceName implements Payload.
func (BillingInput) ResourceName() string { return Billing.Name }

// PartnerInput creates or patches a partner.
type PartnerInput struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200" create:"required"`
	Email        *string  `json:"email,omitempty" validate:"omitempty,email" create:"required"`
	Company      *string  `json:"company,omitempty" validate:"omitempty,max=200"`
	Status       *string  `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive 'On Leave'"`
	SharePercent *float64 `json:"sharePercent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ResourceName implements Payload.
func (PartnerInput) ResourceName() string { return Partners.Name }

// CompanySettingsInput patches the company profile.
type CompanySettingsInput struct {
	CompanyName     *string  `json:"companyName,omitempty" validate:"omitempty,min=1,max=200" create:"required"`
	Currency        *string  `json:"currency,omitempty" validate:"omitempty,iso4217"`
	FiscalYearStart *string  `json:"fiscalYearStart,omitempty" validate:"omitempty,datetime=01-02"`
	TaxRate         *float64 `json:"taxRate,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ResourceName implements Payload.
func (CompanySettingsInput) ResourceName() string { return CompanySettings.Name }

// String returns a pointer to s, for building inputs.
func String(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n.
func Int(n int64) *int64 { return &n }
