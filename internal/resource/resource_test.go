package resource

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/query"
)

func TestDescriptors_InvalidateOwnListAndSummary(t *testing.T) {
	for _, d := range []Descriptor{Billing, Partners, CompanySettings} {
		assert.Contains(t, d.Invalidates, d.ListKey(), d.Name)
		assert.Contains(t, d.Invalidates, query.DashboardSummaryKey, d.Name)
	}
}

func TestDescriptor_Paths(t *testing.T) {
	assert.Equal(t, "/api/billing", Billing.CollectionPath())
	assert.Equal(t, "/api/partners/9", Partners.ItemPath(9))
	assert.Equal(t, "billing/5", Billing.ItemKey(5))
	assert.True(t, query.Matches(Billing.ItemKey(5), Billing.ListKey()))
}

func TestMessages(t *testing.T) {
	ms := Billing.Messages
	assert.Equal(t, "Billing record updated successfully", ms.Success(Update).Description)
	assert.Equal(t, "Billing record deleted successfully", ms.Success(Delete).Description)
	assert.Equal(t, "Failed to delete billing record", ms.Failure(Delete))
	assert.NotEmpty(t, Messages{}.Failure(Create))
}

func TestPayloadsAreTagged(t *testing.T) {
	assert.Equal(t, "billing", BillingInput{}.ResourceName())
	assert.Equal(t, "partners", PartnerInput{}.ResourceName())
	assert.Equal(t, "company-settings", CompanySettingsInput{}.ResourceName())
}

func TestValidate_UpdateAllowsPartial(t *testing.T) {
	assert.NoError(t, Validate(Update, BillingInput{Status: String("Paid")}))
	assert.NoError(t, Validate(Update, PartnerInput{}))
}

func TestValidate_CreateRequiresFields(t *testing.T) {
	err := Validate(Create, BillingInput{Status: String("Paid")})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "billing", ve.Resource)
	assert.Equal(t, "partnerId", ve.Field)
	assert.Equal(t, "partnerId is required", ve.Message)

	ok := BillingInput{
		PartnerID: Int(3),
		Amount:    Float(120),
		DueDate:   String("2026-11-01"),
	}
	assert.NoError(t, Validate(Create, ok))
}

func TestValidate_FormatRules(t *testing.T) {
	cases := []struct {
		name string
		in   Payload
		msg  string
	}{
		{"bad status", BillingInput{Status: String("Lost")}, "status must be one of: Paid Pending Overdue Draft"},
		{"negative amount", BillingInput{Amount: Float(-1)}, "amount must be at least 0"},
		{"bad date", BillingInput{DueDate: String("11/01/2026")}, "dueDate must be a date in the form 2006-01-02"},
		{"bad email", PartnerInput{Email: String("nope")}, "email must be a valid email address"},
		{"share too high", PartnerInput{SharePercent: Float(120)}, "sharePercent must be at most 100"},
		{"bad currency", CompanySettingsInput{Currency: String("XXXX")}, "currency must be an ISO 4217 currency code"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(Update, tc.in)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tc.msg, ve.Message)
		})
	}
}

func TestValidate_PartnerStatusWithSpace(t *testing.T) {
	assert.NoError(t, Validate(Update, PartnerInput{Status: String("On Leave")}))
}

func TestValidate_DeleteSkips(t *testing.T) {
	assert.NoError(t, Validate(Delete, BillingInput{Amount: Float(-5)}))
}

func TestInputs_OmitNilFields(t *testing.T) {
	raw, err := json.Marshal(BillingInput{Status: String("Paid")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"Paid"}`, string(raw))
}
