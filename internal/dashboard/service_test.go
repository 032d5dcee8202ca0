package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/api"
	"github.com/theirongolddev/bizdash/internal/notify"
)

type fakeBackend struct {
	mu   sync.Mutex
	hits map[string]int
	fail map[string]int
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

var bodies = map[string]string{
	"/api/dashboard-summary":   `{"totalRevenue":1234.5,"revenueChange":12.5,"activePartners":4,"pendingInvoices":2}`,
	"/api/billing":             `[{"id":5,"partnerName":"Acme","amount":120,"status":"Pending"}]`,
	"/api/partners":            `[{"id":1,"name":"Ann","status":"Active","sharePercent":40}]`,
	"/api/projects":            `[{"id":7,"name":"Roof","status":"In Progress","progress":55}]`,
	"/api/revenue":             `[{"period":"Jan","revenue":100,"expenses":40,"profit":60}]`,
	"/api/profit-distribution": `[{"partnerName":"Ann","amount":24}]`,
	"/api/company-settings":    `{"id":1,"companyName":"Acme Ltd","currency":"USD"}`,
}

func newServer(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	f := &fakeBackend{hits: map[string]int{}, fail: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		f.mu.Lock()
		f.hits[key]++
		code := f.fail[r.URL.Path]
		f.mu.Unlock()

		if code != 0 {
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
			return
		}
		if r.Method == http.MethodPut {
			_, _ = w.Write([]byte(`{"id":5,"status":"Paid"}`))
			return
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func TestLoad_FetchesEverything(t *testing.T) {
	_, srv := newServer(t)
	svc := New(Options{Backend: api.NewClient(srv.URL)})

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1234.5, snap.Summary.TotalRevenue)
	require.NotNil(t, snap.Summary.RevenueChange)
	assert.Equal(t, 12.5, *snap.Summary.RevenueChange)
	assert.Nil(t, snap.Summary.ProfitChange)
	require.Len(t, snap.Billing, 1)
	assert.Equal(t, "Acme", snap.Billing[0].PartnerName)
	assert.Len(t, snap.Partners, 1)
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Revenue, 1)
	assert.Len(t, snap.Profit, 1)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoad_ServesFromCache(t *testing.T) {
	f, srv := newServer(t)
	svc := New(Options{Backend: api.NewClient(srv.URL)})

	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	_, err = svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, f.count("GET /api/billing"))
	assert.Equal(t, 1, f.count("GET /api/dashboard-summary"))
}

func TestMarkPaid_RefetchesOnlyInvalidated(t *testing.T) {
	f, srv := newServer(t)
	rec := &notify.Recorder{}
	svc := New(Options{Backend: api.NewClient(srv.URL), Notifier: rec})

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	b, err := svc.MarkPaid(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Paid", b.Status)
	assert.Equal(t, 1, f.count("PUT /api/billing/5"))

	n, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Default, n.Variant)

	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.count("GET /api/billing"))
	assert.Equal(t, 2, f.count("GET /api/dashboard-summary"))
	assert.Equal(t, 1, f.count("GET /api/partners"))
	assert.Equal(t, 1, f.count("GET /api/projects"))
}

func TestLoad_PropagatesFailure(t *testing.T) {
	f, srv := newServer(t)
	f.fail["/api/projects"] = http.StatusInternalServerError
	svc := New(Options{Backend: api.NewClient(srv.URL)})

	_, err := svc.Load(context.Background())
	require.Error(t, err)

	msg, ok := api.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "boom", msg)
}

func TestCompanySettings(t *testing.T) {
	_, srv := newServer(t)
	svc := New(Options{Backend: api.NewClient(srv.URL)})

	cs, err := svc.CompanySettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", cs.CompanyName)
}
