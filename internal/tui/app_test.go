package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/api"
	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/dashboard"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/notify"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func snapshot() dashboard.Snapshot {
	return dashboard.Snapshot{
		Summary: model.DashboardSummary{TotalRevenue: 1234.5, ActivePartners: 3},
		Billing: []model.Billing{
			{ID: 5, PartnerName: "Acme", Amount: 120, Status: "Pending"},
			{ID: 9, PartnerName: "Globex", Amount: 80, Status: "Overdue"},
		},
		Partners: []model.Partner{{ID: 1, Name: "Ann", Status: "Active"}},
	}
}

func loadedApp(t *testing.T, svc *dashboard.Service) App {
	t.Helper()
	a := NewApp(Options{Service: svc})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.(App).Update(SnapshotMsg{Snapshot: snapshot()})
	return m.(App)
}

func press(t *testing.T, a App, keys ...tea.KeyMsg) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var m tea.Model = a
	for _, k := range keys {
		m, cmd = m.(App).Update(k)
	}
	return m.(App), cmd
}

func TestTabsAndCursor(t *testing.T) {
	a := loadedApp(t, nil)
	assert.Contains(t, a.View(), "$1,234.50")

	a, _ = press(t, a, runes("2"))
	assert.Equal(t, tabBilling, a.activeTab)
	view := a.View()
	assert.Contains(t, view, "Acme")
	assert.Contains(t, view, "Globex")

	a, _ = press(t, a, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 1, a.cursor[tabBilling], "cursor stops at last row")
	a, _ = press(t, a, runes("k"))
	assert.Equal(t, 0, a.cursor[tabBilling])

	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabPartners, a.activeTab)
	a, _ = press(t, a, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabOverview, a.activeTab)
}

func TestEmptyListsShowEmptyState(t *testing.T) {
	a := NewApp(Options{})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.(App).Update(SnapshotMsg{})
	a = m.(App)

	a, _ = press(t, a, runes("4"))
	assert.Contains(t, a.View(), "No projects yet.")
	a, _ = press(t, a, runes("j"))
	assert.Equal(t, 0, a.cursor[tabProjects])
}

func TestLoadErrorOffersRetry(t *testing.T) {
	a := NewApp(Options{})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.(App).Update(SnapshotMsg{Err: errors.New("connection refused")})
	a = m.(App)

	view := a.View()
	assert.Contains(t, view, "connection refused")
	assert.Contains(t, view, "Press r to retry")

	a, cmd := press(t, a, runes("r"))
	assert.True(t, a.loading)
	assert.NotNil(t, cmd)
}

func TestMarkPaidOnlyOnBillingTab(t *testing.T) {
	a := loadedApp(t, nil)
	_, cmd := press(t, a, runes("p"))
	assert.Nil(t, cmd, "p does nothing outside the billing tab")
}

func TestMarkPaidSendsUpdateAndReloads(t *testing.T) {
	var mu sync.Mutex
	var writes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			mu.Lock()
			writes = append(writes, r.URL.Path)
			mu.Unlock()
			_, _ = w.Write([]byte(`{"id":9,"status":"Paid"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	rec := &notify.Recorder{}
	svc := dashboard.New(dashboard.Options{Backend: api.NewClient(srv.URL), Notifier: rec})

	a := loadedApp(t, svc)
	a.notes = rec
	a, _ = press(t, a, runes("2"), runes("j"))
	_, cmd := press(t, a, runes("p"))
	require.NotNil(t, cmd)

	msg := cmd()
	paid, ok := msg.(PaidMsg)
	require.True(t, ok, "got %T", msg)
	require.NoError(t, paid.Err)
	assert.Equal(t, int64(9), paid.ID)

	mu.Lock()
	assert.Equal(t, []string{"/api/billing/9"}, writes)
	mu.Unlock()

	n, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Default, n.Variant)

	m, reload := a.Update(paid)
	assert.True(t, m.(App).loading)
	assert.NotNil(t, reload)
	assert.Contains(t, m.(App).View(), "Billing record updated successfully")
}

func TestHelpToggle(t *testing.T) {
	a := loadedApp(t, nil)
	a, _ = press(t, a, runes("?"))
	assert.True(t, strings.Contains(a.View(), "Keyboard Shortcuts"))
	a, _ = press(t, a, runes("x"))
	assert.False(t, a.showHelp)
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.API.Token = "keep-me"

	v := SetupValuesFrom(cfg)
	v.APIURL = "https://books.example.com"
	v.Theme = "terminal"
	v.Persistent = false
	v.Apply(&cfg)

	assert.Equal(t, "https://books.example.com", cfg.API.BaseURL)
	assert.Equal(t, "keep-me", cfg.API.Token, "blank token keeps the old one")
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
	assert.False(t, cfg.Cache.Persistent)

	assert.Error(t, validateBaseURL("ftp://nope"))
	assert.NoError(t, validateBaseURL("http://localhost:3000"))
}
