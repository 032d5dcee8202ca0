// Package tui provides the interactive Bubble Tea dashboard for bizdash.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bizdash/internal/chart"
	"github.com/theirongolddev/bizdash/internal/dashboard"
	"github.com/theirongolddev/bizdash/internal/notify"
	"github.com/theirongolddev/bizdash/internal/status"
	"github.com/theirongolddev/bizdash/internal/tui/components"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

// SnapshotMsg is sent when a dashboard load finishes.
type SnapshotMsg struct {
	Snapshot dashboard.Snapshot
	Err      error
	LoadTime time.Duration
}

// PaidMsg is sent when a mark-paid write finishes.
type PaidMsg struct {
	ID  int64
	Err error
}

const (
	tabOverview = iota
	tabBilling
	tabPartners
	tabProjects
)

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
	requestTimeout   = 30 * time.Second
)

// Options configures the App.
type Options struct {
	Service       *dashboard.Service
	Notifications *notify.Recorder
	Classifier    *status.Classifier
	ChartHeight   int

	// NeedSetup shows the setup form before the dashboard. SaveSetup is
	// called with the answers when the form completes.
	NeedSetup    bool
	SetupValues  SetupValues
	SaveSetup    func(SetupValues) error
	OnSetupSaved func() *dashboard.Service
}

// App is the root Bubble Tea model.
type App struct {
	svc        *dashboard.Service
	notes      *notify.Recorder
	classifier *status.Classifier

	snap     dashboard.Snapshot
	loaded   bool
	loading  bool
	loadErr  error
	loadTime time.Duration

	width       int
	height      int
	activeTab   int
	cursor      [4]int
	showHelp    bool
	chartHeight int
	spinner     spinner.Model

	setupForm    *huh.Form
	setupVals    *SetupValues
	saveSetup    func(SetupValues) error
	onSetupSaved func() *dashboard.Service
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	notes := opts.Notifications
	if notes == nil {
		notes = &notify.Recorder{}
	}
	height := opts.ChartHeight
	if height <= 0 {
		height = 10
	}

	a := App{
		svc:          opts.Service,
		notes:        notes,
		classifier:   opts.Classifier,
		chartHeight:  height,
		spinner:      sp,
		loading:      !opts.NeedSetup,
		saveSetup:    opts.SaveSetup,
		onSetupSaved: opts.OnSetupSaved,
	}
	if opts.NeedSetup {
		vals := opts.SetupValues
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return tea.Batch(a.spinner.Tick, loadCmd(a.svc))
}

func loadCmd(svc *dashboard.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		start := time.Now()
		snap, err := svc.Load(ctx)
		return SnapshotMsg{Snapshot: snap, Err: err, LoadTime: time.Since(start)}
	}
}

func markPaidCmd(svc *dashboard.Service, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		_, err := svc.MarkPaid(ctx, id)
		return PaidMsg{ID: id, Err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.setupForm != nil || !a.loaded {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(a.activeTab, msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		return a.updateKeys(msg)

	case SnapshotMsg:
		a.loading = false
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			a.loadErr = msg.Err
			return a, nil
		}
		a.loadErr = nil
		a.snap = msg.Snapshot
		a.loaded = true
		a.clampCursors()
		return a, nil

	case PaidMsg:
		// The notifier already reported the outcome; a success also left the
		// billing and summary caches stale, so reload to pick them up.
		if msg.Err != nil {
			return a, nil
		}
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, loadCmd(a.svc))

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		if a.loading {
			return a, nil
		}
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, loadCmd(a.svc))
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "j", "down":
		if a.cursor[a.activeTab] < a.listLen(a.activeTab)-1 {
			a.cursor[a.activeTab]++
		}
		return a, nil
	case "k", "up":
		if a.cursor[a.activeTab] > 0 {
			a.cursor[a.activeTab]--
		}
		return a, nil
	case "g":
		a.cursor[a.activeTab] = 0
		return a, nil
	case "G":
		a.cursor[a.activeTab] = max(0, a.listLen(a.activeTab)-1)
		return a, nil
	case "p":
		if a.activeTab != tabBilling || !a.loaded || len(a.snap.Billing) == 0 {
			return a, nil
		}
		return a, markPaidCmd(a.svc, a.snap.Billing[a.cursor[tabBilling]].ID)
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if a.saveSetup != nil {
			if err := a.saveSetup(*a.setupVals); err != nil {
				a.notes.Notify(notify.Notification{
					Title:       "Error",
					Description: "Could not save config: " + err.Error(),
					Variant:     notify.Destructive,
				})
			}
		}
		theme.SetActive(a.setupVals.Theme)
		if a.onSetupSaved != nil {
			if svc := a.onSetupSaved(); svc != nil {
				a.svc = svc
			}
		}
	case huh.StateAborted:
	default:
		return a, cmd
	}

	a.setupForm = nil
	a.loading = true
	return a, tea.Batch(a.spinner.Tick, loadCmd(a.svc))
}

func (a App) listLen(tab int) int {
	switch tab {
	case tabBilling:
		return len(a.snap.Billing)
	case tabPartners:
		return len(a.snap.Partners)
	case tabProjects:
		return len(a.snap.Projects)
	default:
		return 0
	}
}

func (a *App) clampCursors() {
	for tab := range a.cursor {
		n := a.listLen(tab)
		if a.cursor[tab] >= n {
			a.cursor[tab] = max(0, n-1)
		}
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  bizdash needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(1, 3)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ bizdash"))
	b.WriteString(mutedStyle.Render(" · Business Dashboard"))
	b.WriteString("\n\n")

	if a.loadErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		b.WriteString(errStyle.Render("Could not load the dashboard"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(a.loadErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("Press r to retry, q to quit"))
	} else {
		b.WriteString(a.spinner.View())
		b.WriteString(mutedStyle.Render(" Loading dashboard..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewHelp() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	bindings := []struct{ key, desc string }{
		{"1 2 3 4", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move selection"},
		{"g G", "First / Last row"},
		{"p", "Mark selected invoice paid"},
		{"r", "Refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "%s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, a.width)

	var last *notify.Notification
	if n, ok := a.notes.Last(); ok {
		last = &n
	}
	age := fmt.Sprintf("%.1fs", a.loadTime.Seconds())
	if a.loading {
		age = a.spinner.View() + " " + age
	}
	statusBar := components.RenderStatusBar(a.width, last, age)

	contentH := max(minContentHeight, a.height-lipgloss.Height(header)-lipgloss.Height(statusBar))

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverview(cw)
	case tabBilling:
		content = a.renderBilling(cw)
	case tabPartners:
		content = a.renderPartners(cw)
	case tabProjects:
		content = a.renderProjects(cw)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) renderOverview(cw int) string {
	cards := components.MetricCardRow(a.snap.Summary.Metrics(), cw)

	widths := components.LayoutRow(cw, 2)
	revenue := components.ContentCard("",
		components.RenderChart(chart.RevenueSpec(a.snap.Revenue, a.chartHeight), components.CardInnerWidth(widths[0])),
		widths[0])
	profit := components.ContentCard("",
		components.RenderChart(chart.ProfitDistributionSpec(a.snap.Profit, a.chartHeight), components.CardInnerWidth(widths[1])),
		widths[1])

	return lipgloss.JoinVertical(lipgloss.Left, cards, components.CardRow([]string{revenue, profit}))
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
