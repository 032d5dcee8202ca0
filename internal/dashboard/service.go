// Package dashboard ties the cached read path and the resource writers
// together for the CLI and the TUI.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/mutation"
	"github.com/theirongolddev/bizdash/internal/notify"
	"github.com/theirongolddev/bizdash/internal/query"
	"github.com/theirongolddev/bizdash/internal/resource"
)

// Backend is the HTTP surface the service needs. *api.Client satisfies it.
type Backend interface {
	query.Getter
	mutation.Doer
}

// Options configures a Service.
type Options struct {
	Backend    Backend
	Cache      query.Cache
	Notifier   notify.Notifier
	Logger     *zap.Logger
	StaleAfter time.Duration
}

// Snapshot is everything the dashboard shows at once.
type Snapshot struct {
	Summary  model.DashboardSummary
	Billing  []model.Billing
	Partners []model.Partner
	Projects []model.Project
	Revenue  []model.RevenueEntry
	Profit   []model.ProfitShare
	LoadedAt time.Time
}

// Service reads through the query cache and writes through mutation clients
// that share it.
type Service struct {
	loader *query.Loader
	logger *zap.Logger

	Billing  *mutation.Client[resource.BillingInput, model.Billing]
	Partners *mutation.Client[resource.PartnerInput, model.Partner]
	Settings *mutation.Client[resource.CompanySettingsInput, model.CompanySettings]
}

// New returns a Service. Cache defaults to an in-memory cache scoped to the
// Service's lifetime.
func New(opts Options) *Service {
	if opts.Cache == nil {
		opts.Cache = query.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	deps := mutation.Deps{
		API:      opts.Backend,
		Cache:    opts.Cache,
		Notifier: opts.Notifier,
		Logger:   opts.Logger.Named("mutation"),
	}
	return &Service{
		loader:   query.NewLoader(opts.Cache, opts.Backend, opts.StaleAfter, opts.Logger.Named("query")),
		logger:   opts.Logger,
		Billing:  mutation.New[resource.BillingInput, model.Billing](resource.Billing, deps),
		Partners: mutation.New[resource.PartnerInput, model.Partner](resource.Partners, deps),
		Settings: mutation.New[resource.CompanySettingsInput, model.CompanySettings](resource.CompanySettings, deps),
	}
}

// Cache returns the shared query cache.
func (s *Service) Cache() query.Cache {
	return s.loader.Cache()
}

func list[T any](ctx context.Context, l *query.Loader, d resource.Descriptor) ([]T, error) {
	return query.Fetch[[]T](ctx, l, d.ListKey(), d.CollectionPath())
}

// Summary returns the dashboard aggregate.
func (s *Service) Summary(ctx context.Context) (model.DashboardSummary, error) {
	d := resource.DashboardSummary
	return query.Fetch[model.DashboardSummary](ctx, s.loader, d.ListKey(), d.CollectionPath())
}

// ListBilling returns every billing record.
func (s *Service) ListBilling(ctx context.Context) ([]model.Billing, error) {
	return list[model.Billing](ctx, s.loader, resource.Billing)
}

// ListPartners returns every partner.
func (s *Service) ListPartners(ctx context.Context) ([]model.Partner, error) {
	return list[model.Partner](ctx, s.loader, resource.Partners)
}

// ListProjects returns every project.
func (s *Service) ListProjects(ctx context.Context) ([]model.Project, error) {
	return list[model.Project](ctx, s.loader, resource.Projects)
}

// Revenue returns revenue and expenses per period.
func (s *Service) Revenue(ctx context.Context) ([]model.RevenueEntry, error) {
	return list[model.RevenueEntry](ctx, s.loader, resource.Revenue)
}

// ProfitDistribution returns each partner's share of profit.
func (s *Service) ProfitDistribution(ctx context.Context) ([]model.ProfitShare, error) {
	return list[model.ProfitShare](ctx, s.loader, resource.ProfitDistribution)
}

// CompanySettings returns the company profile.
func (s *Service) CompanySettings(ctx context.Context) (model.CompanySettings, error) {
	d := resource.CompanySettings
	return query.Fetch[model.CompanySettings](ctx, s.loader, d.ListKey(), d.CollectionPath())
}

// Load fetches every dashboard dataset concurrently. The first failure
// cancels the rest.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		snap.Summary, err = s.Summary(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		snap.Billing, err = s.ListBilling(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		snap.Partners, err = s.ListPartners(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		snap.Projects, err = s.ListProjects(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		snap.Revenue, err = s.Revenue(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		snap.Profit, err = s.ProfitDistribution(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("loading dashboard: %w", err)
	}
	snap.LoadedAt = time.Now()
	s.logger.Debug("dashboard loaded",
		zap.Int("billing", len(snap.Billing)),
		zap.Int("partners", len(snap.Partners)),
		zap.Int("projects", len(snap.Projects)),
	)
	return snap, nil
}

// MarkPaid sets a billing record's status to Paid.
func (s *Service) MarkPaid(ctx context.Context, id int64) (model.Billing, error) {
	return s.Billing.Update(ctx, id, resource.BillingInput{Status: resource.String(resource.StatusPaid)})
}
