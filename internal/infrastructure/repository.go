package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campaigngo/internal/domain"
	"campaigngo/pkg/config"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"
)

// NewCampaignRepository builds the repository selected by cfg.Driver, instrumented with m.
func NewCampaignRepository(ctx context.Context, cfg config.StorageConfig, log *logger.Logger, m *metrics.Metrics) (domain.CampaignRepository, error) {
	var (
		repo domain.CampaignRepository
		err  error
	)
	switch cfg.Driver {
	case config.DriverMemory, "":
		repo = NewMemoryCampaignRepository(log)
	case config.DriverSQLite:
		repo, err = NewSQLiteCampaignRepository(ctx, cfg.SQLitePath, log)
	case config.DriverPostgres:
		repo, err = NewPostgresCampaignRepository(ctx, cfg.DatabaseURL, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	driver := cfg.Driver
	if driver == "" {
		driver = config.DriverMemory
	}
	log.WithField("driver", driver).Info("Campaign repository ready")

	return &instrumentedRepository{next: repo, driver: driver, metrics: m}, nil
}

// instrumentedRepository records operation counts and latency for any backend.
type instrumentedRepository struct {
	next    domain.CampaignRepository
	driver  string
	metrics *metrics.Metrics
}

func (r *instrumentedRepository) observe(operation string, start time.Time, err error) {
	status := "success"
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	r.metrics.RecordRepositoryOp(r.driver, operation, status, time.Since(start))
}

func (r *instrumentedRepository) Save(ctx context.Context, campaign domain.ParsedCampaign) error {
	start := time.Now()
	err := r.next.Save(ctx, campaign)
	r.observe("save", start, err)
	return err
}

func (r *instrumentedRepository) GetByID(ctx context.Context, id string) (*domain.ParsedCampaign, error) {
	start := time.Now()
	c, err := r.next.GetByID(ctx, id)
	r.observe("get", start, err)
	return c, err
}

func (r *instrumentedRepository) List(ctx context.Context, filter domain.CampaignFilter) (*domain.CampaignList, error) {
	start := time.Now()
	list, err := r.next.List(ctx, filter)
	r.observe("list", start, err)
	return list, err
}

func (r *instrumentedRepository) Close() error {
	return r.next.Close()
}
