package usecase

import (
	"context"
	"fmt"

	"campaigngo/internal/domain"
	"campaigngo/pkg/logger"
)

const summaryPageSize = 1000

// SummaryService reports aggregate figures over stored campaigns
type SummaryService struct {
	repo   domain.CampaignRepository
	logger *logger.Logger
}

func NewSummaryService(repo domain.CampaignRepository, logger *logger.Logger) *SummaryService {
	return &SummaryService{
		repo:   repo,
		logger: logger,
	}
}

// Summary walks every stored campaign page by page and aggregates budgets per type and
// campaign counts per channel.
func (s *SummaryService) Summary(ctx context.Context) (*domain.CampaignSummary, error) {
	log := s.logger.WithContext(ctx)

	summary := &domain.CampaignSummary{
		ByType:    make(map[domain.CampaignType]domain.TypeSummary),
		ByChannel: make(map[string]int),
	}

	filter := domain.CampaignFilter{Limit: summaryPageSize}
	for {
		page, err := s.repo.List(ctx, filter)
		if err != nil {
			log.WithError(err).Error("Failed to build campaign summary")
			return nil, fmt.Errorf("failed to build campaign summary: %w", err)
		}
		for _, c := range page.Data {
			summary.Add(c)
		}
		if !page.HasMore || len(page.Data) == 0 {
			break
		}
		filter.Offset += len(page.Data)
	}

	for t, ts := range summary.ByType {
		if ts.Count > 0 {
			ts.AverageBudget = ts.TotalBudget / float64(ts.Count)
			summary.ByType[t] = ts
		}
	}

	log.WithField("campaigns", summary.Campaigns).Info("Campaign summary generated")
	return summary, nil
}
