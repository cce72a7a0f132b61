package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"campaigngo/internal/domain"
	"campaigngo/pkg/logger"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// pageBounds normalizes the filter's limit and offset.
func pageBounds(filter domain.CampaignFilter) (limit, offset int) {
	limit = defaultPageLimit
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if filter.Offset > 0 {
		offset = filter.Offset
	}
	return limit, offset
}

// implements domain.CampaignRepository in memory
type MemoryCampaignRepository struct {
	data   map[string]domain.ParsedCampaign
	order  []string
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewMemoryCampaignRepository(logger *logger.Logger) *MemoryCampaignRepository {
	return &MemoryCampaignRepository{
		data:   make(map[string]domain.ParsedCampaign),
		logger: logger,
	}
}

func (r *MemoryCampaignRepository) Save(ctx context.Context, campaign domain.ParsedCampaign) error {
	if campaign.ID == "" {
		return fmt.Errorf("campaign id is required")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.data[campaign.ID]; !exists {
		r.order = append(r.order, campaign.ID)
	}
	r.data[campaign.ID] = campaign.Clone()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"campaign_id": campaign.ID,
		"type":        campaign.Type,
		"stored":      len(r.data),
	}).Debug("Stored campaign in memory")

	return nil
}

func (r *MemoryCampaignRepository) GetByID(ctx context.Context, id string) (*domain.ParsedCampaign, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	campaign, exists := r.data[id]
	if !exists {
		return nil, domain.ErrCampaignNotFound
	}
	out := campaign.Clone()
	return &out, nil
}

// List returns campaigns in insertion order.
func (r *MemoryCampaignRepository) List(ctx context.Context, filter domain.CampaignFilter) (*domain.CampaignList, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var matched []domain.ParsedCampaign
	for _, id := range r.order {
		campaign := r.data[id]
		if matchesFilter(campaign, filter) {
			matched = append(matched, campaign)
		}
	}

	limit, offset := pageBounds(filter)
	total := len(matched)
	start := min(offset, total)
	end := start + min(limit, total-start)

	page := make([]domain.ParsedCampaign, 0, end-start)
	for _, c := range matched[start:end] {
		page = append(page, c.Clone())
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"type":    filter.Type,
		"channel": filter.Channel,
		"total":   total,
		"count":   len(page),
	}).Debug("Listed campaigns from memory")

	return &domain.CampaignList{
		Data:    page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: end < total,
	}, nil
}

func (r *MemoryCampaignRepository) Close() error {
	return nil
}

func matchesFilter(campaign domain.ParsedCampaign, filter domain.CampaignFilter) bool {
	if filter.Type != "" && campaign.Type != filter.Type {
		return false
	}
	if filter.Channel != "" && campaign.Channel != filter.Channel {
		return false
	}
	return true
}
