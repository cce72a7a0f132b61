package domain

import (
	"context"
	"errors"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrEmptyBatch       = errors.New("no conversations supplied")
	ErrBatchTooLarge    = errors.New("too many conversations in batch")
	ErrInputTooLarge    = errors.New("conversation text too large")
	ErrInvalidFilter    = errors.New("invalid filter")
)

// interface for campaign persistence
type CampaignRepository interface {
	Save(ctx context.Context, campaign ParsedCampaign) error
	GetByID(ctx context.Context, id string) (*ParsedCampaign, error)
	List(ctx context.Context, filter CampaignFilter) (*CampaignList, error)
	Close() error
}

// interface for campaign event fan-out
type EventPublisher interface {
	Publish(ctx context.Context, event CampaignEvent) error
}

// interface for pushing created campaigns to a downstream sink
type CampaignExporter interface {
	Export(ctx context.Context, campaign ParsedCampaign) error
}
