package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"campaigngo/internal/domain"
	"campaigngo/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	channel    TEXT NOT NULL DEFAULT '',
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_campaigns_type ON campaigns(type);
CREATE INDEX IF NOT EXISTS idx_campaigns_created ON campaigns(created_at, id);
`

// implements domain.CampaignRepository on Postgres
type PostgresCampaignRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

func NewPostgresCampaignRepository(ctx context.Context, databaseURL string, logger *logger.Logger) (*PostgresCampaignRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &PostgresCampaignRepository{pool: pool, logger: logger}, nil
}

func (r *PostgresCampaignRepository) Save(ctx context.Context, campaign domain.ParsedCampaign) error {
	if campaign.ID == "" {
		return fmt.Errorf("campaign id is required")
	}
	payload, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("marshal campaign: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO campaigns (id, type, channel, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET type = EXCLUDED.type, channel = EXCLUDED.channel, payload = EXCLUDED.payload`,
		campaign.ID, string(campaign.Type), campaign.Channel, payload,
	)
	if err != nil {
		return fmt.Errorf("insert campaign %s: %w", campaign.ID, err)
	}

	r.logger.WithContext(ctx).WithField("campaign_id", campaign.ID).Debug("Stored campaign in postgres")
	return nil
}

func (r *PostgresCampaignRepository) GetByID(ctx context.Context, id string) (*domain.ParsedCampaign, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, `SELECT payload FROM campaigns WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query campaign %s: %w", id, err)
	}
	return decodeCampaign(payload)
}

func (r *PostgresCampaignRepository) List(ctx context.Context, filter domain.CampaignFilter) (*domain.CampaignList, error) {
	limit, offset := pageBounds(filter)
	where, args := sqlFilter(filter, func(n int) string { return "$" + strconv.Itoa(n) })

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count campaigns: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT payload FROM campaigns%s ORDER BY created_at, id LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	page := []domain.ParsedCampaign{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		c, err := decodeCampaign(payload)
		if err != nil {
			return nil, err
		}
		page = append(page, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}

	return &domain.CampaignList{
		Data:    page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset < total-len(page),
	}, nil
}

func (r *PostgresCampaignRepository) Close() error {
	r.pool.Close()
	return nil
}
