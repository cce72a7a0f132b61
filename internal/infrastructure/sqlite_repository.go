package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"campaigngo/internal/domain"
	"campaigngo/pkg/logger"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	channel    TEXT NOT NULL DEFAULT '',
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaigns_type ON campaigns(type);
CREATE INDEX IF NOT EXISTS idx_campaigns_created ON campaigns(created_at, id);
`

// fixed width so created_at sorts lexically
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// implements domain.CampaignRepository on an embedded SQLite file
type SQLiteCampaignRepository struct {
	db     *sql.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteCampaignRepository opens (and migrates) the database at path. ":memory:" is accepted.
func NewSQLiteCampaignRepository(ctx context.Context, path string, logger *logger.Logger) (*SQLiteCampaignRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	for _, p := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteCampaignRepository{db: db, logger: logger, now: time.Now}, nil
}

func (r *SQLiteCampaignRepository) Save(ctx context.Context, campaign domain.ParsedCampaign) error {
	if campaign.ID == "" {
		return fmt.Errorf("campaign id is required")
	}
	payload, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("marshal campaign: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO campaigns (id, type, channel, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET type = excluded.type, channel = excluded.channel, payload = excluded.payload`,
		campaign.ID, string(campaign.Type), campaign.Channel, string(payload),
		r.now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert campaign %s: %w", campaign.ID, err)
	}

	r.logger.WithContext(ctx).WithField("campaign_id", campaign.ID).Debug("Stored campaign in sqlite")
	return nil
}

func (r *SQLiteCampaignRepository) GetByID(ctx context.Context, id string) (*domain.ParsedCampaign, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM campaigns WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query campaign %s: %w", id, err)
	}
	return decodeCampaign([]byte(payload))
}

func (r *SQLiteCampaignRepository) List(ctx context.Context, filter domain.CampaignFilter) (*domain.CampaignList, error) {
	limit, offset := pageBounds(filter)
	where, args := sqlFilter(filter, func(int) string { return "?" })

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count campaigns: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT payload FROM campaigns`+where+` ORDER BY created_at, id LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	page := []domain.ParsedCampaign{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		c, err := decodeCampaign([]byte(payload))
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

func (r *SQLiteCampaignRepository) Close() error {
	return r.db.Close()
}

// sqlFilter builds a WHERE clause for the filter; placeholder renders the n-th (1-based) argument.
func sqlFilter(filter domain.CampaignFilter, placeholder func(n int) string) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		clauses = append(clauses, "type = "+placeholder(len(args)))
	}
	if filter.Channel != "" {
		args = append(args, filter.Channel)
		clauses = append(clauses, "channel = "+placeholder(len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

func decodeCampaign(payload []byte) (*domain.ParsedCampaign, error) {
	var c domain.ParsedCampaign
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("decode campaign: %w", err)
	}
	return &c, nil
}
