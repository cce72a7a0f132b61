package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campaigngo/internal/domain"
	"campaigngo/internal/parser"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"github.com/google/uuid"
)

// CampaignService runs the conversation parser and manages stored campaigns.
type CampaignService struct {
	parser     *parser.Parser
	repo       domain.CampaignRepository
	publisher  domain.EventPublisher
	exporter   domain.CampaignExporter
	logger     *logger.Logger
	metrics    *metrics.Metrics
	workerPool int
	maxBatch   int
	maxInput   int
	now        func() time.Time
	newID      func() string
}

type Option func(*CampaignService)

// WithPublisher fans out campaign.parsed events after creation.
func WithPublisher(p domain.EventPublisher) Option {
	return func(s *CampaignService) { s.publisher = p }
}

// WithExporter pushes created campaigns to a downstream sink.
func WithExporter(e domain.CampaignExporter) Option {
	return func(s *CampaignService) { s.exporter = e }
}

func WithClock(now func() time.Time) Option {
	return func(s *CampaignService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *CampaignService) { s.newID = newID }
}

// WithLimits bounds batch size and per-conversation input size; zero leaves a limit unchanged.
func WithLimits(maxBatch, maxInputBytes int) Option {
	return func(s *CampaignService) {
		if maxBatch > 0 {
			s.maxBatch = maxBatch
		}
		if maxInputBytes > 0 {
			s.maxInput = maxInputBytes
		}
	}
}

func NewCampaignService(
	repo domain.CampaignRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	workerPool int,
	opts ...Option,
) *CampaignService {
	if workerPool < 1 {
		workerPool = 1
	}
	s := &CampaignService{
		repo:       repo,
		logger:     logger,
		metrics:    metrics,
		workerPool: workerPool,
		maxBatch:   100,
		maxInput:   64 << 10,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = parser.New(s.now)
	return s
}

func (s *CampaignService) checkInput(text string) error {
	if len(text) > s.maxInput {
		return fmt.Errorf("%w: %d bytes, limit %d", domain.ErrInputTooLarge, len(text), s.maxInput)
	}
	return nil
}

// parse runs the engine and records metrics. It does not log.
func (s *CampaignService) parse(text string) parser.Result {
	start := time.Now()
	res := s.parser.Parse(text)
	s.metrics.RecordParse(string(res.Campaign.Type), time.Since(start))
	for _, f := range res.Extracted {
		s.metrics.RecordField(f, "extracted")
	}
	for _, f := range res.Defaulted {
		s.metrics.RecordField(f, "defaulted")
	}
	return res
}

// ParseConversation returns the fully defaulted campaign for text without storing it.
func (s *CampaignService) ParseConversation(ctx context.Context, text string) (*domain.ParsedCampaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkInput(text); err != nil {
		return nil, err
	}

	res := s.parse(text)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"type":      res.Campaign.Type,
		"extracted": len(res.Extracted),
		"defaulted": len(res.Defaulted),
	}).Info("Parsed conversation")

	return &res.Campaign, nil
}

// CreateFromConversation parses text, assigns an id and stores the result. Event publishing
// and export run afterwards; their failures are logged and do not fail the call.
func (s *CampaignService) CreateFromConversation(ctx context.Context, text string) (*domain.ParsedCampaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkInput(text); err != nil {
		return nil, err
	}

	campaign := s.parse(text).Campaign
	campaign.ID = s.newID()

	log := s.logger.WithContext(ctx).WithField("campaign_id", campaign.ID)

	if err := s.repo.Save(ctx, campaign); err != nil {
		log.WithError(err).Error("Failed to store campaign")
		return nil, fmt.Errorf("failed to store campaign: %w", err)
	}

	if s.publisher != nil {
		event := domain.CampaignEvent{
			Event:      domain.EventCampaignParsed,
			Campaign:   campaign,
			OccurredAt: s.now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Failed to publish campaign event")
		}
	}

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, campaign); err != nil {
			log.WithError(err).Warn("Failed to export campaign")
		}
	}

	log.WithFields(map[string]any{
		"type": campaign.Type,
		"name": campaign.Name,
	}).Info("Created campaign from conversation")

	return &campaign, nil
}

// ParseBatch parses texts on a worker pool. Results keep the input order.
func (s *CampaignService) ParseBatch(ctx context.Context, texts []string) ([]domain.ParsedCampaign, error) {
	if len(texts) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(texts) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d conversations, limit %d", domain.ErrBatchTooLarge, len(texts), s.maxBatch)
	}
	for i, text := range texts {
		if err := s.checkInput(text); err != nil {
			return nil, fmt.Errorf("conversation %d: %w", i, err)
		}
	}

	start := time.Now()
	s.metrics.IncBatchJobsInProgress()
	defer s.metrics.DecBatchJobsInProgress()

	log := s.logger.WithContext(ctx)
	log.WithFields(map[string]any{
		"conversations": len(texts),
		"workers":       s.workerPool,
	}).Info("Starting batch parse")

	out := make([]domain.ParsedCampaign, len(texts))
	jobs := make(chan int, len(texts))

	var wg sync.WaitGroup
	for range min(s.workerPool, len(texts)) {
		wg.Go(func() {
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				out[i] = s.parse(texts[i]).Campaign
			}
		})
	}

	go func() {
		defer close(jobs)
		for i := range texts {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		s.metrics.RecordBatchJob("cancelled", time.Since(start))
		log.WithError(err).Warn("Batch parse cancelled")
		return nil, err
	}

	duration := time.Since(start)
	s.metrics.RecordBatchJob("success", duration)
	log.WithFields(map[string]any{
		"conversations": len(texts),
		"duration":      duration,
	}).Info("Batch parse completed")

	return out, nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*domain.ParsedCampaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrCampaignNotFound) {
			s.logger.WithContext(ctx).WithError(err).WithField("campaign_id", id).Error("Failed to get campaign")
		}
		return nil, fmt.Errorf("failed to get campaign %s: %w", id, err)
	}
	return campaign, nil
}

func (s *CampaignService) List(ctx context.Context, filter domain.CampaignFilter) (*domain.CampaignList, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown campaign type %q", domain.ErrInvalidFilter, filter.Type)
	}
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("Failed to list campaigns")
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return list, nil
}

// Preview parses text and renders it for approval before creation.
func (s *CampaignService) Preview(ctx context.Context, text string) (*domain.CampaignPreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.checkInput(text); err != nil {
		return nil, err
	}

	res := s.parse(text)
	preview := BuildPreview(res.Campaign, res.Defaulted)
	return &preview, nil
}

// EnhanceAnswer rewrites a questionnaire answer into a fuller marketing sentence.
func (s *CampaignService) EnhanceAnswer(ctx context.Context, answer, questionKey string) domain.EnhancedAnswer {
	label, outcome := questionKey, "template"
	if !parser.KnownQuestionKey(questionKey) {
		label, outcome = "unknown", "generic"
	} else if parser.HasElaboration(answer, questionKey) {
		outcome = "keyword"
	}
	s.metrics.RecordEnhancement(label, outcome)

	enhanced := parser.Enhance(answer, questionKey)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"question_key": questionKey,
		"outcome":      outcome,
	}).Debug("Enhanced answer")

	return domain.EnhancedAnswer{
		QuestionKey: questionKey,
		Original:    answer,
		Enhanced:    enhanced,
	}
}
