package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"campaigngo/internal/domain"
	"campaigngo/internal/infrastructure"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.CampaignEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e domain.CampaignEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fakeExporter struct {
	exported []string
	err      error
}

func (e *fakeExporter) Export(_ context.Context, c domain.ParsedCampaign) error {
	e.exported = append(e.exported, c.ID)
	return e.err
}

type failingRepository struct {
	err error
}

func (r failingRepository) Save(context.Context, domain.ParsedCampaign) error { return r.err }
func (r failingRepository) GetByID(context.Context, string) (*domain.ParsedCampaign, error) {
	return nil, r.err
}
func (r failingRepository) List(context.Context, domain.CampaignFilter) (*domain.CampaignList, error) {
	return nil, r.err
}
func (r failingRepository) Close() error { return nil }

func newTestService(t *testing.T, repo domain.CampaignRepository, opts ...Option) *CampaignService {
	t.Helper()
	if repo == nil {
		repo = infrastructure.NewMemoryCampaignRepository(logger.Discard())
	}
	seq := 0
	opts = append([]Option{
		WithClock(fixedClock),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("cmp-%d", seq)
		}),
	}, opts...)
	return NewCampaignService(repo, logger.Discard(), metrics.NewWithRegisterer(prometheus.NewRegistry()), 4, opts...)
}

func TestParseConversation(t *testing.T) {
	s := newTestService(t, nil)

	c, err := s.ParseConversation(context.Background(), "social media push on instagram with a budget of $1,200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Type != domain.TypeSocialMedia {
		t.Errorf("expected social_media, got %s", c.Type)
	}
	if *c.TotalBudget != 1200 {
		t.Errorf("expected budget 1200, got %v", *c.TotalBudget)
	}
	if c.ID != "" {
		t.Errorf("parse must not assign an id, got %q", c.ID)
	}
}

func TestParseConversation_InputTooLarge(t *testing.T) {
	s := newTestService(t, nil, WithLimits(0, 16))

	_, err := s.ParseConversation(context.Background(), strings.Repeat("a", 17))
	if !errors.Is(err, domain.ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestParseConversation_CancelledContext(t *testing.T) {
	s := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ParseConversation(ctx, "email"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCreateFromConversation(t *testing.T) {
	pub := &fakePublisher{}
	exp := &fakeExporter{}
	s := newTestService(t, nil, WithPublisher(pub), WithExporter(exp))
	ctx := context.Background()

	c, err := s.CreateFromConversation(ctx, "SEO campaign to rank for local bakery keywords")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != "cmp-1" {
		t.Errorf("expected id cmp-1, got %q", c.ID)
	}

	stored, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("expected stored campaign, got %v", err)
	}
	if stored.Type != domain.TypeSEO {
		t.Errorf("expected seo, got %s", stored.Type)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	if pub.events[0].Event != domain.EventCampaignParsed || pub.events[0].Campaign.ID != c.ID {
		t.Errorf("unexpected event %+v", pub.events[0])
	}
	if !pub.events[0].OccurredAt.Equal(fixedNow) {
		t.Errorf("expected event time %v, got %v", fixedNow, pub.events[0].OccurredAt)
	}
	if len(exp.exported) != 1 || exp.exported[0] != c.ID {
		t.Errorf("expected export of %s, got %v", c.ID, exp.exported)
	}
}

func TestCreateFromConversation_DownstreamFailuresAreNotFatal(t *testing.T) {
	pub := &fakePublisher{err: errors.New("nats down")}
	exp := &fakeExporter{err: errors.New("sink down")}
	s := newTestService(t, nil, WithPublisher(pub), WithExporter(exp))

	c, err := s.CreateFromConversation(context.Background(), "email newsletter")
	if err != nil {
		t.Fatalf("publish and export failures must not fail creation, got %v", err)
	}
	if _, err := s.Get(context.Background(), c.ID); err != nil {
		t.Errorf("expected campaign to be stored, got %v", err)
	}
}

func TestCreateFromConversation_StoreFailure(t *testing.T) {
	pub := &fakePublisher{}
	s := newTestService(t, failingRepository{err: errors.New("disk full")}, WithPublisher(pub))

	if _, err := s.CreateFromConversation(context.Background(), "email newsletter"); err == nil {
		t.Fatal("expected error")
	}
	if len(pub.events) != 0 {
		t.Error("no event should be published when the store fails")
	}
}

func TestParseBatch_KeepsOrder(t *testing.T) {
	s := newTestService(t, nil)

	texts := []string{
		"email newsletter for subscribers",
		"instagram and tiktok social media push",
		"google ads ppc campaign",
		"blog content series",
		"seo audit and keyword ranking",
		"something else entirely",
	}
	want := []domain.CampaignType{
		domain.TypeEmail, domain.TypeSocialMedia, domain.TypePaidAds,
		domain.TypeContent, domain.TypeSEO, domain.TypeOther,
	}

	out, err := s.ParseBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(out))
	}
	for i, c := range out {
		if c.Type != want[i] {
			t.Errorf("result %d: expected %s, got %s", i, want[i], c.Type)
		}
	}
}

func TestParseBatch_Limits(t *testing.T) {
	s := newTestService(t, nil, WithLimits(2, 8))
	ctx := context.Background()

	if _, err := s.ParseBatch(ctx, nil); !errors.Is(err, domain.ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
	if _, err := s.ParseBatch(ctx, []string{"a", "b", "c"}); !errors.Is(err, domain.ErrBatchTooLarge) {
		t.Errorf("expected ErrBatchTooLarge, got %v", err)
	}
	if _, err := s.ParseBatch(ctx, []string{"a", "way too long"}); !errors.Is(err, domain.ErrInputTooLarge) {
		t.Errorf("expected ErrInputTooLarge, got %v", err)
	}
}

func TestParseBatch_Cancelled(t *testing.T) {
	s := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.ParseBatch(ctx, []string{"email", "seo"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestService(t, nil)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	s := newTestService(t, nil)
	ctx := context.Background()

	for _, text := range []string{"email newsletter", "seo keywords", "email drip"} {
		if _, err := s.CreateFromConversation(ctx, text); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	list, err := s.List(ctx, domain.CampaignFilter{Type: domain.TypeEmail})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.Total != 2 || len(list.Data) != 2 {
		t.Errorf("expected 2 email campaigns, got total %d len %d", list.Total, len(list.Data))
	}

	if _, err := s.List(ctx, domain.CampaignFilter{Type: "billboard"}); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestPreview(t *testing.T) {
	s := newTestService(t, nil)

	p, err := s.Preview(context.Background(), "email newsletter with a budget of $5,000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "Email Campaign 2026" {
		t.Errorf("unexpected title %q", p.Title)
	}
	if !containsLine(p.Lines, "Budget: $5,000") {
		t.Errorf("expected budget line, got %v", p.Lines)
	}
}

func TestEnhanceAnswer(t *testing.T) {
	s := newTestService(t, nil)

	got := s.EnhanceAnswer(context.Background(), "We run a restaurant", "industry")
	if got.QuestionKey != "industry" || got.Original != "We run a restaurant" {
		t.Errorf("unexpected echo %+v", got)
	}
	if !strings.HasPrefix(got.Enhanced, "Restaurant and food service business") {
		t.Errorf("unexpected enhancement %q", got.Enhanced)
	}

	generic := s.EnhanceAnswer(context.Background(), "bold", "favorite_color")
	if !strings.Contains(generic.Enhanced, "bold strategy") {
		t.Errorf("expected generic template, got %q", generic.Enhanced)
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
