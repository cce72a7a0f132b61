package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campaigngo/internal/domain"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"github.com/nats-io/nats.go"
)

// implements domain.EventPublisher over NATS core subjects
type NATSPublisher struct {
	conn    *nats.Conn
	prefix  string
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewNATSPublisher(url, token, prefix string, log *logger.Logger, m *metrics.Metrics) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("campaigngo"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NATSPublisher{conn: nc, prefix: prefix, logger: log, metrics: m}, nil
}

// Subject returns the NATS subject an event name is published on.
func (p *NATSPublisher) Subject(event string) string {
	return EventSubject(p.prefix, event)
}

func EventSubject(prefix, event string) string {
	if prefix == "" {
		return event
	}
	return prefix + "." + event
}

func (p *NATSPublisher) Publish(ctx context.Context, event domain.CampaignEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		p.metrics.RecordEventPublished(event.Event, "error")
		return fmt.Errorf("marshal event: %w", err)
	}

	subject := p.Subject(event.Event)
	if err := p.conn.Publish(subject, payload); err != nil {
		p.metrics.RecordEventPublished(event.Event, "error")
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.metrics.RecordEventPublished(event.Event, "success")

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"subject":     subject,
		"campaign_id": event.Campaign.ID,
	}).Debug("Published campaign event")

	return nil
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
