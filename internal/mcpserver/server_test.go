package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"campaigngo/internal/domain"
	"campaigngo/internal/infrastructure"
	"campaigngo/internal/usecase"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()
	log := logger.Discard()
	svc := usecase.NewCampaignService(
		infrastructure.NewMemoryCampaignRepository(log),
		log,
		metrics.NewWithRegisterer(prometheus.NewRegistry()),
		1,
		usecase.WithClock(func() time.Time { return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) }),
	)
	return NewServer(svc, "test")
}

type toolResult struct {
	Text    string
	IsError bool
}

func callTool(t *testing.T, srv *server.MCPServer, name string, args map[string]any) toolResult {
	t.Helper()

	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]any{
			"name":      name,
			"arguments": args,
		},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	raw, err := json.Marshal(srv.HandleMessage(context.Background(), msg))
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
			IsError bool `json:"isError"`
		} `json:"result"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal response: %v\nraw: %s", err, raw)
	}
	if resp.Error != nil {
		t.Fatalf("JSON-RPC error: %d %s", resp.Error.Code, resp.Error.Message)
	}

	out := toolResult{IsError: resp.Result.IsError}
	for _, c := range resp.Result.Content {
		if c.Type == "text" {
			out.Text = c.Text
			break
		}
	}
	return out
}

func TestParseCampaignTool(t *testing.T) {
	srv := newTestServer(t)

	res := callTool(t, srv, "parse_campaign", map[string]any{
		"conversation": "I want to run an email campaign with a budget of $5,000 targeting small business owners",
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", res.Text)
	}

	var c domain.ParsedCampaign
	if err := json.Unmarshal([]byte(res.Text), &c); err != nil {
		t.Fatalf("decode campaign: %v", err)
	}
	if c.Type != domain.TypeEmail || c.TotalBudget == nil || *c.TotalBudget != 5000 {
		t.Errorf("unexpected campaign %+v", c)
	}
}

func TestParseCampaignTool_MissingConversation(t *testing.T) {
	srv := newTestServer(t)

	res := callTool(t, srv, "parse_campaign", map[string]any{})
	if !res.IsError {
		t.Error("expected a tool error")
	}
}

func TestPreviewCampaignTool(t *testing.T) {
	srv := newTestServer(t)

	res := callTool(t, srv, "preview_campaign", map[string]any{
		"conversation": "seo campaign with a budget of $5,000",
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", res.Text)
	}
	if !strings.HasPrefix(res.Text, "Seo Campaign 2026") {
		t.Errorf("expected title line first, got %q", res.Text)
	}
	if !strings.Contains(res.Text, "Budget: $5,000") || !strings.Contains(res.Text, "Defaulted: ") {
		t.Errorf("unexpected preview %q", res.Text)
	}
}

func TestEnhanceAnswerTool(t *testing.T) {
	srv := newTestServer(t)

	res := callTool(t, srv, "enhance_answer", map[string]any{
		"answer":       "We run a restaurant",
		"question_key": "industry",
	})
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", res.Text)
	}

	var got domain.EnhancedAnswer
	if err := json.Unmarshal([]byte(res.Text), &got); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if !strings.HasPrefix(got.Enhanced, "Restaurant and food service business") {
		t.Errorf("unexpected enhancement %q", got.Enhanced)
	}

	res = callTool(t, srv, "enhance_answer", map[string]any{"answer": "hello"})
	if !res.IsError {
		t.Error("expected a tool error without question_key")
	}
}
