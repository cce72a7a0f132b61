// Package mcpserver exposes the campaign parser as MCP tools so agents can turn a planning
// conversation into a campaign record without going through HTTP.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"campaigngo/internal/domain"
	"campaigngo/internal/parser"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CampaignParser is the subset of the campaign service the tools call.
type CampaignParser interface {
	ParseConversation(ctx context.Context, text string) (*domain.ParsedCampaign, error)
	Preview(ctx context.Context, text string) (*domain.CampaignPreview, error)
	EnhanceAnswer(ctx context.Context, answer, questionKey string) domain.EnhancedAnswer
}

func NewServer(campaigns CampaignParser, version string) *server.MCPServer {
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"campaigngo",
		version,
		server.WithToolCapabilities(false),
	)

	registerParseTool(s, campaigns)
	registerPreviewTool(s, campaigns)
	registerEnhanceTool(s, campaigns)

	return s
}

func registerParseTool(s *server.MCPServer, campaigns CampaignParser) {
	tool := mcp.NewTool("parse_campaign",
		mcp.WithDescription("Parse a free-form marketing campaign conversation into a structured campaign record. Fields not mentioned are filled with per-type defaults."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("conversation",
			mcp.Required(),
			mcp.Description("Conversation text describing the campaign"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		conversation, err := req.RequireString("conversation")
		if err != nil {
			return mcp.NewToolResultError("conversation is required"), nil
		}

		campaign, err := campaigns.ParseConversation(ctx, conversation)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse error: %v", err)), nil
		}
		return jsonResult(campaign)
	})
}

func registerPreviewTool(s *server.MCPServer, campaigns CampaignParser) {
	tool := mcp.NewTool("preview_campaign",
		mcp.WithDescription("Render a readable summary of the campaign a conversation describes, listing which fields were defaulted."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("conversation",
			mcp.Required(),
			mcp.Description("Conversation text describing the campaign"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		conversation, err := req.RequireString("conversation")
		if err != nil {
			return mcp.NewToolResultError("conversation is required"), nil
		}

		preview, err := campaigns.Preview(ctx, conversation)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("preview error: %v", err)), nil
		}

		var b strings.Builder
		b.WriteString(preview.Title)
		for _, line := range preview.Lines {
			b.WriteString("\n")
			b.WriteString(line)
		}
		if len(preview.DefaultedFields) > 0 {
			b.WriteString("\nDefaulted: ")
			b.WriteString(strings.Join(preview.DefaultedFields, ", "))
		}
		return mcp.NewToolResultText(b.String()), nil
	})
}

func registerEnhanceTool(s *server.MCPServer, campaigns CampaignParser) {
	tool := mcp.NewTool("enhance_answer",
		mcp.WithDescription("Rewrite a short questionnaire answer into a fuller marketing-oriented sentence."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("The user's raw answer"),
		),
		mcp.WithString("question_key",
			mcp.Required(),
			mcp.Description("Which question the answer belongs to: "+strings.Join(parser.QuestionKeys, ", ")),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		answer, err := req.RequireString("answer")
		if err != nil {
			return mcp.NewToolResultError("answer is required"), nil
		}
		key, err := req.RequireString("question_key")
		if err != nil {
			return mcp.NewToolResultError("question_key is required"), nil
		}

		return jsonResult(campaigns.EnhanceAnswer(ctx, answer, key))
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
