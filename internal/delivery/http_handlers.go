package delivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"campaigngo/internal/domain"
	"campaigngo/internal/parser"
	"campaigngo/internal/usecase"
	"campaigngo/pkg/logger"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

// handles HTTP requests
type HTTPHandlers struct {
	campaignService *usecase.CampaignService
	summaryService  *usecase.SummaryService
	logger          *logger.Logger
}

func NewHTTPHandlers(
	campaignService *usecase.CampaignService,
	summaryService *usecase.SummaryService,
	logger *logger.Logger,
) *HTTPHandlers {
	return &HTTPHandlers{
		campaignService: campaignService,
		summaryService:  summaryService,
		logger:          logger,
	}
}

type conversationRequest struct {
	Conversation string `json:"conversation"`
}

type batchRequest struct {
	Conversations []string `json:"conversations"`
}

type enhanceRequest struct {
	Answer      string `json:"answer"`
	QuestionKey string `json:"question_key" binding:"required"`
}

// ParseCampaign returns the defaulted campaign for a conversation without storing it
func (h *HTTPHandlers) ParseCampaign(c *gin.Context) {
	var req conversationRequest
	if !h.bind(c, &req) {
		return
	}

	campaign, err := h.campaignService.ParseConversation(c.Request.Context(), req.Conversation)
	if err != nil {
		h.respondError(c, err, "Failed to parse conversation")
		return
	}

	c.JSON(http.StatusOK, campaign)
}

func (h *HTTPHandlers) ParseCampaignBatch(c *gin.Context) {
	var req batchRequest
	if !h.bind(c, &req) {
		return
	}

	campaigns, err := h.campaignService.ParseBatch(c.Request.Context(), req.Conversations)
	if err != nil {
		h.respondError(c, err, "Failed to parse batch")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  campaigns,
		"count": len(campaigns),
	})
}

func (h *HTTPHandlers) PreviewCampaign(c *gin.Context) {
	var req conversationRequest
	if !h.bind(c, &req) {
		return
	}

	preview, err := h.campaignService.Preview(c.Request.Context(), req.Conversation)
	if err != nil {
		h.respondError(c, err, "Failed to preview campaign")
		return
	}

	c.JSON(http.StatusOK, preview)
}

// CreateCampaign parses, stores and announces a campaign
func (h *HTTPHandlers) CreateCampaign(c *gin.Context) {
	var req conversationRequest
	if !h.bind(c, &req) {
		return
	}

	campaign, err := h.campaignService.CreateFromConversation(c.Request.Context(), req.Conversation)
	if err != nil {
		h.respondError(c, err, "Failed to create campaign")
		return
	}

	c.Header("Location", "/api/v1/campaigns/"+campaign.ID)
	c.JSON(http.StatusCreated, campaign)
}

func (h *HTTPHandlers) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get campaign")
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// ListCampaigns supports type, channel, limit and offset query parameters
func (h *HTTPHandlers) ListCampaigns(c *gin.Context) {
	filter := domain.CampaignFilter{
		Type:    domain.CampaignType(c.Query("type")),
		Channel: c.Query("channel"),
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		h.badRequest(c, "Invalid limit", "limit must be an integer")
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		h.badRequest(c, "Invalid offset", "offset must be an integer")
		return
	}

	list, err := h.campaignService.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err, "Failed to list campaigns")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *HTTPHandlers) GetCampaignSummary(c *gin.Context) {
	summary, err := h.summaryService.Summary(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to get campaign summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// EnhanceAnswer expands a questionnaire answer
func (h *HTTPHandlers) EnhanceAnswer(c *gin.Context) {
	var req enhanceRequest
	if !h.bind(c, &req) {
		return
	}

	c.JSON(http.StatusOK, h.campaignService.EnhanceAnswer(c.Request.Context(), req.Answer, req.QuestionKey))
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	types := make([]string, 0, len(domain.CampaignTypes))
	for _, t := range domain.CampaignTypes {
		types = append(types, string(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"api_version":    "v1",
		"service":        "Campaign Service",
		"version":        version,
		"description":    "Turns campaign planning conversations into structured, fully defaulted campaign records",
		"campaign_types": types,
		"question_keys":  parser.QuestionKeys,
		"endpoints": gin.H{
			"campaigns": gin.H{
				"description": "Parse, preview, store and query campaigns",
				"endpoints": gin.H{
					"create": gin.H{
						"path":   "/api/v1/campaigns",
						"method": "POST",
						"body":   gin.H{"conversation": "Free-form conversation text"},
					},
					"list": gin.H{
						"path":   "/api/v1/campaigns",
						"method": "GET",
						"parameters": gin.H{
							"type":    "Optional: campaign type",
							"channel": "Optional: primary channel",
							"limit":   "Optional: Number of results (default: 100, max: 1000)",
							"offset":  "Optional: Pagination offset (default: 0)",
						},
						"example": "/api/v1/campaigns?type=email&limit=20",
					},
					"get": gin.H{
						"path":   "/api/v1/campaigns/{id}",
						"method": "GET",
					},
					"summary": gin.H{
						"path":   "/api/v1/campaigns/summary",
						"method": "GET",
					},
					"parse": gin.H{
						"path":        "/api/v1/campaigns/parse",
						"method":      "POST",
						"description": "Parse without storing",
						"body":        gin.H{"conversation": "Free-form conversation text"},
					},
					"batch": gin.H{
						"path":   "/api/v1/campaigns/parse/batch",
						"method": "POST",
						"body":   gin.H{"conversations": "Array of conversation texts"},
					},
					"preview": gin.H{
						"path":        "/api/v1/campaigns/preview",
						"method":      "POST",
						"description": "Human-readable summary for approval",
						"body":        gin.H{"conversation": "Free-form conversation text"},
					},
				},
			},
			"answers": gin.H{
				"enhance": gin.H{
					"path":   "/api/v1/answers/enhance",
					"method": "POST",
					"body":   gin.H{"answer": "Short user answer", "question_key": "One of question_keys"},
				},
			},
		},
	})
}

// HealthCheck returns the health status of the service
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    "campaigngo",
		"version":    version,
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":      "Request body too large",
				"message":    err.Error(),
				"request_id": c.GetString("request_id"),
			})
			return false
		}
		h.badRequest(c, "Invalid request body", err.Error())
		return false
	}
	return true
}

func (h *HTTPHandlers) badRequest(c *gin.Context, title, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      title,
		"message":    message,
		"request_id": c.GetString("request_id"),
	})
}

// respondError maps service errors to status codes. Only unexpected failures are logged here;
// the services already log their own storage errors.
func (h *HTTPHandlers) respondError(c *gin.Context, err error, title string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.WithContext(c.Request.Context()).WithError(err).Error(title)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error":      title,
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrBatchTooLarge),
		errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
