package validation

import (
	"context"
	"fmt"

	"phonechecker/internal/events"
	"phonechecker/platform/apperr"
	"phonechecker/platform/httpkit"
	"phonechecker/platform/logger"
	"phonechecker/platform/phone"
	"phonechecker/platform/validator"

	"github.com/gin-gonic/gin"
)

// Quota meters how many numbers a client may check.
type Quota interface {
	Consume(ctx context.Context, clientID string, n int) error
}

// Handler exposes the phone check endpoints.
type Handler struct {
	svc           *Service
	quota         Quota
	publisher     events.Publisher
	defaultRegion string
	bulkMax       int
	log           *logger.Logger
}

func NewHandler(svc *Service, quota Quota, publisher events.Publisher, defaultRegion string, bulkMax int, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		svc:           svc,
		quota:         quota,
		publisher:     publisher,
		defaultRegion: phone.NormalizeRegion(defaultRegion),
		bulkMax:       bulkMax,
		log:           log,
	}
}

// Check handles POST /api/v1/phone/check
func (h *Handler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("Phone number is required").WithDetails(validator.FieldErrors(err)))
		return
	}

	ctx := c.Request.Context()
	if h.quota != nil {
		if err := h.quota.Consume(ctx, c.ClientIP(), 1); httpkit.HandleError(c, err) {
			return
		}
	}

	httpkit.Success(c, h.svc.Validate(ctx, req.PhoneNumber, h.region(req.Region)))
}

// BulkCheck handles POST /api/v1/phone/bulk-check
func (h *Handler) BulkCheck(c *gin.Context) {
	var req BulkCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.Validation("Phone numbers array is required").WithDetails(validator.FieldErrors(err)))
		return
	}

	if h.bulkMax > 0 && len(req.PhoneNumbers) > h.bulkMax {
		httpkit.HandleError(c, apperr.BadRequest(fmt.Sprintf("Bulk limit exceeded. Maximum: %d numbers", h.bulkMax)))
		return
	}

	ctx := c.Request.Context()
	if h.quota != nil {
		if err := h.quota.Consume(ctx, c.ClientIP(), len(req.PhoneNumbers)); httpkit.HandleError(c, err) {
			return
		}
	}

	results := h.svc.ValidateBulk(ctx, req.PhoneNumbers, h.region(req.Region))

	if req.TelegramUsername != "" && h.publisher != nil {
		h.publisher.Publish(ctx, events.BulkCheckCompleted{
			BaseEvent:      events.NewBaseEvent(),
			Handle:         req.TelegramUsername,
			TotalProcessed: len(results),
			ValidCount:     countValid(results),
		})
		h.log.WithContext(ctx).Debug("bulk completion event published", "handle", req.TelegramUsername, "total", len(results))
	}

	httpkit.Success(c, BulkCheckResponse{
		TotalProcessed: len(results),
		Results:        results,
	})
}

// Regions handles GET /api/v1/phone/regions
func (h *Handler) Regions(c *gin.Context) {
	httpkit.Success(c, h.svc.Regions())
}

func countValid(results []Result) int {
	n := 0
	for _, r := range results {
		if r.IsValid() {
			n++
		}
	}
	return n
}

func (h *Handler) region(requested string) string {
	if r := phone.NormalizeRegion(requested); r != "" {
		return r
	}
	return h.defaultRegion
}
