package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feebridge/feebridge/internal/api/dto"
	"github.com/feebridge/feebridge/internal/logger"
	"github.com/feebridge/feebridge/internal/webhook"
)

// SignatureHeader is the gateway's HMAC signature header
const SignatureHeader = "X-Razorpay-Signature"

// WebhookHandler handles payment gateway webhook deliveries
type WebhookHandler struct {
	processor *webhook.Handler
	logger    *logger.Logger
}

func NewWebhookHandler(processor *webhook.Handler, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		processor: processor,
		logger:    logger,
	}
}

// @Summary Handle payment gateway webhook events
// @Description Ingest payment.captured events. Always responds 200 with a status field; failures are diagnostic-only so the gateway never retries.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param X-Razorpay-Signature header string false "HMAC-SHA256 signature of the raw body"
// @Success 200 {object} dto.WebhookResponse
// @Router /webhooks/razorpay [post]
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	// The raw bytes feed signature verification; they must not pass through
	// any JSON round trip first
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Errorw("failed to read webhook body", "error", err)
		body = nil
	}

	signature := c.GetHeader(SignatureHeader)
	status := h.processor.ProcessEvent(c.Request.Context(), body, signature)

	c.JSON(http.StatusOK, dto.WebhookResponse{Status: string(status)})
}
