package webhook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/feebridge/feebridge/internal/config"
	"github.com/feebridge/feebridge/internal/domain/record"
	"github.com/feebridge/feebridge/internal/logger"
)

// Status is the outcome reported back to the gateway. Every outcome rides a
// success response; the gateway must never see an HTTP error and retry.
type Status string

const (
	StatusOK               Status = "ok"
	StatusIgnored          Status = "ignored"
	StatusDuplicate        Status = "duplicate"
	StatusInvalidSignature Status = "invalid-signature"
)

// defaultStoreTimeout bounds each pass through the external store so a
// stalled store cannot hold the handler indefinitely
const defaultStoreTimeout = 30 * time.Second

// Handler orchestrates payment-captured webhook ingestion: signature check,
// event filter, duplicate check, record insert. Processing failures are
// logged and swallowed: nothing about handling a webhook may surface as an
// error to the sender.
type Handler struct {
	recordRepo   record.Repository
	secret       string
	storeTimeout time.Duration
	logger       *logger.Logger
}

func NewHandler(cfg *config.Configuration, recordRepo record.Repository, logger *logger.Logger) *Handler {
	timeout := cfg.RecordStore.Timeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &Handler{
		recordRepo:   recordRepo,
		secret:       cfg.Webhook.Secret,
		storeTimeout: timeout,
		logger:       logger,
	}
}

// ProcessEvent runs the full ingestion pipeline over a raw webhook delivery
// and returns the status to report. It never returns an error.
func (h *Handler) ProcessEvent(ctx context.Context, body []byte, signature string) Status {
	if signature == "" || len(body) == 0 {
		h.logger.Infow("ignoring webhook without signature or body",
			"has_signature", signature != "",
			"body_length", len(body))
		return StatusIgnored
	}

	if !VerifySignature(body, signature, h.secret) {
		h.logger.Warnw("webhook signature verification failed",
			"body_length", len(body),
			"secret_configured", h.secret != "")
		return StatusInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Errorw("failed to parse webhook body", "error", err)
		return StatusOK
	}

	if EventType(event.Event) != EventPaymentCaptured {
		h.logger.Infow("ignoring webhook event type", "event_type", event.Event)
		return StatusIgnored
	}

	payment := event.Payload.Payment.Entity
	if payment.ID == "" {
		h.logger.Warnw("payment.captured webhook without a payment id")
		return StatusOK
	}

	ctx, cancel := context.WithTimeout(ctx, h.storeTimeout)
	defer cancel()

	exists, err := h.recordRepo.Exists(ctx, payment.ID)
	if err != nil {
		h.logger.Errorw("failed to determine idempotency, skipping insert",
			"error", err,
			"payment_id", payment.ID,
			"stage", "duplicate_check")
		return StatusOK
	}

	if exists {
		h.logger.Infow("payment already recorded, skipping insert",
			"payment_id", payment.ID)
		return StatusDuplicate
	}

	rec := payment.ToFeeRecord()
	if err := h.recordRepo.Insert(ctx, rec); err != nil {
		h.logger.Errorw("failed to insert fee record",
			"error", err,
			"payment_id", payment.ID,
			"stage", "insert")
		return StatusOK
	}

	h.logger.Infow("recorded captured payment",
		"payment_id", payment.ID,
		"order_id", rec.OrderID,
		"amount", rec.Amount.StringFixed(2),
		"currency", rec.Currency)
	return StatusOK
}
