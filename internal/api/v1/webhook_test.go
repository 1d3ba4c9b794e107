package v1

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/feebridge/feebridge/internal/api/dto"
	"github.com/feebridge/feebridge/internal/config"
	"github.com/feebridge/feebridge/internal/logger"
	"github.com/feebridge/feebridge/internal/testutil"
	"github.com/feebridge/feebridge/internal/webhook"
)

type WebhookHandlerSuite struct {
	suite.Suite
	router      *gin.Engine
	recordStore *testutil.InMemoryRecordStore
	secret      string
}

func TestWebhookHandler(t *testing.T) {
	suite.Run(t, new(WebhookHandlerSuite))
}

func (s *WebhookHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	s.secret = cfg.Webhook.Secret
	s.recordStore = testutil.NewInMemoryRecordStore()

	processor := webhook.NewHandler(cfg, s.recordStore, logger.L)
	handler := NewWebhookHandler(processor, logger.L)

	s.router = gin.New()
	s.router.POST("/webhooks/razorpay", handler.HandlePaymentWebhook)
}

func (s *WebhookHandlerSuite) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *WebhookHandlerSuite) deliver(body []byte, signature string) (*httptest.ResponseRecorder, dto.WebhookResponse) {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp dto.WebhookResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func (s *WebhookHandlerSuite) capturedEvent(paymentID string) []byte {
	body, err := json.Marshal(map[string]interface{}{
		"event": "payment.captured",
		"payload": map[string]interface{}{
			"payment": map[string]interface{}{
				"entity": map[string]interface{}{
					"id":       paymentID,
					"order_id": "order_1",
					"amount":   150000,
					"currency": "INR",
					"status":   "captured",
					"notes": map[string]interface{}{
						"student_name":     "Asha",
						"admission_number": "A123",
					},
				},
			},
		},
	})
	s.Require().NoError(err)
	return body
}

func (s *WebhookHandlerSuite) TestSignedDeliveryIsRecorded() {
	body := s.capturedEvent("pay_1")

	w, resp := s.deliver(body, s.sign(body))

	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", resp.Status)
	s.Equal(1, s.recordStore.Count())
}

func (s *WebhookHandlerSuite) TestRedeliveryReportsDuplicate() {
	body := s.capturedEvent("pay_1")
	sig := s.sign(body)

	s.deliver(body, sig)
	w, resp := s.deliver(body, sig)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("duplicate", resp.Status)
	s.Equal(1, s.recordStore.Count())
}

func (s *WebhookHandlerSuite) TestMissingSignatureIsIgnoredWith200() {
	body := s.capturedEvent("pay_1")

	w, resp := s.deliver(body, "")

	s.Equal(http.StatusOK, w.Code)
	s.Equal("ignored", resp.Status)
	s.Zero(s.recordStore.ExistsCalls)
}

func (s *WebhookHandlerSuite) TestInvalidSignatureIs200WithStatus() {
	body := s.capturedEvent("pay_1")

	w, resp := s.deliver(body, "deadbeef")

	s.Equal(http.StatusOK, w.Code)
	s.Equal("invalid-signature", resp.Status)
	s.Zero(s.recordStore.Count())
}

func (s *WebhookHandlerSuite) TestMalformedJSONStillRespondsOK() {
	body := []byte(`{"event":`)

	w, resp := s.deliver(body, s.sign(body))

	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", resp.Status)
}
