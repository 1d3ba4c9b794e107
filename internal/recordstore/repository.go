package recordstore

import (
	"context"

	"github.com/feebridge/feebridge/internal/domain/record"
	ierr "github.com/feebridge/feebridge/internal/errors"
	"github.com/feebridge/feebridge/internal/logger"
)

// Repository implements record.Repository against the external store's REST
// API, owning the session token lifecycle
type Repository struct {
	client  *Client
	session *SessionManager
	logger  *logger.Logger
}

func NewRepository(client *Client, session *SessionManager, logger *logger.Logger) record.Repository {
	return &Repository{
		client:  client,
		session: session,
		logger:  logger,
	}
}

// Exists reports whether a record for the payment id is already in the
// store. An indeterminate response is an error: the caller must fail safe
// toward "do not write" instead of risking a duplicate.
func (r *Repository) Exists(ctx context.Context, paymentID string) (bool, error) {
	token, err := r.session.Token(ctx)
	if err != nil {
		return false, err
	}

	status, body, err := r.client.FindRecord(ctx, token, paymentID)
	if err != nil {
		return false, err
	}

	switch outcome := ClassifyFindResponse(status, body); outcome {
	case OutcomeDuplicate:
		return true, nil
	case OutcomeNotFound:
		return false, nil
	default:
		return false, ierr.NewError("cannot determine idempotency for payment").
			WithHint("Record store returned an unclassifiable find response").
			WithReportableDetails(map[string]interface{}{
				"payment_id": paymentID,
				"status":     status,
			}).
			Mark(ierr.ErrHTTPClient)
	}
}

// Insert writes the record, retrying exactly once after a forced session
// refresh when the store reports the token expired. Retries are reserved
// strictly for that case: a blind retry on an ambiguous failure could
// insert a duplicate.
func (r *Repository) Insert(ctx context.Context, rec *record.FeeRecord) error {
	token, err := r.session.Token(ctx)
	if err != nil {
		return err
	}

	status, body, err := r.client.InsertRecord(ctx, token, rec.FieldMap())
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}

	if !IsExpiredSessionResponse(status, body) {
		return r.insertFailed(rec.PaymentID, status, body)
	}

	r.logger.Warnw("record store session expired, refreshing and retrying insert",
		"payment_id", rec.PaymentID)
	r.session.Invalidate(ctx)

	token, err = r.session.Token(ctx)
	if err != nil {
		return err
	}

	status, body, err = r.client.InsertRecord(ctx, token, rec.FieldMap())
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}

	if IsExpiredSessionResponse(status, body) {
		return ierr.NewError("record store session expired again after refresh").
			WithHint("Record store rejected a freshly created session").
			WithReportableDetails(map[string]interface{}{
				"payment_id": rec.PaymentID,
			}).
			Mark(ierr.ErrSessionExpired)
	}
	return r.insertFailed(rec.PaymentID, status, body)
}

func (r *Repository) insertFailed(paymentID string, status int, body []byte) error {
	return ierr.NewError("record store rejected the insert").
		WithHint("Record store write failed").
		WithReportableDetails(map[string]interface{}{
			"payment_id": paymentID,
			"status":     status,
			"response":   string(body),
		}).
		Mark(ierr.ErrHTTPClient)
}
