package recordstore

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/feebridge/feebridge/internal/cache"
	"github.com/feebridge/feebridge/internal/config"
	"github.com/feebridge/feebridge/internal/domain/record"
	ierr "github.com/feebridge/feebridge/internal/errors"
	"github.com/feebridge/feebridge/internal/logger"
	"github.com/feebridge/feebridge/internal/testutil"
)

type RepositorySuite struct {
	suite.Suite
	http    *testutil.MockHTTPClient
	session *SessionManager
	repo    record.Repository
}

func TestRepository(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	cfg := config.GetDefaultConfig()
	s.http = testutil.NewMockHTTPClient()
	client := NewClient(s.http, cfg, logger.L)
	s.session = NewSessionManager(client, cache.NewInMemoryCache(), logger.L)
	s.repo = NewRepository(client, s.session, logger.L)
}

func (s *RepositorySuite) registerSession(tokens ...string) {
	resps := make([]testutil.MockResponse, 0, len(tokens))
	for _, token := range tokens {
		resps = append(resps, testutil.MockResponse{
			StatusCode: http.StatusOK,
			Body:       []byte(`{"token":"` + token + `"}`),
		})
	}
	s.http.RegisterResponses("/session", resps...)
}

func (s *RepositorySuite) feeRecord(paymentID string) *record.FeeRecord {
	return &record.FeeRecord{
		PaymentID: paymentID,
		OrderID:   "order_1",
		Amount:    decimal.NewFromInt(1500),
		Currency:  "INR",
		Status:    "captured",
	}
}

func (s *RepositorySuite) TestExistsDuplicate() {
	s.registerSession("tok_1")
	s.http.RegisterResponse("/records/find", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"records":[{"payment_id":"pay_1"}]}`),
	})

	exists, err := s.repo.Exists(context.Background(), "pay_1")

	s.NoError(err)
	s.True(exists)
}

func (s *RepositorySuite) TestExistsNotFoundViaUnauthorizedMessage() {
	s.registerSession("tok_1")
	s.http.RegisterResponse("/records/find", testutil.MockResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       []byte(`{"message":"No records match the given criteria"}`),
	})

	exists, err := s.repo.Exists(context.Background(), "pay_1")

	s.NoError(err)
	s.False(exists)
}

func (s *RepositorySuite) TestExistsIndeterminateIsError() {
	s.registerSession("tok_1")
	s.http.RegisterResponse("/records/find", testutil.MockResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       []byte(`{"message":"invalid token"}`),
	})

	_, err := s.repo.Exists(context.Background(), "pay_1")

	s.Error(err)
	s.True(ierr.IsHTTPClient(err))
}

func (s *RepositorySuite) TestSessionIsCachedAcrossCalls() {
	s.registerSession("tok_1")
	s.http.RegisterResponse("/records/find", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"records":[]}`),
	})

	_, err := s.repo.Exists(context.Background(), "pay_1")
	s.NoError(err)
	_, err = s.repo.Exists(context.Background(), "pay_2")
	s.NoError(err)

	s.Equal(1, s.http.CallCount("/session"))
	s.Equal(2, s.http.CallCount("/records/find"))
}

func (s *RepositorySuite) TestSessionLoginFailure() {
	s.http.RegisterResponse("/session", testutil.MockResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       []byte(`{"code":"INVALID_CREDENTIALS"}`),
	})

	_, err := s.repo.Exists(context.Background(), "pay_1")

	s.Error(err)
}

func (s *RepositorySuite) TestInsertSuccess() {
	s.registerSession("tok_1")
	s.http.RegisterResponse("/records", testutil.MockResponse{
		StatusCode: http.StatusCreated,
		Body:       []byte(`{"id":"rec_1"}`),
	})

	err := s.repo.Insert(context.Background(), s.feeRecord("pay_1"))

	s.NoError(err)
	s.Equal(1, s.http.CallCount("/records"))
}

func (s *RepositorySuite) TestInsertRetriesOnceOnExpiredSession() {
	s.registerSession("tok_1", "tok_2")
	s.http.RegisterResponses("/records",
		testutil.MockResponse{
			StatusCode: http.StatusUnauthorized,
			Body:       []byte(`{"code":"EXPIRED_SESSION"}`),
		},
		testutil.MockResponse{
			StatusCode: http.StatusCreated,
			Body:       []byte(`{"id":"rec_1"}`),
		},
	)

	err := s.repo.Insert(context.Background(), s.feeRecord("pay_1"))

	s.NoError(err)
	// exactly one relogin and exactly one retry
	s.Equal(2, s.http.CallCount("/session"))
	s.Equal(2, s.http.CallCount("/records"))
}

func (s *RepositorySuite) TestInsertFailsAfterSecondExpiry() {
	s.registerSession("tok_1", "tok_2")
	s.http.RegisterResponses("/records",
		testutil.MockResponse{
			StatusCode: http.StatusUnauthorized,
			Body:       []byte(`{"code":"EXPIRED_SESSION"}`),
		},
		testutil.MockResponse{
			StatusCode: http.StatusUnauthorized,
			Body:       []byte(`{"code":"EXPIRED_SESSION"}`),
		},
	)

	err := s.repo.Insert(context.Background(), s.feeRecord("pay_1"))

	s.Error(err)
	s.True(ierr.IsSessionExpired(err))
	s.Equal(2, s.http.CallCount("/records"))
}

func (s *RepositorySuite) TestInsertDoesNotRetryOnGenericFailure() {
	s.registerSession("tok_1")
	s.http.RegisterResponse("/records", testutil.MockResponse{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       []byte(`{"code":"VALIDATION_FAILED"}`),
	})

	err := s.repo.Insert(context.Background(), s.feeRecord("pay_1"))

	s.Error(err)
	s.Equal(1, s.http.CallCount("/records"))
	s.Equal(1, s.http.CallCount("/session"))
}

func (s *RepositorySuite) TestInvalidateIsIdempotent() {
	s.registerSession("tok_1")

	ctx := context.Background()
	_, err := s.session.Token(ctx)
	s.NoError(err)

	s.session.Invalidate(ctx)
	s.session.Invalidate(ctx)

	_, err = s.session.Token(ctx)
	s.NoError(err)
	s.Equal(2, s.http.CallCount("/session"))
}
