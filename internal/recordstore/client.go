package recordstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/feebridge/feebridge/internal/config"
	ierr "github.com/feebridge/feebridge/internal/errors"
	"github.com/feebridge/feebridge/internal/httpclient"
	"github.com/feebridge/feebridge/internal/logger"
)

// Client wraps the external record store's REST API. It deals in raw
// status/body pairs so the classification layer can inspect both; the store
// abuses status codes (a 401 can mean "no records match") so a non-2xx
// response is not treated as a transport failure here.
type Client struct {
	http   httpclient.Client
	cfg    config.RecordStoreConfig
	logger *logger.Logger
}

func NewClient(httpClient httpclient.Client, cfg *config.Configuration, logger *logger.Logger) *Client {
	return &Client{
		http:   httpClient,
		cfg:    cfg.RecordStore,
		logger: logger,
	}
}

// CreateSession exchanges the configured credentials for a session token
func (c *Client) CreateSession(ctx context.Context) (string, error) {
	payload, err := json.Marshal(sessionRequest{
		Username: c.cfg.Username,
		Password: c.cfg.Password,
		Database: c.cfg.Database,
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to build session request").
			Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/session", c.cfg.BaseURL),
		Body:   payload,
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Record store login failed").
			Mark(ierr.ErrHTTPClient)
	}

	var session sessionResponse
	if err := json.Unmarshal(resp.Body, &session); err != nil {
		return "", ierr.WithError(err).
			WithHint("Record store returned a malformed session response").
			Mark(ierr.ErrHTTPClient)
	}

	if session.Token == "" {
		return "", ierr.NewError("record store returned an empty session token").
			WithHint("Record store login failed").
			Mark(ierr.ErrHTTPClient)
	}

	return session.Token, nil
}

// FindRecord queries the store for an existing record with the given payment
// id and returns the raw status and body for classification. Only transport
// failures surface as errors.
func (c *Client) FindRecord(ctx context.Context, token, paymentID string) (int, []byte, error) {
	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodGet,
		URL: fmt.Sprintf("%s/records/find?payment_id=%s",
			c.cfg.BaseURL, url.QueryEscape(paymentID)),
		Headers: c.authHeaders(token),
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			return httpErr.StatusCode, httpErr.Response, nil
		}
		return 0, nil, err
	}
	return resp.StatusCode, resp.Body, nil
}

// InsertRecord writes the field map to the store's create endpoint and
// returns the raw status and body. Only transport failures surface as
// errors.
func (c *Client) InsertRecord(ctx context.Context, token string, fields map[string]interface{}) (int, []byte, error) {
	payload, err := json.Marshal(insertRequest{Data: fields})
	if err != nil {
		return 0, nil, ierr.WithError(err).
			WithHint("Failed to build insert request").
			Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("%s/records", c.cfg.BaseURL),
		Headers: c.authHeaders(token),
		Body:    payload,
	})
	if err != nil {
		if httpErr, ok := httpclient.IsHTTPError(err); ok {
			return httpErr.StatusCode, httpErr.Response, nil
		}
		return 0, nil, err
	}
	return resp.StatusCode, resp.Body, nil
}

func (c *Client) authHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
