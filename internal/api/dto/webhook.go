package dto

// WebhookResponse is the body returned for every webhook delivery,
// regardless of outcome. The HTTP status is always a success; the status
// field carries the real disposition.
type WebhookResponse struct {
	Status string `json:"status"`
}
