package recordstore

// sessionRequest is the credential exchange payload for the store's session
// endpoint
type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// sessionResponse carries the token returned by a successful credential
// exchange
type sessionResponse struct {
	Token string `json:"token"`
}

// findResponse is the store's answer to a find-by-payment-id query. The
// store reports "no match" inconsistently across versions: sometimes an
// empty Records slice on 200, sometimes a 401/404 whose Message says no
// records match. Both shapes are handled in classify.go.
type findResponse struct {
	Records []map[string]interface{} `json:"records"`
	Message string                   `json:"message"`
}

// storeError is the error body the store attaches to failed writes.
// Code distinguishes an expired session from generic failures.
type storeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// insertRequest wraps the field map for the store's create endpoint
type insertRequest struct {
	Data map[string]interface{} `json:"data"`
}
