package recordstore

import (
	"encoding/json"
	"net/http"
	"strings"
)

// FindOutcome is the closed classification of a find-by-payment-id response
type FindOutcome int

const (
	// OutcomeIndeterminate means the response could not be classified; the
	// caller must not insert
	OutcomeIndeterminate FindOutcome = iota
	// OutcomeNotFound means no record exists for the payment id
	OutcomeNotFound
	// OutcomeDuplicate means a record already exists
	OutcomeDuplicate
)

func (o FindOutcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "indeterminate"
	}
}

const noRecordsMessage = "no records match"

// expiredSessionCode is the distinguished code the store embeds in error
// bodies when the session token is no longer valid
const expiredSessionCode = "EXPIRED_SESSION"

// ClassifyFindResponse maps a raw find response onto a FindOutcome. The
// store's contract is messy: a 2xx carries the matching rows (possibly
// none), while "no records match" is also reported as a 401 or 404 whose
// message says so. A 401 without that message is an auth problem, not an
// empty result, so it stays indeterminate rather than risking a duplicate
// insert.
func ClassifyFindResponse(status int, body []byte) FindOutcome {
	var resp findResponse
	// A malformed body on a success status is indeterminate; on 401/404 the
	// message check below simply fails and classification falls through.
	parsed := json.Unmarshal(body, &resp) == nil

	if status >= 200 && status < 300 {
		if !parsed {
			return OutcomeIndeterminate
		}
		if len(resp.Records) > 0 {
			return OutcomeDuplicate
		}
		return OutcomeNotFound
	}

	if status == http.StatusUnauthorized || status == http.StatusNotFound {
		if parsed && strings.Contains(strings.ToLower(resp.Message), noRecordsMessage) {
			return OutcomeNotFound
		}
	}

	return OutcomeIndeterminate
}

// IsExpiredSessionResponse reports whether a write response carries the
// store's expired-session code
func IsExpiredSessionResponse(status int, body []byte) bool {
	if status >= 200 && status < 300 {
		return false
	}
	var storeErr storeError
	if err := json.Unmarshal(body, &storeErr); err != nil {
		return false
	}
	return storeErr.Code == expiredSessionCode
}
