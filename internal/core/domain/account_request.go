package domain

import "encoding/json"

// AccountRequest is a so called "surprise request" made for an account.
// The payload is not interpreted by the wallet, requests are only logged in
// order.
type AccountRequest struct {
	ID          string          `json:"id"`
	RequestedAt int64           `json:"requestedAt"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}
