package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
)

// SignatureHeader is the header Paystack signs webhook deliveries with
const SignatureHeader = "x-paystack-signature"

// EventChargeSuccess is the only event type that mutates stored state;
// every other event is acknowledged and ignored.
const EventChargeSuccess = "charge.success"

// Event is a webhook push notification from Paystack
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ParseEvent decodes a webhook body
func ParseEvent(body []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Reference extracts the transaction reference from the event data, or
// returns "" if the payload carries none.
func (e *Event) Reference() string {
	var data struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return ""
	}
	return data.Reference
}

// DataMap returns the event data as a map for persisting as the raw
// gateway payload
func (e *Event) DataMap() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// ValidSignature reports whether signature matches the HMAC-SHA512 of
// body under the secret key, per Paystack's webhook contract.
func ValidSignature(body []byte, signature, secretKey string) bool {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
