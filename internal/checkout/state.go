package checkout

import (
	"errors"

	"github.com/up2ustore/bundles-backend/internal/catalog"
)

// State is the single-owner checkout UI state: at most one selected
// offer and the entered phone number. Handlers receive it by reference;
// reset is an explicit method, not a side effect.
type State struct {
	selected *catalog.BundleOffer
	phone    string
}

// NewState creates an empty checkout state
func NewState() *State {
	return &State{}
}

// Select sets the current bundle selection by offer ID
func (s *State) Select(bundleID int) error {
	offer, ok := catalog.FindByID(bundleID)
	if !ok {
		return errors.New("bundle not found")
	}
	s.selected = &offer
	return nil
}

// Selected returns the current selection, or false if none exists
func (s *State) Selected() (catalog.BundleOffer, bool) {
	if s.selected == nil {
		return catalog.BundleOffer{}, false
	}
	return *s.selected, true
}

// SetPhone records the entered phone number
func (s *State) SetPhone(phone string) {
	s.phone = phone
}

// BuildRequest validates the state and assembles a PaymentRequest. On
// failure the checkout is blocked and nothing reaches the backend or
// gateway.
func (s *State) BuildRequest() (PaymentRequest, error) {
	if s.selected == nil {
		return PaymentRequest{}, ErrInvalidBundle
	}
	req := PaymentRequest{
		Phone:  s.phone,
		Amount: s.selected.Price,
		Bundle: *s.selected,
	}
	if err := req.Validate(); err != nil {
		return PaymentRequest{}, err
	}
	return req, nil
}

// Reset clears the selection and phone back to initial values. Called
// after a confirmed success.
func (s *State) Reset() {
	s.selected = nil
	s.phone = ""
}
