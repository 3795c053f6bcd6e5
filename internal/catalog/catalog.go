package catalog

import "github.com/up2ustore/bundles-backend/internal/models"

// BundleOffer is a purchasable data bundle. The catalog is fixed at
// compile time; offers are never mutated or persisted.
type BundleOffer struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Data     string  `json:"data"`
	Price    float64 `json:"price"`
	Icon     string  `json:"icon"`
	Validity string  `json:"validity"`
}

var bundles = []BundleOffer{
	{ID: 1, Name: "MTN Lite", Data: "1GB", Price: 4.60, Icon: "📲", Validity: "1 day"},
	{ID: 2, Name: "MTN Basic", Data: "2GB", Price: 8.50, Icon: "📱", Validity: "3 days"},
	{ID: 3, Name: "MTN Standard", Data: "3GB", Price: 13.50, Icon: "🎮", Validity: "7 days"},
	{ID: 4, Name: "MTN Plus", Data: "4GB", Price: 23.50, Icon: "⭐", Validity: "14 days"},
}

// Bundles returns all bundle offers
func Bundles() []BundleOffer {
	out := make([]BundleOffer, len(bundles))
	copy(out, bundles)
	return out
}

// FindByID returns the bundle offer with the given ID, or false if no
// such offer exists
func FindByID(id int) (BundleOffer, bool) {
	for _, b := range bundles {
		if b.ID == id {
			return b, true
		}
	}
	return BundleOffer{}, false
}

// Snapshot returns the offer denormalized for embedding into a
// transaction record
func (b BundleOffer) Snapshot() models.BundleSnapshot {
	return models.BundleSnapshot{
		ID:       b.ID,
		Name:     b.Name,
		Data:     b.Data,
		Price:    b.Price,
		Validity: b.Validity,
	}
}
