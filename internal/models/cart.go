package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// CartLine is one product-plus-quantity entry in a pending purchase.
// Name, price and image are snapshotted from the catalog at add time and
// are not re-fetched when the catalog changes later.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart maps a product key to its line. Product ID is the key; totals are
// always derived from the lines, never stored.
type Cart map[string]CartLine

// CartSlot is the persisted form of a cart: a single serialized blob per
// session, read and written atomically.
type CartSlot struct {
	SessionID string    `gorm:"primaryKey;type:varchar(36)"`
	Payload   string    `gorm:"type:text"`
	UpdatedAt time.Time
}

// wireLine tolerates both the current field names and the legacy ones
// ("_id", "price") found in older stored payloads.
type wireLine struct {
	ProductID   string  `json:"product_id"`
	LegacyID    string  `json:"_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	LegacyPrice float64 `json:"price"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}

// key resolves the stable product key for a decoded line.
func (w wireLine) key() string {
	if w.ProductID != "" {
		return w.ProductID
	}
	if w.LegacyID != "" {
		return w.LegacyID
	}
	return w.Name
}

func (w wireLine) toLine(key string) CartLine {
	price := w.UnitPrice
	if price == 0 {
		price = w.LegacyPrice
	}
	return CartLine{
		ProductID: key,
		Name:      w.Name,
		UnitPrice: price,
		Image:     w.Image,
		Quantity:  w.Quantity,
	}
}

// DecodeCart normalizes a stored payload into a Cart. Two historical
// encodings are accepted: a JSON list of lines and a JSON mapping of
// key to line. Anything else is rejected as malformed. Lines without a
// resolvable key or with a quantity below 1 are dropped.
func DecodeCart(payload []byte) (Cart, error) {
	cart := make(Cart)
	if len(payload) == 0 {
		return cart, nil
	}

	var asList []wireLine
	if err := json.Unmarshal(payload, &asList); err == nil {
		for _, w := range asList {
			addDecodedLine(cart, w.key(), w)
		}
		return cart, nil
	}

	var asMap map[string]wireLine
	if err := json.Unmarshal(payload, &asMap); err == nil {
		for key, w := range asMap {
			if w.key() != "" {
				key = w.key()
			}
			addDecodedLine(cart, key, w)
		}
		return cart, nil
	}

	return nil, fmt.Errorf("malformed cart payload: %q", truncatePayload(payload))
}

func addDecodedLine(cart Cart, key string, w wireLine) {
	if key == "" || w.Quantity < 1 {
		return
	}
	cart[key] = w.toLine(key)
}

// EncodeCart serializes a Cart into its canonical stored form, the keyed
// mapping encoding. DecodeCart(EncodeCart(cart)) returns an equal cart.
func EncodeCart(cart Cart) ([]byte, error) {
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return payload, nil
}

func truncatePayload(payload []byte) string {
	const max = 64
	if len(payload) > max {
		return string(payload[:max]) + "..."
	}
	return string(payload)
}
