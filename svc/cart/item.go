package cart

import (
	"encoding/json"
	"math"
)

// MinQuantity is the smallest quantity a line item can hold.
const MinQuantity = 1

// Item is one cart line.
type Item struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	ProductImg string  `json:"productImg"`
	Quantity   int     `json:"quantity"`
}

// Subtotal is price times quantity, rounded to cents.
func (i Item) Subtotal() float64 {
	return fromCents(i.subtotalCents())
}

func (i Item) subtotalCents() int64 {
	return toCents(i.Price) * int64(i.Quantity)
}

func toCents(v float64) int64   { return int64(math.Round(v * 100)) }
func fromCents(c int64) float64 { return float64(c) / 100 }

// Product is what the catalog hands to AddToCart.
type Product struct {
	ID         string
	Title      string
	Price      float64
	ProductImg string
}

func (p Product) valid() bool {
	return p.ID != "" && p.Price >= 0 && !math.IsNaN(p.Price) && !math.IsInf(p.Price, 0)
}

// Items is an ordered list of cart lines.
type Items []Item

// Total is the sum of price times quantity. Lines are summed in whole cents.
func (it Items) Total() float64 {
	var total int64
	for _, item := range it {
		total += item.subtotalCents()
	}
	return fromCents(total)
}

// Count is the sum of quantities.
func (it Items) Count() int {
	var count int
	for _, item := range it {
		count += item.Quantity
	}
	return count
}

func (it Items) index(id string) int {
	for i, item := range it {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (it Items) clone() Items {
	if it == nil {
		return Items{}
	}
	out := make(Items, len(it))
	copy(out, it)
	return out
}

// decodeItems rejects the whole record if any line is invalid or duplicated.
func decodeItems(data []byte) (Items, bool) {
	var items Items
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity < MinQuantity || item.Price < 0 {
			return nil, false
		}
		if _, dup := seen[item.ID]; dup {
			return nil, false
		}
		seen[item.ID] = struct{}{}
	}

	return items.clone(), true
}
