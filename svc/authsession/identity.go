package authsession

import (
	"encoding/json"
	"strings"
	"time"
)

// Identity is the authenticated visitor.
type Identity struct {
	Email        string
	Name         string
	Admin        bool
	Seller       bool
	LastActivity time.Time
}

// record is the persisted form of Identity.
// lastActivity is stored in Unix milliseconds.
type record struct {
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	Admin        bool   `json:"admin,omitempty"`
	Seller       bool   `json:"seller,omitempty"`
	LastActivity int64  `json:"lastActivity"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func encodeIdentity(id Identity) ([]byte, error) {
	return json.Marshal(record{
		Email:        id.Email,
		Name:         id.Name,
		Admin:        id.Admin,
		Seller:       id.Seller,
		LastActivity: id.LastActivity.UnixMilli(),
	})
}

// decodeIdentity rejects records without an email or a positive activity stamp.
func decodeIdentity(data []byte) (Identity, bool) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Identity{}, false
	}
	email := normalizeEmail(rec.Email)
	if email == "" || rec.LastActivity <= 0 {
		return Identity{}, false
	}
	return Identity{
		Email:        email,
		Name:         rec.Name,
		Admin:        rec.Admin,
		Seller:       rec.Seller,
		LastActivity: time.UnixMilli(rec.LastActivity),
	}, true
}
