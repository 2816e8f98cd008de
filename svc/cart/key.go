package cart

import "github.com/dmitrymomot/storefront/svc/authsession"

const (
	keyPrefix = "cart_"

	// GuestKey holds the cart of a visitor without identity.
	GuestKey = keyPrefix + "guest"
)

// ResolveStorageKey derives the storage key for identity.
func ResolveStorageKey(identity *authsession.Identity) string {
	if identity == nil || identity.Email == "" {
		return GuestKey
	}
	return keyPrefix + identity.Email
}
