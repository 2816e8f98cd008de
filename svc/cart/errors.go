package cart

import "errors"

var (
	// ErrNotReady is returned when the identity source has not hydrated yet.
	ErrNotReady = errors.New("cart.not_ready")

	// ErrInvalidQuantity is returned by UpdateQuantity for quantities below MinQuantity.
	ErrInvalidQuantity = errors.New("cart.invalid_quantity")

	// ErrInvalidProduct is returned by AddToCart for products without id or with a negative price.
	ErrInvalidProduct = errors.New("cart.invalid_product")

	// ErrPersist wraps storage failures while writing the cart.
	ErrPersist = errors.New("cart.persist_failed")

	// ErrLoad wraps storage failures while reading the cart.
	ErrLoad = errors.New("cart.load_failed")
)
