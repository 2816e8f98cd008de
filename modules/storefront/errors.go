package storefront

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/svc/authsession"
	"github.com/dmitrymomot/storefront/svc/cart"
	"github.com/dmitrymomot/storefront/svc/shopper"
)

var (
	ErrNotReady          = handler.NewHTTPError(http.StatusServiceUnavailable, "session_not_ready")
	ErrLoginRequired     = handler.NewHTTPError(http.StatusUnauthorized, "login_required")
	ErrInvalidLogin      = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	ErrAdminRequired     = handler.NewHTTPError(http.StatusForbidden, "admin_required")
	ErrSellerRequired    = handler.NewHTTPError(http.StatusForbidden, "seller_required")
	ErrInvalidQuantity   = handler.NewHTTPError(http.StatusUnprocessableEntity, "invalid_quantity")
	ErrProductNotFound   = handler.NewHTTPError(http.StatusNotFound, "product_not_found")
	ErrBackendRejected   = handler.NewHTTPError(http.StatusUnprocessableEntity, "backend_rejected")
	ErrBackendDown       = handler.NewHTTPError(http.StatusBadGateway, "backend_unavailable")
	ErrStorageDown       = handler.NewHTTPError(http.StatusServiceUnavailable, "storage_unavailable")
	ErrRateLimited       = handler.NewHTTPError(http.StatusTooManyRequests, "too_many_attempts")
	ErrInvalidReturnPath = handler.NewHTTPError(http.StatusBadRequest, "invalid_return_path")
)

// classify maps service and backend errors onto HTTP errors.
func classify(err error) (handler.HTTPError, bool) {
	switch {
	case errors.Is(err, authsession.ErrNotReady), errors.Is(err, cart.ErrNotReady):
		return ErrNotReady, true
	case errors.Is(err, cart.ErrInvalidQuantity):
		return ErrInvalidQuantity, true
	case errors.Is(err, cart.ErrInvalidProduct):
		return handler.ErrUnprocessableEntity, true
	case errors.Is(err, authsession.ErrPersist), errors.Is(err, cart.ErrPersist),
		errors.Is(err, cart.ErrLoad), errors.Is(err, shopper.ErrReturnPathStore):
		return ErrStorageDown, true
	case errors.Is(err, shopper.ErrInvalidPath):
		return ErrInvalidReturnPath, true
	case errors.Is(err, backend.ErrNotFound):
		return handler.ErrNotFound, true
	case errors.Is(err, backend.ErrUnauthorized):
		return ErrInvalidLogin, true
	case errors.Is(err, backend.ErrRejected):
		return ErrBackendRejected, true
	case errors.Is(err, backend.ErrUnavailable), errors.Is(err, backend.ErrInvalidResponse),
		errors.Is(err, authsession.ErrInvalidIdentity):
		return ErrBackendDown, true
	}
	return handler.HTTPError{}, false
}
