package storefront

import (
	"context"

	"github.com/dmitrymomot/storefront/pkg/backend"
)

// Backend is the subset of the remote API the storefront calls.
// *backend.Client implements it.
type Backend interface {
	Login(ctx context.Context, cred backend.Credentials) (backend.User, error)
	Register(ctx context.Context, reg backend.Registration) (backend.User, error)

	ListProducts(ctx context.Context, f backend.ProductFilter) (backend.ProductPage, error)
	GetProduct(ctx context.Context, id string) (backend.Product, error)
	Products(ctx context.Context, owner string) ([]backend.Product, error)
	SellerProducts(ctx context.Context, email string) ([]backend.Product, error)
	SaveProduct(ctx context.Context, p backend.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListOrders(ctx context.Context, adminID string) ([]backend.Order, error)
	CustomerOrders(ctx context.Context, email string) ([]backend.Order, error)

	CalculateShipping(ctx context.Context, zip string) (backend.Shipping, error)
	CreateCheckout(ctx context.Context, req backend.CheckoutRequest) (backend.CheckoutSession, error)
}

var _ Backend = (*backend.Client)(nil)
