package storefront

import (
	"net/http"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/svc/shopper"
)

// Context is the handler context of visitor routes.
type Context interface {
	handler.Context
	// Shopper is the hydrated visitor, nil outside shopper.Registry.Middleware.
	Shopper() *shopper.Client
}

type requestContext struct {
	handler.Context
	client *shopper.Client
}

func (c *requestContext) Shopper() *shopper.Client {
	return c.client
}

func newContext(w http.ResponseWriter, r *http.Request) Context {
	client, _ := shopper.FromContext(r.Context())
	return &requestContext{Context: handler.NewContext(w, r), client: client}
}
