package storefront

import (
	"math"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

const checkoutPage = "/checkout"

type shippingRequest struct {
	CEP string `json:"cep"`
}

type quoteView struct {
	Shipping backend.Shipping `json:"shipping"`
	Subtotal float64          `json:"subtotal"`
	Total    float64          `json:"total"`
}

type checkoutRequest struct {
	Address backend.Address `json:"address"`
}

type checkoutView struct {
	URL      string           `json:"url"`
	Shipping backend.Shipping `json:"shipping"`
	Total    float64          `json:"total"`
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// quoteShipping prices freight for the current cart.
func (m *module) quoteShipping(ctx Context, req shippingRequest) handler.Response {
	quote, err := m.backend.CalculateShipping(ctx, req.CEP)
	if err != nil {
		return handler.Error(err)
	}
	snap, err := ctx.Shopper().Cart.Read(ctx)
	if err != nil {
		return handler.Error(err)
	}
	subtotal := snap.Total
	return handler.JSON(quoteView{
		Shipping: quote,
		Subtotal: roundCents(subtotal),
		Total:    roundCents(subtotal + float64(quote.Amount)),
	})
}

// checkout opens a payment session for the cart. Freight is always quoted
// server side for the delivery CEP. The store owner is the owner of the first
// cart product, falling back to backend.DefaultAdminID.
func (m *module) checkout(ctx Context, req checkoutRequest) handler.Response {
	client := ctx.Shopper()
	identity, _ := client.Auth.Identity()
	snap, err := client.Cart.Read(ctx)
	if err != nil {
		return handler.Error(err)
	}
	items := snap.Items

	if err := validator.Apply(validator.MinNum("items", len(items), 1)); err != nil {
		return handler.Error(err)
	}

	quote, err := m.backend.CalculateShipping(ctx, req.Address.CEP)
	if err != nil {
		return handler.Error(err)
	}

	lines := make([]backend.CheckoutLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, backend.CheckoutLine{
			Name:     it.Title,
			Image:    it.ProductImg,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	session, err := m.backend.CreateCheckout(ctx, backend.CheckoutRequest{
		Lines:    lines,
		Shipping: &quote,
		Address:  req.Address,
		Email:    identity.Email,
		AdminID:  m.storeOwner(ctx, items[0].ID),
	})
	if err != nil {
		return handler.Error(err)
	}

	m.logger.InfoContext(ctx, "checkout session created",
		logger.Component("storefront"),
		logger.Event("checkout"),
		logger.Email(identity.Email),
	)

	return handler.JSON(checkoutView{
		URL:      session.URL,
		Shipping: quote,
		Total:    roundCents(snap.Total + float64(quote.Amount)),
	})
}

func (m *module) storeOwner(ctx Context, productID string) string {
	p, err := m.backend.GetProduct(ctx, productID)
	if err != nil {
		m.logger.WarnContext(ctx, "store owner lookup failed",
			logger.Component("storefront"),
			logger.Error(err),
		)
		return backend.DefaultAdminID
	}
	if p.Email == "" {
		return backend.DefaultAdminID
	}
	return p.Email
}

// checkoutSuccess runs when the payment provider redirects back; the paid cart
// is cleared.
func (m *module) checkoutSuccess(ctx Context, _ struct{}) handler.Response {
	store := ctx.Shopper().Cart
	if err := store.ClearCart(ctx); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(store.Snapshot())
}
