package storefront

import (
	"net/http"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/cart"
)

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type updateQuantityRequest struct {
	ID       string `json:"-" path:"id"`
	Quantity int    `json:"quantity"`
}

type itemRequest struct {
	ID string `path:"id"`
}

func (m *module) getCart(ctx Context, _ struct{}) handler.Response {
	snap, err := ctx.Shopper().Cart.Read(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(snap)
}

// addItem looks the product up in the catalog, so title and price always come
// from the backend rather than from the request.
func (m *module) addItem(ctx Context, req addItemRequest) handler.Response {
	if err := validator.Apply(validator.Required("productId", req.ProductID)); err != nil {
		return handler.Error(err)
	}

	p, err := m.backend.GetProduct(ctx, req.ProductID)
	if err != nil {
		return handler.Error(err)
	}

	store := ctx.Shopper().Cart
	if err := store.AddToCart(ctx, cart.Product{
		ID:         p.ID,
		Title:      p.Name,
		Price:      float64(p.Price),
		ProductImg: p.Image,
	}); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(store.Snapshot(), handler.WithJSONStatus(http.StatusCreated))
}

func (m *module) updateQuantity(ctx Context, req updateQuantityRequest) handler.Response {
	store := ctx.Shopper().Cart
	if err := store.UpdateQuantity(ctx, req.ID, req.Quantity); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(store.Snapshot())
}

func (m *module) removeItem(ctx Context, req itemRequest) handler.Response {
	store := ctx.Shopper().Cart
	if err := store.RemoveFromCart(ctx, req.ID); err != nil {
		return handler.Error(err)
	}
	return handler.JSON(store.Snapshot())
}

func (m *module) clearCart(ctx Context, _ struct{}) handler.Response {
	if err := ctx.Shopper().Cart.ClearCart(ctx); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}
