package storefront

import (
	"net/http"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
)

type productsView struct {
	Items []backend.Product `json:"items"`
}

type ordersView struct {
	Items []backend.Order `json:"items"`
}

func (m *module) customerOrders(ctx Context, _ struct{}) handler.Response {
	identity, _ := ctx.Shopper().Auth.Identity()
	orders, err := m.backend.CustomerOrders(ctx, identity.Email)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(ordersView{Items: orders})
}

// adminOrders lists the orders of the admin's store.
func (m *module) adminOrders(ctx Context, _ struct{}) handler.Response {
	identity, _ := ctx.Shopper().Auth.Identity()
	orders, err := m.backend.ListOrders(ctx, identity.Email)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(ordersView{Items: orders})
}

func (m *module) adminProducts(ctx Context, _ struct{}) handler.Response {
	identity, _ := ctx.Shopper().Auth.Identity()
	products, err := m.backend.Products(ctx, identity.Email)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(productsView{Items: products})
}

func (m *module) sellerProducts(ctx Context, _ struct{}) handler.Response {
	identity, _ := ctx.Shopper().Auth.Identity()
	products, err := m.backend.SellerProducts(ctx, identity.Email)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(productsView{Items: products})
}

// saveProduct creates or updates a product owned by the signed-in account.
func (m *module) saveProduct(ctx Context, req backend.Product) handler.Response {
	identity, _ := ctx.Shopper().Auth.Identity()
	req.Email = identity.Email
	if err := m.backend.SaveProduct(ctx, req); err != nil {
		return handler.Error(err)
	}
	return handler.EmptyWithStatus(http.StatusCreated)
}

func (m *module) deleteProduct(ctx Context, req productRequest) handler.Response {
	if err := m.backend.DeleteProduct(ctx, req.ID); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}
