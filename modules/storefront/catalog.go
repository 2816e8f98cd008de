package storefront

import (
	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
)

type listProductsRequest struct {
	Category string `query:"category"`
	Search   string `query:"q"`
	Page     int    `query:"page"`
}

type productRequest struct {
	ID string `path:"id"`
}

func (m *module) listProducts(ctx Context, req listProductsRequest) handler.Response {
	page, err := m.backend.ListProducts(ctx, backend.ProductFilter{
		Category: req.Category,
		Search:   req.Search,
		Page:     req.Page,
	})
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(page)
}

// getProduct hides drafts from the public catalog.
func (m *module) getProduct(ctx Context, req productRequest) handler.Response {
	p, err := m.backend.GetProduct(ctx, req.ID)
	if err != nil {
		return handler.Error(err)
	}
	if p.Draft {
		return handler.Error(ErrProductNotFound)
	}
	return handler.JSON(p)
}
