package backend

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

const (
	productsPath       = "/api/get-products"
	sellerProductsPath = "/get-products"
	productPath        = "/product-data"
	saveProductPath    = "/add-product"
	deleteProductPath  = "/api/delete-product"

	// PageSize is the number of products per listing page.
	PageSize = 15
)

// ProductFilter narrows a product listing.
type ProductFilter struct {
	// Owner restricts the listing to one account. Empty lists the whole catalog.
	Owner string
	// Category matches exactly, ignoring case.
	Category string
	// Search matches name, category or brand as a case-insensitive substring.
	Search string
	// Page is 1-based. Values below 1 select the first page.
	Page int
	// IncludeDrafts keeps unpublished products.
	IncludeDrafts bool
}

// ProductPage is one page of a filtered listing.
type ProductPage struct {
	Items []Product `json:"items"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
	Total int       `json:"total"`
}

type ownerQuery struct {
	Email string `json:"email,omitempty"`
}

// Products returns the raw catalog of owner, or the whole catalog.
func (c *Client) Products(ctx context.Context, owner string) ([]Product, error) {
	var products []Product
	if err := c.read(ctx, http.MethodPost, productsPath, nil, ownerQuery{Email: normalizeEmail(owner)}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SellerProducts returns the products published by a seller account.
func (c *Client) SellerProducts(ctx context.Context, email string) ([]Product, error) {
	email = normalizeEmail(email)
	if err := validator.Apply(validator.Required("email", email)); err != nil {
		return nil, err
	}

	var products []Product
	if err := c.read(ctx, http.MethodPost, sellerProductsPath, nil, ownerQuery{Email: email}, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProducts fetches the catalog and returns the requested page of matches.
func (c *Client) ListProducts(ctx context.Context, f ProductFilter) (ProductPage, error) {
	products, err := c.Products(ctx, f.Owner)
	if err != nil {
		return ProductPage{}, err
	}
	return Paginate(FilterProducts(products, f), f.Page), nil
}

// FilterProducts keeps the products matching f, preserving order.
func FilterProducts(products []Product, f ProductFilter) []Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.Category)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Draft && !f.IncludeDrafts {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) &&
			!strings.Contains(strings.ToLower(p.Brand), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Paginate slices products into PageSize pages. Pages past the end are empty.
func Paginate(products []Product, page int) ProductPage {
	if page < 1 {
		page = 1
	}
	total := len(products)
	pages := (total + PageSize - 1) / PageSize

	start := min((page-1)*PageSize, total)
	end := min(start+PageSize, total)

	return ProductPage{
		Items: products[start:end:end],
		Page:  page,
		Pages: pages,
		Total: total,
	}
}

// GetProduct returns one product, served from cache when fresh.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if err := validator.Apply(validator.Required("id", id)); err != nil {
		return Product{}, err
	}

	if p, ok := c.products.Get(id); ok {
		return p, nil
	}

	var p Product
	if err := c.read(ctx, http.MethodGet, productPath, url.Values{"id": {id}}, nil, &p); err != nil {
		return Product{}, err
	}
	if p.ID == "" {
		p.ID = id
	}

	c.products.Put(id, p)
	return p, nil
}

type saveResult struct {
	Success bool   `json:"success"`
	Alert   string `json:"alert"`
}

// SaveProduct creates or, when p.ID is set, updates a product owned by p.Email.
// Drafts may be incomplete; published products need name, category and price.
func (c *Client) SaveProduct(ctx context.Context, p Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Email = normalizeEmail(p.Email)
	p.Tags = uniqueTags(p.Tags)
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}

	if err := validator.Apply(
		validator.Required("email", p.Email),
		validator.MinNum("price", float64(p.Price), 0),
		validator.When(!p.Draft, validator.Required("name", p.Name)),
		validator.When(!p.Draft, validator.Required("category", p.Category)),
		validator.When(!p.Draft, validator.MinNum("price", float64(p.Price), 0.01)),
		validator.When(!p.Draft, validator.Required("image", p.Image)),
		validator.When(p.SavePrice > 0, validator.MinNum("oldPrice", float64(p.OldPrice), 0.01)),
	); err != nil {
		return err
	}

	var res saveResult
	if err := c.do(ctx, http.MethodPost, saveProductPath, nil, p, &res); err != nil {
		return err
	}
	if p.ID != "" {
		c.products.Remove(p.ID)
	}
	if !res.Success {
		msg := res.Alert
		if msg == "" {
			msg = "product was not saved"
		}
		return &APIError{Kind: ErrRejected, Status: http.StatusOK, Message: msg}
	}
	return nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := validator.Apply(validator.Required("id", id)); err != nil {
		return err
	}

	if err := c.do(ctx, http.MethodPost, deleteProductPath, nil, struct {
		ID string `json:"id"`
	}{ID: id}, nil); err != nil {
		return err
	}
	c.products.Remove(id)
	return nil
}

func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
