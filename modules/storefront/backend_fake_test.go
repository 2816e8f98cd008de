package storefront_test

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/backend"
)

type account struct {
	user     backend.User
	password string
}

// fakeBackend is an in-memory stand-in for the remote API.
type fakeBackend struct {
	mu        sync.Mutex
	accounts  map[string]account
	products  map[string]backend.Product
	orders    []backend.Order
	shipping  backend.Shipping
	checkouts []backend.CheckoutRequest
	saved     []backend.Product
	deleted   []string
	ordersFor []string
	down      bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		accounts: map[string]account{
			"ana@example.com":    {user: backend.User{Email: "ana@example.com", Name: "Ana"}, password: "secret1"},
			"admin@example.com":  {user: backend.User{Email: "admin@example.com", Name: "Admin", Admin: true}, password: "secret1"},
			"seller@example.com": {user: backend.User{Email: "seller@example.com", Name: "Seller", Seller: true}, password: "secret1"},
		},
		products: map[string]backend.Product{
			"p1": {ID: "p1", Name: "Bolsa", Category: "Bolsas", Price: 10, Image: "p1.png", Email: "owner@example.com"},
			"p2": {ID: "p2", Name: "Carteira", Category: "Acessorios", Price: 5, Image: "p2.png"},
			"p3": {ID: "p3", Name: "Rascunho", Price: 1, Draft: true},
		},
		orders: []backend.Order{
			{ID: "o1", Email: "ana@example.com"},
			{ID: "o2", Email: "bob@example.com"},
		},
		shipping: backend.Shipping{Amount: 20, Deadline: "5", Service: "SEDEX"},
	}
}

func (f *fakeBackend) setDown(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = v
}

func (f *fakeBackend) check() error {
	if f.down {
		return &backend.APIError{Kind: backend.ErrUnavailable, Status: 503}
	}
	return nil
}

func (f *fakeBackend) Login(ctx context.Context, cred backend.Credentials) (backend.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(); err != nil {
		return backend.User{}, err
	}
	acc, ok := f.accounts[strings.ToLower(cred.Email)]
	if !ok || acc.password != cred.Password {
		return backend.User{}, &backend.APIError{Kind: backend.ErrUnauthorized, Status: 401}
	}
	return acc.user, nil
}

func (f *fakeBackend) Register(ctx context.Context, reg backend.Registration) (backend.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := backend.User{Email: strings.ToLower(reg.Email), Name: reg.Name}
	f.accounts[user.Email] = account{user: user, password: reg.Password}
	return user, nil
}

func (f *fakeBackend) ListProducts(ctx context.Context, filter backend.ProductFilter) (backend.ProductPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(); err != nil {
		return backend.ProductPage{}, err
	}
	all := make([]backend.Product, 0, len(f.products))
	for _, id := range []string{"p1", "p2", "p3"} {
		all = append(all, f.products[id])
	}
	return backend.Paginate(backend.FilterProducts(all, filter), filter.Page), nil
}

func (f *fakeBackend) GetProduct(ctx context.Context, id string) (backend.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(); err != nil {
		return backend.Product{}, err
	}
	p, ok := f.products[id]
	if !ok {
		return backend.Product{}, &backend.APIError{Kind: backend.ErrNotFound, Status: 404}
	}
	return p, nil
}

func (f *fakeBackend) Products(ctx context.Context, owner string) ([]backend.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return []backend.Product{f.products["p1"]}, nil
}

func (f *fakeBackend) SellerProducts(ctx context.Context, email string) ([]backend.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return []backend.Product{f.products["p2"]}, nil
}

func (f *fakeBackend) SaveProduct(ctx context.Context, p backend.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeBackend) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ListOrders(ctx context.Context, adminID string) ([]backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ordersFor = append(f.ordersFor, adminID)
	return f.orders, nil
}

func (f *fakeBackend) CustomerOrders(ctx context.Context, email string) ([]backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []backend.Order
	for _, o := range f.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeBackend) CalculateShipping(ctx context.Context, zip string) (backend.Shipping, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(); err != nil {
		return backend.Shipping{}, err
	}
	return f.shipping, nil
}

func (f *fakeBackend) CreateCheckout(ctx context.Context, req backend.CheckoutRequest) (backend.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkouts = append(f.checkouts, req)
	return backend.CheckoutSession{URL: "https://pay.example.com/s/1"}, nil
}

func (f *fakeBackend) lastCheckout() (backend.CheckoutRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.checkouts) == 0 {
		return backend.CheckoutRequest{}, false
	}
	return f.checkouts[len(f.checkouts)-1], true
}
