package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

const (
	ordersPath   = "/api/get-orders"
	shippingPath = "/api/calculate-shipping"
	checkoutPath = "/api/stripe-checkout"

	// DefaultAdminID is sent when the cart does not name a store owner.
	DefaultAdminID = "default"

	currency      = "brl"
	shippingLabel = "Frete"
)

// ListOrders returns the orders of the store owned by adminID, or all orders
// when adminID is empty.
func (c *Client) ListOrders(ctx context.Context, adminID string) ([]Order, error) {
	var orders []Order
	in := struct {
		AdminID string `json:"adminId,omitempty"`
	}{AdminID: normalizeEmail(adminID)}
	if err := c.read(ctx, http.MethodPost, ordersPath, nil, in, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CustomerOrders returns the orders placed by email.
func (c *Client) CustomerOrders(ctx context.Context, email string) ([]Order, error) {
	email = normalizeEmail(email)
	if err := validator.Apply(validator.Required("email", email)); err != nil {
		return nil, err
	}

	all, err := c.ListOrders(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(all))
	for _, o := range all {
		if strings.EqualFold(o.Email, email) {
			out = append(out, o)
		}
	}
	return out, nil
}

// NormalizeCEP strips everything but digits.
func NormalizeCEP(zip string) string {
	var b strings.Builder
	for _, r := range zip {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CalculateShipping quotes freight to a Brazilian postal code.
func (c *Client) CalculateShipping(ctx context.Context, zip string) (Shipping, error) {
	zip = NormalizeCEP(zip)
	if err := validator.Apply(validator.Digits("customerZipCode", zip, 8)); err != nil {
		return Shipping{}, err
	}

	var quote Shipping
	in := struct {
		CustomerZipCode string `json:"customerZipCode"`
	}{CustomerZipCode: zip}
	if err := c.read(ctx, http.MethodPost, shippingPath, nil, in, &quote); err != nil {
		return Shipping{}, err
	}
	return quote, nil
}

type productData struct {
	Name   string   `json:"name"`
	Images []string `json:"images,omitempty"`
}

type priceData struct {
	Currency    string      `json:"currency"`
	ProductData productData `json:"product_data"`
	UnitAmount  int64       `json:"unit_amount"`
}

type lineItem struct {
	PriceData priceData `json:"price_data"`
	Quantity  int       `json:"quantity"`
}

type checkoutPayload struct {
	Items   []lineItem `json:"items"`
	Address Address    `json:"address"`
	Email   string     `json:"email"`
	AdminID string     `json:"adminId"`
}

// CreateCheckout opens a hosted payment session. Amounts are sent in centavos
// and a shipping quote becomes an extra line.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	req.Email = normalizeEmail(req.Email)
	req.Address.CEP = NormalizeCEP(req.Address.CEP)
	if req.AdminID == "" {
		req.AdminID = DefaultAdminID
	}

	if err := validator.Apply(
		validator.Required("email", req.Email),
		validator.MinNum("items", len(req.Lines), 1),
		validator.Digits("address.cep", req.Address.CEP, 8),
		validator.Required("address.rua", req.Address.Street),
		validator.Required("address.numero", req.Address.Number),
		validator.Required("address.cidade", req.Address.City),
		validator.Required("address.estado", req.Address.State),
	); err != nil {
		return CheckoutSession{}, err
	}

	items := make([]lineItem, 0, len(req.Lines)+1)
	for _, l := range req.Lines {
		var images []string
		if l.Image != "" {
			images = []string{l.Image}
		}
		items = append(items, lineItem{
			PriceData: priceData{
				Currency:    currency,
				ProductData: productData{Name: l.Name, Images: images},
				UnitAmount:  Price(l.Price).Cents(),
			},
			Quantity: l.Quantity,
		})
	}
	if req.Shipping != nil {
		items = append(items, lineItem{
			PriceData: priceData{
				Currency:    currency,
				ProductData: productData{Name: shippingLabel},
				UnitAmount:  req.Shipping.Amount.Cents(),
			},
			Quantity: 1,
		})
	}

	var session CheckoutSession
	if err := c.do(ctx, http.MethodPost, checkoutPath, nil, checkoutPayload{
		Items:   items,
		Address: req.Address,
		Email:   req.Email,
		AdminID: req.AdminID,
	}, &session); err != nil {
		return CheckoutSession{}, err
	}
	if session.URL == "" {
		return CheckoutSession{}, ErrInvalidResponse
	}
	return session, nil
}
