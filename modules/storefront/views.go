package storefront

import (
	"context"
	"time"

	"github.com/dmitrymomot/storefront/svc/authsession"
	"github.com/dmitrymomot/storefront/svc/cart"
	"github.com/dmitrymomot/storefront/svc/shopper"
)

type userView struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Admin        bool      `json:"admin"`
	Seller       bool      `json:"seller"`
	LastActivity time.Time `json:"lastActivity"`
}

type sessionView struct {
	Authenticated bool          `json:"authenticated"`
	User          *userView     `json:"user,omitempty"`
	Cart          cart.Snapshot `json:"cart"`
	Redirect      string        `json:"redirect,omitempty"`
}

func newUserView(id authsession.Identity) *userView {
	return &userView{
		Email:        id.Email,
		Name:         id.Name,
		Admin:        id.Admin,
		Seller:       id.Seller,
		LastActivity: id.LastActivity,
	}
}

// newSessionView fails with cart.ErrLoad when the cart cannot be read, so an
// outage is never rendered as an empty cart.
func newSessionView(ctx context.Context, c *shopper.Client) (sessionView, error) {
	snap, err := c.Cart.Read(ctx)
	if err != nil {
		return sessionView{}, err
	}
	view := sessionView{Cart: snap}
	if id, ok := c.Auth.Identity(); ok {
		view.Authenticated = true
		view.User = newUserView(id)
	}
	return view, nil
}
