package storefront

import (
	"net/http"

	"github.com/dmitrymomot/storefront/handler"
	"github.com/dmitrymomot/storefront/pkg/backend"
	"github.com/dmitrymomot/storefront/pkg/logger"
	"github.com/dmitrymomot/storefront/svc/authsession"
	"github.com/dmitrymomot/storefront/svc/shopper"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login verifies credentials with the backend and starts the identity. The
// cart switches to the user's own cart; guest items are not merged. The
// response names the path remembered before login, or "/".
func (m *module) login(ctx Context, req loginRequest) handler.Response {
	user, err := m.backend.Login(ctx, backend.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return handler.Error(err)
	}
	return m.startSession(ctx, user, http.StatusOK)
}

// register creates the account and signs it in.
func (m *module) register(ctx Context, req registerRequest) handler.Response {
	user, err := m.backend.Register(ctx, backend.Registration{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return handler.Error(err)
	}
	return m.startSession(ctx, user, http.StatusCreated)
}

func (m *module) startSession(ctx Context, user backend.User, status int) handler.Response {
	client := ctx.Shopper()
	if err := client.Auth.Login(ctx, authsession.Identity{
		Email:  user.Email,
		Name:   user.Name,
		Admin:  user.Admin,
		Seller: user.Seller,
	}); err != nil {
		return handler.Error(err)
	}

	m.logger.InfoContext(ctx, "visitor signed in",
		logger.Component("storefront"),
		logger.Event("login"),
		logger.Email(user.Email),
	)

	view, err := newSessionView(ctx, client)
	if err != nil {
		return handler.Error(err)
	}
	view.Redirect = "/"
	if path, ok := client.TakeReturnPath(ctx); ok {
		view.Redirect = path
	}
	return handler.JSON(view, handler.WithJSONStatus(status))
}

func (m *module) logout(ctx Context, _ struct{}) handler.Response {
	client := ctx.Shopper()
	if err := client.Auth.Logout(ctx); err != nil {
		return handler.Error(err)
	}
	return m.renderSession(ctx, client)
}

func (m *module) me(ctx Context, _ struct{}) handler.Response {
	return m.renderSession(ctx, ctx.Shopper())
}

func (m *module) renderSession(ctx Context, client *shopper.Client) handler.Response {
	view, err := newSessionView(ctx, client)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(view)
}
