package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

const (
	loginPath    = "/api/login"
	registerPath = "/api/register"

	MinPasswordLength = 6
)

// Login checks credentials and returns the account.
func (c *Client) Login(ctx context.Context, cred Credentials) (User, error) {
	cred.Email = normalizeEmail(cred.Email)
	if err := validator.Apply(
		validator.Required("email", cred.Email),
		validator.Email("email", cred.Email),
		validator.Required("password", cred.Password),
	); err != nil {
		return User{}, err
	}

	var user User
	if err := c.do(ctx, http.MethodPost, loginPath, nil, cred, &user); err != nil {
		return User{}, err
	}
	return normalizeUser(user, cred.Email)
}

// Register creates an account and returns it.
func (c *Client) Register(ctx context.Context, reg Registration) (User, error) {
	reg.Email = normalizeEmail(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	if err := validator.Apply(
		validator.Required("name", reg.Name),
		validator.MaxLen("name", reg.Name, 120),
		validator.Required("email", reg.Email),
		validator.Email("email", reg.Email),
		validator.MinLen("password", reg.Password, MinPasswordLength),
	); err != nil {
		return User{}, err
	}

	var user User
	if err := c.do(ctx, http.MethodPost, registerPath, nil, reg, &user); err != nil {
		return User{}, err
	}
	if user.Name == "" {
		user.Name = reg.Name
	}
	return normalizeUser(user, reg.Email)
}

// normalizeUser fills a missing email with the submitted one and rejects a
// response for another account.
func normalizeUser(u User, submitted string) (User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.Email == "" {
		u.Email = submitted
	}
	if u.Email != submitted {
		return User{}, ErrInvalidResponse
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
