package backend

import (
	"bytes"
	"encoding/json"
)

// Text is a label the API sends either as a string or as a number.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidResponse
	}
	*t = Text(n.String())
	return nil
}

// User is the account returned by login and registration.
type User struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Admin  bool   `json:"admin"`
	Seller bool   `json:"seller"`
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the sign-up form fields.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Product is a catalog entry.
type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Brand      string   `json:"brand,omitempty"`
	Type       string   `json:"type,omitempty"`
	Price      Price    `json:"price"`
	OldPrice   Price    `json:"oldPrice,omitempty"`
	SavePrice  Price    `json:"savePrice,omitempty"`
	ShortDes   string   `json:"shortDes,omitempty"`
	Detail     string   `json:"detail,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Image      string   `json:"image,omitempty"`
	Images     []string `json:"images,omitempty"`
	Email      string   `json:"email,omitempty"`
	Draft      bool     `json:"draft,omitempty"`
	SalesCount int      `json:"salesCount,omitempty"`
	CreatedAt  string   `json:"createdAt,omitempty"`
}

// Order is a placed order as reported by the API.
type Order struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	AdminID   string      `json:"adminId,omitempty"`
	Status    string      `json:"status,omitempty"`
	Amount    Price       `json:"amount,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
	Items     []OrderItem `json:"items,omitempty"`
	Address   *Address    `json:"address,omitempty"`
}

// OrderItem is one line of an Order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    Price  `json:"price"`
}

// Address is a Brazilian delivery address.
type Address struct {
	CEP        string `json:"cep"`
	Street     string `json:"rua"`
	Number     string `json:"numero"`
	Complement string `json:"complemento,omitempty"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	State      string `json:"estado"`
}

// Shipping is a freight quote. Amount is in reais.
type Shipping struct {
	Amount   Price `json:"valor"`
	Deadline Text  `json:"prazo,omitempty"`
	Service  Text  `json:"servico,omitempty"`
}

// CheckoutLine is one item sent to the payment session.
type CheckoutLine struct {
	Name     string
	Image    string
	Price    float64
	Quantity int
}

// CheckoutRequest starts a payment session.
type CheckoutRequest struct {
	Lines    []CheckoutLine
	Shipping *Shipping
	Address  Address
	Email    string
	AdminID  string
}

// CheckoutSession is the hosted payment page to redirect to.
type CheckoutSession struct {
	URL string `json:"url"`
}
