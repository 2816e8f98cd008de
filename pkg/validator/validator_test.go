package validator_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("no failures", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.Apply(
			validator.Required("name", "Caneca"),
			validator.MinNum("price", 10.5, 0),
		))
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("name", "  "),
			validator.Email("email", "nope"),
			validator.MinNum("price", -1, 0),
		)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		ve := validator.ExtractValidationErrors(fmt.Errorf("wrapped: %w", err))
		require.Len(t, ve, 3)
		assert.True(t, ve.Has("email"))
		assert.False(t, ve.Has("zip"))
		assert.Equal(t, "field is required", ve.Fields()["name"])
		assert.Contains(t, ve.Error(), "price: must be at least 0")
	})

	t.Run("non validation errors", func(t *testing.T) {
		t.Parallel()
		assert.False(t, validator.IsValidationError(fmt.Errorf("boom")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
	})
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		ok   bool
	}{
		{"required ok", validator.Required("f", "x"), true},
		{"required blank", validator.Required("f", " \t"), false},
		{"min len unicode", validator.MinLen("f", "ção", 3), true},
		{"min len short", validator.MinLen("f", "ab", 3), false},
		{"max len", validator.MaxLen("f", "abcd", 3), false},
		{"email ok", validator.Email("f", "a@x.com"), true},
		{"email display name", validator.Email("f", "A <a@x.com>"), false},
		{"email no dot", validator.Email("f", "a@localhost"), false},
		{"email trailing dot", validator.Email("f", "a@x."), false},
		{"cep ok", validator.Digits("f", "01310100", 8), true},
		{"cep dash", validator.Digits("f", "01310-10", 8), false},
		{"cep short", validator.Digits("f", "0131010", 8), false},
		{"min num nan", validator.MinNum("f", math.NaN(), 0), false},
		{"max num", validator.MaxNum("f", 5, 10), true},
		{"max num over", validator.MaxNum("f", 11, 10), false},
		{"when skipped", validator.When(false, validator.Required("f", "")), true},
		{"when applied", validator.When(true, validator.Required("f", "")), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.ok, tt.rule.Check())
		})
	}
}
