package validator

import (
	"testing"

	domainerrors "ridehail/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicle struct {
	Color    string `json:"color" validate:"min=3" label:"Vehicle color"`
	Capacity int    `json:"capacity" validate:"gte=1" label:"Vehicle capacity"`
	Type     string `json:"vehicleType" validate:"oneof=car bike auto" label:"Vehicle type"`
}

type signup struct {
	FirstName string   `json:"firstName" validate:"min=3" label:"First name"`
	Email     string   `json:"email" validate:"email"`
	Nickname  string   `json:"nickname" validate:"required"`
	Vehicle   *vehicle `json:"vehicle" validate:"required"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&signup{
		FirstName: "Alice",
		Email:     "a@x.com",
		Nickname:  "al",
		Vehicle:   &vehicle{Color: "red", Capacity: 2, Type: "car"},
	})
	assert.NoError(t, err)
}

func TestValidator_FieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(&signup{
		FirstName: "Al",
		Email:     "not-an-email",
		Vehicle:   &vehicle{Color: "r", Capacity: 0, Type: "boat"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []domainerrors.FieldError{
		{Field: "firstName", Message: "First name must be at least 3 characters long"},
		{Field: "email", Message: "Invalid email"},
		{Field: "nickname", Message: "nickname is required"},
		{Field: "vehicle.color", Message: "Vehicle color must be at least 3 characters long"},
		{Field: "vehicle.capacity", Message: "Vehicle capacity must be a positive integer"},
		{Field: "vehicle.vehicleType", Message: "Vehicle type must be one of: car, bike, auto"},
	}, validationErr.Fields)
}

func TestValidator_MissingNestedStruct(t *testing.T) {
	v := New()

	err := v.Validate(&signup{FirstName: "Alice", Email: "a@x.com", Nickname: "al"})

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "vehicle", validationErr.Fields[0].Field)
}

func TestValidator_NonStruct(t *testing.T) {
	err := New().Validate("plain string")

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}
