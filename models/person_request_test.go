package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/personsbackend/apperrors"
)

func TestCreatePersonRequestValidate(t *testing.T) {
	t.Run("accepts a single name", func(t *testing.T) {
		req := CreatePersonRequest{LastName: StringPtr("Müller")}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects blank names mentioning both fields", func(t *testing.T) {
		blank := "   "
		req := CreatePersonRequest{FirstName: &blank, LastName: &blank}
		invalid := requireInvalid(t, req.Validate())
		require.Len(t, invalid.Errors, 1)
		assert.Contains(t, invalid.Errors[0], "firstName")
		assert.Contains(t, invalid.Errors[0], "lastName")
	})

	t.Run("rejects color outside catalog with range", func(t *testing.T) {
		req := CreatePersonRequest{FirstName: StringPtr("Hans"), Color: IntPtr(10)}
		invalid := requireInvalid(t, req.Validate())
		require.Len(t, invalid.Errors, 1)
		assert.Contains(t, invalid.Errors[0], "between 1 and 7")
	})

	t.Run("accumulates all failures", func(t *testing.T) {
		req := CreatePersonRequest{Color: IntPtr(0)}
		invalid := requireInvalid(t, req.Validate())
		require.Len(t, invalid.Errors, 2)
		assert.Contains(t, invalid.Errors[0], "firstName")
		assert.Contains(t, invalid.Errors[1], "between 1 and 7")
	})

	t.Run("enforces maximum lengths", func(t *testing.T) {
		long := strings.Repeat("ä", 101)
		addr := strings.Repeat("x", 256)
		req := CreatePersonRequest{FirstName: &long, LastName: StringPtr("ok"), Address: &addr}
		invalid := requireInvalid(t, req.Validate())
		assert.Len(t, invalid.Errors, 2)
	})
}

func TestCreatePersonRequestToPerson(t *testing.T) {
	empty := ""
	req := CreatePersonRequest{
		FirstName: StringPtr(" Hans "),
		LastName:  &empty,
		Address:   StringPtr("67742 Lauterecken"),
		Color:     IntPtr(ColorRed),
	}

	p := req.ToPerson()
	assert.Zero(t, p.ID)
	assert.Equal(t, "Hans", Deref(p.FirstName))
	assert.Nil(t, p.LastName)
	assert.Equal(t, "67742 Lauterecken", Deref(p.Address))
	require.NotNil(t, p.Color)
	assert.Equal(t, ColorRed, *p.Color)
	assert.True(t, p.HasName())
}

func requireInvalid(t *testing.T, err error) *apperrors.InvalidPersonDataError {
	t.Helper()
	var invalid *apperrors.InvalidPersonDataError
	require.ErrorAs(t, err, &invalid)
	return invalid
}
