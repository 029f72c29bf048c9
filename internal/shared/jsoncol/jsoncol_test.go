package jsoncol_test

import (
	"testing"

	"smg-portal/internal/shared/jsoncol"

	"github.com/stretchr/testify/assert"
)

func TestList(t *testing.T) {
	v, err := jsoncol.List[string](nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v)

	var got jsoncol.List[string]
	assert.NoError(t, got.Scan([]byte(`["HR","IT"]`)))
	assert.Equal(t, jsoncol.List[string]{"HR", "IT"}, got)

	assert.NoError(t, got.Scan(nil))
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Error(t, got.Scan(42))
}

func TestMap(t *testing.T) {
	v, err := jsoncol.Map(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, "{}", v)

	var got jsoncol.Map
	assert.NoError(t, got.Scan(`{"shift":"night"}`))
	assert.Equal(t, "night", got["shift"])
}
