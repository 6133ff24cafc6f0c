package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_JSON(t *testing.T) {
	b, err := json.Marshal(PaymentMethodQR)
	require.NoError(t, err)
	assert.Equal(t, `"qr"`, string(b))

	var m PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(`"Card"`), &m))
	assert.Equal(t, PaymentMethodCard, m)

	require.NoError(t, json.Unmarshal([]byte(`1`), &m))
	assert.Equal(t, PaymentMethodCash, m)

	assert.Error(t, json.Unmarshal([]byte(`"cheque"`), &m))
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.False(t, PaymentMethodNone.IsValid())
	assert.False(t, PaymentMethod(9).IsValid())
	for _, m := range PaymentMethods() {
		assert.True(t, m.IsValid(), m.String())
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("side-dishes")
	require.NoError(t, err)
	assert.Equal(t, CategorySideDishes, c)

	c, err = ParseCategory("Beverages")
	require.NoError(t, err)
	assert.Equal(t, CategoryBeverages, c)

	_, err = ParseCategory("desserts")
	assert.Error(t, err)
}

func TestTableStatus_JSON(t *testing.T) {
	b, err := json.Marshal(TableStatusOccupied)
	require.NoError(t, err)
	assert.Equal(t, `"occupied"`, string(b))
}
