package orders

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balasre/pharmacare-backend/api/validators"
)

func TestPlaceOrderInputDecodesWirePayload(t *testing.T) {
	payload := `{
		"customer_name": "Asha Rao",
		"phone": "9876543210",
		"streetAddress": "12 MG Road",
		"city": "Bengaluru",
		"delivery_type": "express",
		"payment_method": "cod",
		"items": [{"name": "Paracetamol", "qty": 2, "price": 15}]
	}`

	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(payload))
	var input PlaceOrderInput
	require.NoError(t, validators.DecodeJSONBody(req, &input))

	assert.Equal(t, "12 MG Road", input.StreetAddress)
	assert.Equal(t, "Bengaluru", input.City)
	assert.Equal(t, "express", input.DeliveryType)
	require.Len(t, input.Items, 1)
	assert.Equal(t, 2, input.Items[0].Qty)
}

func TestPlaceOrderInputRejectsUnknownFields(t *testing.T) {
	payload := `{
		"customer_name": "Asha Rao",
		"phone": "9876543210",
		"street_address": "12 MG Road",
		"city": "Bengaluru",
		"delivery_type": "express",
		"payment_method": "cod",
		"items": [{"name": "Paracetamol", "qty": 2, "price": 15}]
	}`

	req := httptest.NewRequest("POST", "/api/v1/orders", strings.NewReader(payload))
	var input PlaceOrderInput
	err := validators.DecodeJSONBody(req, &input)
	require.Error(t, err)
}
