package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePrice(t *testing.T) {
	t.Parallel()

	regular := Product{RegularPrice: 5000}
	assert.Equal(t, 5000.0, regular.EffectivePrice())

	onSale := Product{RegularPrice: 5000, SalePrice: 4000}
	assert.Equal(t, 4000.0, onSale.EffectivePrice())
}

func TestAttributeMapValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attrs   AttributeMap
		wantErr bool
	}{
		{name: "nil map", attrs: nil, wantErr: false},
		{name: "known keys", attrs: AttributeMap{"size": "54", "color": "black", "length": "56", "sleeve": "full"}, wantErr: false},
		{name: "unknown key", attrs: AttributeMap{"fabric": "silk"}, wantErr: true},
		{name: "empty value", attrs: AttributeMap{"size": ""}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.attrs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAttributeMapRoundTrip(t *testing.T) {
	t.Parallel()

	in := AttributeMap{"size": "54", "color": "maroon"}
	v, err := in.Value()
	require.NoError(t, err)

	var out AttributeMap
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	// Empty maps store as an empty JSON object, never NULL.
	empty := AttributeMap{}
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestShippingAddressValidate(t *testing.T) {
	t.Parallel()

	full := ShippingAddress{
		Name: "Ayesha Khan", Phone: "03001234567", Email: "a@example.com",
		Street: "14-B Gulberg III", City: "Lahore", Province: "Punjab",
	}
	assert.Empty(t, full.Validate())

	partial := full
	partial.Phone = ""
	partial.City = ""
	assert.ElementsMatch(t, []string{"phone", "city"}, partial.Validate())
}
