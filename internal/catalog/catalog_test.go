package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsPhysicalChainWithoutLocation(t *testing.T) {
	_, err := New([]Chain{
		{Name: "NoWhere", HomeURL: "https://example.com"},
	})
	assert.Error(t, err)
}

func TestNewRejectsDeliveryOnlyChainWithLocation(t *testing.T) {
	_, err := New([]Chain{
		{Name: "Ghost", DeliveryOnly: true, Location: &Location{Lat: 1, Lng: 2}},
	})
	assert.Error(t, err)
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New([]Chain{
		{Name: "Twice", DeliveryOnly: true},
		{Name: "Twice", DeliveryOnly: true},
	})
	assert.Error(t, err)
}

func TestChainsPreserveDeclarationOrder(t *testing.T) {
	c := MustNew([]Chain{
		{Name: "B", DeliveryOnly: true},
		{Name: "A", DeliveryOnly: true},
		{Name: "C", DeliveryOnly: true},
	})
	names := make([]string, 0, c.Len())
	for _, ch := range c.Chains() {
		names = append(names, ch.Name)
	}
	assert.Equal(t, []string{"B", "A", "C"}, names)
}

func TestChainByName(t *testing.T) {
	c := Default()

	kroger, ok := c.ChainByName("Kroger")
	require.True(t, ok)
	assert.False(t, kroger.DeliveryOnly)
	require.NotNil(t, kroger.Location)
	assert.NotEmpty(t, kroger.Location.Address)

	_, ok = c.ChainByName("Corner Bodega")
	assert.False(t, ok)
}

func TestDefaultCatalogInvariants(t *testing.T) {
	c := Default()
	assert.GreaterOrEqual(t, c.Len(), 5)

	deliveryOnly := 0
	for _, ch := range c.Chains() {
		if ch.DeliveryOnly {
			deliveryOnly++
			assert.Nil(t, ch.Location, ch.Name)
		} else {
			assert.NotNil(t, ch.Location, ch.Name)
		}
		assert.NotEmpty(t, ch.HomeURL, ch.Name)
		assert.NotEmpty(t, ch.SearchURLTemplate, ch.Name)
	}
	assert.Equal(t, 1, deliveryOnly, "exactly one delivery-only chain expected in the default catalog")
}

func TestSearchURLEscapesItem(t *testing.T) {
	c := Default()
	kroger, ok := c.ChainByName("Kroger")
	require.True(t, ok)

	u := kroger.SearchURL("chicken breast")
	assert.Contains(t, u, "chicken+breast")
	assert.NotContains(t, u, "{item}")
}
