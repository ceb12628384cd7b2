package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nashville = Location{Lat: 36.1627, Lng: -86.7816}
var memphis = Location{Lat: 35.1495, Lng: -90.0490}

func TestFilterKeepsDeliveryOnlyAtZeroDistance(t *testing.T) {
	totals := map[string]float64{"Alpha": 10, "Beta": 12, "HomeDrop": 15}

	distances, surviving := FilterByDistance(testCatalog(), totals, memphis, 20)

	require.Len(t, distances, 1)
	assert.Equal(t, "HomeDrop", distances[0].Store)
	assert.Equal(t, 0.0, distances[0].Distance)
	assert.Equal(t, "Delivery", distances[0].Address)
	assert.Equal(t, map[string]float64{"HomeDrop": 15}, surviving)
}

func TestFilterWithoutCutoffKeepsEverything(t *testing.T) {
	totals := map[string]float64{"Alpha": 10, "Beta": 12, "HomeDrop": 15}

	distances, surviving := FilterByDistance(testCatalog(), totals, memphis, 0)

	assert.Len(t, distances, 3)
	assert.Len(t, surviving, 3)
	for _, sd := range distances {
		if sd.Store == "HomeDrop" {
			assert.Equal(t, 0.0, sd.Distance)
		} else {
			assert.Greater(t, sd.Distance, 100.0)
			assert.NotEmpty(t, sd.Address)
		}
	}
}

func TestFilterSkipsUnquotedStores(t *testing.T) {
	totals := map[string]float64{"Alpha": 10}

	distances, surviving := FilterByDistance(testCatalog(), totals, nashville, 0)

	require.Len(t, distances, 1)
	assert.Equal(t, "Alpha", distances[0].Store)
	assert.Len(t, surviving, 1)
}

func TestFilterPreservesCatalogOrder(t *testing.T) {
	totals := map[string]float64{"Alpha": 10, "Beta": 12, "HomeDrop": 15}

	distances, _ := FilterByDistance(testCatalog(), totals, nashville, 0)

	require.Len(t, distances, 3)
	assert.Equal(t, "Alpha", distances[0].Store)
	assert.Equal(t, "Beta", distances[1].Store)
	assert.Equal(t, "HomeDrop", distances[2].Store)
}

func TestFilterCarriesChainDisplayMetadata(t *testing.T) {
	totals := map[string]float64{"Alpha": 10}

	distances, _ := FilterByDistance(testCatalog(), totals, nashville, 0)

	require.Len(t, distances, 1)
	assert.Equal(t, "https://alpha.example", distances[0].HomeURL)
	assert.Equal(t, "1 Alpha St", distances[0].Address)
}

func TestNearbyStoresCoversWholeCatalog(t *testing.T) {
	distances := NearbyStores(testCatalog(), nashville)

	require.Len(t, distances, 3)
	for _, sd := range distances {
		assert.NotEmpty(t, sd.Address)
	}
	// Alpha's reference location is downtown Nashville.
	assert.Less(t, distances[0].Distance, 1.0)
	assert.Equal(t, 0.0, distances[2].Distance)
}
