package compare

import (
	"github.com/pantryplan/grocery-service/internal/catalog"
	"github.com/pantryplan/grocery-service/internal/geo"
)

// deliveryAddress is the synthetic address reported for chains with no
// physical footprint.
const deliveryAddress = "Delivery"

// FilterByDistance computes distances for the stores in totals and removes
// physical chains beyond maxDistance (0 = no cutoff). Delivery-only chains
// always survive at distance 0. The returned slice preserves catalog order,
// and the returned totals are the surviving subset.
//
// Callers must only invoke this with a location; without one the filter is a
// no-op by contract and no distances exist.
func FilterByDistance(cat catalog.Catalog, totals map[string]float64, loc Location, maxDistance float64) ([]StoreDistance, map[string]float64) {
	distances := []StoreDistance{}
	surviving := make(map[string]float64, len(totals))

	for _, ch := range cat.Chains() {
		total, quoted := totals[ch.Name]
		if !quoted {
			continue
		}

		sd := StoreDistance{
			Store:     ch.Name,
			Address:   deliveryAddress,
			LogoColor: ch.LogoColor,
			HomeURL:   ch.HomeURL,
		}
		if !ch.DeliveryOnly {
			sd.Distance = geo.DistanceMiles(loc.Lat, loc.Lng, ch.Location.Lat, ch.Location.Lng)
			sd.Address = ch.Location.Address
			if maxDistance > 0 && sd.Distance > maxDistance {
				continue
			}
		}

		distances = append(distances, sd)
		surviving[ch.Name] = total
	}

	return distances, surviving
}

// NearbyStores computes distances for every catalog chain, ignoring pricing.
// Used by the nearby endpoint.
func NearbyStores(cat catalog.Catalog, loc Location) []StoreDistance {
	out := make([]StoreDistance, 0, cat.Len())
	for _, ch := range cat.Chains() {
		sd := StoreDistance{
			Store:     ch.Name,
			Address:   deliveryAddress,
			LogoColor: ch.LogoColor,
			HomeURL:   ch.HomeURL,
		}
		if !ch.DeliveryOnly {
			sd.Distance = geo.DistanceMiles(loc.Lat, loc.Lng, ch.Location.Lat, ch.Location.Lng)
			sd.Address = ch.Location.Address
		}
		out = append(out, sd)
	}
	return out
}
