// Package catalog holds the static registry of supported grocery chains.
// The registry is an immutable value built at startup and injected into the
// comparison service, so tests can substitute a smaller catalog.
package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// Location is a chain's reference store location.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// Chain describes a supported grocery chain.
// DeliveryOnly chains have no physical footprint and carry no location.
type Chain struct {
	Name              string
	LogoColor         string
	HomeURL           string
	SearchURLTemplate string
	DeepLinkTemplate  string
	DeliveryOnly      bool
	Location          *Location
}

// SearchURL renders the chain's item search URL for an item name.
func (c Chain) SearchURL(item string) string {
	return renderTemplate(c.SearchURLTemplate, item)
}

// DeepLink renders the chain's deep link for an item name.
func (c Chain) DeepLink(item string) string {
	return renderTemplate(c.DeepLinkTemplate, item)
}

func renderTemplate(tmpl, item string) string {
	return strings.ReplaceAll(tmpl, "{item}", url.QueryEscape(item))
}

// Catalog is a read-only, declaration-ordered set of chains.
type Catalog struct {
	chains []Chain
	byName map[string]int
}

// New builds a catalog from the given chains. Every non-delivery chain must
// carry a location, and names must be unique.
func New(chains []Chain) (Catalog, error) {
	byName := make(map[string]int, len(chains))
	for i, ch := range chains {
		if ch.Name == "" {
			return Catalog{}, fmt.Errorf("chain at index %d has no name", i)
		}
		if _, dup := byName[ch.Name]; dup {
			return Catalog{}, fmt.Errorf("duplicate chain name %q", ch.Name)
		}
		if !ch.DeliveryOnly && ch.Location == nil {
			return Catalog{}, fmt.Errorf("chain %q is not delivery-only and has no location", ch.Name)
		}
		if ch.DeliveryOnly && ch.Location != nil {
			return Catalog{}, fmt.Errorf("delivery-only chain %q must not have a location", ch.Name)
		}
		byName[ch.Name] = i
	}
	out := make([]Chain, len(chains))
	copy(out, chains)
	return Catalog{chains: out, byName: byName}, nil
}

// MustNew is New but panics on an invalid catalog. Intended for the static
// default registry and tests.
func MustNew(chains []Chain) Catalog {
	c, err := New(chains)
	if err != nil {
		panic(err)
	}
	return c
}

// Chains returns the chains in declaration order.
// The returned slice must not be mutated.
func (c Catalog) Chains() []Chain {
	return c.chains
}

// ChainByName looks up a chain by its display name.
func (c Catalog) ChainByName(name string) (Chain, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Chain{}, false
	}
	return c.chains[i], true
}

// Len returns the number of chains in the catalog.
func (c Catalog) Len() int {
	return len(c.chains)
}
