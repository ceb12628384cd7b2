package catalog

// Default returns the production chain registry. Physical chains carry one
// Nashville-area reference location; Amazon Fresh is delivery-only.
func Default() Catalog {
	return MustNew([]Chain{
		{
			Name:              "Kroger",
			LogoColor:         "#0f4c97",
			HomeURL:           "https://www.kroger.com",
			SearchURLTemplate: "https://www.kroger.com/search?query={item}",
			DeepLinkTemplate:  "https://www.kroger.com/search?query={item}&searchType=default_search",
			Location: &Location{
				Lat:     36.1497,
				Lng:     -86.8003,
				Address: "2131 Abbott Martin Rd, Nashville, TN 37215",
			},
		},
		{
			Name:              "Walmart",
			LogoColor:         "#0071ce",
			HomeURL:           "https://www.walmart.com",
			SearchURLTemplate: "https://www.walmart.com/search?q={item}",
			DeepLinkTemplate:  "https://www.walmart.com/search?q={item}",
			Location: &Location{
				Lat:     36.1198,
				Lng:     -86.7407,
				Address: "4040 Nolensville Pike, Nashville, TN 37211",
			},
		},
		{
			Name:              "Target",
			LogoColor:         "#cc0000",
			HomeURL:           "https://www.target.com",
			SearchURLTemplate: "https://www.target.com/s?searchTerm={item}",
			DeepLinkTemplate:  "https://www.target.com/s?searchTerm={item}",
			Location: &Location{
				Lat:     36.1069,
				Lng:     -86.8142,
				Address: "26 White Bridge Rd, Nashville, TN 37205",
			},
		},
		{
			Name:              "Aldi",
			LogoColor:         "#00005f",
			HomeURL:           "https://www.aldi.us",
			SearchURLTemplate: "https://www.aldi.us/results?q={item}",
			DeepLinkTemplate:  "https://www.aldi.us/results?q={item}",
			Location: &Location{
				Lat:     36.1520,
				Lng:     -86.7095,
				Address: "2221 Gallatin Pike, Madison, TN 37115",
			},
		},
		{
			Name:              "Publix",
			LogoColor:         "#3b7d3b",
			HomeURL:           "https://www.publix.com",
			SearchURLTemplate: "https://www.publix.com/search?query={item}",
			DeepLinkTemplate:  "https://www.publix.com/search?query={item}",
			Location: &Location{
				Lat:     36.1063,
				Lng:     -86.8163,
				Address: "21 White Bridge Rd, Nashville, TN 37205",
			},
		},
		{
			Name:              "Whole Foods",
			LogoColor:         "#00674b",
			HomeURL:           "https://www.wholefoodsmarket.com",
			SearchURLTemplate: "https://www.wholefoodsmarket.com/search?text={item}",
			DeepLinkTemplate:  "https://www.wholefoodsmarket.com/search?text={item}",
			Location: &Location{
				Lat:     36.1058,
				Lng:     -86.8179,
				Address: "4021 Hillsboro Pike, Nashville, TN 37215",
			},
		},
		{
			Name:              "Amazon Fresh",
			LogoColor:         "#232f3e",
			HomeURL:           "https://www.amazon.com/fresh",
			SearchURLTemplate: "https://www.amazon.com/s?k={item}&i=amazonfresh",
			DeepLinkTemplate:  "https://www.amazon.com/s?k={item}&i=amazonfresh",
			DeliveryOnly:      true,
		},
	})
}
