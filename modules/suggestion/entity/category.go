package entity

// CategoryID identifies a known venue category
type CategoryID string

const (
	CategoryCafe       CategoryID = "cafe"
	CategoryRestaurant CategoryID = "restaurant"
	CategoryPark       CategoryID = "park"
	CategoryBar        CategoryID = "bar"
	CategoryCinema     CategoryID = "cinema"
	CategoryKaraoke    CategoryID = "karaoke"
	CategoryBowling    CategoryID = "bowling"
	CategoryMuseum     CategoryID = "museum"
)

// CategoryConfig drives search and filtering for one category. Keyword
// variants are tried in order against the place-search provider; exclusion
// keywords drop results whose names match case-insensitively.
type CategoryConfig struct {
	Label             string
	SearchKeywords    []string
	ExclusionKeywords []string
	PriceTier         string
}

// categoryTable is the fixed set of known categories
var categoryTable = map[CategoryID]CategoryConfig{
	CategoryCafe: {
		Label:             "Cà phê",
		SearchKeywords:    []string{"quán cà phê", "cafe", "coffee shop"},
		ExclusionKeywords: []string{"văn phòng", "office", "công ty", "factory"},
		PriceTier:         "₫",
	},
	CategoryRestaurant: {
		Label:             "Nhà hàng",
		SearchKeywords:    []string{"nhà hàng", "restaurant", "quán ăn"},
		ExclusionKeywords: []string{"văn phòng", "office", "industrial", "khu công nghiệp", "manufacturing", "công ty"},
		PriceTier:         "₫₫",
	},
	CategoryPark: {
		Label:             "Công viên",
		SearchKeywords:    []string{"công viên", "park"},
		ExclusionKeywords: []string{"đại học", "university", "parking", "bãi đỗ xe", "apartment", "chung cư"},
		PriceTier:         "₫",
	},
	CategoryBar: {
		Label:             "Bar",
		SearchKeywords:    []string{"bar", "pub", "quán bia"},
		ExclusionKeywords: []string{"barber", "sandbar"},
		PriceTier:         "₫₫₫",
	},
	CategoryCinema: {
		Label:             "Rạp phim",
		SearchKeywords:    []string{"rạp chiếu phim", "cinema"},
		ExclusionKeywords: []string{"studio", "photo"},
		PriceTier:         "₫₫",
	},
	CategoryKaraoke: {
		Label:             "Karaoke",
		SearchKeywords:    []string{"karaoke"},
		ExclusionKeywords: []string{"thiết bị", "equipment", "store"},
		PriceTier:         "₫₫",
	},
	CategoryBowling: {
		Label:             "Bowling",
		SearchKeywords:    []string{"bowling"},
		ExclusionKeywords: []string{"shop", "store"},
		PriceTier:         "₫₫",
	},
	CategoryMuseum: {
		Label:             "Bảo tàng",
		SearchKeywords:    []string{"bảo tàng", "museum"},
		ExclusionKeywords: []string{"văn phòng", "office"},
		PriceTier:         "₫",
	},
}

// KnownCategories returns all configured category IDs
func KnownCategories() []CategoryID {
	ids := make([]CategoryID, 0, len(categoryTable))
	for id := range categoryTable {
		ids = append(ids, id)
	}
	return ids
}

// ConfigFor returns the configuration of a category and whether it exists
func ConfigFor(id CategoryID) (CategoryConfig, bool) {
	cfg, ok := categoryTable[id]
	return cfg, ok
}

// IsKnownCategory reports whether a category ID is configured
func IsKnownCategory(id CategoryID) bool {
	_, ok := categoryTable[id]
	return ok
}
