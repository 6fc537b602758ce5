package shelflife

import (
	"math"
	"strings"
)

const (
	StorageRoom         = "room"
	StorageRefrigerated = "refrigerated"
	StorageFrozen       = "frozen"
)

const (
	defaultCategoryDays      = 30
	categoryOpenedMultiplier = 0.6
)

// categoryTable is the fallback used when a product name has no table match.
var categoryTable = map[string]map[string]int{
	"dairy_products":    {StorageRoom: 1, StorageRefrigerated: 7, StorageFrozen: 90},
	"fresh_fruits":      {StorageRoom: 3, StorageRefrigerated: 7, StorageFrozen: 365},
	"fresh_vegetables":  {StorageRoom: 3, StorageRefrigerated: 10, StorageFrozen: 365},
	"meat_poultry":      {StorageRoom: 0, StorageRefrigerated: 3, StorageFrozen: 90},
	"seafood":           {StorageRoom: 0, StorageRefrigerated: 2, StorageFrozen: 60},
	"baked_goods":       {StorageRoom: 3, StorageRefrigerated: 7, StorageFrozen: 30},
	"canned_goods":      {StorageRoom: 730, StorageRefrigerated: 730, StorageFrozen: 730},
	"frozen_foods":      {StorageRoom: 0, StorageRefrigerated: 1, StorageFrozen: 90},
	"medicines":         {StorageRoom: 1095, StorageRefrigerated: 1095, StorageFrozen: 1095},
	"supplements":       {StorageRoom: 730, StorageRefrigerated: 730, StorageFrozen: 730},
	"beverages":         {StorageRoom: 30, StorageRefrigerated: 60, StorageFrozen: 365},
	"condiments_sauces": {StorageRoom: 365, StorageRefrigerated: 365, StorageFrozen: 365},
}

func IsValidStorageCondition(condition string) bool {
	switch condition {
	case StorageRoom, StorageRefrigerated, StorageFrozen:
		return true
	}
	return false
}

// Estimate returns the shelf life in whole days for the given product under
// the given storage condition. A product-table match wins; otherwise the
// category fallback applies, defaulting to 30 days for unknown categories.
// Never fails: unknown inputs default, and the result is always >= 0.
func Estimate(productName, category, condition string, opened bool) int {
	if product, ok := FindProduct(productName); ok {
		base := product.closedDays(condition)
		if opened {
			return int(math.Floor(float64(base) * product.openedMultiplier()))
		}
		return base
	}

	categoryKey := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "_")
	base := defaultCategoryDays
	if durations, ok := categoryTable[categoryKey]; ok {
		if d, ok := durations[condition]; ok {
			base = d
		}
	}
	if opened {
		return int(math.Floor(float64(base) * categoryOpenedMultiplier))
	}
	return base
}
