package shelflife

import (
	"math"
	"strings"
)

type conditionDays struct {
	Opened int
	Closed int
}

type Product struct {
	Name         string
	Category     string
	Room         conditionDays
	Refrigerated conditionDays
	Frozen       conditionDays
}

// openedMultiplier is the smallest opened/closed ratio across the three
// storage conditions, clamped to [0.01, 1] and rounded to 3 decimals.
// Conditions with a zero closed duration are excluded. The cross-condition
// minimum is kept compatible with the historical table semantics, even
// where one condition's ratio drives another condition's multiplier. The
// upper clamp keeps an inconsistent table row (opened > closed) from ever
// producing an opened duration above the closed one.
func (p Product) openedMultiplier() float64 {
	ratios := make([]float64, 0, 3)
	for _, cd := range []conditionDays{p.Room, p.Refrigerated, p.Frozen} {
		if cd.Closed == 0 {
			continue
		}
		r := float64(cd.Opened) / float64(cd.Closed)
		if r > 0 && !math.IsInf(r, 0) {
			ratios = append(ratios, r)
		}
	}
	if len(ratios) == 0 {
		return 0.5
	}
	min := ratios[0]
	for _, r := range ratios[1:] {
		if r < min {
			min = r
		}
	}
	if min < 0.01 {
		min = 0.01
	}
	if min > 1 {
		min = 1
	}
	return math.Round(min*1000) / 1000
}

func (p Product) closedDays(condition string) int {
	switch condition {
	case StorageRefrigerated:
		return p.Refrigerated.Closed
	case StorageFrozen:
		return p.Frozen.Closed
	default:
		return p.Room.Closed
	}
}

func makeProduct(name, category string, roomOpened, roomClosed, fridgeOpened, fridgeClosed, frozenOpened, frozenClosed int) Product {
	return Product{
		Name:         name,
		Category:     category,
		Room:         conditionDays{Opened: roomOpened, Closed: roomClosed},
		Refrigerated: conditionDays{Opened: fridgeOpened, Closed: fridgeClosed},
		Frozen:       conditionDays{Opened: frozenOpened, Closed: frozenClosed},
	}
}

var productTable = []Product{
	// Food items
	makeProduct("Milk (packet)", "dairy_products", 1, 2, 3, 7, 30, 90),
	makeProduct("Bread", "baked_goods", 2, 5, 5, 10, 30, 60),
	makeProduct("Rice (uncooked)", "staples", 90, 365, 180, 540, 365, 720),
	makeProduct("Wheat Flour", "staples", 30, 180, 90, 270, 180, 540),
	makeProduct("Biscuits", "snacks", 7, 180, 15, 240, 60, 365),
	makeProduct("Curd (dahi)", "dairy_products", 1, 3, 5, 14, 30, 90),
	makeProduct("Paneer", "dairy_products", 1, 2, 5, 10, 30, 90),
	makeProduct("Soft Drinks", "beverages", 2, 180, 5, 240, 30, 365),
	makeProduct("Pickles", "condiments", 180, 720, 365, 1080, 720, 1440),
	makeProduct("Potato Chips", "snacks", 5, 180, 10, 240, 60, 365),

	// Medicines
	makeProduct("Paracetamol Tabs", "medicines", 30, 730, 60, 1095, 90, 1460),
	makeProduct("Ibuprofen Tabs", "medicines", 30, 730, 60, 1095, 90, 1460),
	makeProduct("Amoxicillin Caps", "medicines", 20, 730, 30, 1095, 60, 1460),
	makeProduct("ORS Sachet", "medicines", 1, 730, 2, 1095, 30, 1460),
	makeProduct("Cough Syrup", "medicines", 30, 365, 60, 540, 90, 720),
	makeProduct("Eye Drops (multi)", "medicines", 30, 730, 60, 1095, 90, 1460),
	makeProduct("Insulin Vial", "medicines", 30, 365, 60, 540, 90, 720),
	makeProduct("Vitamin C Tabs", "supplements", 60, 1095, 90, 1460, 180, 1825),
	makeProduct("Antacid Syrup", "medicines", 30, 365, 60, 540, 90, 720),
	makeProduct("Antibiotic Syrup", "medicines", 10, 365, 20, 540, 60, 720),
}

// FindProduct does a case-insensitive substring match of the query against
// the table entry names. An empty query matches nothing.
func FindProduct(productName string) (Product, bool) {
	query := strings.ToLower(strings.TrimSpace(productName))
	if query == "" {
		return Product{}, false
	}
	for _, p := range productTable {
		if strings.Contains(strings.ToLower(p.Name), query) {
			return p, true
		}
	}
	return Product{}, false
}
