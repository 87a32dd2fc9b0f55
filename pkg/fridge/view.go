package fridge

import (
	"fmt"
	"sort"
	"time"

	"fridge-tracker-backend/entities"
)

// Categories is the closed set of food categories. It is not extensible by
// any user action; strings outside the set coerce to CategoryFallback.
var Categories = []string{
	"beverage",
	"bread",
	"cheese",
	"condiments",
	"cooking sauces",
	"dairy",
	"deli",
	"desserts",
	"eggs",
	"fruit",
	"herbs",
	"leftovers",
	"meat",
	"prepared meals",
	"seafood",
	"snacks",
	"vegetable",
	"miscellaneous",
}

const CategoryFallback = "miscellaneous"

// categoryTags maps each category to its display tag. Unknown or missing
// categories get the fallback tag.
var categoryTags = map[string]string{
	"beverage":       "cyan",
	"bread":          "amber",
	"cheese":         "yellow",
	"condiments":     "yellow-light",
	"cooking sauces": "orange",
	"dairy":          "blue-light",
	"deli":           "rose",
	"desserts":       "pink",
	"eggs":           "yellow-pale",
	"fruit":          "purple",
	"herbs":          "emerald",
	"leftovers":      "amber-dark",
	"meat":           "red",
	"prepared meals": "teal",
	"seafood":        "blue",
	"snacks":         "indigo",
	"vegetable":      "green",
	"miscellaneous":  "gray",
}

const defaultCategoryTag = "gray-dark"

func IsValidCategory(category string) bool {
	_, ok := categoryTags[category]
	return ok
}

// NormalizeCategory coerces an arbitrary category string (typically from
// the receipt extraction) into the closed set.
func NormalizeCategory(category string) string {
	if IsValidCategory(category) {
		return category
	}
	return CategoryFallback
}

// CategoryTag returns the display tag for a category pointer taken straight
// off an item record.
func CategoryTag(category *string) string {
	if category == nil {
		return defaultCategoryTag
	}
	if tag, ok := categoryTags[*category]; ok {
		return tag
	}
	return defaultCategoryTag
}

const (
	// LowStockThreshold is the quantity at or below which an item counts
	// as low stock.
	LowStockThreshold = 3
	// ExpiringWindowDays bounds both the expiring-soon filter and the
	// expiry classification.
	ExpiringWindowDays = 3
)

type ExpiryState string

const (
	ExpiryUnknown      ExpiryState = "unknown"
	ExpiryExpired      ExpiryState = "expired"
	ExpiryExpiringSoon ExpiryState = "expiring_soon"
	ExpiryFresh        ExpiryState = "fresh"
)

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortByQuantity SortKey = "quantity"
	SortByExpiry   SortKey = "expiry_date"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type SortState struct {
	Key       SortKey
	Direction SortDirection
}

// NextSort returns the sort state after the user picks a column: picking
// the current column toggles direction, picking a new one resets to
// ascending.
func NextSort(current SortState, picked SortKey) SortState {
	if current.Key == picked {
		if current.Direction == SortAsc {
			return SortState{Key: picked, Direction: SortDesc}
		}
		return SortState{Key: picked, Direction: SortAsc}
	}
	return SortState{Key: picked, Direction: SortAsc}
}

type FilterState struct {
	Category     string // empty means all categories
	ExpiringOnly bool
	LowStockOnly bool
}

// daysUntil returns whole calendar days from now's day to t's day,
// negative when t is in the past. Each time is read as a calendar date
// in its own location and rebuilt in UTC before differencing, so a
// UTC-midnight expiry date and a local-zone clock compare by day rather
// than by instant.
func daysUntil(t time.Time, now time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	target := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24)
}

func itemQuantity(item *entities.FridgeItem) int {
	if item.Quantity == nil {
		return 0
	}
	return *item.Quantity
}

func itemCategory(item *entities.FridgeItem) string {
	if item.Category == nil {
		return ""
	}
	return *item.Category
}

// IsExpiringSoon reports whether the item passes the expiring-soon filter:
// a known expiry date strictly before today + 3 days by calendar day, so
// today and the next two days qualify.
func IsExpiringSoon(item *entities.FridgeItem, now time.Time) bool {
	if item.ExpiryDate == nil {
		return false
	}
	return daysUntil(*item.ExpiryDate, now) < ExpiringWindowDays
}

// IsLowStock reports whether the item's quantity (missing treated as 0) is
// at or below the low-stock threshold.
func IsLowStock(item *entities.FridgeItem) bool {
	return itemQuantity(item) <= LowStockThreshold
}

// ApplyFilters returns the items passing every active filter. All active
// filters are ANDed, including expiring-soon and low-stock when both are
// on.
func ApplyFilters(items []*entities.FridgeItem, filter FilterState, now time.Time) []*entities.FridgeItem {
	filtered := make([]*entities.FridgeItem, 0, len(items))
	for _, item := range items {
		if filter.Category != "" && itemCategory(item) != filter.Category {
			continue
		}
		if filter.ExpiringOnly && !IsExpiringSoon(item, now) {
			continue
		}
		if filter.LowStockOnly && !IsLowStock(item) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// SortItems orders items by the given key and direction, preserving the
// original relative order of equal keys. Items without an expiry date sort
// after every dated item under the expiry key, in both directions.
func SortItems(items []*entities.FridgeItem, state SortState) []*entities.FridgeItem {
	sorted := make([]*entities.FridgeItem, len(items))
	copy(sorted, items)

	asc := state.Direction != SortDesc

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch state.Key {
		case SortByCategory:
			ca, cb := itemCategory(a), itemCategory(b)
			if ca == cb {
				return false
			}
			if asc {
				return ca < cb
			}
			return ca > cb
		case SortByQuantity:
			qa, qb := itemQuantity(a), itemQuantity(b)
			if qa == qb {
				return false
			}
			if asc {
				return qa < qb
			}
			return qa > qb
		case SortByExpiry:
			// No-date items stay last regardless of direction.
			if a.ExpiryDate == nil {
				return false
			}
			if b.ExpiryDate == nil {
				return true
			}
			if a.ExpiryDate.Equal(*b.ExpiryDate) {
				return false
			}
			if asc {
				return a.ExpiryDate.Before(*b.ExpiryDate)
			}
			return a.ExpiryDate.After(*b.ExpiryDate)
		default: // SortByName
			if a.Name == b.Name {
				return false
			}
			if asc {
				return a.Name < b.Name
			}
			return a.Name > b.Name
		}
	})

	return sorted
}

// ClassifyExpiry maps an expiry date to a display urgency state. The
// expiring-soon window here includes today + 3 days, one day wider than
// the filter window.
func ClassifyExpiry(expiryDate *time.Time, now time.Time) ExpiryState {
	if expiryDate == nil {
		return ExpiryUnknown
	}
	days := daysUntil(*expiryDate, now)
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= ExpiringWindowDays:
		return ExpiryExpiringSoon
	default:
		return ExpiryFresh
	}
}

// ExpiryLabel renders the human-readable expiry text, e.g. "2d ago (03/05)",
// "Today (05/05)" or "5d left (10/05)".
func ExpiryLabel(expiryDate *time.Time, now time.Time) string {
	if expiryDate == nil {
		return "No date"
	}
	days := daysUntil(*expiryDate, now)
	formatted := expiryDate.Format("02/01")
	switch {
	case days < 0:
		return fmt.Sprintf("%dd ago (%s)", -days, formatted)
	case days == 0:
		return fmt.Sprintf("Today (%s)", formatted)
	default:
		return fmt.Sprintf("%dd left (%s)", days, formatted)
	}
}
