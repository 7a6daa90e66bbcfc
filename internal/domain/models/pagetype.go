package models

type PageType string

const (
	PageRoutine    PageType = "routine"
	PageRealEstate PageType = "real-estate"
	PageInvest     PageType = "invest"
)

// IsValidPageType returns true if pt is one of the three article pages.
func IsValidPageType(pt PageType) bool {
	switch pt {
	case PageRoutine, PageRealEstate, PageInvest:
		return true
	default:
		return false
	}
}
