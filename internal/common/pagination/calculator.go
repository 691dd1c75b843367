package pagination

import "math"

// CalculateOffset calculates the database OFFSET value based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Formula: offset = (page - 1) * limit
//
// Examples:
//   - Page 1, Limit 10 -> Offset 0
//   - Page 2, Limit 10 -> Offset 10
//   - Page 3, Limit 25 -> Offset 50
//
// The result saturates at math.MaxInt instead of overflowing.
func CalculateOffset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page > MaxPage(limit) {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// Uses ceiling division to ensure all items are included.
//
// Special cases:
//   - If total is 0, returns 0 (an empty collection has no pages)
//   - If limit is not positive, returns 0
//   - Otherwise, returns ceil(total / limit)
//
// Examples:
//   - Total 0, Limit 10 -> 0 pages
//   - Total 10, Limit 10 -> 1 page
//   - Total 25, Limit 10 -> 3 pages
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	// Ceiling division: (total + limit - 1) / limit
	return int((total + int64(limit) - 1) / int64(limit))
}
