package pagination

import (
	"math"
	"strings"
)

// WithDefaults applies default values from config to Params.
//
// Rules:
//   - If page <= 0, set to config.DefaultPage
//   - If limit <= 0, set to config.DefaultLimit
//   - If limit > config.MaxLimit, cap to config.MaxLimit
//   - If (page-1)*limit would overflow int, cap page to MaxPage(limit)
//   - If sortOrder is not "asc", set to "desc"
func (p Params) WithDefaults(config Config) Params {
	if p.Page <= 0 {
		p.Page = max(config.DefaultPage, 1)
	}
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	if p.Limit <= 0 {
		p.Limit = 1
	}
	if maxPage := MaxPage(p.Limit); p.Page > maxPage {
		p.Page = maxPage
	}
	if strings.ToLower(p.SortOrder) == SortAsc {
		p.SortOrder = SortAsc
	} else {
		p.SortOrder = SortDesc
	}
	return p
}

// MaxPage caps page numbers so that (page-1)*limit always fits in an int.
// Pages that far out are always past the last row, so capping them keeps
// the result empty instead of wrapping to a negative offset.
func MaxPage(limit int) int {
	if limit <= 0 {
		return math.MaxInt
	}
	return math.MaxInt / limit
}
