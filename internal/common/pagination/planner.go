package pagination

// Window is a normalized paging window ready to be turned into LIMIT/OFFSET.
type Window struct {
	Page      int
	Limit     int
	Skip      int
	SortBy    string // empty: order by creation time, newest first
	SortOrder string
}

// Plan normalizes raw params into a Window.
// It never fails: out-of-range values are clamped and missing ones defaulted.
func Plan(p Params, config Config) Window {
	p = p.WithDefaults(config)
	return Window{
		Page:      p.Page,
		Limit:     p.Limit,
		Skip:      CalculateOffset(p.Page, p.Limit),
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	}
}

// Descending reports whether the window orders newest/largest first.
func (w Window) Descending() bool {
	return w.SortOrder != SortAsc
}
