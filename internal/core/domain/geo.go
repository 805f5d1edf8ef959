package domain

// GeoLocation represents a geographic coordinate (WGS 84).
type GeoLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PageShiftDegrees is how far the search origin moves per page on both axes.
const PageShiftDegrees = 0.05

// Shift returns the search origin for a page. Each page looks at a different
// geographic window instead of paging through one result set; page 1 is the
// base location itself.
func (g GeoLocation) Shift(page int) GeoLocation {
	return g.ShiftBy(page, PageShiftDegrees)
}

// ShiftBy is Shift with an explicit per-page step.
func (g GeoLocation) ShiftBy(page int, step float64) GeoLocation {
	if page <= 1 {
		return g
	}
	offset := float64(page-1) * step
	return GeoLocation{Lat: g.Lat + offset, Lng: g.Lng + offset}
}
