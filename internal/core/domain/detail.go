package domain

import "strconv"

// DetailFields are the raw place-detail values; nil means the API omitted it.
type DetailFields struct {
	Name             *string  `json:"name,omitempty"`
	FormattedAddress *string  `json:"formatted_address,omitempty"`
	Phone            *string  `json:"formatted_phone_number,omitempty"`
	Website          *string  `json:"website,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal *int     `json:"user_ratings_total,omitempty"`
}

// DetailFieldMask is the field set requested from the details API.
const DetailFieldMask = "name,formatted_address,formatted_phone_number,website,rating,user_ratings_total"

// ToDetail normalizes the fields into a row. Absent, empty, and zero values
// all become NotAvailable; a nil receiver gives an all-NotAvailable row.
func (f *DetailFields) ToDetail() PlaceDetail {
	if f == nil {
		return UnavailableDetail()
	}
	return PlaceDetail{
		Name:         textOrNA(f.Name),
		Address:      textOrNA(f.FormattedAddress),
		Phone:        textOrNA(f.Phone),
		Website:      textOrNA(f.Website),
		Rating:       floatOrNA(f.Rating),
		TotalRatings: intOrNA(f.UserRatingsTotal),
	}
}

func textOrNA(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

func floatOrNA(v *float64) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func intOrNA(v *int) string {
	if v == nil || *v == 0 {
		return NotAvailable
	}
	return strconv.Itoa(*v)
}
