package poster

import "strings"

// Placeholders substituted for empty fields.
const (
	PlaceholderName     = "YOUR EVENT NAME"
	PlaceholderDate     = "DATE TBA"
	PlaceholderTime     = "TIME TBA"
	PlaceholderLocation = "LOCATION TBA"
)

// EventFields are the user supplied texts printed on a poster.
type EventFields struct {
	Name     string `json:"event_name" form:"event_name"`
	Date     string `json:"event_date" form:"event_date"`
	Time     string `json:"event_time" form:"event_time"`
	Location string `json:"event_location" form:"event_location"`
	Details  string `json:"event_details" form:"event_details"`
}

// WithDefaults returns a copy with placeholders for empty fields.
// Details has no placeholder: an empty value means the block is left out.
func (f EventFields) WithDefaults() EventFields {
	return EventFields{
		Name:     orDefault(f.Name, PlaceholderName),
		Date:     orDefault(f.Date, PlaceholderDate),
		Time:     orDefault(f.Time, PlaceholderTime),
		Location: orDefault(f.Location, PlaceholderLocation),
		Details:  strings.TrimSpace(f.Details),
	}
}

// HasDetails reports whether the details block should be drawn.
func (f EventFields) HasDetails() bool {
	return strings.TrimSpace(f.Details) != ""
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
