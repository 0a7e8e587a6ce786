package models

import (
	"go-tripplanner/pkg/data"
	"strings"
	"unicode"
)

// TripRequest holds the preferences collected from the traveler. Values are
// copied into every task, nothing mutates a request after it is built.
type TripRequest struct {
	TravelType           string   `json:"travel_type" yaml:"travel_type"`
	Origin               string   `json:"origin" yaml:"origin"`
	OriginZip            string   `json:"origin_zip,omitempty" yaml:"origin_zip"`
	Destination          string   `json:"destination" yaml:"destination"`
	Interests            []string `json:"interests" yaml:"interests"`
	Season               string   `json:"season" yaml:"season"`
	Duration             int      `json:"duration" yaml:"duration"`
	Budget               string   `json:"budget" yaml:"budget"`
	GroupSize            int      `json:"group_size,omitempty" yaml:"group_size"`
	GroupType            string   `json:"group_type,omitempty" yaml:"group_type"`
	TransportPreferences []string `json:"transport_preferences,omitempty" yaml:"transport_preferences"`

	// only read by the live lookups of the enhanced tasks
	DepartureDate      string `json:"departure_date,omitempty" yaml:"departure_date"`
	OriginAirport      string `json:"origin_airport,omitempty" yaml:"origin_airport"`
	DestinationAirport string `json:"destination_airport,omitempty" yaml:"destination_airport"`
}

type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Normalized returns a copy with the icon prefix of every label removed.
func (r TripRequest) Normalized() TripRequest {
	out := r
	out.TravelType = data.NormalizeLabel(r.TravelType)
	out.Destination = data.NormalizeLabel(r.Destination)
	out.Season = data.NormalizeLabel(r.Season)
	out.GroupType = data.NormalizeLabel(r.GroupType)
	out.Origin = strings.TrimSpace(r.Origin)
	out.Interests = data.NormalizeLabels(r.Interests)
	out.TransportPreferences = data.NormalizeLabels(r.TransportPreferences)
	return out
}

func (r TripRequest) Validate() Validation {
	v := Validation{Errors: make([]string, 0), Warnings: make([]string, 0)}

	if strings.TrimSpace(r.Destination) == "" {
		v.Errors = append(v.Errors, "Destination is required")
	}
	if r.Duration < 1 {
		v.Errors = append(v.Errors, "Trip duration must be at least 1 day")
	}
	budget := strings.TrimSpace(r.Budget)
	if budget == "" {
		v.Errors = append(v.Errors, "Budget is required")
	} else if strings.IndexFunc(budget, unicode.IsDigit) < 0 {
		v.Errors = append(v.Errors, "Budget must contain numeric values")
	}

	if len(r.Interests) == 0 {
		v.Warnings = append(v.Warnings, "No interests specified - using general recommendations")
	}
	if strings.TrimSpace(r.Origin) == "" {
		v.Warnings = append(v.Warnings, "Origin location not specified - limited transportation planning")
	}

	v.Valid = len(v.Errors) == 0
	return v
}

// GroupSizeOr returns the group size, or def when none was given.
func (r TripRequest) GroupSizeOr(def int) int {
	if r.GroupSize < 1 {
		return def
	}
	return r.GroupSize
}

// International reports whether origin and destination differ.
func (r TripRequest) International() bool {
	return !strings.EqualFold(strings.TrimSpace(r.Origin), strings.TrimSpace(r.Destination))
}
