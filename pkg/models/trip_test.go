package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripRequest_Validate(t *testing.T) {
	req := TripRequest{
		TravelType:  "Adventure & Outdoor",
		Origin:      "New York, USA",
		Destination: "Nepal",
		Interests:   []string{"Hiking"},
		Season:      "Spring",
		Duration:    7,
		Budget:      "$2000",
	}

	v := req.Validate()
	assert.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)

	bad := TripRequest{Budget: "lots"}
	v = bad.Validate()
	assert.False(t, v.Valid)
	assert.Equal(t, []string{
		"Destination is required",
		"Trip duration must be at least 1 day",
		"Budget must contain numeric values",
	}, v.Errors)
	assert.Len(t, v.Warnings, 2)

	noBudget := req
	noBudget.Budget = " "
	assert.Contains(t, noBudget.Validate().Errors, "Budget is required")
}

func TestTripRequest_Normalized(t *testing.T) {
	req := TripRequest{
		TravelType:           "🏔️ Adventure & Outdoor",
		Destination:          "🇳🇵 Nepal",
		Season:               "🌸 Spring",
		GroupType:            "👫 Couple",
		Origin:               " Boston ",
		Interests:            []string{"🥾 Hiking / Trekking / Outdoor Adventure", "Yoga"},
		TransportPreferences: []string{"🚂 Train travel"},
	}

	n := req.Normalized()
	assert.Equal(t, "Adventure & Outdoor", n.TravelType)
	assert.Equal(t, "Nepal", n.Destination)
	assert.Equal(t, "Spring", n.Season)
	assert.Equal(t, "Couple", n.GroupType)
	assert.Equal(t, "Boston", n.Origin)
	assert.Equal(t, []string{"Hiking / Trekking / Outdoor Adventure", "Yoga"}, n.Interests)
	assert.Equal(t, []string{"Train travel"}, n.TransportPreferences)

	// the original is untouched
	assert.Equal(t, "🇳🇵 Nepal", req.Destination)
	assert.Equal(t, "🥾 Hiking / Trekking / Outdoor Adventure", req.Interests[0])
}

func TestTripRequest_International(t *testing.T) {
	assert.True(t, TripRequest{Origin: "USA", Destination: "Japan"}.International())
	assert.False(t, TripRequest{Origin: "japan ", Destination: "Japan"}.International())
	assert.True(t, TripRequest{Destination: "Japan"}.International())
}

func TestTripRequest_GroupSizeOr(t *testing.T) {
	assert.Equal(t, 2, TripRequest{}.GroupSizeOr(2))
	assert.Equal(t, 4, TripRequest{GroupSize: 4}.GroupSizeOr(2))
}
