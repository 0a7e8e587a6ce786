package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"🏔️ Adventure & Outdoor", "Adventure & Outdoor"},
		{"🏔️ Adventure", "Adventure"},
		{"Adventure", "Adventure"},
		{"Adventure & Outdoor", "Adventure & Outdoor"},
		{"🇳🇵 Nepal", "Nepal"},
		{"👨‍👩‍👧‍👦 Family & Kid-Friendly", "Family & Kid-Friendly"},
		{"✈️ Flight + Local transport", "Flight + Local transport"},
		{"❄️ Winter", "Winter"},
		{"⚡ Sports / Adventure Activities", "Sports / Adventure Activities"},
		{"  🌸 Spring  ", "Spring"},
		{"Others", "Others"},
		{"New York, USA", "New York, USA"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.in))
		})
	}
}

func TestNormalizeLabel_Idempotent(t *testing.T) {
	all := append(append(append([]string{}, TravelTypes...), Destinations...), Interests...)
	all = append(all, TransportPreferences...)
	all = append(all, GroupTypes...)
	all = append(all, Seasons...)

	for _, label := range all {
		once := NormalizeLabel(label)
		assert.NotEqual(t, label, once, "icon was not stripped from %q", label)
		assert.Equal(t, once, NormalizeLabel(once), "second pass changed %q", once)
	}
}

func TestNormalizeLabel_RemovesOnlyOneToken(t *testing.T) {
	assert.Equal(t, "🎒 Budget", NormalizeLabel("🏔️ 🎒 Budget"))
}

func TestNormalizeLabels(t *testing.T) {
	assert.Nil(t, NormalizeLabels(nil))
	assert.Equal(t, []string{"Train travel", "Walking"}, NormalizeLabels([]string{"🚂 Train travel", " ", "Walking"}))
}

func TestCurrencyFor(t *testing.T) {
	code, ok := CurrencyFor("🇯🇵 Japan")
	assert.True(t, ok)
	assert.Equal(t, "JPY", code)

	code, ok = CurrencyFor("United Kingdom")
	assert.True(t, ok)
	assert.Equal(t, "GBP", code)

	_, ok = CurrencyFor("Atlantis")
	assert.False(t, ok)
}
