package data

import "strings"

// Labels offered by the interactive form. They carry their icon and are
// normalized before they reach a prompt.
var (
	TravelTypes = []string{
		"🏔️ Adventure & Outdoor",
		"🏛️ Cultural & Heritage",
		"💎 Luxury & Comfort",
		"🎒 Budget & Backpacking",
		"👨‍👩‍👧‍👦 Family & Kid-Friendly",
		"💼 Business & Work",
		"🧘 Wellness & Relaxation",
		"🍽️ Culinary & Foodie",
		"🎉 Festival & Events",
		"📚 Educational & Learning",
	}

	TransportPreferences = []string{
		"✈️ Flight + Local transport",
		"🚗 Road trip (Car/Motorcycle)",
		"🚂 Train travel",
		"🚌 Bus/Coach travel",
		"🚴 Cycling/Bike touring",
		"🚶 Walking & Hiking focused",
		"🚢 Ferry/Boat travel",
		"🚇 Public transport focused",
	}

	GroupTypes = []string{
		"👫 Couple",
		"👤 Solo",
		"👨‍👩‍👧‍👦 Family",
		"👥 Friends",
		"💼 Business group",
	}

	Destinations = []string{
		"🇳🇵 Nepal", "🇮🇳 India", "🇨🇭 Switzerland", "🇩🇪 Germany",
		"🇫🇷 France", "🇮🇹 Italy", "🇦🇪 Dubai", "🇹🇭 Thailand",
		"🇯🇵 Japan", "🇦🇺 Australia", "🇺🇸 USA", "🇨🇦 Canada",
		"🇧🇷 Brazil", "🇿🇦 South Africa", "🇳🇿 New Zealand", "🇮🇸 Iceland",
		"🇬🇷 Greece", "🇪🇸 Spain", "🇬🇧 United Kingdom", "🇰🇷 South Korea",
		"🇻🇳 Vietnam", "🇲🇾 Malaysia", "🇸🇬 Singapore", "🇪🇬 Egypt",
	}

	Interests = []string{
		"🏛️ Museums & Art Galleries",
		"🍜 Food & Culinary Experiences",
		"🥾 Hiking / Trekking / Outdoor Adventure",
		"🏖️ Beaches & Water Sports",
		"🦁 Wildlife / Safari",
		"🌃 Nightlife / Clubs / Bars",
		"🏰 Historical Sites & Architecture",
		"🛍️ Shopping / Markets",
		"🎵 Music / Concerts / Festivals",
		"⚡ Sports / Adventure Activities",
		"💆 Relaxation / Wellness",
		"📸 Photography / Scenic Locations",
		"🤝 Cultural Immersion / Local Experiences",
		"🎨 Arts & Crafts Workshops",
		"📚 Educational Tours / Learning",
	}

	Seasons = []string{"🌸 Spring", "☀️ Summer", "🍂 Autumn", "❄️ Winter"}
)

// currencies maps the offered destinations to their ISO currency code.
var currencies = map[string]string{
	"nepal":          "NPR",
	"india":          "INR",
	"switzerland":    "CHF",
	"germany":        "EUR",
	"france":         "EUR",
	"italy":          "EUR",
	"dubai":          "AED",
	"thailand":       "THB",
	"japan":          "JPY",
	"australia":      "AUD",
	"usa":            "USD",
	"canada":         "CAD",
	"brazil":         "BRL",
	"south africa":   "ZAR",
	"new zealand":    "NZD",
	"iceland":        "ISK",
	"greece":         "EUR",
	"spain":          "EUR",
	"united kingdom": "GBP",
	"south korea":    "KRW",
	"vietnam":        "VND",
	"malaysia":       "MYR",
	"singapore":      "SGD",
	"egypt":          "EGP",
}

// CurrencyFor returns the currency code of a destination, if it is known.
func CurrencyFor(destination string) (string, bool) {
	code, ok := currencies[strings.ToLower(NormalizeLabel(destination))]
	return code, ok
}
