package results

import (
	"fmt"
	"go-tripplanner/internal/plan"
	"strings"
)

// Section is a named part of the rendered travel plan.
type Section int

const (
	Destinations Section = iota
	CityResearch
	Itinerary
	Budget
	Accommodation
	Transportation
	Currency
	Visa
	Safety
	Packing
	Flights
	Hotels
	LocalTransport
	Story
	MysteryDestination
	Weather
	Culture

	sectionCount
)

type sectionInfo struct {
	key         string
	title       string
	keyword     string
	index       int // position in the basic layout, -1 when the section has none
	placeholder string
}

var sectionTable = [sectionCount]sectionInfo{
	Destinations:       {"destinations", "Recommended Destinations", "selection", 0, "Destination recommendations will appear here."},
	CityResearch:       {"city_research", "Detailed City Research", "research", 1, "City research information will appear here."},
	Itinerary:          {"itinerary", "Day-by-Day Itinerary", "itinerary", 2, "Detailed itinerary will appear here."},
	Budget:             {"budget_breakdown", "Budget Breakdown", "budget", 3, "Budget analysis will appear here."},
	Accommodation:      {"accommodation", "Accommodation Options", "accommodation", 4, "Accommodation recommendations will appear here."},
	Transportation:     {"transportation", "Transportation Guide", "transportation", 5, "Transportation options will appear here."},
	Currency:           {"currency_info", "Budget & Currency", "currency", -1, "Currency guidance will appear here."},
	Visa:               {"visa_requirements", "Documents & Visa", "visa", -1, "Visa and document requirements will appear here."},
	Safety:             {"safety_guide", "Safety & Emergency", "safety", -1, "Safety guidance will appear here."},
	Packing:            {"packing_list", "Packing List", "packing", -1, "Packing list will appear here."},
	Flights:            {"flight_options", "Flight Options", "flight", -1, "Flight options will appear here."},
	Hotels:             {"hotel_options", "Hotel Deals", "hotel", -1, "Hotel comparisons will appear here."},
	LocalTransport:     {"local_transport", "Getting Around", "local_transport", -1, "Local transport tips will appear here."},
	Story:              {"travel_story", "Your Travel Story", "story", -1, "Your travel story will appear here."},
	MysteryDestination: {"mystery_destination", "Mystery Destination", "serendipity", -1, "Your mystery destination will appear here."},
	Weather:            {"weather_guide", "Weather Outlook", "weather", -1, "Weather analysis will appear here."},
	Culture:            {"cultural_guide", "Cultural Immersion", "cultural", -1, "Cultural guidance will appear here."},
}

func (s Section) Valid() bool {
	return s >= 0 && s < sectionCount
}

func (s Section) Key() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionTable[s].key
}

func (s Section) String() string {
	return s.Key()
}

func (s Section) Title() string {
	return sectionTable[s].title
}

// Keyword is matched against task names to find the output for the section.
func (s Section) Keyword() string {
	return sectionTable[s].keyword
}

// Index is the section's position in the basic layout, or -1.
func (s Section) Index() int {
	return sectionTable[s].index
}

func (s Section) Placeholder() string {
	return sectionTable[s].placeholder
}

func AllSections() []Section {
	res := make([]Section, 0, sectionCount)
	for s := Section(0); s < sectionCount; s++ {
		res = append(res, s)
	}
	return res
}

// ParseSection resolves a section key such as "budget_breakdown".
func ParseSection(key string) (Section, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for s := Section(0); s < sectionCount; s++ {
		if sectionTable[s].key == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown section %q", key)
}

// SectionsFor lists the sections shown for a run in the given mode.
func SectionsFor(mode plan.Mode) []Section {
	switch mode {
	case plan.Basic:
		return []Section{Destinations, CityResearch, Itinerary, Budget, Accommodation, Transportation}
	case plan.Mystery:
		return []Section{MysteryDestination, Story}
	case plan.Full, plan.Custom:
		return []Section{
			Destinations, CityResearch, Currency, Visa, Itinerary, Accommodation, Transportation,
			Budget, Safety, Flights, Hotels, LocalTransport, Story,
		}
	default:
		return AllSections()
	}
}
