package roles

import (
	"fmt"
)

// Role is one of the fixed personas a crew can staff.
type Role int

const (
	LocationSearchExpert Role = iota
	LocalExpert
	ItinerarySpecialist
	BudgetSpecialist
	AccommodationSpecialist
	TransportationCoordinator
	CurrencySpecialist
	VisaOfficer
	FlightHunter
	HotelExpert
	TransportOptimizer
	SafetyAdvisor
	SerendipityGenerator
	StoryWeaver

	roleCount
)

type persona struct {
	key       string
	name      string
	goal      string
	backstory string
}

var personas = [roleCount]persona{
	LocationSearchExpert: {
		key:  "country_selector",
		name: "Location Search Expert",
		goal: "Identify the best cities to visit based on the user's preferences and country of interest.",
		backstory: "You are an expert travel geographer with in-depth knowledge of cities worldwide. " +
			"You provide recommendations tailored to each user, considering culture, history, adventure, gastronomy, " +
			"trekking, and entertainment options.",
	},
	LocalExpert: {
		key:  "local_expert",
		name: "Local Destination Expert",
		goal: "Provide detailed insights about selected cities including top attractions, local customs, and hidden gems.",
		backstory: "A knowledgeable local guide with first-hand experience of the city's culture and attractions. " +
			"You know the best times to visit places, local etiquette, safety tips, and authentic experiences tourists often miss.",
	},
	ItinerarySpecialist: {
		key:  "travel_planner",
		name: "Travel Itinerary Specialist",
		goal: "Create detailed day-by-day travel itineraries that maximize experiences within time constraints.",
		backstory: "You are a professional travel planner who understands optimal timing, transportation logistics, " +
			"travel fatigue, opening hours, seasonal variations, and local events.",
	},
	BudgetSpecialist: {
		key:  "budget_manager",
		name: "Travel Budget Specialist",
		goal: "Optimize travel plans to stay within budget while maximizing experience quality.",
		backstory: "A financial planner specializing in travel budgets and cost optimization. You find the best deals, " +
			"suggest cost-effective alternatives and allocate money across accommodation, food, activities, and transportation.",
	},
	AccommodationSpecialist: {
		key:  "accommodation",
		name: "Accommodation Specialist",
		goal: "Find the best lodging options based on budget, location, and traveler preferences.",
		backstory: "You know the best hotels, hostels, rentals and unique stays worldwide and weigh location convenience, " +
			"safety, amenities, and value for money.",
	},
	TransportationCoordinator: {
		key:  "transportation",
		name: "Transportation Coordinator",
		goal: "Plan optimal transportation routes and methods for the entire trip.",
		backstory: "You specialize in transportation logistics, public transport systems, ride-sharing options and car rentals, " +
			"and optimize routes to save time and money.",
	},
	CurrencySpecialist: {
		key:  "currency_conversion",
		name: "International Finance Advisor",
		goal: "Provide real-time currency conversion, exchange rate insights, and international money management strategies.",
		backstory: "You monitor global exchange rates, know the best exchange methods for different countries and give practical " +
			"advice on payment methods, ATM strategies, and avoiding currency exchange fees.",
	},
	VisaOfficer: {
		key:  "visa_documentation",
		name: "Visa & Documentation Officer",
		goal: "Provide comprehensive visa requirements and documentation guidance for international travel.",
		backstory: "You act like an experienced visa officer who stays updated on visa policies, embassy locations and " +
			"application processes.",
	},
	FlightHunter: {
		key:  "flight_finder",
		name: "Flight Deal Hunter",
		goal: "Find the best flight options considering price, convenience, and traveler preferences.",
		backstory: "You are an airline deal hunter with deep knowledge of booking strategies, seasonal price variations, " +
			"airline routes, and booking platforms.",
	},
	HotelExpert: {
		key:  "hotel_finder",
		name: "Hotel Booking Expert",
		goal: "Recommend the best hotel options with detailed information including ratings.",
		backstory: "You understand hotel categories, amenities and location advantages and match hotels to specific " +
			"traveler needs and budgets, citing guest reviews.",
	},
	TransportOptimizer: {
		key:  "local_transport",
		name: "Local Transportation Optimizer",
		goal: "Optimize local transportation with live directions and real-time information.",
		backstory: "You know the ins and outs of urban mobility, traffic patterns and public transport and route travelers " +
			"efficiently and cost-effectively.",
	},
	SafetyAdvisor: {
		key:       "safety_advisor",
		name:      "Travel Safety Advisor",
		goal:      "Provide comprehensive safety guidelines, emergency contacts, and local safety information.",
		backstory: "You know global safety conditions, common travel scams, emergency procedures, and local safety protocols.",
	},
	SerendipityGenerator: {
		key:  "mystery_mode",
		name: "Serendipity Travel Generator",
		goal: "Generate random destination selections from top global destinations with compelling reasons why each choice could be perfect.",
		backstory: "You are the master of travel serendipity with intimate knowledge of the world's 20 most incredible " +
			"destinations, and you make any random selection feel like destiny.",
	},
	StoryWeaver: {
		key:  "story_narrator",
		name: "Travel Story Weaver",
		goal: "Transform travel plans into engaging narrative stories that make the journey feel like an epic adventure.",
		backstory: "You are a creative storyteller who weaves destination highlights, cultural elements and historical context " +
			"into travel stories with memorable scenes.",
	},
}

func (r Role) Valid() bool {
	return r >= 0 && r < roleCount
}

// Key is the stable identifier used in logs and JSON.
func (r Role) Key() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return personas[r].key
}

func (r Role) Name() string {
	if !r.Valid() {
		return r.Key()
	}
	return personas[r].name
}

func (r Role) String() string {
	return r.Key()
}

// All returns every role in declaration order.
func All() []Role {
	res := make([]Role, 0, roleCount)
	for r := Role(0); r < roleCount; r++ {
		res = append(res, r)
	}
	return res
}

func ParseRole(key string) (Role, error) {
	for r := Role(0); r < roleCount; r++ {
		if personas[r].key == key {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown agent role %q", key)
}

// LLMConfig binds an agent to a language model.
type LLMConfig struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

type Agent struct {
	Role      Role      `json:"-"`
	Key       string    `json:"role"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	Backstory string    `json:"backstory"`
	LLM       LLMConfig `json:"llm"`
}

func New(r Role, llm LLMConfig) Agent {
	p := personas[r]
	return Agent{
		Role:      r,
		Key:       p.key,
		Name:      p.name,
		Goal:      p.goal,
		Backstory: p.backstory,
		LLM:       llm,
	}
}

// Roster holds one agent per role for a planning session.
type Roster struct {
	agents [roleCount]Agent
}

func NewRoster(llm LLMConfig) *Roster {
	ro := &Roster{}
	for r := Role(0); r < roleCount; r++ {
		ro.agents[r] = New(r, llm)
	}
	return ro
}

func (ro *Roster) Get(r Role) Agent {
	return ro.agents[r]
}

func (ro *Roster) Len() int {
	return len(ro.agents)
}
