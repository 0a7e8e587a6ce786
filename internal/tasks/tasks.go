package tasks

import (
	"fmt"
	langChainPrompts "github.com/tmc/langchaingo/prompts"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/pkg/models"
	"go-tripplanner/pkg/prompts"
	"strconv"
	"strings"
)

// Kind identifies a unit of prompted work.
type Kind int

const (
	DestinationSelection Kind = iota
	SerendipityDestination
	DestinationResearch
	DetailedItinerary
	ComprehensiveBudget
	AccommodationRecommendations
	TransportationPlanning
	CurrencyManagement
	VisaRequirements
	FlightOptimization
	HotelOptimization
	LocalTransportMastery
	SafetySecurityPlanning
	TravelStoryCreation
	SmartPackingGuide
	WeatherAnalysis
	CulturalImmersion

	kindCount
)

// Lookup names the live data a task can be enriched with when the search
// services are available.
type Lookup int

const (
	LookupNone Lookup = iota
	LookupExchangeRate
	LookupVisaCenters
	LookupFlights
	LookupHotels
	LookupPlaces
)

type definition struct {
	name     string
	role     roles.Role
	prompt   langChainPrompts.PromptTemplate
	expected string
	context  []Kind
	lookup   Lookup
}

func template(text string) langChainPrompts.PromptTemplate {
	return langChainPrompts.NewPromptTemplate(text, prompts.TripVariables)
}

var definitions = [kindCount]definition{
	DestinationSelection: {
		name:     "destination_selection",
		role:     roles.LocationSearchExpert,
		prompt:   template(prompts.DestinationSelection),
		expected: "Detailed list of 3-5 destinations with explanations of why each fits user preferences, seasonal considerations, and highlight activities matching their interests.",
	},
	SerendipityDestination: {
		name:     "serendipity_destination",
		role:     roles.SerendipityGenerator,
		prompt:   template(prompts.SerendipityDestination),
		expected: "Single surprise destination with passionate explanation of why this random choice is the perfect adventure for the traveler.",
	},
	DestinationResearch: {
		name:     "destination_research",
		role:     roles.LocalExpert,
		prompt:   template(prompts.DestinationResearch),
		expected: "Comprehensive destination guide with organized sections, insider tips, and practical information for authentic local experiences.",
	},
	DetailedItinerary: {
		name:     "detailed_itinerary",
		role:     roles.ItinerarySpecialist,
		prompt:   template(prompts.DetailedItinerary),
		expected: "Day-by-day detailed itinerary with time slots, specific locations, estimated costs, and practical logistics for seamless travel experience.",
	},
	ComprehensiveBudget: {
		name:     "comprehensive_budget",
		role:     roles.BudgetSpecialist,
		prompt:   template(prompts.ComprehensiveBudget),
		expected: "Itemized budget with daily costs, category totals, cost-saving recommendations, and contingency planning.",
		context:  []Kind{DetailedItinerary, AccommodationRecommendations, TransportationPlanning},
	},
	AccommodationRecommendations: {
		name:     "accommodation_recommendations",
		role:     roles.AccommodationSpecialist,
		prompt:   template(prompts.AccommodationRecommendations),
		expected: "Detailed accommodation guide with diverse options, location analysis, amenity comparisons, and booking strategies for different budgets.",
	},
	TransportationPlanning: {
		name:     "transportation_planning",
		role:     roles.TransportationCoordinator,
		prompt:   template(prompts.TransportationPlanning),
		expected: "Comprehensive transportation guide with cost comparisons, efficiency analysis, and practical booking recommendations.",
	},
	CurrencyManagement: {
		name:     "currency_management",
		role:     roles.CurrencySpecialist,
		prompt:   template(prompts.CurrencyManagement),
		expected: "Complete currency guide with converted amounts, exchange strategies, payment method recommendations, and financial safety tips.",
		lookup:   LookupExchangeRate,
	},
	VisaRequirements: {
		name:     "visa_requirements",
		role:     roles.VisaOfficer,
		prompt:   template(prompts.VisaRequirements),
		expected: "Complete visa and documentation guide with requirements, application process, embassy information, and success tips.",
		lookup:   LookupVisaCenters,
	},
	FlightOptimization: {
		name:     "flight_optimization",
		role:     roles.FlightHunter,
		prompt:   template(prompts.FlightOptimization),
		expected: "Detailed flight recommendations with price comparisons, booking strategies, and travel optimization tips.",
		lookup:   LookupFlights,
	},
	HotelOptimization: {
		name:     "hotel_optimization",
		role:     roles.HotelExpert,
		prompt:   template(prompts.HotelOptimization),
		expected: "Comprehensive hotel guide with detailed comparisons, location analysis, and booking optimization strategies.",
		lookup:   LookupHotels,
	},
	LocalTransportMastery: {
		name:     "local_transport_mastery",
		role:     roles.TransportOptimizer,
		prompt:   template(prompts.LocalTransportMastery),
		expected: "Master guide for local transportation with optimal routes, cost analysis, and real-time navigation strategies.",
		lookup:   LookupPlaces,
	},
	SafetySecurityPlanning: {
		name:     "safety_security_planning",
		role:     roles.SafetyAdvisor,
		prompt:   template(prompts.SafetySecurityPlanning),
		expected: "Complete safety and security guide with emergency protocols, risk mitigation, and local safety intelligence.",
	},
	TravelStoryCreation: {
		name:     "travel_story_creation",
		role:     roles.StoryWeaver,
		prompt:   template(prompts.TravelStoryCreation),
		expected: "Engaging travel narrative that transforms the practical itinerary into an inspiring adventure story with emotional depth.",
		context:  []Kind{SerendipityDestination, DetailedItinerary},
	},
	SmartPackingGuide: {
		name:     "smart_packing_guide",
		role:     roles.AccommodationSpecialist,
		prompt:   template(prompts.SmartPackingGuide),
		expected: "Detailed packing checklist organized by category with climate considerations, activity requirements, and packing optimization tips.",
	},
	WeatherAnalysis: {
		name:     "weather_analysis",
		role:     roles.LocalExpert,
		prompt:   template(prompts.WeatherAnalysis),
		expected: "Comprehensive weather analysis with seasonal patterns, activity recommendations, and weather preparation strategies.",
	},
	CulturalImmersion: {
		name:     "cultural_immersion",
		role:     roles.LocalExpert,
		prompt:   template(prompts.CulturalImmersion),
		expected: "Rich cultural immersion guide with authentic experiences, local connections, and respectful cultural engagement strategies.",
	},
}

func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) Name() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return definitions[k].name
}

func (k Kind) String() string {
	return k.Name()
}

// Role is the persona that runs tasks of this kind.
func (k Kind) Role() roles.Role {
	return definitions[k].role
}

// Context lists the kinds whose output this kind reads.
func (k Kind) Context() []Kind {
	return append([]Kind(nil), definitions[k].context...)
}

func (k Kind) Lookup() Lookup {
	return definitions[k].lookup
}

func AllKinds() []Kind {
	res := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		res = append(res, k)
	}
	return res
}

// ParseKind accepts a task name, with or without its suffix
// (e.g. "packing" matches smart_packing_guide only when unambiguous).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("empty task kind")
	}
	match := Kind(-1)
	for k := Kind(0); k < kindCount; k++ {
		if definitions[k].name == name {
			return k, nil
		}
		if strings.Contains(definitions[k].name, name) {
			if match >= 0 {
				return 0, fmt.Errorf("ambiguous task kind %q", name)
			}
			match = k
		}
	}
	if match < 0 {
		return 0, fmt.Errorf("unknown task kind %q", name)
	}
	return match, nil
}

// Task binds an agent role to a rendered instruction.
type Task struct {
	Kind           Kind       `json:"-"`
	Name           string     `json:"name"`
	Role           roles.Role `json:"-"`
	Description    string     `json:"description"`
	ExpectedOutput string     `json:"expected_output"`
	Context        []Kind     `json:"-"`
	Lookup         Lookup     `json:"-"`
}

// Build renders the task of kind k for the request.
func Build(k Kind, req models.TripRequest) (Task, error) {
	if !k.Valid() {
		return Task{}, fmt.Errorf("build: unknown task kind %d", int(k))
	}
	def := definitions[k]
	description, err := def.prompt.Format(Values(req))
	if err != nil {
		return Task{}, fmt.Errorf("format %s: %w", def.name, err)
	}
	return Task{
		Kind:           k,
		Name:           def.name,
		Role:           def.role,
		Description:    strings.TrimSpace(description),
		ExpectedOutput: def.expected,
		Context:        k.Context(),
		Lookup:         def.lookup,
	}, nil
}

// Values flattens a request into template inputs, filling the defaults the
// prompts fall back on.
func Values(req models.TripRequest) map[string]any {
	return map[string]any{
		"TravelType":           orDefault(req.TravelType, "general"),
		"Origin":               orDefault(req.Origin, "Not specified"),
		"Destination":          req.Destination,
		"Interests":            list(req.Interests),
		"Season":               orDefault(req.Season, "any season"),
		"Duration":             strconv.Itoa(req.Duration),
		"Budget":               req.Budget,
		"GroupSize":            strconv.Itoa(req.GroupSizeOr(2)),
		"GroupType":            orDefault(req.GroupType, "Not specified"),
		"TransportPreferences": list(req.TransportPreferences),
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func list(items []string) string {
	if len(items) == 0 {
		return "none specified"
	}
	return strings.Join(items, ", ")
}
