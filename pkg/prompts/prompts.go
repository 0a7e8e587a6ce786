package prompts

// AgentTaskTemplate wraps a rendered task description for the agent running it.
// Context and LiveData are already formatted blocks and may be empty.
var AgentTaskTemplate = `
You are {{.Role}}. {{.Backstory}}
Your personal goal is: {{.Goal}}
{{if .Context}}
This is the context you are working with, produced by the other specialists on this trip:
{{.Context}}
{{end}}
Current task:
{{.Description}}
{{if .LiveData}}
Live data retrieved for this task, prefer it over prior knowledge:
{{.LiveData}}
{{end}}
This is the expected criteria for your final answer: {{.ExpectedOutput}}
You MUST return the actual complete content as the final answer, not a summary.
`

// AgentTaskVariables are the inputs AgentTaskTemplate expects.
var AgentTaskVariables = []string{"Role", "Backstory", "Goal", "Context", "Description", "LiveData", "ExpectedOutput"}

// TripVariables are the inputs every task template may reference.
var TripVariables = []string{
	"TravelType", "Origin", "Destination", "Interests", "Season", "Duration",
	"Budget", "GroupSize", "GroupType", "TransportPreferences",
}

var (
	DestinationSelection = `
Analyze user preferences and select best destinations:
Travel Type: {{.TravelType}}
Interests: {{.Interests}}
Season: {{.Season}}
Destination: {{.Destination}}
Duration: {{.Duration}} days
Budget: {{.Budget}}
Group: {{.GroupType}}
Consider cultural attractions, adventure opportunities, gastronomy, entertainment, and seasonal factors.
Output: Provide 3-5 city/location recommendations with detailed rationale.`

	SerendipityDestination = `
Generate random destination selection from world's top destinations:
- Select from 20 most incredible global destinations
- Provide compelling reasons why random choice is perfect
- Consider user's travel type: {{.TravelType}}
- Budget range: {{.Budget}}
- Duration: {{.Duration}} days
Make the random selection feel like destiny with persuasive rationale.`

	DestinationResearch = `
Provide comprehensive insights about {{.Destination}}:
Focus areas based on interests: {{.Interests}}
Season considerations: {{.Season}}
Cover:
- Top 15-20 attractions with timing recommendations
- Local cuisine and must-try dishes with restaurant suggestions
- Cultural norms, etiquette, and local customs
- Best neighborhoods for different budgets
- Transportation systems and navigation tips
- Safety considerations and common scams
- Hidden gems and authentic local experiences
- Shopping districts and local markets
- Seasonal events and festivals
- Photography spots and scenic locations
- Local language basics and useful phrases`

	DetailedItinerary = `
Create optimized {{.Duration}}-day itinerary for {{.Destination}}:
Interests focus: {{.Interests}}
Season: {{.Season}}
Budget level: {{.TravelType}}
Group type: {{.GroupType}}
Include:
- Hour-by-hour daily schedules with buffer time
- Logical activity sequencing by location and opening hours
- Transportation between locations with travel times
- Meal planning with restaurant recommendations and costs
- Rest periods and flexibility for spontaneous exploration
- Weather-dependent backup activities
- Photo opportunities and scenic viewpoints
- Cultural immersion opportunities
- Shopping time and local market visits
- Evening entertainment options`

	ComprehensiveBudget = `
Create detailed budget breakdown for {{.Destination}} trip:
Total budget: {{.Budget}}
Duration: {{.Duration}} days
Travel style: {{.TravelType}}
Origin: {{.Origin}}
Budget categories:
- International flights (round trip)
- Accommodation (per night breakdown)
- Local transportation (daily estimates)
- Activities and attraction fees
- Food and dining (breakfast, lunch, dinner)
- Shopping and souvenirs budget
- Travel insurance and visas
- Emergency fund (15% of total)
- Tips and miscellaneous expenses
Provide cost-saving strategies and budget optimization tips.`

	AccommodationRecommendations = `
Find optimal accommodation for {{.Destination}}:
Budget: {{.Budget}}
Duration: {{.Duration}} nights
Travel style: {{.TravelType}}
Group size: {{.GroupSize}}
Group type: {{.GroupType}}
Provide 4-6 options across different categories:
- Luxury hotels with premium amenities
- Mid-range hotels with good value
- Budget-friendly options (hostels, guesthouses)
- Unique stays (boutique, heritage properties)
- Alternative accommodations (Airbnb, apartments)
For each option include: location benefits, amenities, estimated costs, booking tips, and pros/cons.`

	TransportationPlanning = `
Plan complete transportation for {{.Destination}} trip:
Origin: {{.Origin}}
Duration: {{.Duration}} days
Budget: {{.Budget}}
Transport preferences: {{.TransportPreferences}}
Cover all transportation needs:
- International flight options and booking strategies
- Airport transfers and costs
- Local public transport systems and passes
- Taxi and ride-sharing options
- Car rental possibilities and driving tips
- Walking and cycling options
- Inter-city transportation if needed
- Transportation apps and digital passes
- Cost comparisons and time efficiency analysis`

	CurrencyManagement = `
Provide currency conversion and money management for {{.Destination}}:
Budget: {{.Budget}} USD
Origin: {{.Origin}}
Include:
- Real-time exchange rate conversion
- Historical rate trends and forecasts
- Best currency exchange methods and locations
- ATM strategies and fee avoidance
- Credit card recommendations for international use
- Mobile payment options and digital wallets
- Tipping customs and cash requirements
- Money safety and security tips
- Budget allocation in local currency`

	VisaRequirements = `
Research visa and documentation for travel to {{.Destination}}:
Traveler origin: {{.Origin}}
Trip duration: {{.Duration}} days
Travel purpose: Tourism
Provide comprehensive information:
- Current visa requirements and exemptions
- Required documents checklist
- Application process step-by-step
- Processing times and fees
- Embassy/consulate locations and contact information
- Vaccination requirements
- Travel insurance requirements
- Passport validity requirements
- Entry/exit requirements and restrictions
- Tips for successful application`

	FlightOptimization = `
Find optimal flights from {{.Origin}} to {{.Destination}}:
Budget consideration: {{.Budget}}
Duration: {{.Duration}} days
Season: {{.Season}}
Passengers: {{.GroupSize}}
Research and compare:
- Direct vs connecting flights
- Multiple airline options and pricing
- Flexible date savings opportunities
- Different booking platforms
- Seat selection and upgrade options
- Baggage policies and fees
- Travel insurance options
- Optimal booking timing
- Alternative airports if applicable
- Loyalty program benefits`

	HotelOptimization = `
Find best hotels in {{.Destination}}:
Budget range: {{.Budget}}
Duration: {{.Duration}} nights
Group: {{.GroupSize}} guests
Travel style: {{.TravelType}}
Research and analyze:
- Hotels across different price tiers
- Location advantages and neighborhood analysis
- Amenities and facilities comparison
- Guest reviews and ratings analysis
- Booking platform comparisons
- Seasonal pricing variations
- Cancellation policies and flexibility
- Special offers and package deals
- Alternative accommodation types
- Proximity to attractions and transport`

	LocalTransportMastery = `
Optimize local transportation in {{.Destination}}:
Duration: {{.Duration}} days
Budget considerations: {{.Budget}}
Interests: {{.Interests}}
Create comprehensive local transport strategy:
- Efficient routes between major attractions
- Public transport system deep-dive
- Transportation apps and digital solutions
- Real-time navigation and updates
- Cost-effective travel passes and cards
- Peak hour traffic patterns
- Alternative transport modes (bikes, scooters)
- Accessibility options
- Local transport etiquette
- Emergency transport options`

	SafetySecurityPlanning = `
Comprehensive safety planning for {{.Destination}}:
Trip duration: {{.Duration}} days
Group type: {{.GroupType}}
Season: {{.Season}}
Cover all safety aspects:
- Emergency contact numbers (local and international)
- Medical facilities and hospitals locations
- Embassy/consulate information
- Common scams and how to avoid them
- Safe vs unsafe areas and neighborhoods
- Cultural sensitivity and local laws
- Natural disaster preparedness
- Personal safety protocols
- Travel insurance recommendations
- Emergency communication methods
- Legal considerations and restrictions
- Health precautions and vaccinations`

	TravelStoryCreation = `
Transform the trip plan into an engaging adventure narrative:
Destination: {{.Destination}}
Duration: {{.Duration}} days
Travel style: {{.TravelType}}
Key interests: {{.Interests}}
Season setting: {{.Season}}
Create compelling travel story:
- Opening that sets adventure tone
- Daily adventures with narrative flow
- Cultural discovery moments
- Character development through travel
- Memorable scenes and experiences
- Local interactions and connections
- Challenges and how to overcome them
- Climactic experiences and revelations
- Satisfying conclusion with transformation
Make the itinerary feel like an epic journey.`

	SmartPackingGuide = `
Create comprehensive packing list for {{.Destination}}:
Season: {{.Season}}
Duration: {{.Duration}} days
Activities: {{.Interests}}
Travel style: {{.TravelType}}
Group type: {{.GroupType}}
Include:
- Climate-appropriate clothing
- Activity-specific gear
- Electronics and adapters
- Documents and important papers
- Health and medication items
- Personal care and toiletries
- Safety and security items
- Comfort and convenience items
- Local shopping opportunities
- Packing strategies and tips`

	WeatherAnalysis = `
Analyze weather conditions for {{.Destination}} during {{.Season}}:
Trip dates: {{.Duration}} days
Activities planned: {{.Interests}}
Provide:
- Seasonal weather patterns and temperatures
- Rainfall and humidity expectations
- Best and worst weather days for activities
- Weather-appropriate clothing recommendations
- Backup indoor activities for bad weather
- Seasonal events affected by weather
- Health considerations (UV, altitude, etc.)
- Weather apps and local forecasting resources`

	CulturalImmersion = `
Design cultural immersion experiences for {{.Destination}}:
Interests: {{.Interests}}
Duration: {{.Duration}} days
Group type: {{.GroupType}}
Include:
- Authentic local experiences and interactions
- Traditional ceremonies or festivals during visit
- Local family dining or homestay opportunities
- Traditional craft workshops and classes
- Language learning basics and useful phrases
- Religious and spiritual sites with proper etiquette
- Local volunteer opportunities
- Off-the-beaten-path cultural sites
- Traditional music and dance experiences
- Cultural dos and don'ts for respectful travel`
)
