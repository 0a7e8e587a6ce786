package plan

import (
	"fmt"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/tasks"
	"go-tripplanner/pkg/models"
	"strings"
)

// ExecutionPlan is the ordered set of tasks, and the agents they use, for one
// planning run.
type ExecutionPlan struct {
	Mode     Mode         `json:"mode"`
	Enhanced bool         `json:"enhanced"`
	Tasks    []tasks.Task `json:"tasks"`
	Agents   []roles.Role `json:"-"`
}

// Kinds returns the task kinds in run order.
func (p ExecutionPlan) Kinds() []tasks.Kind {
	res := make([]tasks.Kind, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		res = append(res, t.Kind)
	}
	return res
}

func (p ExecutionPlan) Names() []string {
	res := make([]string, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		res = append(res, t.Name)
	}
	return res
}

func (p ExecutionPlan) Contains(k tasks.Kind) bool {
	for _, t := range p.Tasks {
		if t.Kind == k {
			return true
		}
	}
	return false
}

var (
	basicKinds = []tasks.Kind{
		tasks.DestinationSelection,
		tasks.DestinationResearch,
		tasks.DetailedItinerary,
		tasks.AccommodationRecommendations,
		tasks.TransportationPlanning,
		tasks.ComprehensiveBudget,
	}

	fullKinds = []tasks.Kind{
		tasks.DestinationSelection,
		tasks.DestinationResearch,
		tasks.CurrencyManagement,
		tasks.VisaRequirements,
		tasks.DetailedItinerary,
		tasks.AccommodationRecommendations,
		tasks.TransportationPlanning,
		tasks.ComprehensiveBudget,
		tasks.SafetySecurityPlanning,
	}

	enhancedKinds = []tasks.Kind{
		tasks.FlightOptimization,
		tasks.HotelOptimization,
		tasks.LocalTransportMastery,
		tasks.TravelStoryCreation,
	}

	mysteryKinds = []tasks.Kind{
		tasks.SerendipityDestination,
		tasks.TravelStoryCreation,
	}
)

// Build selects and orders the tasks for mode. It has no side effects: the
// same request, mode and availability always give the same plan. enhanced
// reports whether the search services came up; modes that do not use them
// ignore it.
func Build(req models.TripRequest, mode Mode, enhanced bool) (ExecutionPlan, error) {
	var selected []tasks.Kind
	switch mode {
	case Basic:
		selected = basicKinds
	case Full:
		selected = append([]tasks.Kind{}, fullKinds...)
		if enhanced {
			selected = append(selected, enhancedKinds...)
		}
	case Mystery:
		selected = mysteryKinds
	case Custom:
		selected = customKinds(req, enhanced)
	default:
		return ExecutionPlan{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return assemble(req, mode, enhanced && mode.APIDependent(), selected)
}

// BuildSingle plans a single task of any kind, used for the supplementary
// guides (packing, weather, culture) that no mode schedules.
func BuildSingle(req models.TripRequest, kind tasks.Kind) (ExecutionPlan, error) {
	if !kind.Valid() {
		return ExecutionPlan{}, fmt.Errorf("%w: unknown task kind %d", ErrInvalidPlan, int(kind))
	}
	return assemble(req, Custom, false, []tasks.Kind{kind})
}

// customKinds adds tasks as the request asks for them. Each condition only
// ever adds tasks.
func customKinds(req models.TripRequest, enhanced bool) []tasks.Kind {
	selected := []tasks.Kind{
		tasks.DestinationSelection,
		tasks.DestinationResearch,
		tasks.DetailedItinerary,
	}

	style := strings.ToLower(req.TravelType)

	if budgetConscious(style, req.Interests) {
		selected = append(selected, tasks.ComprehensiveBudget)
	}

	if req.International() {
		selected = append(selected, tasks.CurrencyManagement, tasks.VisaRequirements)
	}

	selected = append(selected, tasks.AccommodationRecommendations, tasks.SafetySecurityPlanning)

	if len(req.TransportPreferences) > 0 {
		selected = append(selected, tasks.TransportationPlanning)
		if enhanced {
			selected = append(selected, tasks.FlightOptimization, tasks.LocalTransportMastery)
		}
	}

	if strings.Contains(style, "luxury") && enhanced {
		selected = append(selected, tasks.HotelOptimization)
	}

	for _, keyword := range []string{"adventure", "cultural", "educational"} {
		if strings.Contains(style, keyword) {
			selected = append(selected, tasks.TravelStoryCreation)
			break
		}
	}
	return selected
}

func budgetConscious(style string, interests []string) bool {
	if strings.Contains(style, "budget") {
		return true
	}
	for _, i := range interests {
		if strings.Contains(strings.ToLower(i), "budget") {
			return true
		}
	}
	return false
}

func assemble(req models.TripRequest, mode Mode, enhanced bool, selected []tasks.Kind) (ExecutionPlan, error) {
	ordered, err := order(selected, tasks.Kind.Context)
	if err != nil {
		return ExecutionPlan{}, fmt.Errorf("order %s plan: %w", mode, err)
	}

	p := ExecutionPlan{
		Mode:     mode,
		Enhanced: enhanced,
		Tasks:    make([]tasks.Task, 0, len(ordered)),
		Agents:   make([]roles.Role, 0, len(ordered)),
	}
	seen := make(map[roles.Role]bool)
	for _, k := range ordered {
		t, err := tasks.Build(k, req)
		if err != nil {
			return ExecutionPlan{}, err
		}
		p.Tasks = append(p.Tasks, t)
		if !seen[t.Role] {
			seen[t.Role] = true
			p.Agents = append(p.Agents, t.Role)
		}
	}

	if err := Check(p); err != nil {
		return ExecutionPlan{}, err
	}
	return p, nil
}

// Check verifies that every task's agent is part of the plan, that the plan
// carries no unused agent and that context always runs first.
func Check(p ExecutionPlan) error {
	agents := make(map[roles.Role]bool, len(p.Agents))
	for _, a := range p.Agents {
		agents[a] = true
	}
	used := make(map[roles.Role]bool, len(p.Agents))
	position := make(map[tasks.Kind]int, len(p.Tasks))
	for i, t := range p.Tasks {
		if !agents[t.Role] {
			return fmt.Errorf("%w: task %s uses agent %s outside the plan", ErrInvalidPlan, t.Name, t.Role)
		}
		used[t.Role] = true
		position[t.Kind] = i
	}
	for _, a := range p.Agents {
		if !used[a] {
			return fmt.Errorf("%w: agent %s has no task", ErrInvalidPlan, a)
		}
	}
	for i, t := range p.Tasks {
		for _, c := range t.Context {
			if j, ok := position[c]; ok && j >= i {
				return fmt.Errorf("%w: %s runs before its context %s", ErrInvalidPlan, t.Name, c)
			}
		}
	}
	return nil
}

type Summary struct {
	Mode           Mode     `json:"mode"`
	Description    string   `json:"description"`
	Agents         int      `json:"agents"`
	Variable       bool     `json:"variable"`
	EstimatedTasks []string `json:"estimated_tasks"`
	APIDependent   bool     `json:"api_dependent"`
}

// Summarize describes what a mode would run. Custom plans depend on the
// request, so only their fixed part is listed.
func Summarize(mode Mode, enhanced bool) (Summary, error) {
	s := Summary{Mode: mode, Description: mode.Description(), APIDependent: mode.APIDependent()}
	if mode == Custom {
		s.Variable = true
		s.EstimatedTasks = []string{"Adaptive based on preferences"}
		return s, nil
	}

	p, err := Build(models.TripRequest{}, mode, enhanced)
	if err != nil {
		return Summary{}, err
	}
	s.Agents = len(p.Agents)
	s.EstimatedTasks = p.Names()
	return s, nil
}
