package crew

import (
	"context"
	"errors"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/llm"
	"go-tripplanner/internal/plan"
	"go-tripplanner/internal/services"
	"go-tripplanner/internal/tasks"
	"go-tripplanner/pkg/memory/buffer"
	"go-tripplanner/pkg/models"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// scriptedModel answers with the first line of the task description and can
// fail on a prompt containing failOn.
type scriptedModel struct {
	mu      sync.Mutex
	prompts []string
	failOn  string
}

func (m *scriptedModel) Call(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.failOn != "" && strings.Contains(prompt, m.failOn) {
		return "", errors.New("model unavailable")
	}
	return "answer " + string(rune('A'+len(m.prompts)-1)), nil
}

type stubLookups struct{}

func (stubLookups) ExchangeRate(context.Context, string, string) (services.Rate, error) {
	return services.Rate{Rate: 1}, nil
}
func (stubLookups) SearchFlights(context.Context, services.FlightQuery) (services.Result, error) {
	return services.Result{}, nil
}
func (stubLookups) SearchHotels(context.Context, services.HotelQuery) (services.Result, error) {
	return services.Result{}, nil
}
func (stubLookups) LocalInfo(context.Context, string, string) (services.Result, error) {
	return services.Result{}, nil
}
func (stubLookups) Directions(context.Context, string, string, string) (services.Result, error) {
	return services.Result{}, nil
}
func (stubLookups) SearchPlaces(context.Context, string, string) (services.Result, error) {
	return services.Result{}, nil
}

func request() models.TripRequest {
	return models.TripRequest{
		TravelType:  "🏔️ Adventure & Outdoor",
		Origin:      "USA",
		Destination: "🇯🇵 Japan",
		Interests:   []string{"🍜 Food & Cuisine"},
		Season:      "🍂 Autumn",
		Duration:    7,
		Budget:      "$3000",
	}
}

func newCrew(t *testing.T, model llm.Model, opts ...Option) *Crew {
	t.Helper()
	cfg := config.Default()
	cfg.Services.SerpAPIKey = ""
	return New(cfg, llm.Static(model, roles.LLMConfig{Provider: "fake", Model: "scripted", Temperature: 0.7}), opts...)
}

func TestRun_FullWithoutServicesDegrades(t *testing.T) {
	c := newCrew(t, &scriptedModel{})
	assert.False(t, c.Enhanced())

	res, err := c.Run(context.Background(), request(), plan.Full, Hooks{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.Outputs, 9)
	assert.False(t, res.Enhanced)
	assert.Equal(t, "full", res.Mode)
	assert.Equal(t, "destination_selection", res.Outputs[0].Name)
	assert.Equal(t, "Location Search Expert", res.Outputs[0].Agent)
}

func TestRun_FullWithServices(t *testing.T) {
	c := newCrew(t, &scriptedModel{}, WithLookups(stubLookups{}))
	assert.True(t, c.Enhanced())

	res, err := c.Run(context.Background(), request(), plan.Full, Hooks{})
	require.NoError(t, err)
	assert.Len(t, res.Outputs, 13)
	assert.True(t, res.Enhanced)
}

// slowModel answers after delay unless its context ends first.
type slowModel struct {
	delay time.Duration
}

func (m slowModel) Call(ctx context.Context, _ string, _ ...llms.CallOption) (string, error) {
	select {
	case <-time.After(m.delay):
		return "late answer", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestRun_SlowModelCompletes(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.RequestTimeout = 10 * time.Millisecond
	c := New(cfg, llm.Static(slowModel{delay: 100 * time.Millisecond}, roles.LLMConfig{Provider: "fake"}), WithLookups(nil))

	res, err := c.Run(context.Background(), request(), plan.Basic, Hooks{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Len(t, res.Outputs, 6)
	for _, o := range res.Outputs {
		assert.Equal(t, "late answer", o.Raw)
	}
}

func TestRun_FailureReturnsNilResult(t *testing.T) {
	model := &scriptedModel{failOn: "Create optimized"}
	c := newCrew(t, model)

	var started []string
	res, err := c.Run(context.Background(), request(), plan.Basic, Hooks{
		OnStart: func(_ int, task tasks.Task) { started = append(started, task.Name) },
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrRunFailed)
	// nothing runs after the failing task
	assert.Equal(t, []string{"destination_selection", "destination_research", "detailed_itinerary"}, started)
}

func TestRun_InvalidRequest(t *testing.T) {
	c := newCrew(t, &scriptedModel{})
	req := request()
	req.Destination = ""
	req.Budget = "lots"

	_, err := c.Run(context.Background(), req, plan.Basic, Hooks{})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorContains(t, err, "Destination is required")
	assert.ErrorContains(t, err, "Budget must contain numeric values")

	_, err = c.Run(context.Background(), request(), plan.Mode("weekend"), Hooks{})
	assert.ErrorIs(t, err, plan.ErrUnknownMode)
}

func TestRun_NormalizesLabels(t *testing.T) {
	model := &scriptedModel{}
	c := newCrew(t, model)

	_, err := c.Run(context.Background(), request(), plan.Mystery, Hooks{})
	require.NoError(t, err)
	require.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[0], "Consider user's travel type: Adventure & Outdoor")
	assert.NotContains(t, model.prompts[0], "🏔️")
}

func TestExecute_ContextHandOff(t *testing.T) {
	model := &scriptedModel{}
	c := newCrew(t, model)
	req, p, err := c.Prepare(request(), plan.Basic)
	require.NoError(t, err)

	var memory buffer.Memories
	var done []int
	res, err := c.Execute(context.Background(), p, req, &memory, Hooks{
		OnDone: func(i int, _ models.TaskOutput) { done = append(done, i) },
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, done)
	assert.Equal(t, 6, memory.Len())

	// research reads the selection output
	assert.Contains(t, model.prompts[1], "answer A")
	// budget reads itinerary, accommodation and transportation
	budget := model.prompts[5]
	assert.Contains(t, budget, "## detailed_itinerary\nanswer C")
	assert.Contains(t, budget, "## accommodation_recommendations\nanswer D")
	assert.Contains(t, budget, "## transportation_planning\nanswer E")
	assert.NotContains(t, budget, "answer B")
	assert.Equal(t, "answer F", res.Outputs[5].Raw)
}

func TestRunTask(t *testing.T) {
	c := newCrew(t, &scriptedModel{})
	res, err := c.RunTask(context.Background(), request(), tasks.SmartPackingGuide)
	require.NoError(t, err)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "smart_packing_guide", res.Outputs[0].Name)
	assert.Equal(t, "Accommodation Specialist", res.Outputs[0].Agent)
}

func TestContextFor(t *testing.T) {
	story, err := tasks.Build(tasks.TravelStoryCreation, models.TripRequest{})
	require.NoError(t, err)

	assert.Empty(t, ContextFor(story, nil))

	outputs := []models.TaskOutput{
		{Name: "serendipity_destination", Kind: "serendipity_destination", Raw: "Bhutan"},
	}
	assert.Equal(t, "## serendipity_destination\nBhutan", ContextFor(story, outputs))

	other := []models.TaskOutput{{Name: "safety_security_planning", Kind: "safety_security_planning", Raw: "stay safe"}}
	assert.Equal(t, "stay safe", ContextFor(story, other))
}

func TestStatus(t *testing.T) {
	s := newCrew(t, &scriptedModel{}).Status()
	assert.Equal(t, 14, s.Agents)
	assert.Equal(t, 17, s.TasksAvailable)
	assert.Equal(t, "Limited", s.APIServices)
	assert.Equal(t, []plan.Mode{plan.Basic, plan.Full, plan.Mystery, plan.Custom}, s.Modes)

	s = newCrew(t, &scriptedModel{}, WithLookups(stubLookups{})).Status()
	assert.Equal(t, "Available", s.APIServices)
}
