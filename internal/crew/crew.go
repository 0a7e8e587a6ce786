package crew

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/agents/worker/handler"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/llm"
	"go-tripplanner/internal/plan"
	"go-tripplanner/internal/services"
	"go-tripplanner/internal/tasks"
	"go-tripplanner/pkg/logger"
	"go-tripplanner/pkg/memory/buffer"
	"go-tripplanner/pkg/models"
	"strings"
)

var (
	ErrRunFailed      = errors.New("travel plan generation failed")
	ErrInvalidRequest = errors.New("invalid trip request")
)

// Crew is one planning session: a model, the agents bound to it and the
// optional search services, all fixed at construction.
type Crew struct {
	settings roles.LLMConfig
	roster   *roles.Roster
	handler  *handler.Handler
	lookups  handler.Lookups
}

type options struct {
	lookups    handler.Lookups
	lookupsSet bool
}

type Option func(*options)

// WithLookups replaces the search services built from config. A nil value
// disables enhanced features.
func WithLookups(l handler.Lookups) Option {
	return func(o *options) {
		o.lookups = l
		o.lookupsSet = true
	}
}

func New(cfg config.Config, client *llm.Client, opts ...Option) *Crew {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	lookups := o.lookups
	if !o.lookupsSet {
		svc, err := services.New(cfg.Services)
		if err != nil {
			log.Warn().Err(err).Msg("enhanced features disabled")
		} else {
			lookups = svc
		}
	}

	return &Crew{
		settings: client.Settings,
		roster:   roles.NewRoster(client.Settings),
		handler:  handler.New(client.Model, lookups),
		lookups:  lookups,
	}
}

// Enhanced reports whether the search services are available.
func (c *Crew) Enhanced() bool {
	return c.lookups != nil
}

func (c *Crew) Handler() *handler.Handler {
	return c.handler
}

func (c *Crew) Agent(r roles.Role) roles.Agent {
	return c.roster.Get(r)
}

// Prepare normalizes and validates req and builds the plan for mode.
func (c *Crew) Prepare(req models.TripRequest, mode plan.Mode) (models.TripRequest, plan.ExecutionPlan, error) {
	req, err := checked(req)
	if err != nil {
		return models.TripRequest{}, plan.ExecutionPlan{}, err
	}
	p, err := plan.Build(req, mode, c.Enhanced())
	if err != nil {
		return models.TripRequest{}, plan.ExecutionPlan{}, err
	}
	return req, p, nil
}

// PrepareTask is Prepare for a single task of any kind.
func (c *Crew) PrepareTask(req models.TripRequest, kind tasks.Kind) (models.TripRequest, plan.ExecutionPlan, error) {
	req, err := checked(req)
	if err != nil {
		return models.TripRequest{}, plan.ExecutionPlan{}, err
	}
	p, err := plan.BuildSingle(req, kind)
	if err != nil {
		return models.TripRequest{}, plan.ExecutionPlan{}, err
	}
	return req, p, nil
}

func checked(req models.TripRequest) (models.TripRequest, error) {
	req = req.Normalized()
	if v := req.Validate(); !v.Valid {
		return models.TripRequest{}, fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(v.Errors, "; "))
	}
	return req, nil
}

// Input assembles what the worker needs to run task i of p given the outputs
// collected so far.
func (c *Crew) Input(p plan.ExecutionPlan, req models.TripRequest, i int, outputs []models.TaskOutput) handler.Input {
	t := p.Tasks[i]
	return handler.Input{
		Agent:    c.roster.Get(t.Role),
		Task:     t,
		Request:  req,
		Context:  ContextFor(t, outputs),
		Enhanced: p.Enhanced,
	}
}

// Output wraps a solved task.
func Output(t tasks.Task, answer string) models.TaskOutput {
	return models.TaskOutput{Name: t.Name, Kind: t.Kind.Name(), Agent: t.Role.Name(), Raw: answer}
}

// Hooks observe a run. Either field may be nil.
type Hooks struct {
	OnStart func(i int, t tasks.Task)
	OnDone  func(i int, out models.TaskOutput)
}

// Execute runs the tasks of p one after another. The first failure aborts
// the run and no partial result is returned.
func (c *Crew) Execute(ctx context.Context, p plan.ExecutionPlan, req models.TripRequest, memory *buffer.Memories, hooks Hooks) (*models.PlanResult, error) {
	result := &models.PlanResult{Mode: string(p.Mode), Enhanced: p.Enhanced, Outputs: make([]models.TaskOutput, 0, len(p.Tasks))}

	for i, t := range p.Tasks {
		l := log.With().Fields(map[string]interface{}{logger.TaskField: t.Name, logger.AgentNameField: t.Role.Key(), logger.ModeField: string(p.Mode)}).Logger()
		if hooks.OnStart != nil {
			hooks.OnStart(i, t)
		}
		l.Info().Msgf("running task %d/%d", i+1, len(p.Tasks))

		hRes := c.handler.Solve(ctx, c.Input(p, req, i, result.Outputs))
		if memory != nil {
			memory.Add(buffer.Memory{Task: t.Name, Agent: t.Role.Name(), Question: hRes.Question, Answer: hRes.Answer})
		}
		if hRes.Error != nil {
			l.Error().Err(hRes.Error).Msg("task failed, aborting run")
			return nil, fmt.Errorf("%w: %s", ErrRunFailed, t.Name)
		}

		out := Output(t, hRes.Answer)
		result.Outputs = append(result.Outputs, out)
		if hooks.OnDone != nil {
			hooks.OnDone(i, out)
		}
	}
	return result, nil
}

// Run prepares and executes a plan for mode.
func (c *Crew) Run(ctx context.Context, req models.TripRequest, mode plan.Mode, hooks Hooks) (*models.PlanResult, error) {
	req, p, err := c.Prepare(req, mode)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, p, req, nil, hooks)
}

// RunTask runs a single task of any kind.
func (c *Crew) RunTask(ctx context.Context, req models.TripRequest, kind tasks.Kind) (*models.PlanResult, error) {
	req, p, err := c.PrepareTask(req, kind)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, p, req, nil, Hooks{})
}

// ContextFor formats the outputs t reads. A task with declared context gets
// those outputs; a task without, or whose context tasks did not run, gets
// the output of the task before it.
func ContextFor(t tasks.Task, outputs []models.TaskOutput) string {
	if len(outputs) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, k := range t.Context {
		for _, o := range outputs {
			if o.Kind != k.Name() {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString("## " + o.Name + "\n" + o.Raw)
		}
	}
	if sb.Len() == 0 {
		return outputs[len(outputs)-1].Raw
	}
	return sb.String()
}

type Status struct {
	Agents         int             `json:"agents_initialized"`
	TasksAvailable int             `json:"tasks_available"`
	APIServices    string          `json:"api_services"`
	Modes          []plan.Mode     `json:"modes_available"`
	LLM            roles.LLMConfig `json:"llm"`
}

func (c *Crew) Status() Status {
	api := "Limited"
	if c.Enhanced() {
		api = "Available"
	}
	modes := make([]plan.Mode, 0, 4)
	for _, m := range plan.Modes() {
		modes = append(modes, m.Mode)
	}
	return Status{
		Agents:         c.roster.Len(),
		TasksAvailable: len(tasks.AllKinds()),
		APIServices:    api,
		Modes:          modes,
		LLM:            c.settings,
	}
}
