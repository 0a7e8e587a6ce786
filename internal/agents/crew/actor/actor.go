package actor

import (
	"context"
	"errors"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	workerActor "go-tripplanner/internal/agents/worker/actor"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/plan"
	"go-tripplanner/internal/results"
	"go-tripplanner/pkg/logger"
	"go-tripplanner/pkg/memory/buffer"
	"go-tripplanner/pkg/messages"
	"go-tripplanner/pkg/models"
	"time"
)

var ErrNotFinished = errors.New("plan is not finished")

// Archiver stores finished plans.
type Archiver interface {
	Save(ctx context.Context, export models.PlanExport) (string, error)
}

// Crew drives one planning run, spawning a worker per task in plan order.
type Crew struct {
	crew    *crew.Crew
	archive Archiver
	id      uuid.UUID
	req     models.TripRequest
	mode    plan.Mode
	plan    plan.ExecutionPlan
	outputs []models.TaskOutput
	memory  buffer.Memories
	result  *models.PlanResult
	state   models.State
	current string
	err     *models.Error
}

// New returns a producer for crew actors. archive may be nil.
func New(c *crew.Crew, archive Archiver) actor.Producer {
	return func() actor.Actor {
		return &Crew{
			crew:    c,
			archive: archive,
			id:      uuid.Nil,
			outputs: make([]models.TaskOutput, 0),
			state:   models.Init,
		}
	}
}

func (agent *Crew) Receive(ac actor.Context) {
	l := log.With().Fields(map[string]interface{}{logger.ActorIDField: ac.Self().GetId(), logger.AgentNameField: "crew"}).Logger()
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor and its children")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case *actor.Terminated:
		l.Debug().Msg("worker actor terminated")
	case messages.GetStatus:
		l.Debug().Str(logger.RequestIDField, agent.id.String()).Msg("GetStatus received")
		ac.Respond(agent.status())
	case messages.GetExport:
		l.Debug().Str(logger.RequestIDField, agent.id.String()).Msg("GetExport received")
		export, ok := results.Export(agent.id.String(), agent.req, agent.result, time.Now())
		if !ok {
			ac.Respond(ErrNotFinished)
			return
		}
		ac.Respond(export)
	case messages.GetTranscript:
		ac.Respond(agent.memory.Snapshot())
	case messages.NewTrip:
		l.Debug().Str(logger.RequestIDField, msg.RequestID.String()).Msg("NewTrip received")
		agent.id = msg.RequestID
		agent.state = models.Thinking

		mode, err := plan.ParseMode(msg.Mode)
		if err != nil {
			agent.fail(ac, "", err)
			return
		}
		agent.mode = mode
		agent.req, agent.plan, err = agent.crew.Prepare(msg.Request, mode)
		if err != nil {
			agent.fail(ac, "", err)
			return
		}

		l.Info().Str(logger.RequestIDField, agent.id.String()).Str(logger.ModeField, string(mode)).
			Msgf("plan ready with %d tasks and %d agents", len(agent.plan.Tasks), len(agent.plan.Agents))
		agent.next(ac)
	case messages.TaskResult:
		l.Debug().Str(logger.RequestIDField, agent.id.String()).Str(logger.TaskField, msg.Output.Name).Msg("TaskResult received from worker")
		if msg.Index != len(agent.outputs) {
			l.Warn().Int("index", msg.Index).Msg("out of order task result ignored")
			return
		}
		agent.outputs = append(agent.outputs, msg.Output)
		agent.memory.Add(msg.Memory)
		if len(agent.outputs) < len(agent.plan.Tasks) {
			agent.next(ac)
			return
		}
		agent.finish(ac)
	case messages.ReportError:
		l.Debug().Str(logger.RequestIDField, agent.id.String()).Msg("ReportError received from worker")
		agent.state = models.Failed
		agent.result = nil
		agent.current = ""
		agent.err = &models.Error{ErrMessage: crew.ErrRunFailed.Error(), Task: msg.Error.Task, Time: msg.Error.Time}
	default:
		l.Warn().Str(logger.RequestIDField, agent.id.String()).Msgf("unknown message: %T", msg)
	}
}

func (agent *Crew) next(ac actor.Context) {
	i := len(agent.outputs)
	in := agent.crew.Input(agent.plan, agent.req, i, agent.outputs)
	agent.current = in.Task.Name

	props := actor.PropsFromProducer(workerActor.New(agent.crew.Handler()))
	child := ac.Spawn(props)
	ac.Send(child, messages.ExecuteTask{RequestID: agent.id, Index: i, Input: in})
}

func (agent *Crew) finish(ac actor.Context) {
	l := log.With().Str(logger.ActorIDField, ac.Self().GetId()).Str(logger.RequestIDField, agent.id.String()).Logger()
	agent.result = &models.PlanResult{Mode: string(agent.mode), Enhanced: agent.plan.Enhanced, Outputs: agent.outputs}
	agent.state = models.Finished
	agent.current = ""
	l.Info().Msg("all tasks completed, travel plan is ready")

	if agent.archive == nil {
		return
	}
	export, _ := results.Export(agent.id.String(), agent.req, agent.result, time.Now())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := agent.archive.Save(ctx, export); err != nil {
		l.Error().Err(err).Msg("unable to archive plan")
	}
}

func (agent *Crew) fail(ac actor.Context, task string, err error) {
	log.Error().Err(err).Str(logger.ActorIDField, ac.Self().GetId()).Str(logger.RequestIDField, agent.id.String()).Msg("planning failed")
	t := time.Now()
	agent.state = models.Failed
	agent.result = nil
	agent.err = &models.Error{ErrMessage: err.Error(), Task: task, Time: &t}
}

func (agent *Crew) status() models.Status {
	s := models.Status{
		ID:       agent.id.String(),
		Mode:     string(agent.mode),
		State:    agent.state,
		Enhanced: agent.plan.Enhanced,
		Progress: models.Progress{Completed: len(agent.outputs), Total: len(agent.plan.Tasks), Current: agent.current},
		Result:   agent.result,
		Errs:     agent.err,
	}
	if agent.state == models.Finished {
		s.Sections = results.MapResult(agent.result, results.SectionsFor(agent.mode))
	}
	return s
}
