package actor

import (
	"context"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/zerolog/log"
	"go-tripplanner/internal/agents/worker/handler"
	"go-tripplanner/internal/crew"
	"go-tripplanner/pkg/logger"
	"go-tripplanner/pkg/memory/buffer"
	"go-tripplanner/pkg/messages"
	"go-tripplanner/pkg/models"
	"time"
)

// Worker solves a single task for its parent crew and stops.
type Worker struct {
	handler *handler.Handler
}

func New(h *handler.Handler) actor.Producer {
	return func() actor.Actor {
		return &Worker{handler: h}
	}
}

func (agent *Worker) Receive(ac actor.Context) {
	l := log.With().Fields(map[string]interface{}{logger.ActorIDField: ac.Self().GetId(), logger.AgentNameField: "worker"}).Logger()
	switch msg := ac.Message().(type) {
	case *actor.Started:
		l.Debug().Msg("starting actor")
	case *actor.Stopping:
		l.Debug().Msg("stopping actor")
	case *actor.Stopped:
		l.Debug().Msg("stopped actor")
	case *actor.Restarting:
		l.Debug().Msg("restarting actor")
	case messages.ExecuteTask:
		task := msg.Input.Task.Name
		l.Debug().Str(logger.RequestIDField, msg.RequestID.String()).Str(logger.TaskField, task).Msg("ExecuteTask received from crew")
		hRes := agent.handler.Solve(context.Background(), msg.Input)

		if hRes.Error != nil {
			agent.reportErrorToParent(ac, task, hRes.Error)
			return
		}

		l.Info().Str(logger.TaskField, task).Msg("task solved, reporting to crew...")
		ac.Send(ac.Parent(), messages.TaskResult{
			Index:  msg.Index,
			Output: crew.Output(msg.Input.Task, hRes.Answer),
			Memory: buffer.Memory{Task: task, Agent: msg.Input.Agent.Name, Question: hRes.Question, Answer: hRes.Answer},
		})
		ac.Stop(ac.Self())
	default:
		l.Warn().Msgf("unknown message: %T", msg)
	}
}

func (agent *Worker) reportErrorToParent(ac actor.Context, task string, err error) {
	log.Error().Err(err).Str(logger.TaskField, task).Msg("reporting error to crew...")
	t := time.Now()
	ac.Send(ac.Parent(), messages.ReportError{Error: models.Error{ErrMessage: err.Error(), Task: task, Time: &t}})
	ac.Stop(ac.Self())
}
