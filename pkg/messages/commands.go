package messages

import (
	"github.com/google/uuid"
	"go-tripplanner/internal/agents/worker/handler"
	"go-tripplanner/pkg/memory/buffer"
	"go-tripplanner/pkg/models"
)

// NewTrip starts a planning run on a crew actor.
type NewTrip struct {
	RequestID uuid.UUID
	Request   models.TripRequest
	Mode      string
}

// ExecuteTask asks a worker actor to solve one task of the plan.
type ExecuteTask struct {
	RequestID uuid.UUID
	Index     int
	Input     handler.Input
}

type TaskResult struct {
	Index  int
	Output models.TaskOutput
	Memory buffer.Memory
}

type ReportError struct {
	Error models.Error
}

type GetStatus struct{}

// GetExport is answered with a models.PlanExport once the run finished, or
// an error before that.
type GetExport struct{}

// GetTranscript is answered with the []buffer.Memory of the tasks run so far.
type GetTranscript struct{}
