package actor

import (
	"context"
	"errors"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/llm"
	"go-tripplanner/pkg/memory/buffer"
	"go-tripplanner/pkg/messages"
	"go-tripplanner/pkg/models"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoModel struct {
	failOn string
}

func (m echoModel) Call(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	if m.failOn != "" && strings.Contains(prompt, m.failOn) {
		return "", errors.New("boom")
	}
	return "done", nil
}

type memArchive struct {
	mu    sync.Mutex
	saved []models.PlanExport
}

func (a *memArchive) Save(_ context.Context, e models.PlanExport) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved = append(a.saved, e)
	return e.ID, nil
}

func (a *memArchive) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.saved)
}

func spawn(t *testing.T, model llm.Model, archive Archiver) (*actor.RootContext, *actor.PID) {
	t.Helper()
	cfg := config.Default()
	c := crew.New(cfg, llm.Static(model, roles.LLMConfig{Temperature: 0.7}), crew.WithLookups(nil))

	root := actor.NewActorSystem().Root
	pid := root.Spawn(actor.PropsFromProducer(New(c, archive)))
	t.Cleanup(func() { root.Stop(pid) })
	return root, pid
}

func waitFor(t *testing.T, root *actor.RootContext, pid *actor.PID, done func(models.Status) bool) models.Status {
	t.Helper()
	var last models.Status
	require.Eventually(t, func() bool {
		res, err := root.RequestFuture(pid, messages.GetStatus{}, time.Second).Result()
		if err != nil {
			return false
		}
		last = res.(models.Status)
		return done(last)
	}, 5*time.Second, 10*time.Millisecond)
	return last
}

func trip() models.TripRequest {
	return models.TripRequest{Origin: "USA", Destination: "Peru", Duration: 4, Budget: "$1500"}
}

func TestCrew_RunsPlanToCompletion(t *testing.T) {
	archive := &memArchive{}
	root, pid := spawn(t, echoModel{}, archive)
	id := uuid.New()

	root.Send(pid, messages.NewTrip{RequestID: id, Request: trip(), Mode: "basic"})
	status := waitFor(t, root, pid, func(s models.Status) bool { return s.State == models.Finished })

	assert.Equal(t, id.String(), status.ID)
	assert.Equal(t, "basic", status.Mode)
	assert.Equal(t, models.Progress{Completed: 6, Total: 6}, status.Progress)
	require.NotNil(t, status.Result)
	assert.Len(t, status.Result.Outputs, 6)
	assert.Len(t, status.Sections, 6)
	for _, s := range status.Sections {
		assert.True(t, s.Ready, s.Key)
	}
	assert.Equal(t, 1, archive.count())

	res, err := root.RequestFuture(pid, messages.GetExport{}, time.Second).Result()
	require.NoError(t, err)
	export, ok := res.(models.PlanExport)
	require.True(t, ok)
	assert.Equal(t, "Peru", export.Destination)
	assert.Len(t, export.Sections, 6)

	res, err = root.RequestFuture(pid, messages.GetTranscript{}, time.Second).Result()
	require.NoError(t, err)
	assert.Len(t, res.([]buffer.Memory), 6)
}

type slowModel struct {
	delay time.Duration
}

func (m slowModel) Call(ctx context.Context, _ string, _ ...llms.CallOption) (string, error) {
	select {
	case <-time.After(m.delay):
		return "done", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestCrew_SlowWorkersFinish(t *testing.T) {
	root, pid := spawn(t, slowModel{delay: 50 * time.Millisecond}, nil)

	root.Send(pid, messages.NewTrip{RequestID: uuid.New(), Request: trip(), Mode: "basic"})
	status := waitFor(t, root, pid, func(s models.Status) bool { return s.State.Done() })

	assert.Equal(t, models.Finished, status.State)
	assert.Nil(t, status.Errs)
	assert.Equal(t, 6, status.Progress.Completed)
}

func TestCrew_TaskFailureFailsRun(t *testing.T) {
	archive := &memArchive{}
	root, pid := spawn(t, echoModel{failOn: "Create optimized"}, archive)

	root.Send(pid, messages.NewTrip{RequestID: uuid.New(), Request: trip(), Mode: "basic"})
	status := waitFor(t, root, pid, func(s models.Status) bool { return s.State == models.Failed })

	assert.Nil(t, status.Result)
	require.NotNil(t, status.Errs)
	assert.Equal(t, crew.ErrRunFailed.Error(), status.Errs.ErrMessage)
	assert.Equal(t, "detailed_itinerary", status.Errs.Task)
	assert.Equal(t, 0, archive.count())

	res, err := root.RequestFuture(pid, messages.GetExport{}, time.Second).Result()
	require.NoError(t, err)
	assert.ErrorIs(t, res.(error), ErrNotFinished)
}

func TestCrew_InvalidRequest(t *testing.T) {
	root, pid := spawn(t, echoModel{}, nil)
	req := trip()
	req.Duration = 0

	root.Send(pid, messages.NewTrip{RequestID: uuid.New(), Request: req, Mode: "full"})
	status := waitFor(t, root, pid, func(s models.Status) bool { return s.State == models.Failed })
	require.NotNil(t, status.Errs)
	assert.Contains(t, status.Errs.ErrMessage, "Trip duration must be at least 1 day")
}
