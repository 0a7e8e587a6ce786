package api

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/tmc/langchaingo/llms"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/archive"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/llm"
	"go-tripplanner/internal/plan"
	"go-tripplanner/pkg/models"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedModel struct{}

func (fixedModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "planned", nil
}

type memArchive struct {
	mu    sync.Mutex
	plans map[string]models.PlanExport
}

func newMemArchive() *memArchive {
	return &memArchive{plans: map[string]models.PlanExport{}}
}

func (a *memArchive) Save(_ context.Context, e models.PlanExport) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.plans[e.ID] = e
	return e.ID, nil
}

func (a *memArchive) Get(_ context.Context, id string) (models.PlanExport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.plans[id]
	if !ok {
		return models.PlanExport{}, archive.ErrNotFound
	}
	return e, nil
}

func (a *memArchive) List(_ context.Context, _ int) ([]archive.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := make([]archive.Entry, 0, len(a.plans))
	for _, e := range a.plans {
		res = append(res, archive.Entry{ID: e.ID, Destination: e.Destination, Mode: e.Mode, Duration: e.Duration, GeneratedAt: e.GeneratedAt})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func newServer(t *testing.T, store Archive) *Server {
	t.Helper()
	cfg := config.Default()
	c := crew.New(cfg, llm.Static(fixedModel{}, roles.LLMConfig{Provider: "test", Temperature: 0.7}), crew.WithLookups(nil))
	root := actor.NewActorSystem().Root
	s := New(root, c, store, config.Server{Addr: ":0", StatusTimeout: time.Second})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func validTrip() models.TripRequest {
	return models.TripRequest{
		Origin:      "USA",
		Destination: "🇯🇵 Japan",
		Interests:   []string{"🍜 Food & Culinary Experiences"},
		Season:      "🌸 Spring",
		Duration:    5,
		Budget:      "$3000",
	}
}

func TestServer_PlanLifecycle(t *testing.T) {
	store := newMemArchive()
	s := newServer(t, store)

	rec := do(t, s, http.MethodPost, "/plans", planRequest{Request: validTrip(), Mode: "basic"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	var created struct {
		Id   string `json:"id"`
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "basic", created.Mode)

	var status getStatus
	require.Eventually(t, func() bool {
		rec := do(t, s, http.MethodGet, "/plans/"+created.Id, nil)
		if rec.Code != http.StatusOK {
			return false
		}
		status = getStatus{}
		if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
			return false
		}
		return status.Status.State == models.Finished
	}, 5*time.Second, 10*time.Millisecond)

	assert.Len(t, status.Status.Sections, 6)
	assert.Equal(t, 6, status.Status.Progress.Completed)

	rec = do(t, s, http.MethodGet, "/plans/"+created.Id+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var export models.PlanExport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &export))
	assert.Equal(t, "Japan", export.Destination)
	assert.Equal(t, "planned", export.Sections["itinerary"].Content)

	rec = do(t, s, http.MethodGet, "/plans/"+created.Id+"/transcript", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Location Search Expert")

	require.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), created.Id)
		return err == nil
	}, time.Second, 10*time.Millisecond)

	rec = do(t, s, http.MethodGet, "/archive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), created.Id)

	rec = do(t, s, http.MethodGet, "/archive/"+created.Id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_SweepEvictsFinishedPlans(t *testing.T) {
	s := newServer(t, nil)
	s.retention = time.Hour

	rec := do(t, s, http.MethodPost, "/plans", planRequest{Request: validTrip(), Mode: "basic"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	var created struct {
		Id string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	require.Eventually(t, func() bool {
		var status getStatus
		rec := do(t, s, http.MethodGet, "/plans/"+created.Id, nil)
		return rec.Code == http.StatusOK &&
			json.Unmarshal(rec.Body.Bytes(), &status) == nil &&
			status.Status.State == models.Finished
	}, 5*time.Second, 10*time.Millisecond)

	now := time.Now()
	assert.Zero(t, s.sweep(now))
	assert.Zero(t, s.sweep(now.Add(30*time.Minute)))
	rec = do(t, s, http.MethodGet, "/plans/"+created.Id+"/export", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1, s.sweep(now.Add(time.Hour)))
	assert.Empty(t, s.requests.all())
	rec = do(t, s, http.MethodGet, "/plans/"+created.Id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_NewPlanRejects(t *testing.T) {
	s := newServer(t, nil)

	rec := do(t, s, http.MethodPost, "/plans", planRequest{Request: validTrip(), Mode: "weekend"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	invalid := validTrip()
	invalid.Budget = "cheap"
	rec = do(t, s, http.MethodPost, "/plans", planRequest{Request: invalid, Mode: "full"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Budget must contain numeric values"}, body.Errors)

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewBufferString("{"))
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_UnknownPlan(t *testing.T) {
	s := newServer(t, nil)

	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/plans/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/plans/7f1c2a9e-4b0d-4f57-9a43-1f0f2b8e6c11", nil).Code)
}

func TestServer_Modes(t *testing.T) {
	s := newServer(t, nil)

	rec := do(t, s, http.MethodGet, "/modes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var modes []plan.ModeInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &modes))
	assert.Len(t, modes, 4)

	rec = do(t, s, http.MethodGet, "/modes/mystery/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary plan.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, plan.Mystery, summary.Mode)
	assert.Len(t, summary.EstimatedTasks, 2)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/modes/weekend/summary", nil).Code)
}

func TestServer_Validate(t *testing.T) {
	s := newServer(t, nil)

	rec := do(t, s, http.MethodPost, "/validate", models.TripRequest{Destination: "Japan", Duration: 3, Budget: "$900"})
	require.Equal(t, http.StatusOK, rec.Code)
	var v models.Validation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.True(t, v.Valid)
	assert.Len(t, v.Warnings, 2)
}

func TestServer_CrewStatus(t *testing.T) {
	s := newServer(t, nil)

	rec := do(t, s, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st crew.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "Limited", st.APIServices)
	assert.Equal(t, 14, st.Agents)
}

func TestServer_ArchiveDisabled(t *testing.T) {
	s := newServer(t, nil)

	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "/archive", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, s, http.MethodGet, "/archive/abc", nil).Code)
}

func TestServer_ArchiveNotFound(t *testing.T) {
	s := newServer(t, newMemArchive())

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/archive/abc", nil).Code)
}
