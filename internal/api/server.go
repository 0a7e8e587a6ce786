package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/asynkron/protoactor-go/actor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	crewActor "go-tripplanner/internal/agents/crew/actor"
	"go-tripplanner/internal/archive"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/plan"
	"go-tripplanner/pkg/logger"
	"go-tripplanner/pkg/memory/buffer"
	"go-tripplanner/pkg/messages"
	"go-tripplanner/pkg/models"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const sweepInterval = time.Minute

// Archive is the plan store the API reads and the crew actors write.
type Archive interface {
	Save(ctx context.Context, export models.PlanExport) (string, error)
	Get(ctx context.Context, id string) (models.PlanExport, error)
	List(ctx context.Context, limit int) ([]archive.Entry, error)
}

type planRequest struct {
	Request models.TripRequest `json:"request"`
	Mode    string             `json:"mode"`
}

type getStatus struct {
	Status models.Status `json:"status"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

type Server struct {
	ac            *actor.RootContext
	crew          *crew.Crew
	archive       Archive
	server        *http.Server
	requests      *requestsCache
	statusTimeout time.Duration
	retention     time.Duration
	done          chan struct{}
	stopOnce      sync.Once
}

// New wires the routes. archive may be nil, which disables the archive
// endpoints and plan archiving.
func New(ac *actor.RootContext, c *crew.Crew, store Archive, cfg config.Server) *Server {
	s := &Server{
		ac:            ac,
		crew:          c,
		archive:       store,
		requests:      newRequestsCache(),
		statusTimeout: cfg.StatusTimeout,
		retention:     cfg.PlanRetention,
		done:          make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(logMiddleware())

	r.Post("/plans", s.newPlan)
	r.Get("/plans/{id}", s.planStatus)
	r.Get("/plans/{id}/export", s.planExport)
	r.Get("/plans/{id}/transcript", s.planTranscript)
	r.Get("/modes", s.modes)
	r.Get("/modes/{mode}/summary", s.modeSummary)
	r.Post("/validate", s.validate)
	r.Get("/status", s.crewStatus)
	r.Get("/archive", s.archiveList)
	r.Get("/archive/{id}", s.archiveGet)

	s.server = &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("http server starting")
	go s.evictLoop()
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop shuts the http server down and stops every crew actor.
func (s *Server) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	err := s.server.Shutdown(ctx)
	for _, pid := range s.requests.all() {
		s.ac.Stop(pid)
	}
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) evictLoop() {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-t.C:
			s.sweep(now)
		}
	}
}

// sweep stops the crew actors of plans that finished at least the retention
// before now and returns how many were evicted. Archived plans stay readable
// through the archive routes.
func (s *Server) sweep(now time.Time) int {
	for id, pid := range s.requests.running() {
		res, err := s.ac.RequestFuture(pid, messages.GetStatus{}, s.statusTimeout).Result()
		if err != nil {
			log.Warn().Str(logger.RequestIDField, id.String()).Err(err).Msg("dropping unreachable crew actor")
			s.requests.remove(id)
			continue
		}
		if status, ok := res.(models.Status); ok && status.State.Done() {
			s.requests.finish(id, now)
		}
	}

	expired := s.requests.expired(now.Add(-s.retention))
	for id, pid := range expired {
		s.ac.Stop(pid)
		s.requests.remove(id)
		log.Debug().Str(logger.RequestIDField, id.String()).Msg("crew actor evicted")
	}
	return len(expired)
}

func (s *Server) newPlan(w http.ResponseWriter, r *http.Request) {
	log.Debug().Msg("new plan request")
	cmd := planRequest{}
	if err := unmarshalRequestBody(r, &cmd); err != nil {
		log.Debug().Err(err).Msg("cannot parse body")
		respondError(w, r, http.StatusBadRequest, errorResponse{Error: "unable to parse body"})
		return
	}

	mode, err := plan.ParseMode(cmd.Mode)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if v := cmd.Request.Normalized().Validate(); !v.Valid {
		respondError(w, r, http.StatusUnprocessableEntity, errorResponse{Error: "invalid trip request", Errors: v.Errors})
		return
	}

	decider := func(reason interface{}) actor.Directive {
		log.Error().Msgf("handling failure for child. reason: %v", reason)
		return actor.StopDirective
	}
	strategy := actor.NewOneForOneStrategy(1, 10000, decider)

	var store crewActor.Archiver
	if s.archive != nil {
		store = s.archive
	}
	props := actor.PropsFromProducer(crewActor.New(s.crew, store), actor.WithSupervisor(strategy))
	pid := s.ac.Spawn(props)

	id := uuid.New()
	s.requests.add(id, pid)
	s.ac.Send(pid, messages.NewTrip{RequestID: id, Request: cmd.Request, Mode: string(mode)})

	log.Debug().Str(logger.RequestIDField, id.String()).Str(logger.ModeField, string(mode)).Msg("crew has been started")
	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, struct {
		Id   string    `json:"id"`
		Mode plan.Mode `json:"mode"`
	}{id.String(), mode})
}

func (s *Server) planStatus(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ask(w, r, messages.GetStatus{})
	if !ok {
		return
	}
	status, ok := res.(models.Status)
	if !ok {
		log.Error().Msgf("unknown status from actor: %T", res)
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: "unknown status"})
		return
	}
	render.JSON(w, r, getStatus{status})
}

func (s *Server) planExport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ask(w, r, messages.GetExport{})
	if !ok {
		return
	}
	export, ok := res.(models.PlanExport)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: "unknown export"})
		return
	}
	render.JSON(w, r, export)
}

func (s *Server) planTranscript(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ask(w, r, messages.GetTranscript{})
	if !ok {
		return
	}
	transcript, ok := res.([]buffer.Memory)
	if !ok {
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: "unknown transcript"})
		return
	}
	render.JSON(w, r, struct {
		Transcript []buffer.Memory `json:"transcript"`
	}{transcript})
}

// ask sends msg to the crew actor of the request in the url and writes the
// error response itself when it returns false.
func (s *Server) ask(w http.ResponseWriter, r *http.Request, msg interface{}) (interface{}, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		log.Debug().Msg("cannot parse id")
		respondError(w, r, http.StatusBadRequest, errorResponse{Error: "unable to parse id"})
		return nil, false
	}
	pid, ok := s.requests.get(id)
	if !ok {
		log.Debug().Str(logger.RequestIDField, idParam).Msg("cannot find id")
		respondError(w, r, http.StatusNotFound, errorResponse{Error: "unknown plan"})
		return nil, false
	}

	res, err := s.ac.RequestFuture(pid, msg, s.statusTimeout).Result()
	if err != nil {
		s.requests.remove(id)
		log.Error().Str(logger.RequestIDField, idParam).Err(err).Msg("unable to reach crew actor")
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: "plan is no longer available"})
		return nil, false
	}
	if err, ok := res.(error); ok {
		if errors.Is(err, crewActor.ErrNotFinished) {
			respondError(w, r, http.StatusConflict, errorResponse{Error: err.Error()})
			return nil, false
		}
		log.Error().Str(logger.RequestIDField, idParam).Err(err).Msg("crew actor returned an error")
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return nil, false
	}
	return res, true
}

func (s *Server) modes(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, plan.Modes())
}

func (s *Server) modeSummary(w http.ResponseWriter, r *http.Request) {
	mode, err := plan.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	summary, err := plan.Summarize(mode, s.crew.Enhanced())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	render.JSON(w, r, summary)
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	req := models.TripRequest{}
	if err := unmarshalRequestBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, errorResponse{Error: "unable to parse body"})
		return
	}
	render.JSON(w, r, req.Normalized().Validate())
}

func (s *Server) crewStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.crew.Status())
}

func (s *Server) archiveList(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, r, http.StatusServiceUnavailable, errorResponse{Error: "archive disabled"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.archive.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("unable to list archive")
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: "unable to list archive"})
		return
	}
	render.JSON(w, r, entries)
}

func (s *Server) archiveGet(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, r, http.StatusServiceUnavailable, errorResponse{Error: "archive disabled"})
		return
	}
	export, err := s.archive.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, archive.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, errorResponse{Error: "unknown plan"})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("unable to read archive")
		respondError(w, r, http.StatusInternalServerError, errorResponse{Error: "unable to read archive"})
		return
	}
	render.JSON(w, r, export)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, body errorResponse) {
	render.Status(r, status)
	render.JSON(w, r, body)
}

func logMiddleware() func(http.Handler) http.Handler {
	c := alice.New()
	c = c.Append(hlog.NewHandler(log.Logger))
	c = c.Append(hlog.RemoteAddrHandler("ip"))
	c = c.Append(hlog.UserAgentHandler("agent"))
	c = c.Append(hlog.RefererHandler("referer"))
	c = c.Append(hlog.RequestIDHandler("req_id", "Request-Id"))
	c = c.Append(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("verb", r.Method).
			Stringer("url", r.URL).
			Int("size", size).
			Int("status", status).
			Int64("duration", duration.Milliseconds()).
			Msg("REQ")
	}))

	return c.Then
}

func unmarshalRequestBody(req *http.Request, output interface{}) error {
	if req.Body == nil {
		return errors.New("invalid body in request")
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, 1<<20))
	if err != nil {
		return err
	}
	if err = req.Body.Close(); err != nil {
		return err
	}
	return json.Unmarshal(body, output)
}
