package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/tmc/langchaingo/llms"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/services"
	"go-tripplanner/internal/tasks"
	"go-tripplanner/pkg/data"
	"go-tripplanner/pkg/models"
	"go-tripplanner/pkg/prompts"
	"go-tripplanner/pkg/template"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLiveData = 6000

// Model is the language model a worker talks to.
type Model interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// Lookups are the live-data calls a task can use.
type Lookups interface {
	ExchangeRate(ctx context.Context, from, to string) (services.Rate, error)
	SearchFlights(ctx context.Context, q services.FlightQuery) (services.Result, error)
	SearchHotels(ctx context.Context, q services.HotelQuery) (services.Result, error)
	LocalInfo(ctx context.Context, location, queryType string) (services.Result, error)
	Directions(ctx context.Context, origin, destination, mode string) (services.Result, error)
	SearchPlaces(ctx context.Context, location, placeType string) (services.Result, error)
}

type Handler struct {
	model   Model
	lookups Lookups
}

// New builds a handler. lookups may be nil, in which case tasks run on the
// model's own knowledge.
func New(model Model, lookups Lookups) *Handler {
	return &Handler{
		model:   model,
		lookups: lookups,
	}
}

type Input struct {
	Agent    roles.Agent
	Task     tasks.Task
	Request  models.TripRequest
	Context  string
	Enhanced bool
}

type prompt struct {
	Role           string
	Backstory      string
	Goal           string
	Context        string
	Description    string
	LiveData       string
	ExpectedOutput string
}

// Solve runs one task: live data first when the run is enhanced, then the
// model call. Any failure is returned in the result and ends the run.
func (h *Handler) Solve(ctx context.Context, in Input) models.HandlerResult {
	var liveData string
	if in.Enhanced && h.lookups != nil && in.Task.Lookup != tasks.LookupNone {
		var err error
		liveData, err = h.liveData(ctx, in.Task.Lookup, in.Request)
		if err != nil {
			return models.HandlerResult{Error: fmt.Errorf("lookup: %w", err)}
		}
	}

	question, err := template.Parse(prompts.AgentTaskTemplate, prompt{
		Role:           in.Agent.Name,
		Backstory:      in.Agent.Backstory,
		Goal:           in.Agent.Goal,
		Context:        in.Context,
		Description:    in.Task.Description,
		LiveData:       liveData,
		ExpectedOutput: in.Task.ExpectedOutput,
	})
	if err != nil {
		return models.HandlerResult{Error: fmt.Errorf("execute: %w", err)}
	}

	answer, err := h.model.Call(ctx, question, llms.WithTemperature(in.Agent.LLM.Temperature))
	if err != nil {
		return models.HandlerResult{Question: question, Error: fmt.Errorf("call: %w", err)}
	}

	return models.HandlerResult{
		Question: question,
		Answer:   strings.TrimSpace(answer),
	}
}

func (h *Handler) liveData(ctx context.Context, lookup tasks.Lookup, req models.TripRequest) (string, error) {
	var v any
	var err error
	switch lookup {
	case tasks.LookupExchangeRate:
		code, ok := data.CurrencyFor(req.Destination)
		if !ok || code == "USD" {
			return "", nil
		}
		v, err = h.lookups.ExchangeRate(ctx, "USD", code)
	case tasks.LookupVisaCenters:
		location := req.Origin
		if req.OriginZip != "" {
			location = strings.TrimSpace(req.OriginZip + " " + req.Origin)
		}
		if location == "" {
			location = req.Destination
		}
		v, err = h.lookups.LocalInfo(ctx, location, "visa center")
	case tasks.LookupFlights:
		if req.OriginAirport == "" || req.DestinationAirport == "" || req.DepartureDate == "" {
			return "", nil
		}
		v, err = h.lookups.SearchFlights(ctx, services.FlightQuery{
			Origin:        req.OriginAirport,
			Destination:   req.DestinationAirport,
			DepartureDate: req.DepartureDate,
			ReturnDate:    returnDate(req),
		})
	case tasks.LookupHotels:
		if req.DepartureDate == "" {
			return "", nil
		}
		v, err = h.lookups.SearchHotels(ctx, services.HotelQuery{
			Destination: req.Destination,
			CheckIn:     req.DepartureDate,
			CheckOut:    returnDate(req),
			Adults:      req.GroupSizeOr(2),
		})
	case tasks.LookupPlaces:
		v, err = h.localTransport(ctx, req)
	default:
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return render(v)
}

func (h *Handler) localTransport(ctx context.Context, req models.TripRequest) (any, error) {
	stations, err := h.lookups.SearchPlaces(ctx, req.Destination, "transit_station")
	if err != nil {
		return nil, err
	}
	if req.DestinationAirport == "" {
		return map[string]any{"stations": stations}, nil
	}
	route, err := h.lookups.Directions(ctx, req.DestinationAirport+" airport", req.Destination, "transit")
	if err != nil {
		return nil, err
	}
	return map[string]any{"stations": stations, "airport_transfer": route}, nil
}

// returnDate is the departure date plus the trip duration, or empty when the
// departure date does not parse.
func returnDate(req models.TripRequest) string {
	d, err := time.Parse(time.DateOnly, req.DepartureDate)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, req.Duration).Format(time.DateOnly)
}

func render(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal live data: %w", err)
	}
	if len(b) > maxLiveData {
		n := maxLiveData
		for n > 0 && !utf8.RuneStart(b[n]) {
			n--
		}
		b = append(b[:n:n], "\n..."...)
	}
	return string(b), nil
}
