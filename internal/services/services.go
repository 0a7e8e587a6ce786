package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"go-tripplanner/internal/config"
	"go-tripplanner/pkg/logger"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrMissingKey       = errors.New("SERPAPI_KEY is required for enhanced features")
	ErrCurrencyNotFound = errors.New("currency not found in exchange rates")
)

const (
	exchangeTimeout = 10 * time.Second
	searchTimeout   = 30 * time.Second
	localTimeout    = 20 * time.Second
)

// Result is a decoded search response.
type Result map[string]any

// Client wraps the search and exchange-rate APIs. Every call is a single GET
// with its own timeout; failures are logged and returned, never retried.
type Client struct {
	serpKey     string
	exchangeKey string
	searchURL   string
	exchangeURL string
	http        *http.Client
	limiter     *rate.Limiter
}

func New(cfg config.Services) (*Client, error) {
	if strings.TrimSpace(cfg.SerpAPIKey) == "" {
		return nil, ErrMissingKey
	}
	return &Client{
		serpKey:     cfg.SerpAPIKey,
		exchangeKey: cfg.ExchangeKey,
		searchURL:   cfg.SearchBaseURL,
		exchangeURL: strings.TrimRight(cfg.ExchangeBaseURL, "/"),
		http:        &http.Client{},
		limiter:     rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
	}, nil
}

type Rate struct {
	Rate float64 `json:"rate"`
	Date string  `json:"date"`
	From string  `json:"from"`
	To   string  `json:"to"`
}

func (c *Client) ExchangeRate(ctx context.Context, from, to string) (Rate, error) {
	var body struct {
		Date  string             `json:"date"`
		Rates map[string]float64 `json:"rates"`
	}
	var header http.Header
	if c.exchangeKey != "" {
		header = http.Header{"Authorization": []string{"Bearer " + c.exchangeKey}}
	}
	if err := c.get(ctx, "exchange rate", c.exchangeURL+"/"+url.PathEscape(from), nil, header, exchangeTimeout, &body); err != nil {
		return Rate{}, err
	}

	r, ok := body.Rates[to]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrCurrencyNotFound, to)
		log.Error().Err(err).Str(logger.ServiceField, "exchange rate").Msg("api error")
		return Rate{}, err
	}
	return Rate{Rate: r, Date: body.Date, From: from, To: to}, nil
}

type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	TravelClass   string
}

func (c *Client) SearchFlights(ctx context.Context, q FlightQuery) (Result, error) {
	params := url.Values{
		"engine":        {"google_flights"},
		"departure_id":  {q.Origin},
		"arrival_id":    {q.Destination},
		"outbound_date": {q.DepartureDate},
		"currency":      {"USD"},
		"travel_class":  {orDefault(q.TravelClass, "economy")},
	}
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	}
	return c.search(ctx, "flight search", params, searchTimeout)
}

type HotelQuery struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Adults      int
}

func (c *Client) SearchHotels(ctx context.Context, q HotelQuery) (Result, error) {
	adults := q.Adults
	if adults <= 0 {
		adults = 2
	}
	params := url.Values{
		"engine":         {"google_hotels"},
		"q":              {q.Destination},
		"check_in_date":  {q.CheckIn},
		"check_out_date": {q.CheckOut},
		"adults":         {fmt.Sprint(adults)},
		"currency":       {"USD"},
	}
	return c.search(ctx, "hotel search", params, searchTimeout)
}

func (c *Client) LocalInfo(ctx context.Context, location, queryType string) (Result, error) {
	queryType = orDefault(queryType, "visa center")
	params := url.Values{
		"engine":   {"google"},
		"q":        {queryType + " near " + location},
		"location": {location},
	}
	return c.search(ctx, "local search", params, localTimeout)
}

func (c *Client) Directions(ctx context.Context, origin, destination, mode string) (Result, error) {
	params := url.Values{
		"engine":      {"google_maps_directions"},
		"start_addr":  {origin},
		"end_addr":    {destination},
		"travel_mode": {orDefault(mode, "driving")},
	}
	return c.search(ctx, "directions", params, localTimeout)
}

func (c *Client) SearchPlaces(ctx context.Context, location, placeType string) (Result, error) {
	placeType = orDefault(placeType, "tourist_attraction")
	params := url.Values{
		"engine": {"google_maps"},
		"q":      {placeType + " in " + location},
		"type":   {"search"},
	}
	return c.search(ctx, "places search", params, localTimeout)
}

func (c *Client) search(ctx context.Context, name string, params url.Values, timeout time.Duration) (Result, error) {
	params.Set("api_key", c.serpKey)
	res := Result{}
	if err := c.get(ctx, name, c.searchURL, params, nil, timeout, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, name, endpoint string, params url.Values, header http.Header, timeout time.Duration, out any) error {
	err := c.do(ctx, endpoint, params, header, timeout, out)
	if err != nil {
		log.Error().Err(err).Str(logger.ServiceField, name).Msg("api error")
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values, header http.Header, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
