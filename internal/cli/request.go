package cli

import (
	"fmt"
	"github.com/charmbracelet/huh"
	"github.com/spf13/pflag"
	"go-tripplanner/internal/plan"
	"go-tripplanner/pkg/data"
	"go-tripplanner/pkg/models"
	"golang.org/x/term"
	"os"
	"strconv"
	"strings"
)

type requestFlags struct {
	req  models.TripRequest
	mode string
}

func (f *requestFlags) bind(fs *pflag.FlagSet, withMode bool) {
	fs.StringVar(&f.req.Destination, "destination", "", "country or city to visit")
	fs.StringVar(&f.req.Origin, "origin", "", "where the trip starts")
	fs.StringVar(&f.req.OriginZip, "origin-zip", "", "postal code of the origin")
	fs.IntVar(&f.req.Duration, "duration", 7, "trip length in days")
	fs.StringVar(&f.req.Budget, "budget", "", "total budget, e.g. $2000")
	fs.StringSliceVar(&f.req.Interests, "interests", nil, "comma separated interests")
	fs.StringVar(&f.req.Season, "season", "", "season of travel")
	fs.StringVar(&f.req.TravelType, "travel-type", "", "style of the trip")
	fs.IntVar(&f.req.GroupSize, "group-size", 0, "number of travelers")
	fs.StringVar(&f.req.GroupType, "group-type", "", "couple, solo, family, friends or business group")
	fs.StringSliceVar(&f.req.TransportPreferences, "transport", nil, "comma separated transport preferences")
	fs.StringVar(&f.req.DepartureDate, "departure-date", "", "departure date as YYYY-MM-DD")
	fs.StringVar(&f.req.OriginAirport, "origin-airport", "", "IATA code of the departure airport")
	fs.StringVar(&f.req.DestinationAirport, "destination-airport", "", "IATA code of the arrival airport")
	if withMode {
		fs.StringVarP(&f.mode, "mode", "m", string(plan.Full), "basic, full, mystery or custom")
	}
}

func options(labels []string) []huh.Option[string] {
	res := make([]huh.Option[string], len(labels))
	for i, l := range labels {
		res[i] = huh.NewOption(l, l)
	}
	return res
}

// prompt asks for the trip preferences, starting from the flag values.
func (f *requestFlags) prompt() error {
	duration := strconv.Itoa(f.req.Duration)
	modes := make([]huh.Option[string], 0, 4)
	for _, m := range plan.Modes() {
		modes = append(modes, huh.NewOption(fmt.Sprintf("%s (%s)", m.Mode, m.Description), string(m.Mode)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where do you want to go?").
				Options(options(data.Destinations)...).
				Value(&f.req.Destination),
			huh.NewInput().
				Title("Where are you traveling from?").
				Placeholder("USA").
				Value(&f.req.Origin),
			huh.NewSelect[string]().
				Title("Travel style").
				Options(options(data.TravelTypes)...).
				Value(&f.req.TravelType),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Interests").
				Options(options(data.Interests)...).
				Value(&f.req.Interests),
			huh.NewSelect[string]().
				Title("Season").
				Options(options(data.Seasons)...).
				Value(&f.req.Season),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Duration in days").
				Value(&duration).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a whole number of days")
					}
					return nil
				}),
			huh.NewInput().
				Title("Budget").
				Placeholder("$2000").
				Value(&f.req.Budget),
			huh.NewSelect[string]().
				Title("Who is traveling?").
				Options(options(data.GroupTypes)...).
				Value(&f.req.GroupType),
			huh.NewMultiSelect[string]().
				Title("Transport preferences").
				Options(options(data.TransportPreferences)...).
				Value(&f.req.TransportPreferences),
			huh.NewSelect[string]().
				Title("Planning mode").
				Options(modes...).
				Value(&f.mode),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	f.req.Duration, _ = strconv.Atoi(strings.TrimSpace(duration))
	return nil
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
