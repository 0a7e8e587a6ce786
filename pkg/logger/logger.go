package logger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"os"
	"time"
)

const (
	AgentNameField = "agent"
	TaskField      = "task"
	ActorIDField   = "actor"
	RequestIDField = "request"
	ModeField      = "mode"
	ServiceField   = "service"
)

// NewGlobal configures the global zerolog logger. Pretty output goes to
// stderr through the console writer.
func NewGlobal(level string, pretty bool) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(l)
	zerolog.DurationFieldUnit = time.Millisecond

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return nil
}
