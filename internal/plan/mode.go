package plan

import (
	"fmt"
	"strings"
)

type Mode string

const (
	Basic   Mode = "basic"
	Full    Mode = "full"
	Mystery Mode = "mystery"
	Custom  Mode = "custom"
)

var modeDescriptions = []struct {
	mode        Mode
	description string
}{
	{Basic, "Essential trip planning without API features"},
	{Full, "Comprehensive planning with all available features"},
	{Mystery, "Surprise destination with narrative storytelling"},
	{Custom, "Adaptive planning based on user preferences"},
}

// ParseMode maps user input to a mode. An empty string selects Full.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Full, nil
	}
	for _, d := range modeDescriptions {
		if string(d.mode) == s {
			return d.mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) Description() string {
	for _, d := range modeDescriptions {
		if d.mode == m {
			return d.description
		}
	}
	return "Unknown mode"
}

// APIDependent reports whether the mode uses the search services when present.
func (m Mode) APIDependent() bool {
	return m == Full || m == Custom
}

type ModeInfo struct {
	Mode        Mode   `json:"mode"`
	Description string `json:"description"`
}

// Modes lists every mode in a fixed order.
func Modes() []ModeInfo {
	res := make([]ModeInfo, 0, len(modeDescriptions))
	for _, d := range modeDescriptions {
		res = append(res, ModeInfo{Mode: d.mode, Description: d.description})
	}
	return res
}
