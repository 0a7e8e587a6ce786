package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := "Plan {{.Days}} days in {{.City}}{{if .Note}} ({{.Note}}){{end}}"

	out, err := Parse(text, map[string]any{"Days": 3, "City": "Lisbon", "Note": ""})
	require.NoError(t, err)
	assert.Equal(t, "Plan 3 days in Lisbon", out)

	out, err = Parse(text, struct {
		Days int
		City string
		Note string
	}{5, "Porto", "wine"})
	require.NoError(t, err)
	assert.Equal(t, "Plan 5 days in Porto (wine)", out)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("{{.Missing", nil)
	assert.ErrorContains(t, err, "parse")

	_, err = Parse("{{.City}}", map[string]any{})
	assert.ErrorContains(t, err, "execute")
}
