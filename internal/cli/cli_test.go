package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/tmc/langchaingo/llms"
	"go-tripplanner/internal/agents/roles"
	"go-tripplanner/internal/config"
	"go-tripplanner/internal/crew"
	"go-tripplanner/internal/llm"
	"go-tripplanner/internal/plan"
	"go-tripplanner/pkg/models"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedModel struct {
	calls int
}

func (m *cannedModel) Call(_ context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	m.calls++
	if strings.Contains(prompt, "Create optimized") {
		return "Day 1: arrive", nil
	}
	return "notes", nil
}

func setup(t *testing.T) (*cannedModel, Factory) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "SERPAPI_KEY", "EXCHANGE_API_KEY", "TRIPPLANNER_LLM_PROVIDER", "TRIPPLANNER_ADDR", "TRIPPLANNER_CONFIG"} {
		t.Setenv(k, "")
	}
	t.Setenv("TRIPPLANNER_LOG_LEVEL", "error")
	t.Setenv("TRIPPLANNER_ARCHIVE", filepath.Join(t.TempDir(), "plans.db"))

	m := &cannedModel{}
	factory := func(cfg config.Config) (*crew.Crew, error) {
		return crew.New(cfg, llm.Static(m, roles.LLMConfig{Provider: "test", Temperature: 0.7}), crew.WithLookups(nil)), nil
	}
	return m, factory
}

func execute(t *testing.T, factory Factory, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(factory)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestModes(t *testing.T) {
	_, factory := setup(t)

	out, err := execute(t, factory, "modes")
	require.NoError(t, err)
	for _, m := range []string{"basic", "full", "mystery", "custom"} {
		assert.Contains(t, out, m)
	}
}

func TestSummary(t *testing.T) {
	_, factory := setup(t)

	out, err := execute(t, factory, "summary", "basic", "--format", "json")
	require.NoError(t, err)
	var s plan.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, plan.Basic, s.Mode)
	assert.Len(t, s.EstimatedTasks, 6)
	assert.False(t, s.APIDependent)

	out, err = execute(t, factory, "summary", "custom")
	require.NoError(t, err)
	assert.Contains(t, out, "Adaptive based on preferences")

	_, err = execute(t, factory, "summary", "weekend")
	assert.ErrorIs(t, err, plan.ErrUnknownMode)
}

func TestValidate(t *testing.T) {
	_, factory := setup(t)

	out, err := execute(t, factory, "validate", "--destination", "Japan", "--budget", "$2000", "--origin", "USA", "--interests", "food")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	out, err = execute(t, factory, "validate", "--destination", "Japan", "--budget", "lots")
	assert.ErrorIs(t, err, crew.ErrInvalidRequest)
	assert.Contains(t, out, "Budget must contain numeric values")
}

func TestPlan_ArchivesAndShows(t *testing.T) {
	m, factory := setup(t)

	out, err := execute(t, factory, "plan", "--mode", "basic", "--destination", "🇯🇵 Japan", "--origin", "USA",
		"--duration", "5", "--budget", "$3000", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, 6, m.calls)

	var export models.PlanExport
	require.NoError(t, json.Unmarshal([]byte(out), &export))
	assert.Equal(t, "Japan", export.Destination)
	assert.Equal(t, "basic", export.Mode)
	assert.Equal(t, "Day 1: arrive", export.Sections["itinerary"].Content)

	out, err = execute(t, factory, "history")
	require.NoError(t, err)
	assert.Contains(t, out, export.ID)
	assert.Contains(t, out, "Japan")

	out, err = execute(t, factory, "history", "show", export.ID, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## Day-by-Day Itinerary")
	assert.Contains(t, out, "Day 1: arrive")
}

func TestPlan_TextOutput(t *testing.T) {
	_, factory := setup(t)

	out, err := execute(t, factory, "--no-archive", "plan", "--mode", "mystery", "--destination", "Peru", "--duration", "4", "--budget", "$1500")
	require.NoError(t, err)
	assert.Contains(t, out, "TRAVEL STORY")
	assert.NotContains(t, out, "ITINERARY")
}

func TestPlan_Rejects(t *testing.T) {
	m, factory := setup(t)

	_, err := execute(t, factory, "plan", "--mode", "weekend", "--destination", "Peru", "--budget", "$1")
	assert.ErrorIs(t, err, plan.ErrUnknownMode)

	_, err = execute(t, factory, "plan", "--destination", "Peru", "--budget", "$1", "--duration", "0")
	assert.ErrorIs(t, err, crew.ErrInvalidRequest)
	assert.Zero(t, m.calls)
}

func TestTask(t *testing.T) {
	m, factory := setup(t)

	out, err := execute(t, factory, "task", "detailed_itinerary", "--destination", "Japan", "--budget", "$900", "--duration", "3")
	require.NoError(t, err)
	assert.Equal(t, 1, m.calls)
	assert.Contains(t, out, "DETAILED_ITINERARY")
	assert.Contains(t, out, "Day 1: arrive")

	_, err = execute(t, factory, "task", "sightseeing")
	assert.Error(t, err)
}

func TestHistory_Disabled(t *testing.T) {
	_, factory := setup(t)

	_, err := execute(t, factory, "--no-archive", "history")
	assert.True(t, errors.Is(err, errArchiveDisabled))
}
