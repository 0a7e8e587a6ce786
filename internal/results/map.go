package results

import (
	"fmt"
	"go-tripplanner/pkg/models"
	"strings"
	"time"
)

// Lookup finds the output that belongs to a section. Task names are matched
// on the section keyword first; only an unnamed output at the section's
// layout position is taken positionally. Lookup never panics on short or
// reordered output sequences.
func Lookup(outputs []models.TaskOutput, s Section) (models.TaskOutput, bool) {
	if !s.Valid() {
		return models.TaskOutput{}, false
	}

	keyword := s.Keyword()
	for _, o := range outputs {
		if name := label(o); name != "" && strings.Contains(strings.ToLower(name), keyword) {
			return o, true
		}
	}

	if i := s.Index(); i >= 0 && i < len(outputs) && label(outputs[i]) == "" {
		return outputs[i], true
	}
	return models.TaskOutput{}, false
}

func label(o models.TaskOutput) string {
	if o.Name != "" {
		return o.Name
	}
	return o.Kind
}

// Map resolves every requested section into a view. Sections without an
// output carry their placeholder text.
func Map(outputs []models.TaskOutput, sections []Section) []models.SectionView {
	views := make([]models.SectionView, 0, len(sections))
	for _, s := range sections {
		if !s.Valid() {
			continue
		}
		v := models.SectionView{Key: s.Key(), Title: s.Title(), Content: s.Placeholder()}
		if o, ok := Lookup(outputs, s); ok {
			v.Content = o.Raw
			v.TaskName = label(o)
			v.Ready = true
		}
		views = append(views, v)
	}
	return views
}

// MapResult is Map over a possibly nil result.
func MapResult(result *models.PlanResult, sections []Section) []models.SectionView {
	if result == nil {
		return Map(nil, sections)
	}
	return Map(result.Outputs, sections)
}

// Export builds the structured document of a finished run. A nil result has
// nothing to export.
func Export(id string, req models.TripRequest, result *models.PlanResult, now time.Time) (models.PlanExport, bool) {
	if result == nil {
		return models.PlanExport{}, false
	}

	export := models.PlanExport{
		ID:          id,
		Destination: req.Destination,
		Duration:    req.Duration,
		Budget:      req.Budget,
		Mode:        result.Mode,
		GeneratedAt: now.UTC(),
		Sections:    make(map[string]models.ExportSection),
	}
	for _, s := range AllSections() {
		o, ok := Lookup(result.Outputs, s)
		if !ok {
			continue
		}
		name := label(o)
		if name == "" {
			name = fmt.Sprintf("Task %d", s.Index())
		}
		export.Sections[s.Key()] = models.ExportSection{Content: o.Raw, TaskName: name}
	}
	return export, true
}
