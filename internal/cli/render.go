package cli

import (
	"encoding/json"
	"fmt"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go-tripplanner/internal/results"
	"go-tripplanner/pkg/models"
	"golang.org/x/term"
	"io"
	"os"
	"strings"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	pendingStyle = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// terminal reports whether w is a terminal, which enables styling.
func terminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func markdown(views []models.SectionView) string {
	var sb strings.Builder
	for _, v := range views {
		sb.WriteString("## " + v.Title + "\n\n")
		sb.WriteString(strings.TrimSpace(v.Content) + "\n\n")
	}
	return sb.String()
}

// writeSections prints the views. Terminals get glamour output, anything
// else gets the plain markdown.
func writeSections(w io.Writer, views []models.SectionView, format string) error {
	switch format {
	case formatMarkdown:
		_, err := io.WriteString(w, markdown(views))
		return err
	case formatText, "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if !terminal(w) {
		for _, v := range views {
			if _, err := fmt.Fprintf(w, "%s\n\n%s\n\n", strings.ToUpper(v.Title), strings.TrimSpace(v.Content)); err != nil {
				return err
			}
		}
		return nil
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	for _, v := range views {
		fmt.Fprintln(w, headerStyle.Render(v.Title))
		if !v.Ready {
			fmt.Fprintln(w, pendingStyle.Render(v.Content))
			fmt.Fprintln(w)
			continue
		}
		body := v.Content
		if err == nil {
			if out, rErr := r.Render(v.Content); rErr == nil {
				body = out
			}
		}
		fmt.Fprintln(w, body)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exportViews turns an archived document back into views, in section order.
func exportViews(e models.PlanExport) []models.SectionView {
	views := make([]models.SectionView, 0, len(e.Sections))
	for _, s := range results.AllSections() {
		sec, ok := e.Sections[s.Key()]
		if !ok {
			continue
		}
		views = append(views, models.SectionView{Key: s.Key(), Title: s.Title(), Content: sec.Content, TaskName: sec.TaskName, Ready: true})
	}
	return views
}
