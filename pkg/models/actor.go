package models

import (
	"time"
)

// TaskOutput is what a finished task hands back to the crew.
type TaskOutput struct {
	Name  string `json:"name,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Agent string `json:"agent,omitempty"`
	Raw   string `json:"raw"`
}

type PlanResult struct {
	Mode     string       `json:"mode"`
	Enhanced bool         `json:"enhanced"`
	Outputs  []TaskOutput `json:"outputs"`
}

type SectionView struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	TaskName string `json:"task_name,omitempty"`
	Ready    bool   `json:"ready"`
}

type Progress struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Current   string `json:"current,omitempty"`
}

type Status struct {
	ID       string        `json:"id"`
	Mode     string        `json:"mode"`
	State    State         `json:"state"`
	Enhanced bool          `json:"enhanced"`
	Progress Progress      `json:"progress"`
	Sections []SectionView `json:"sections,omitempty"`
	Result   *PlanResult   `json:"result,omitempty"`
	Errs     *Error        `json:"error,omitempty"`
}

type Error struct {
	ErrMessage string     `json:"error,omitempty"`
	Task       string     `json:"task,omitempty"`
	Time       *time.Time `json:"time,omitempty"`
}

func (e Error) Error() string {
	if e.Task == "" {
		return e.ErrMessage
	}
	return e.Task + ": " + e.ErrMessage
}

type HandlerResult struct {
	Question string
	Answer   string
	Error    error
}

type ExportSection struct {
	Content  string `json:"content"`
	TaskName string `json:"task_name"`
}

type PlanExport struct {
	ID          string                   `json:"id,omitempty"`
	Destination string                   `json:"destination"`
	Duration    int                      `json:"duration"`
	Budget      string                   `json:"budget"`
	Mode        string                   `json:"mode"`
	GeneratedAt time.Time                `json:"generated_at"`
	Sections    map[string]ExportSection `json:"sections"`
}
