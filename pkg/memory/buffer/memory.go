package buffer

import "sync"

// Memories keeps the prompt and answer of every task of a run in order.
type Memories struct {
	mu    sync.Mutex
	Items []Memory `json:"memories"`
}

type Memory struct {
	Task     string `json:"task"`
	Agent    string `json:"agent"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (m *Memories) Add(m2 Memory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Items = append(m.Items, m2)
}

func (m *Memories) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Items)
}

// Snapshot returns a copy of the items.
func (m *Memories) Snapshot() []Memory {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Memory(nil), m.Items...)
}

// Answers maps task names to their answers.
func (m *Memories) Answers() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]string, len(m.Items))
	for _, it := range m.Items {
		res[it.Task] = it.Answer
	}
	return res
}
