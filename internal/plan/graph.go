package plan

import (
	"fmt"
	"go-tripplanner/internal/tasks"
)

// dependsFunc returns the kinds a kind must run after.
type dependsFunc func(tasks.Kind) []tasks.Kind

// order sorts the selected kinds so every kind runs after the selected kinds
// it reads from. Among ready kinds the selection order wins, so a selection
// that already satisfies its dependencies is returned unchanged. Dependencies
// on kinds that were not selected are ignored.
func order(selected []tasks.Kind, deps dependsFunc) ([]tasks.Kind, error) {
	index := make(map[tasks.Kind]int, len(selected))
	for i, k := range selected {
		if _, dup := index[k]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, k)
		}
		index[k] = i
	}

	edges := make(map[tasks.Kind][]tasks.Kind, len(selected))
	for _, k := range selected {
		for _, d := range deps(k) {
			if _, ok := index[d]; ok {
				edges[k] = append(edges[k], d)
			}
		}
	}

	if err := checkCycles(selected, edges); err != nil {
		return nil, err
	}

	placed := make(map[tasks.Kind]bool, len(selected))
	res := make([]tasks.Kind, 0, len(selected))
	for len(res) < len(selected) {
		progressed := false
		for _, k := range selected {
			if placed[k] || !ready(edges[k], placed) {
				continue
			}
			placed[k] = true
			res = append(res, k)
			progressed = true
			break
		}
		if !progressed {
			return nil, ErrDAGCycle
		}
	}
	return res, nil
}

func ready(deps []tasks.Kind, placed map[tasks.Kind]bool) bool {
	for _, d := range deps {
		if !placed[d] {
			return false
		}
	}
	return true
}

const (
	white = iota // unvisited
	gray         // on the current path
	black        // done
)

func checkCycles(nodes []tasks.Kind, edges map[tasks.Kind][]tasks.Kind) error {
	colors := make(map[tasks.Kind]int, len(nodes))
	var visit func(k tasks.Kind) bool
	visit = func(k tasks.Kind) bool {
		colors[k] = gray
		for _, next := range edges[k] {
			switch colors[next] {
			case gray:
				return true
			case white:
				if visit(next) {
					return true
				}
			}
		}
		colors[k] = black
		return false
	}

	for _, k := range nodes {
		if colors[k] == white && visit(k) {
			return fmt.Errorf("%w: reached from %s", ErrDAGCycle, k)
		}
	}
	return nil
}
