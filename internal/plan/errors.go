package plan

import "errors"

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrDAGCycle    = errors.New("cycle detected in task dependencies")
	ErrDuplicate   = errors.New("task listed twice")
	ErrInvalidPlan = errors.New("invalid execution plan")
)
