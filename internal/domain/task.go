package domain

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type TaskCategory string

const (
	CategoryBug         TaskCategory = "bug"
	CategoryFeature     TaskCategory = "feature"
	CategoryImprovement TaskCategory = "improvement"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryBug, CategoryFeature, CategoryImprovement:
		return true
	}
	return false
}

// Task is a work item owned by exactly one organization. AssignedTo is
// always a subset of that organization's members.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	Category    TaskCategory
	AssignedTo  []string // user ids
	OrgID       string
	CreatedBy   string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAssignee reports whether userID is in the task's assignee set.
func (t Task) IsAssignee(userID string) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}
