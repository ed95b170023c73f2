package models

// Task represents a single todo entry. The JSON field names match the
// persisted snapshot, so data written by earlier versions keeps loading.
//
// Status is written once at creation, mirroring Completed, and never
// updated afterwards. Completed is the source of truth; Status is kept
// only for snapshot compatibility.
type Task struct {
	ID          string `json:"id"`
	Task        string `json:"task"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Filter selects a subset of tasks for display
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)
