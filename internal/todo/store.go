// Package todo owns the task list: the Store holds the authoritative
// ordered sequence of tasks and synchronizes every mutation to the
// key-value store; the Controller layers transient UI state on top and
// turns user intents into store operations plus a render model.
package todo

import (
	"encoding/json"

	"github.com/google/uuid"

	"tudu/internal/format"
	"tudu/internal/models"
	"tudu/internal/storage"
)

// Store owns the in-memory task list and persists a full snapshot
// after every mutation. Insertion order is preserved; no operation
// reorders tasks.
type Store struct {
	kv    storage.KV
	tasks []models.Task
}

// NewStore loads the persisted snapshot from kv. A missing or
// unparseable snapshot yields an empty list, never an error.
func NewStore(kv storage.KV) *Store {
	s := &Store{kv: kv}

	raw, err := kv.Get(storage.KeyTodos)
	if err != nil || raw == "" {
		return s
	}
	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return s
	}
	s.tasks = tasks
	return s
}

// Create appends a new task with a fresh id and persists. The caller
// is responsible for rejecting empty task text; the due date is
// normalized here (empty becomes the sentinel). Status mirrors the
// initial completion state and is not maintained afterwards.
func (s *Store) Create(text, dueDate, description string) (models.Task, error) {
	task := models.Task{
		ID:          uuid.NewString(),
		Task:        text,
		DueDate:     format.DueDate(dueDate),
		Completed:   false,
		Status:      "pending",
		Description: description,
	}
	s.tasks = append(s.tasks, task)
	return task, s.save()
}

// Update overwrites the text, normalized due date, and description of
// the task with the given id, preserving its id, completion state, and
// position. A vanished id is a side-effect-free no-op: ok is false and
// nothing is written.
func (s *Store) Update(id, text, dueDate, description string) (models.Task, bool, error) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Task = text
		s.tasks[i].DueDate = format.DueDate(dueDate)
		s.tasks[i].Description = description
		return s.tasks[i], true, s.save()
	}
	return models.Task{}, false, nil
}

// Get returns the task with the given id, if present
func (s *Store) Get(id string) (models.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Delete removes the task with the given id if present. It persists
// either way, so deleting twice is indistinguishable from deleting
// once.
func (s *Store) Delete(id string) error {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.save()
}

// DeleteMany removes every task whose id appears in ids, persisting a
// single snapshot. Ids not present in the list are ignored.
func (s *Store) DeleteMany(ids []string) error {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if _, gone := drop[t.ID]; !gone {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return s.save()
}

// Toggle flips the completion flag of the task with the given id; a
// vanished id is a no-op without a write.
func (s *Store) Toggle(id string) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			return s.save()
		}
	}
	return nil
}

// ClearAll empties the list. An already-empty store skips the
// redundant write.
func (s *Store) ClearAll() error {
	if len(s.tasks) == 0 {
		return nil
	}
	s.tasks = nil
	return s.save()
}

// Filter returns the tasks matching the criterion in original order.
// An unrecognized criterion returns an empty slice.
func (s *Store) Filter(criterion models.Filter) []models.Task {
	switch criterion {
	case models.FilterAll:
		out := make([]models.Task, len(s.tasks))
		copy(out, s.tasks)
		return out
	case models.FilterPending:
		var out []models.Task
		for _, t := range s.tasks {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return out
	case models.FilterCompleted:
		var out []models.Task
		for _, t := range s.tasks {
			if t.Completed {
				out = append(out, t)
			}
		}
		return out
	default:
		return nil
	}
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// save writes the full current snapshot under the todos key
func (s *Store) save() error {
	snapshot := s.tasks
	if snapshot == nil {
		snapshot = []models.Task{}
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.kv.Set(storage.KeyTodos, string(data))
}
