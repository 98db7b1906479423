// Package storage persists the task collection to a single YAML document.
// A missing or corrupt file degrades to an empty task list rather than
// failing startup; save failures are reported to the caller, who logs them
// and keeps running with in-memory state.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/suhan647/task-planner/pkg/dategrid"
	"github.com/suhan647/task-planner/pkg/task"
)

const (
	// dateLayout is the ISO-8601 day format used on the wire. Day
	// resolution keeps the round-trip lossless.
	dateLayout = "2006-01-02"

	// FileName is the task document inside the data directory.
	FileName = "tasks.yaml"
)

// record is the wire shape of one task.
type record struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
	Created  string `yaml:"created,omitempty"`
}

// document is the persisted file layout.
type document struct {
	Updated string   `yaml:"updated"`
	Tasks   []record `yaml:"tasks"`
}

// Store persists tasks under a data directory.
type Store struct {
	Root string // e.g. ~/.local/share/task-planner
}

// NewStore creates a Store rooted at the given directory, creating it if
// needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{Root: root}, nil
}

// Path returns the task file path.
func (s *Store) Path() string {
	return filepath.Join(s.Root, FileName)
}

// Load reads the persisted task list. A missing or corrupt file yields an
// empty list and a nil error so startup never fails on bad state; only a
// real read failure is returned.
func (s *Store) Load() ([]task.Task, error) {
	data, err := os.ReadFile(s.Path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s is corrupt, starting with an empty task list: %v\n", FileName, err)
		return nil, nil
	}

	var tasks []task.Task
	for _, r := range doc.Tasks {
		t, err := r.toTask()
		if err != nil {
			continue // skip broken records
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Save writes the task list, replacing the previous document.
func (s *Store) Save(tasks []task.Task) error {
	doc := document{
		Updated: time.Now().UTC().Format(time.RFC3339),
		Tasks:   make([]record, 0, len(tasks)),
	}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, toRecord(t))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", FileName, err)
	}
	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", FileName, err)
	}
	return nil
}

// Clear removes all persisted state.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func toRecord(t task.Task) record {
	r := record{
		ID:       t.ID,
		Title:    t.Title,
		Category: string(t.Category),
		Start:    t.StartDate.Format(dateLayout),
		End:      t.EndDate.Format(dateLayout),
	}
	if !t.CreatedAt.IsZero() {
		r.Created = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return r
}

func (r record) toTask() (task.Task, error) {
	start, err := time.ParseInLocation(dateLayout, r.Start, time.UTC)
	if err != nil {
		return task.Task{}, fmt.Errorf("parsing start date %q: %w", r.Start, err)
	}
	end, err := time.ParseInLocation(dateLayout, r.End, time.UTC)
	if err != nil {
		return task.Task{}, fmt.Errorf("parsing end date %q: %w", r.End, err)
	}

	t := task.Task{
		ID:        r.ID,
		Title:     r.Title,
		Category:  task.Category(r.Category),
		StartDate: dategrid.Normalize(start),
		EndDate:   dategrid.Normalize(end),
	}
	if r.Created != "" {
		if created, err := time.Parse(time.RFC3339, r.Created); err == nil {
			t.CreatedAt = created
		}
	}
	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	return t, nil
}
