// Package registry holds the in-memory collection of manual test records
// and the operations that mutate and summarize it.
//
// A Registry is owned by a single session and is not safe for concurrent
// use. Callers receive copies of records; the only way to change a record
// is through Add, UpdateStatus and Remove.
package registry

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Placeholders applied by Add when the optional fields are empty.
const (
	DefaultDescription    = "No description provided."
	DefaultExpectedResult = "No expected result specified."
)

const maxIDAttempts = 8

var (
	// ErrEmptyTitle is returned by Add when the title is blank after trimming.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrIDCollision is returned by Add when the ID generator keeps
	// producing identifiers that are already in use.
	ErrIDCollision = errors.New("could not generate a unique record id")
)

// Record is a user-authored manual test case plus its most recent outcome.
type Record struct {
	ID             string
	Title          string
	Description    string
	ExpectedResult string
	Status         Status
	LastRunAt      time.Time // zero until the first status update
}

// HasRun reports whether the record's status has ever been updated.
func (r Record) HasRun() bool {
	return !r.LastRunAt.IsZero()
}

// Stats are record counts by status.
type Stats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Pass    int `json:"pass"`
	Fail    int `json:"fail"`
}

// Registry is an ordered, most-recent-first collection of records.
type Registry struct {
	records []Record
	now     func() time.Time
	newID   func() string
	hooks   []Hook
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the time source used to stamp LastRunAt.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// WithHook registers h to be called after every effective mutation.
func WithHook(h Hook) Option {
	return func(r *Registry) {
		if h != nil {
			r.hooks = append(r.hooks, h)
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add creates a Pending record and inserts it at the front.
// A blank title leaves the registry unchanged and returns ErrEmptyTitle.
func (r *Registry) Add(title, description, expectedResult string) (Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Record{}, ErrEmptyTitle
	}
	id, err := r.uniqueID()
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:             id,
		Title:          title,
		Description:    orDefault(description, DefaultDescription),
		ExpectedResult: orDefault(expectedResult, DefaultExpectedResult),
		Status:         StatusPending,
	}
	r.records = slices.Insert(r.records, 0, rec)
	r.emit(Event{Kind: EventAdded, Record: rec, Previous: StatusPending})
	return rec, nil
}

// UpdateStatus sets the record's status and stamps LastRunAt with the
// current time. Selecting the current status again still refreshes the
// timestamp. Unknown ids and out-of-range statuses are ignored.
func (r *Registry) UpdateStatus(id string, status Status) {
	if !status.Valid() {
		return
	}
	i := r.index(id)
	if i < 0 {
		return
	}
	prev := r.records[i].Status
	r.records[i].Status = status
	r.records[i].LastRunAt = r.now()
	r.emit(Event{Kind: EventStatusChanged, Record: r.records[i], Previous: prev})
}

// Remove deletes the record with the given id. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	i := r.index(id)
	if i < 0 {
		return
	}
	rec := r.records[i]
	r.records = slices.Delete(r.records, i, i+1)
	r.emit(Event{Kind: EventRemoved, Record: rec, Previous: rec.Status})
}

// FilteredView returns the records matching f in registry order.
func (r *Registry) FilteredView(f Filter) []Record {
	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		if f.Matches(rec.Status) {
			out = append(out, rec)
		}
	}
	return out
}

// Stats counts records by status.
func (r *Registry) Stats() Stats {
	s := Stats{Total: len(r.records)}
	for _, rec := range r.records {
		switch rec.Status {
		case StatusPending:
			s.Pending++
		case StatusPass:
			s.Pass++
		case StatusFail:
			s.Fail++
		}
	}
	return s
}

// Get returns a copy of the record with the given id.
func (r *Registry) Get(id string) (Record, bool) {
	i := r.index(id)
	if i < 0 {
		return Record{}, false
	}
	return r.records[i], true
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

func (r *Registry) index(id string) int {
	return slices.IndexFunc(r.records, func(rec Record) bool { return rec.ID == id })
}

func (r *Registry) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := r.newID()
		if id != "" && r.index(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDCollision
}

// orDefault keeps leading indentation so numbered steps survive; only
// trailing whitespace is dropped.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
