package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/capops/quotanorm/internal/pipeline"
)

// ErrRunNotFound is returned when a run ID is unknown or already evicted.
var ErrRunNotFound = errors.New("run not found")

// Service runs the transform pipeline and keeps completed runs in memory so
// they can be listed, exported, and deleted until eviction.
type Service struct {
	log          *slog.Logger
	maxInputSize int
	maxRuns      int

	mu    sync.RWMutex
	runs  map[string]*Run
	order []string // run IDs in creation order, oldest first
}

// Run is one completed transform with its normalized result.
type Run struct {
	ID        string           `json:"id"`
	Source    string           `json:"source"`
	CreatedAt time.Time        `json:"createdAt"`
	Result    *pipeline.Result `json:"result"`
}

// RunSummary is the listing view of a run, without row data.
type RunSummary struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"createdAt"`
	Shape      string    `json:"shape"`
	Delimiter  string    `json:"delimiter"`
	RowCount   int       `json:"rowCount"`
	GroupCount int       `json:"groupCount"`
}

// NewService creates a Service. maxInputSize caps the accepted input in
// bytes, maxRuns caps retained runs (oldest evicted first). Zero or negative
// values disable the respective limit.
func NewService(log *slog.Logger, maxInputSize, maxRuns int) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		log:          log,
		maxInputSize: maxInputSize,
		maxRuns:      maxRuns,
		runs:         make(map[string]*Run),
	}
}

// Transform normalizes the input text and stores the result as a new run.
// The source string labels where the input came from (file name, "paste",
// "stdin") and is carried through to listings.
func (s *Service) Transform(ctx context.Context, source, text string) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.maxInputSize > 0 && len(text) > s.maxInputSize {
		return nil, fmt.Errorf("input too large: %d bytes exceeds limit of %d", len(text), s.maxInputSize)
	}

	start := time.Now()
	result, err := pipeline.Transform(text)
	if err != nil {
		s.log.Warn("transform failed",
			"source", source,
			"inputBytes", len(text),
			"error", err,
		)
		return nil, err
	}

	run := &Run{
		ID:        uuid.New().String(),
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}

	s.mu.Lock()
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	evicted := s.evictLocked()
	s.mu.Unlock()

	s.log.Info("transform completed",
		"runId", run.ID,
		"source", source,
		"shape", result.Shape.String(),
		"delimiter", result.Delimiter.String(),
		"rows", len(result.Rows),
		"groups", len(result.GroupOrder),
		"evicted", evicted,
		"duration", time.Since(start),
	)

	return run, nil
}

// evictLocked drops oldest runs beyond maxRuns. Caller holds s.mu.
func (s *Service) evictLocked() int {
	if s.maxRuns <= 0 {
		return 0
	}
	evicted := 0
	for len(s.order) > s.maxRuns {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
		evicted++
	}
	return evicted
}

// GetRun returns a stored run by ID.
func (s *Service) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// Runs returns summaries of all stored runs, newest first.
func (s *Service) Runs() []RunSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]RunSummary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		run := s.runs[s.order[i]]
		summaries = append(summaries, RunSummary{
			ID:         run.ID,
			Source:     run.Source,
			CreatedAt:  run.CreatedAt,
			Shape:      run.Result.Shape.String(),
			Delimiter:  run.Result.Delimiter.String(),
			RowCount:   len(run.Result.Rows),
			GroupCount: len(run.Result.GroupOrder),
		})
	}
	return summaries
}

// DeleteRun removes a stored run.
func (s *Service) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	delete(s.runs, id)
	for i, rid := range s.order {
		if rid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// RunCount returns the number of stored runs.
func (s *Service) RunCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}
