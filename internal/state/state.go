// Package state holds the application's in-memory view of the data it has
// fetched: the job board, the candidate pipeline and the UI theme. Every
// container fronts the API client; nothing here touches storage directly.
package state

import (
	"context"
	"sync"

	"github.com/talentflow/talentflow/internal/client"
	"github.com/talentflow/talentflow/internal/models"
)

// SettingsWriter persists user preferences that must survive restarts.
// The store's settings collection satisfies it.
type SettingsWriter interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
}

const themeKey = "theme"

// AppState is the composition root's state container. Build one per
// application; there is no package-level instance.
type AppState struct {
	Jobs       *JobsState
	Candidates *CandidatesState
	Theme      *ThemeState
}

// New wires the containers to the given client. settings may be nil, in
// which case the theme is session-only.
func New(c *client.Client, settings SettingsWriter) *AppState {
	return &AppState{
		Jobs:       &JobsState{api: c.Jobs()},
		Candidates: &CandidatesState{api: c.Candidates()},
		Theme:      &ThemeState{settings: settings, mode: "light"},
	}
}

// JobsState caches the most recently loaded job page plus its filters.
type JobsState struct {
	mu      sync.RWMutex
	api     *client.JobsService
	jobs    []models.Job
	meta    client.Meta
	filters client.JobListParams
	err     error
}

// Load fetches a page of jobs and replaces the cached view.
func (s *JobsState) Load(ctx context.Context, params client.JobListParams) error {
	page, err := s.api.List(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = params
	s.err = err
	if err != nil {
		return err
	}
	s.jobs = page.Data
	s.meta = page.Meta
	return nil
}

// Refresh re-runs the last load with the same filters.
func (s *JobsState) Refresh(ctx context.Context) error {
	s.mu.RLock()
	params := s.filters
	s.mu.RUnlock()
	return s.Load(ctx, params)
}

// Jobs returns the cached page.
func (s *JobsState) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// Meta returns the cached pagination metadata.
func (s *JobsState) Meta() client.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Err returns the error from the last load, if any.
func (s *JobsState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Create adds a job and refreshes the cached page so ordering and
// pagination counts stay server-authoritative.
func (s *JobsState) Create(ctx context.Context, input client.JobInput) (*models.Job, error) {
	job, err := s.api.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return job, err
	}
	return job, nil
}

// Update edits a job in place in the cached page.
func (s *JobsState) Update(ctx context.Context, id uint, input client.JobInput) (*models.Job, error) {
	job, err := s.api.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs[i] = *job
			break
		}
	}
	s.mu.Unlock()
	return job, nil
}

// Reorder applies the new ordering optimistically, then tells the server.
// On failure the previous ordering is restored and the error returned.
func (s *JobsState) Reorder(ctx context.Context, ids []uint) error {
	s.mu.Lock()
	previous := s.jobs
	byID := make(map[uint]models.Job, len(previous))
	for _, j := range previous {
		byID[j.ID] = j
	}
	reordered := make([]models.Job, 0, len(previous))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			reordered = append(reordered, j)
		}
	}
	s.jobs = reordered
	s.mu.Unlock()

	if err := s.api.Reorder(ctx, ids); err != nil {
		s.mu.Lock()
		s.jobs = previous
		s.mu.Unlock()
		return err
	}
	return nil
}

// Delete removes a job and drops it from the cached page.
func (s *JobsState) Delete(ctx context.Context, id uint) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			break
		}
	}
	if s.meta.Total > 0 {
		s.meta.Total--
	}
	return nil
}

// CandidatesState caches the most recently loaded candidate page.
type CandidatesState struct {
	mu         sync.RWMutex
	api        *client.CandidatesService
	candidates []models.Candidate
	meta       client.Meta
	filters    client.CandidateListParams
	err        error
}

// Load fetches a page of candidates and replaces the cached view.
func (s *CandidatesState) Load(ctx context.Context, params client.CandidateListParams) error {
	page, err := s.api.List(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = params
	s.err = err
	if err != nil {
		return err
	}
	s.candidates = page.Data
	s.meta = page.Meta
	return nil
}

// Refresh re-runs the last load with the same filters.
func (s *CandidatesState) Refresh(ctx context.Context) error {
	s.mu.RLock()
	params := s.filters
	s.mu.RUnlock()
	return s.Load(ctx, params)
}

// Candidates returns the cached page.
func (s *CandidatesState) Candidates() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Meta returns the cached pagination metadata.
func (s *CandidatesState) Meta() client.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Err returns the error from the last load, if any.
func (s *CandidatesState) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Create adds a candidate and refreshes the cached page.
func (s *CandidatesState) Create(ctx context.Context, input client.CandidateInput) (*models.Candidate, error) {
	candidate, err := s.api.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx); err != nil {
		return candidate, err
	}
	return candidate, nil
}

// SetStage moves a candidate through the pipeline and updates the cached
// entry with the server's view, which includes the new timeline entry.
func (s *CandidatesState) SetStage(ctx context.Context, id uint, stage, note string) (*models.Candidate, error) {
	candidate, err := s.api.SetStage(ctx, id, stage, note)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			s.candidates[i] = *candidate
			break
		}
	}
	s.mu.Unlock()
	return candidate, nil
}

// Delete removes a candidate and drops it from the cached page.
func (s *CandidatesState) Delete(ctx context.Context, id uint) error {
	if err := s.api.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			s.candidates = append(s.candidates[:i], s.candidates[i+1:]...)
			break
		}
	}
	if s.meta.Total > 0 {
		s.meta.Total--
	}
	return nil
}

// ThemeState holds the UI theme and mirrors it into settings so the
// choice survives restarts.
type ThemeState struct {
	mu       sync.RWMutex
	settings SettingsWriter
	mode     string
}

// Restore loads the persisted theme, keeping the default when none is set.
func (t *ThemeState) Restore(ctx context.Context) error {
	if t.settings == nil {
		return nil
	}
	mode, err := t.settings.Get(ctx, themeKey)
	if err != nil {
		return err
	}
	if mode != "" {
		t.mu.Lock()
		t.mode = mode
		t.mu.Unlock()
	}
	return nil
}

// Mode returns the current theme.
func (t *ThemeState) Mode() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// Set switches the theme and persists it.
func (t *ThemeState) Set(ctx context.Context, mode string) error {
	t.mu.Lock()
	t.mode = mode
	t.mu.Unlock()
	if t.settings == nil {
		return nil
	}
	return t.settings.Set(ctx, themeKey, mode)
}

// Toggle flips between light and dark.
func (t *ThemeState) Toggle(ctx context.Context) error {
	next := "dark"
	if t.Mode() == "dark" {
		next = "light"
	}
	return t.Set(ctx, next)
}
