package simulator

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow/internal/models"
)

// memStore is the simulator's in-memory model, seeded at construction.
// Handlers run concurrently, so all access goes through the mutex.
type memStore struct {
	mu sync.RWMutex

	jobs        map[uint]*models.Job
	candidates  map[uint]*models.Candidate
	assessments map[uint]*models.Assessment
	notes       map[uint][]models.Note      // by candidate id
	timelines   map[uint][]models.StageEvent // by candidate id
	responses   map[uint]*models.Response

	nextJobID        uint
	nextCandidateID  uint
	nextAssessmentID uint
	nextNoteID       uint
	nextEventID      uint
	nextResponseID   uint
}

func newMemStore(jobs []models.Job, candidates []models.Candidate, assessments []models.Assessment) *memStore {
	m := &memStore{
		jobs:        make(map[uint]*models.Job),
		candidates:  make(map[uint]*models.Candidate),
		assessments: make(map[uint]*models.Assessment),
		notes:       make(map[uint][]models.Note),
		timelines:   make(map[uint][]models.StageEvent),
		responses:   make(map[uint]*models.Response),
	}
	for i := range jobs {
		j := jobs[i]
		if j.ID == 0 {
			m.nextJobID++
			j.ID = m.nextJobID
		} else if j.ID > m.nextJobID {
			m.nextJobID = j.ID
		}
		m.jobs[j.ID] = &j
	}
	for i := range candidates {
		c := candidates[i]
		m.nextCandidateID++
		c.ID = m.nextCandidateID
		m.candidates[c.ID] = &c
		m.nextEventID++
		m.timelines[c.ID] = []models.StageEvent{{
			ID:          m.nextEventID,
			CandidateID: c.ID,
			Stage:       c.Stage,
			Note:        "application received",
			Timestamp:   c.AppliedAt,
		}}
		if job, ok := m.jobs[c.JobID]; ok {
			job.ApplicationsCount++
		}
	}
	for i := range assessments {
		a := assessments[i]
		m.nextAssessmentID++
		a.ID = m.nextAssessmentID
		for si := range a.Sections {
			a.Sections[si].ID = uint(si + 1)
			a.Sections[si].AssessmentID = a.ID
			for qi := range a.Sections[si].Questions {
				a.Sections[si].Questions[qi].ID = uint(si*100 + qi + 1)
				a.Sections[si].Questions[qi].SectionID = a.Sections[si].ID
			}
		}
		m.assessments[a.ID] = &a
	}
	return m
}

// ---- jobs ----

func (m *memStore) listJobs(status, department, search string) []models.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Job
	needle := strings.ToLower(search)
	for _, j := range m.jobs {
		if status != "" && string(j.Status) != status {
			continue
		}
		if department != "" && j.Department != department {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(j.Title), needle) &&
			!strings.Contains(strings.ToLower(j.Description), needle) {
			continue
		}
		out = append(out, *j)
	}
	sortNewestFirst(out, func(j models.Job) (time.Time, uint) { return j.CreatedAt, j.ID })
	return out
}

func (m *memStore) getJob(id uint) *models.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if j, ok := m.jobs[id]; ok {
		clone := *j
		return &clone
	}
	return nil
}

func (m *memStore) getJobBySlug(slug string) *models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.jobs {
		if j.Slug == slug {
			j.ViewsCount++
			clone := *j
			return &clone
		}
	}
	return nil
}

func (m *memStore) createJob(j models.Job) models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextJobID++
	j.ID = m.nextJobID
	if j.Status == "" {
		j.Status = models.JobStatusDraft
	}
	j.Slug = m.freeSlugLocked(models.Slugify(j.Title), 0)
	now := time.Now()
	j.CreatedAt = now
	j.UpdatedAt = now
	m.jobs[j.ID] = &j
	return j
}

func (m *memStore) freeSlugLocked(base string, excludeID uint) string {
	if base == "" {
		base = "job"
	}
	slug := base
	for n := 2; ; n++ {
		taken := false
		for _, other := range m.jobs {
			if other.Slug == slug && other.ID != excludeID {
				taken = true
				break
			}
		}
		if !taken {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

func (m *memStore) updateJob(id uint, apply func(*models.Job)) *models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil
	}
	apply(j)
	j.Slug = m.freeSlugLocked(models.Slugify(j.Title), id)
	j.UpdatedAt = time.Now()
	clone := *j
	return &clone
}

func (m *memStore) setJobStatus(id uint, status models.JobStatus) *models.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil
	}
	j.Status = status
	j.UpdatedAt = time.Now()
	clone := *j
	return &clone
}

// deleteJob cascades to candidates (with notes, timelines, responses) and
// assessments (with responses), mirroring the persistence layer's semantics.
func (m *memStore) deleteJob(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return false
	}
	delete(m.jobs, id)
	for cid, c := range m.candidates {
		if c.JobID != id {
			continue
		}
		delete(m.candidates, cid)
		delete(m.notes, cid)
		delete(m.timelines, cid)
		for rid, r := range m.responses {
			if r.CandidateID == cid {
				delete(m.responses, rid)
			}
		}
	}
	for aid, a := range m.assessments {
		if a.JobID != id {
			continue
		}
		delete(m.assessments, aid)
		for rid, r := range m.responses {
			if r.AssessmentID == aid {
				delete(m.responses, rid)
			}
		}
	}
	return true
}

func (m *memStore) reorderJobs(ids []uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for pos, id := range ids {
		if j, ok := m.jobs[id]; ok {
			j.Position = pos
		}
	}
}

// ---- candidates ----

func (m *memStore) listCandidates(jobID uint, stage, search string) []models.Candidate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Candidate
	needle := strings.ToLower(search)
	for _, c := range m.candidates {
		if jobID != 0 && c.JobID != jobID {
			continue
		}
		if stage != "" && string(c.Stage) != stage {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Name), needle) &&
			!strings.Contains(strings.ToLower(c.Email), needle) {
			continue
		}
		out = append(out, *c)
	}
	sortNewestFirst(out, func(c models.Candidate) (time.Time, uint) { return c.CreatedAt, c.ID })
	return out
}

func (m *memStore) getCandidate(id uint) *models.Candidate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil
	}
	clone := *c
	clone.Timeline = append([]models.StageEvent{}, m.timelines[id]...)
	notes := append([]models.Note{}, m.notes[id]...)
	sort.Slice(notes, func(i, k int) bool { return notes[i].CreatedAt.After(notes[k].CreatedAt) })
	clone.Notes = notes
	return &clone
}

func (m *memStore) createCandidate(c models.Candidate) models.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCandidateID++
	c.ID = m.nextCandidateID
	if c.Stage == "" {
		c.Stage = models.StageApplied
	}
	now := time.Now()
	if c.AppliedAt.IsZero() {
		c.AppliedAt = now
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	m.candidates[c.ID] = &c
	m.nextEventID++
	m.timelines[c.ID] = []models.StageEvent{{
		ID:          m.nextEventID,
		CandidateID: c.ID,
		Stage:       c.Stage,
		Note:        "application received",
		Timestamp:   c.AppliedAt,
	}}
	if job, ok := m.jobs[c.JobID]; ok {
		job.ApplicationsCount++
	}
	return c
}

func (m *memStore) updateCandidate(id uint, apply func(*models.Candidate)) *models.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil
	}
	apply(c)
	c.UpdatedAt = time.Now()
	clone := *c
	return &clone
}

// setCandidateStage records the transition in the timeline; history entries
// are never removed.
func (m *memStore) setCandidateStage(id uint, stage models.Stage, note, user string) *models.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.candidates[id]
	if !ok {
		return nil
	}
	c.Stage = stage
	c.UpdatedAt = time.Now()
	m.nextEventID++
	m.timelines[id] = append(m.timelines[id], models.StageEvent{
		ID:          m.nextEventID,
		CandidateID: id,
		Stage:       stage,
		Note:        note,
		User:        user,
		Timestamp:   time.Now(),
	})
	clone := *c
	return &clone
}

func (m *memStore) deleteCandidate(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[id]; !ok {
		return false
	}
	delete(m.candidates, id)
	delete(m.notes, id)
	delete(m.timelines, id)
	for rid, r := range m.responses {
		if r.CandidateID == id {
			delete(m.responses, rid)
		}
	}
	return true
}

// ---- notes ----

func (m *memStore) listNotes(candidateID uint) ([]models.Note, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.candidates[candidateID]; !ok {
		return nil, false
	}
	out := append([]models.Note{}, m.notes[candidateID]...)
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, true
}

func (m *memStore) createNote(candidateID uint, n models.Note) (models.Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.candidates[candidateID]; !ok {
		return models.Note{}, false
	}
	m.nextNoteID++
	n.ID = m.nextNoteID
	n.PublicID = uuid.NewString()
	n.CandidateID = candidateID
	n.Mentions = models.ExtractMentions(n.Content)
	n.CreatedAt = time.Now()
	m.notes[candidateID] = append(m.notes[candidateID], n)
	return n, true
}

// ---- assessments ----

func (m *memStore) listAssessments(jobID uint, status string) []models.Assessment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Assessment
	for _, a := range m.assessments {
		if jobID != 0 && a.JobID != jobID {
			continue
		}
		if status != "" && string(a.Status) != status {
			continue
		}
		out = append(out, *a)
	}
	sortNewestFirst(out, func(a models.Assessment) (time.Time, uint) { return a.CreatedAt, a.ID })
	return out
}

func (m *memStore) getAssessment(id uint) *models.Assessment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.assessments[id]; ok {
		clone := *a
		return &clone
	}
	return nil
}

func (m *memStore) createAssessment(a models.Assessment) models.Assessment {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAssessmentID++
	a.ID = m.nextAssessmentID
	if a.Status == "" {
		a.Status = models.AssessmentStatusDraft
	}
	if len(a.Sections) == 0 {
		a.Sections = []models.AssessmentSection{{Title: "Section 1"}}
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	m.assessments[a.ID] = &a
	return a
}

func (m *memStore) updateAssessment(id uint, apply func(*models.Assessment)) *models.Assessment {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assessments[id]
	if !ok {
		return nil
	}
	apply(a)
	a.UpdatedAt = time.Now()
	clone := *a
	return &clone
}

func (m *memStore) deleteAssessment(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assessments[id]; !ok {
		return false
	}
	delete(m.assessments, id)
	for rid, r := range m.responses {
		if r.AssessmentID == id {
			delete(m.responses, rid)
		}
	}
	return true
}

func (m *memStore) submitResponse(assessmentID uint, candidateID uint, answers models.JSONMap, timeSpent int) (*models.Response, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assessments[assessmentID]
	if !ok {
		return nil, false
	}
	score := models.Score(a, answers)
	now := time.Now()
	m.nextResponseID++
	r := &models.Response{
		ID:           m.nextResponseID,
		PublicID:     uuid.NewString(),
		CandidateID:  candidateID,
		AssessmentID: assessmentID,
		Answers:      answers,
		Score:        score.Percent,
		Passed:       score.Percent >= float64(a.PassingScore),
		Submitted:    true,
		TimeSpent:    timeSpent,
		StartedAt:    now,
		SubmittedAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.responses[r.ID] = r
	clone := *r
	return &clone, true
}

// sortNewestFirst orders a slice by created_at descending with id as the
// tiebreak, the same order the persistence layer returns.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, uint)) {
	sort.Slice(items, func(i, k int) bool {
		ti, idi := key(items[i])
		tk, idk := key(items[k])
		if ti.Equal(tk) {
			return idi > idk
		}
		return ti.After(tk)
	})
}
