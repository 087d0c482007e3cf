package models

import (
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

// JobStatus constants define the possible states of a job posting.
const (
	JobStatusActive   JobStatus = "active"
	JobStatusDraft    JobStatus = "draft"
	JobStatusArchived JobStatus = "archived"
	JobStatusClosed   JobStatus = "closed"
)

// IsValid reports whether the status is one of the known values.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusActive, JobStatusDraft, JobStatusArchived, JobStatusClosed:
		return true
	}
	return false
}

// Job represents a job posting.
type Job struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:255"`

	Title           string `json:"title"`
	Department      string `json:"department" gorm:"index"`
	Location        string `json:"location"`
	EmploymentType  string `json:"employmentType"`
	ExperienceLevel string `json:"experienceLevel"`

	// salary range; both nil means undisclosed, equal values mean a scalar
	SalaryMin *int `json:"salaryMin,omitempty"`
	SalaryMax *int `json:"salaryMax,omitempty"`

	Status JobStatus `json:"status" gorm:"index;size:32"`

	Description      string     `json:"description"`
	Requirements     string     `json:"requirements"`
	Responsibilities string     `json:"responsibilities"`
	Benefits         string     `json:"benefits"`
	Tags             StringList `json:"tags" gorm:"type:text"`

	// derived counters, maintained by the store
	ApplicationsCount int `json:"applicationsCount"`
	ViewsCount        int `json:"viewsCount"`

	// ordering on the board; lower comes first
	Position int `json:"position" gorm:"index"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Slugify turns a title into a URL-safe slug: lowercased, alphanumeric runs
// joined by single hyphens, no leading or trailing hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
