// Package export converts entity collections to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/talentflow/talentflow/internal/models"
)

// Filename builds the conventional export filename: base plus a timestamp
// with colons replaced by hyphens so it is safe on every filesystem.
func Filename(base string, t time.Time) string {
	stamp := strings.ReplaceAll(t.Format(time.RFC3339), ":", "-")
	return fmt.Sprintf("%s_%s.csv", base, stamp)
}

// Jobs writes the jobs collection as CSV.
func Jobs(w io.Writer, jobs []models.Job) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "title", "slug", "department", "location", "employment_type",
		"experience_level", "salary_min", "salary_max", "status", "tags",
		"applications", "views", "created_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, j := range jobs {
		row := []string{
			formatID(j.ID), j.Title, j.Slug, j.Department, j.Location,
			j.EmploymentType, j.ExperienceLevel,
			formatIntPtr(j.SalaryMin), formatIntPtr(j.SalaryMax),
			string(j.Status), strings.Join(j.Tags, "; "),
			strconv.Itoa(j.ApplicationsCount), strconv.Itoa(j.ViewsCount),
			formatTime(j.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Candidates writes the flat candidate columns.
func Candidates(w io.Writer, candidates []models.Candidate) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "name", "email", "phone", "experience_years", "skills",
		"location", "stage", "job_id", "applied_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range candidates {
		if err := cw.Write(candidateRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CandidatesWithHistory writes one row per candidate per stage-history entry.
// Candidates without history still get one row with empty history columns.
func CandidatesWithHistory(w io.Writer, candidates []models.Candidate) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "name", "email", "phone", "experience_years", "skills",
		"location", "stage", "job_id", "applied_at",
		"history_stage", "history_note", "history_user", "history_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range candidates {
		base := candidateRow(c)
		if len(c.Timeline) == 0 {
			if err := cw.Write(append(base, "", "", "", "")); err != nil {
				return err
			}
			continue
		}
		for _, e := range c.Timeline {
			row := append(append([]string{}, base...),
				string(e.Stage), e.Note, e.User, formatTime(e.Timestamp))
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Assessments writes assessment summaries.
func Assessments(w io.Writer, assessments []models.Assessment) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "title", "job_id", "status", "time_limit_minutes",
		"passing_score", "sections", "questions", "created_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range assessments {
		questions := 0
		for _, s := range a.Sections {
			questions += len(s.Questions)
		}
		row := []string{
			formatID(a.ID), a.Title, formatID(a.JobID), string(a.Status),
			strconv.Itoa(a.TimeLimit), strconv.Itoa(a.PassingScore),
			strconv.Itoa(len(a.Sections)), strconv.Itoa(questions),
			formatTime(a.CreatedAt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Responses flattens submissions to one row per answered question.
func Responses(w io.Writer, responses []models.Response) error {
	cw := csv.NewWriter(w)
	header := []string{
		"response_id", "candidate_id", "assessment_id", "question_id",
		"answer", "score_percent", "passed", "submitted_at",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range responses {
		for questionID, answer := range r.Answers {
			row := []string{
				r.PublicID, formatID(r.CandidateID), formatID(r.AssessmentID),
				questionID, formatAnswer(answer),
				strconv.FormatFloat(r.Score, 'f', 1, 64),
				strconv.FormatBool(r.Passed),
				formatTimePtr(r.SubmittedAt),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func candidateRow(c models.Candidate) []string {
	return []string{
		formatID(c.ID), c.Name, c.Email, c.Phone,
		strconv.Itoa(c.Experience), strings.Join(c.Skills, "; "),
		c.Location, string(c.Stage), formatID(c.JobID), formatTime(c.AppliedAt),
	}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func formatIntPtr(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func formatAnswer(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []any:
		parts := make([]string, len(a))
		for i, p := range a {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, "; ")
	case float64:
		return strconv.FormatFloat(a, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(a)
	}
}
