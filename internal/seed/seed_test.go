package seed

import (
	"testing"
	"time"

	"github.com/talentflow/talentflow/internal/models"
)

func TestDataset_Counts(t *testing.T) {
	jobs, candidates, assessments := Dataset(20, 100)

	if len(jobs) != 20 {
		t.Fatalf("got %d jobs, want 20", len(jobs))
	}
	if len(candidates) != 100 {
		t.Fatalf("got %d candidates, want 100", len(candidates))
	}
	for _, a := range assessments {
		if a.JobID == 0 {
			t.Error("assessment not attached to a job")
		}
	}
}

func TestJobs_ValidEnumsAndSlugs(t *testing.T) {
	jobs := Jobs(50)
	seen := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if !j.Status.IsValid() {
			t.Errorf("job %q has invalid status %q", j.Title, j.Status)
		}
		if j.Slug == "" || seen[j.Slug] {
			t.Errorf("job %q has empty or duplicate slug %q", j.Title, j.Slug)
		}
		seen[j.Slug] = true
		if j.SalaryMin == nil || j.SalaryMax == nil || *j.SalaryMin >= *j.SalaryMax {
			t.Errorf("job %q has incoherent salary band", j.Title)
		}
	}
}

func TestCandidates_StageCorrelatesWithAge(t *testing.T) {
	_, candidates, _ := Dataset(10, 200)

	for _, c := range candidates {
		if !c.Stage.IsValid() {
			t.Fatalf("candidate %q has invalid stage %q", c.Name, c.Stage)
		}
		daysAgo := int(time.Since(c.AppliedAt).Hours() / 24)
		// fresh applications never sit in a late or terminal stage
		if daysAgo < 3 && c.Stage != models.StageApplied {
			t.Errorf("candidate applied %d days ago but is in %q", daysAgo, c.Stage)
		}
		if c.Stage.IsTerminal() && daysAgo < 30 {
			t.Errorf("candidate applied %d days ago but already terminal (%q)", daysAgo, c.Stage)
		}
		if c.JobID == 0 {
			t.Errorf("candidate %q not attached to a job", c.Name)
		}
	}
}

func TestAssessments_QuestionsAreWellFormed(t *testing.T) {
	jobs := Jobs(40)
	for i := range jobs {
		jobs[i].ID = uint(i + 1)
	}

	assessments := Assessments(jobs)
	if len(assessments) == 0 {
		t.Skip("random draw produced no assessments")
	}

	for _, a := range assessments {
		if a.Status != models.AssessmentStatusPublished {
			t.Errorf("%q status = %q", a.Title, a.Status)
		}
		if len(a.Sections) != 2 {
			t.Fatalf("%q has %d sections, want 2", a.Title, len(a.Sections))
		}
		for _, s := range a.Sections {
			for _, q := range s.Questions {
				if err := q.Validate(); err != nil {
					t.Errorf("%q question %q invalid: %v", a.Title, q.Prompt, err)
				}
			}
		}
	}
}
