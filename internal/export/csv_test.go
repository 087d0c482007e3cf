package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/talentflow/talentflow/internal/models"
)

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV does not parse: %v", err)
	}
	return records
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	got := Filename("jobs", at)
	want := "jobs_2026-03-14T09-26-53Z.csv"
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
	if strings.ContainsRune(got, ':') {
		t.Error("filename must not contain colons")
	}
}

func TestJobs_RoundTripsThroughCSVReader(t *testing.T) {
	salaryMin := 90000
	jobs := []models.Job{
		{
			ID:         1,
			Title:      `Senior "Go" Engineer, Platform`,
			Slug:       "senior-go-engineer-platform",
			Department: "Engineering",
			Status:     models.JobStatusActive,
			SalaryMin:  &salaryMin,
			Tags:       models.StringList{"go", "distributed\nsystems"},
			CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := Jobs(&buf, jobs); err != nil {
		t.Fatal(err)
	}

	records := readAll(t, &buf)
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	row := records[1]
	// the csv reader must recover the raw values: quotes, commas and
	// newlines survive the round trip untouched
	if row[1] != `Senior "Go" Engineer, Platform` {
		t.Errorf("title = %q", row[1])
	}
	if row[10] != "go; distributed\nsystems" {
		t.Errorf("tags = %q", row[10])
	}
	if row[7] != "90000" || row[8] != "" {
		t.Errorf("salary columns = %q, %q", row[7], row[8])
	}
	if row[13] != "2026-01-02T03:04:05Z" {
		t.Errorf("created_at = %q", row[13])
	}
}

func TestCandidatesWithHistory(t *testing.T) {
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	candidates := []models.Candidate{
		{
			ID: 1, Name: "Ada Lovelace", Email: "ada@example.com",
			Stage: models.StageScreening, JobID: 3,
			Timeline: []models.StageEvent{
				{Stage: models.StageApplied, Note: "application received", Timestamp: at},
				{Stage: models.StageScreening, Note: "phone screen", User: "recruiter", Timestamp: at.Add(time.Hour)},
			},
		},
		{
			ID: 2, Name: "No History", Email: "none@example.com",
			Stage: models.StageApplied, JobID: 3,
		},
	}

	var buf bytes.Buffer
	if err := CandidatesWithHistory(&buf, candidates); err != nil {
		t.Fatal(err)
	}

	records := readAll(t, &buf)
	// header + 2 history rows + 1 empty-history row
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	if records[1][10] != "applied" || records[2][10] != "screening" {
		t.Errorf("history stages = %q, %q", records[1][10], records[2][10])
	}
	if records[2][12] != "recruiter" {
		t.Errorf("history user = %q", records[2][12])
	}

	// the candidate without history still exports, with blank history columns
	last := records[3]
	if last[1] != "No History" {
		t.Errorf("row 3 name = %q", last[1])
	}
	for i := 10; i < 14; i++ {
		if last[i] != "" {
			t.Errorf("column %d should be empty, got %q", i, last[i])
		}
	}
}

func TestResponses_OneRowPerAnswer(t *testing.T) {
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	responses := []models.Response{
		{
			PublicID: "a1b2", CandidateID: 1, AssessmentID: 2,
			Answers: models.JSONMap{
				"1": "mvcc",
				"2": []any{"btree", "hash"},
				"3": float64(7),
			},
			Score: 100, Passed: true, SubmittedAt: &at,
		},
	}

	var buf bytes.Buffer
	if err := Responses(&buf, responses); err != nil {
		t.Fatal(err)
	}

	records := readAll(t, &buf)
	if len(records) != 4 {
		t.Fatalf("got %d records, want header + 3 answers", len(records))
	}
	answers := map[string]string{}
	for _, row := range records[1:] {
		answers[row[3]] = row[4]
	}
	if answers["1"] != "mvcc" {
		t.Errorf("answer 1 = %q", answers["1"])
	}
	if answers["2"] != "btree; hash" {
		t.Errorf("answer 2 = %q", answers["2"])
	}
	if answers["3"] != "7" {
		t.Errorf("answer 3 = %q", answers["3"])
	}
}

func TestAssessments_CountsSectionsAndQuestions(t *testing.T) {
	assessments := []models.Assessment{
		{
			ID: 1, Title: "Screen", JobID: 2, Status: models.AssessmentStatusPublished,
			TimeLimit: 60, PassingScore: 70,
			Sections: []models.AssessmentSection{
				{Questions: []models.Question{{}, {}}},
				{Questions: []models.Question{{}}},
			},
		},
	}

	var buf bytes.Buffer
	if err := Assessments(&buf, assessments); err != nil {
		t.Fatal(err)
	}

	records := readAll(t, &buf)
	row := records[1]
	if row[6] != "2" || row[7] != "3" {
		t.Errorf("sections/questions = %q/%q, want 2/3", row[6], row[7])
	}
}
