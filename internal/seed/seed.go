// Package seed generates plausible demo fixtures: deterministic structure,
// randomized content. The data is for demos, not test fixtures, so no fixed
// PRNG seed is used.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/talentflow/talentflow/internal/models"
)

// role is an internal vocabulary bucket; every generated job and candidate
// is coherent within one role.
type role struct {
	name       string
	department string
	titles     []string
	skills     []string
	baseSalary int // annual, USD
}

var roles = []role{
	{
		name: "frontend", department: "Engineering",
		titles: []string{"Frontend Engineer", "Senior Frontend Engineer", "UI Engineer", "Web Developer"},
		skills: []string{"JavaScript", "TypeScript", "React", "Vue", "CSS", "HTML", "Webpack", "Accessibility"},
		baseSalary: 110000,
	},
	{
		name: "backend", department: "Engineering",
		titles: []string{"Backend Engineer", "Senior Backend Engineer", "API Engineer", "Platform Engineer"},
		skills: []string{"Go", "Python", "PostgreSQL", "Redis", "Kafka", "gRPC", "Docker", "Kubernetes"},
		baseSalary: 120000,
	},
	{
		name: "fullstack", department: "Engineering",
		titles: []string{"Fullstack Engineer", "Senior Fullstack Engineer", "Software Engineer"},
		skills: []string{"TypeScript", "Node.js", "React", "PostgreSQL", "GraphQL", "AWS", "CI/CD"},
		baseSalary: 115000,
	},
	{
		name: "mobile", department: "Engineering",
		titles: []string{"iOS Engineer", "Android Engineer", "Mobile Engineer"},
		skills: []string{"Swift", "Kotlin", "React Native", "Flutter", "REST", "App Store"},
		baseSalary: 115000,
	},
	{
		name: "design", department: "Design",
		titles: []string{"Product Designer", "UX Designer", "Senior Product Designer"},
		skills: []string{"Figma", "Prototyping", "User Research", "Design Systems", "Interaction Design"},
		baseSalary: 95000,
	},
	{
		name: "product", department: "Product",
		titles: []string{"Product Manager", "Senior Product Manager", "Technical Product Manager"},
		skills: []string{"Roadmapping", "User Stories", "Analytics", "A/B Testing", "Stakeholder Management"},
		baseSalary: 125000,
	},
	{
		name: "marketing", department: "Marketing",
		titles: []string{"Growth Marketer", "Content Strategist", "Marketing Manager"},
		skills: []string{"SEO", "Content Marketing", "Paid Acquisition", "Email Campaigns", "Analytics"},
		baseSalary: 85000,
	},
	{
		name: "data", department: "Data",
		titles: []string{"Data Analyst", "Data Engineer", "Machine Learning Engineer"},
		skills: []string{"SQL", "Python", "dbt", "Spark", "Airflow", "Tableau", "Statistics"},
		baseSalary: 120000,
	},
}

var firstNames = []string{
	"Alex", "Sam", "Jordan", "Taylor", "Morgan", "Casey", "Riley", "Jamie",
	"Maria", "James", "Priya", "Wei", "Fatima", "Lucas", "Elena", "Noah",
	"Aisha", "Daniel", "Sofia", "Omar", "Hana", "Mateo", "Ines", "Viktor",
}

var lastNames = []string{
	"Smith", "Johnson", "Garcia", "Chen", "Patel", "Kim", "Nguyen", "Silva",
	"Mueller", "Rossi", "Kowalski", "Tanaka", "Okafor", "Haddad", "Jensen",
	"Novak", "Petrov", "Andersson", "Costa", "Dubois",
}

var locations = []string{
	"Remote", "New York, NY", "San Francisco, CA", "Austin, TX", "Berlin",
	"London", "Amsterdam", "Toronto", "Lisbon", "Warsaw",
}

var employmentTypes = []string{"full-time", "full-time", "full-time", "part-time", "contract"}

var experienceLevels = []string{"junior", "mid", "senior", "lead"}

// stage thresholds: days since application -> furthest plausible stage.
var stageThresholds = []struct {
	days  int
	stage models.Stage
}{
	{3, models.StageApplied},
	{7, models.StageScreening},
	{14, models.StageTechnical},
	{21, models.StageInterview},
	{30, models.StageOffer},
}

// Jobs generates n job postings across the role vocabularies.
func Jobs(n int) []models.Job {
	jobs := make([]models.Job, 0, n)
	for i := 0; i < n; i++ {
		r := roles[rand.Intn(len(roles))]
		title := r.titles[rand.Intn(len(r.titles))]
		base := r.baseSalary + rand.Intn(40000) - 10000
		min := base
		max := base + 20000 + rand.Intn(30000)
		created := time.Now().AddDate(0, 0, -rand.Intn(90))

		status := models.JobStatusActive
		switch rand.Intn(10) {
		case 0:
			status = models.JobStatusDraft
		case 1:
			status = models.JobStatusArchived
		case 2:
			status = models.JobStatusClosed
		}

		jobs = append(jobs, models.Job{
			Title:           title,
			Slug:            fmt.Sprintf("%s-%d", models.Slugify(title), i+1),
			Department:      r.department,
			Location:        locations[rand.Intn(len(locations))],
			EmploymentType:  employmentTypes[rand.Intn(len(employmentTypes))],
			ExperienceLevel: experienceLevels[rand.Intn(len(experienceLevels))],
			SalaryMin:       &min,
			SalaryMax:       &max,
			Status:          status,
			Description:     fmt.Sprintf("We are hiring a %s to join our %s team.", title, r.department),
			Requirements:    fmt.Sprintf("Solid experience with %s.", strings.Join(pick(r.skills, 3), ", ")),
			Responsibilities: fmt.Sprintf("Own and ship %s work end to end.", r.name),
			Benefits:        "Flexible hours, remote budget, learning stipend.",
			Tags:            pick(r.skills, 3+rand.Intn(3)),
			Position:        i,
			CreatedAt:       created,
			UpdatedAt:       created,
		})
	}
	return jobs
}

// Candidates generates n candidates spread over the given jobs. Stage
// correlates with days since application via fixed thresholds.
func Candidates(jobs []models.Job, n int) []models.Candidate {
	if len(jobs) == 0 {
		return nil
	}
	candidates := make([]models.Candidate, 0, n)
	for i := 0; i < n; i++ {
		job := jobs[rand.Intn(len(jobs))]
		r := roleForDepartment(job.Department)
		first := firstNames[rand.Intn(len(firstNames))]
		last := lastNames[rand.Intn(len(lastNames))]
		daysAgo := rand.Intn(60)
		applied := time.Now().AddDate(0, 0, -daysAgo)
		stage := stageForAge(daysAgo)

		candidates = append(candidates, models.Candidate{
			Name:       first + " " + last,
			Email:      fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), rand.Intn(1000)),
			Phone:      fmt.Sprintf("+1-555-%03d-%04d", rand.Intn(1000), rand.Intn(10000)),
			Experience: rand.Intn(15),
			Skills:     pick(r.skills, 2+rand.Intn(4)),
			Location:   locations[rand.Intn(len(locations))],
			Stage:      stage,
			JobID:      job.ID,
			AppliedAt:  applied,
			CreatedAt:  applied,
			UpdatedAt:  applied,
		})
	}
	return candidates
}

// stageForAge maps application age to a pipeline stage. Old applications
// resolve to a terminal stage, skewed toward rejection.
func stageForAge(daysAgo int) models.Stage {
	for _, t := range stageThresholds {
		if daysAgo < t.days {
			return t.stage
		}
	}
	switch rand.Intn(4) {
	case 0:
		return models.StageHired
	case 1:
		return models.StageWithdrawn
	default:
		return models.StageRejected
	}
}

func roleForDepartment(department string) role {
	matching := make([]role, 0, 4)
	for _, r := range roles {
		if r.department == department {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		return roles[rand.Intn(len(roles))]
	}
	return matching[rand.Intn(len(matching))]
}

// pick returns up to n distinct random elements of pool.
func pick(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	idx := rand.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

// Dataset generates a coherent demo dataset. The returned closure shape
// matches store.Bootstrap.
func Dataset(jobCount, candidateCount int) ([]models.Job, []models.Candidate, []models.Assessment) {
	jobs := Jobs(jobCount)
	for i := range jobs {
		jobs[i].ID = uint(i + 1)
	}
	candidates := Candidates(jobs, candidateCount)
	assessments := Assessments(jobs)
	return jobs, candidates, assessments
}
