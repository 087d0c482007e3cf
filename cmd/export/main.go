package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/database"
	"github.com/talentflow/talentflow/internal/export"
	"github.com/talentflow/talentflow/internal/logger"
	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/store"
)

// CSV dump of one collection. Writes to a timestamped file in the output
// directory, or to stdout with -stdout.
func main() {
	collection := flag.String("collection", "candidates", "collection to export: jobs, candidates, history, assessments, responses")
	outDir := flag.String("out", ".", "output directory")
	toStdout := flag.Bool("stdout", false, "write to stdout instead of a file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fatalf("failed to load config: %v", err)
	}

	log := logger.Nop()
	db, err := database.Open(cfg.DatabasePath, log)
	if err != nil {
		fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if !db.Available() {
		fatalf("database %s is not usable", cfg.DatabasePath)
	}

	st := store.New(db, log)
	ctx := context.Background()

	var out io.Writer = os.Stdout
	var path string
	if !*toStdout {
		path = fmt.Sprintf("%s/%s", *outDir, export.Filename(*collection, time.Now()))
		f, err := os.Create(path)
		if err != nil {
			fatalf("failed to create %s: %v", path, err)
		}
		defer f.Close()
		out = f
	}

	switch *collection {
	case "jobs":
		jobs, err := st.Jobs.List(ctx, store.JobFilter{})
		exitOn(err)
		exitOn(export.Jobs(out, jobs))
	case "candidates":
		candidates, err := st.Candidates.List(ctx, store.CandidateFilter{})
		exitOn(err)
		exitOn(export.Candidates(out, candidates))
	case "history":
		candidates, err := st.Candidates.List(ctx, store.CandidateFilter{})
		exitOn(err)
		for i := range candidates {
			timeline, err := st.Candidates.Timeline(ctx, candidates[i].ID)
			exitOn(err)
			candidates[i].Timeline = timeline
		}
		exitOn(export.CandidatesWithHistory(out, candidates))
	case "assessments":
		assessments, err := st.Assessments.List(ctx, store.AssessmentFilter{})
		exitOn(err)
		exitOn(export.Assessments(out, assessments))
	case "responses":
		assessments, err := st.Assessments.List(ctx, store.AssessmentFilter{})
		exitOn(err)
		var all []models.Response
		for _, a := range assessments {
			responses, err := st.Responses.ListByAssessment(ctx, a.ID)
			exitOn(err)
			all = append(all, responses...)
		}
		exitOn(export.Responses(out, all))
	default:
		fatalf("unknown collection %q", *collection)
	}

	if path != "" {
		fmt.Fprintln(os.Stderr, "wrote", path)
	}
}

func exitOn(err error) {
	if err != nil {
		fatalf("export failed: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
