package models

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "plain title",
			title: "Backend Engineer",
			want:  "backend-engineer",
		},
		{
			name:  "trailing whitespace",
			title: "Senior QA Engineer ",
			want:  "senior-qa-engineer",
		},
		{
			name:  "punctuation collapses",
			title: "C++ / Rust Developer (Remote)",
			want:  "c-rust-developer-remote",
		},
		{
			name:  "repeated separators",
			title: "Data  --  Analyst",
			want:  "data-analyst",
		},
		{
			name:  "already a slug",
			title: "product-manager",
			want:  "product-manager",
		},
		{
			name:  "empty",
			title: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestJobStatus_IsValid(t *testing.T) {
	for _, s := range []JobStatus{JobStatusActive, JobStatusDraft, JobStatusArchived, JobStatusClosed} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if JobStatus("paused").IsValid() {
		t.Error("unknown status should be invalid")
	}
}
