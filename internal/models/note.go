package models

import (
	"regexp"
	"time"
)

// Note is an append-only comment on a candidate. Notes are never edited in
// place; corrections are new notes.
type Note struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	PublicID    string     `json:"publicId" gorm:"uniqueIndex;size:36"`
	CandidateID uint       `json:"candidateId" gorm:"index"`
	Author      string     `json:"author"`
	Content     string     `json:"content"`
	Mentions    StringList `json:"mentions" gorm:"type:text"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index"`
}

var mentionPattern = regexp.MustCompile(`@([A-Za-z][\w.-]*)`)

// ExtractMentions returns the distinct "@name" tokens embedded in content,
// in order of first appearance, without the leading @.
func ExtractMentions(content string) []string {
	seen := make(map[string]bool)
	var mentions []string
	for _, m := range mentionPattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			mentions = append(mentions, m[1])
		}
	}
	return mentions
}
