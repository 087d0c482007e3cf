package models

import (
	"encoding/json"
	"strconv"
)

// ScoreResult is the outcome of auto-grading one response.
type ScoreResult struct {
	Earned   int     // points from correctly answered auto-gradable questions
	Possible int     // total points across auto-gradable questions
	Percent  float64 // 0 when nothing is auto-gradable
}

// Score auto-grades answers against the assessment's questions. Choice
// questions are graded against their correct answers; numeric questions are
// graded in-range when min/max are set. Text and file questions need human
// review and do not count toward the auto-graded total.
func Score(a *Assessment, answers JSONMap) ScoreResult {
	var res ScoreResult
	for _, section := range a.Sections {
		for i := range section.Questions {
			q := &section.Questions[i]
			answer, answered := answers[strconv.FormatUint(uint64(q.ID), 10)]

			switch q.Type {
			case QuestionSingleChoice:
				res.Possible += q.Points
				if answered && q.CorrectAnswer != nil {
					if got, ok := answer.(string); ok && got == *q.CorrectAnswer {
						res.Earned += q.Points
					}
				}
			case QuestionMultiChoice:
				res.Possible += q.Points
				if answered && sameChoiceSet(answer, q.CorrectAnswers) {
					res.Earned += q.Points
				}
			case QuestionNumeric:
				if q.Min == nil && q.Max == nil {
					continue
				}
				res.Possible += q.Points
				if v, ok := toFloat(answer); answered && ok {
					if (q.Min == nil || v >= *q.Min) && (q.Max == nil || v <= *q.Max) {
						res.Earned += q.Points
					}
				}
			}
		}
	}
	if res.Possible > 0 {
		res.Percent = float64(res.Earned) / float64(res.Possible) * 100
	}
	return res
}

// sameChoiceSet compares a decoded JSON answer (expected []any of strings)
// against the correct answer set, ignoring order.
func sameChoiceSet(answer any, correct StringList) bool {
	raw, ok := answer.([]any)
	if !ok || len(raw) != len(correct) {
		return false
	}
	want := make(map[string]int, len(correct))
	for _, c := range correct {
		want[c]++
	}
	for _, r := range raw {
		s, ok := r.(string)
		if !ok || want[s] == 0 {
			return false
		}
		want[s]--
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
