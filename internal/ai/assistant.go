package ai

import "context"

// Briefing is a generated preparation note for an interviewer.
type Briefing struct {
	Note string
	Raw  string
}

// BriefRequest carries the scheduling context the note is written from.
type BriefRequest struct {
	Candidate  string
	JobTitle   string
	Category   string
	Completed  []string
	StepNumber int
	TotalSteps int
}

// Briefer generates a short briefing note for a scheduled interview.
type Briefer interface {
	Brief(ctx context.Context, req *BriefRequest) (*Briefing, error)
}
