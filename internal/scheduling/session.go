package scheduling

import (
	"fmt"
	"time"

	"github.com/CharbelDaher34/hair-AI-sub001/internal/hirehub"
	"go.uber.org/zap"
)

// Session is the state of one interview record under construction or edit.
// All updates go through transition handlers so the derived state (the
// sequence resolution and the compatibility result) is recomputed whenever
// an input changes and can never drift from the selections.
type Session struct {
	logger *zap.Logger

	application *hirehub.Application
	interviewer *hirehub.Interviewer
	sequence    []string
	resolution  *Resolution
	compat      *Compatibility

	category string
	date     time.Time
	delivery hirehub.DeliveryType
	aiMode   bool
	notes    string

	// editing references the loaded record when the session edits an
	// existing interview instead of creating one.
	editing *hirehub.Interview

	// epoch invalidates in-flight plan fetches when the selected
	// application changes.
	epoch uint64
}

// NewSession creates an empty scheduling session.
func NewSession(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		logger:   logger,
		delivery: hirehub.DeliveryVideo,
	}
	s.refresh()

	return s
}

// SelectApplication switches the session to another application. All derived
// state is dropped and the returned epoch must accompany the matching
// ApplyPlan call so a slow fetch for a previous selection cannot land here.
func (s *Session) SelectApplication(application *hirehub.Application) uint64 {
	s.application = application
	s.sequence = nil
	s.resolution = nil
	s.category = ""
	s.epoch++
	s.refresh()

	return s.epoch
}

// Epoch returns the token in force for plan fetches.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// ApplyPlan installs a fetched interview plan. A nil plan records that the
// next category could not be determined; the session then falls back to
// manual category selection instead of blocking. The call is ignored when
// epoch is stale, i.e. the application changed while the fetch was in
// flight.
func (s *Session) ApplyPlan(epoch uint64, plan *hirehub.InterviewPlan) bool {
	if epoch != s.epoch {
		s.logger.Debug("discarding stale interview plan",
			zap.Uint64("plan_epoch", epoch),
			zap.Uint64("current_epoch", s.epoch),
		)
		return false
	}

	if plan == nil {
		s.sequence = nil
		s.resolution = nil
		s.refresh()
		return true
	}

	s.sequence = plan.Sequence
	s.resolution = Resolve(plan.Sequence, plan.Completed)
	s.refresh()

	return true
}

// SelectInterviewer sets or clears the chosen interviewer and recomputes the
// compatibility result. A category selection that falls outside the new
// available set is cleared, never silently kept.
func (s *Session) SelectInterviewer(interviewer *hirehub.Interviewer) {
	s.interviewer = interviewer
	s.refresh()
}

// SetAIMode toggles between the AI and the human interviewer path. The AI
// path collects no category and no interviewer: both are dropped, delivery
// is pinned to ai, and the compatibility filter is bypassed. Switching back
// re-enables the filter.
func (s *Session) SetAIMode(enabled bool) {
	if s.aiMode == enabled {
		return
	}

	s.aiMode = enabled
	if enabled {
		s.category = ""
		s.interviewer = nil
		s.delivery = hirehub.DeliveryAI
	} else if s.delivery == hirehub.DeliveryAI {
		s.delivery = hirehub.DeliveryVideo
	}
	s.refresh()
}

// SelectCategory picks the category the interview will be conducted under.
func (s *Session) SelectCategory(category string) error {
	if s.aiMode {
		return fmt.Errorf("ai interviews do not take a category")
	}

	if len(s.compat.Available) > 0 && !s.compat.Allows(category) {
		return fmt.Errorf("category %q is not available for this interviewer", category)
	}

	s.category = category
	return nil
}

// SetDate sets the interview instant.
func (s *Session) SetDate(date time.Time) {
	s.date = date
}

// SetNotes attaches free-text notes.
func (s *Session) SetNotes(notes string) {
	s.notes = notes
}

// SetDelivery sets how the interview is conducted. The ai delivery type is
// reserved for AI mode.
func (s *Session) SetDelivery(delivery hirehub.DeliveryType) error {
	if !delivery.IsValid() {
		return fmt.Errorf("unknown delivery type: %s", delivery)
	}
	if (delivery == hirehub.DeliveryAI) != s.aiMode {
		return fmt.Errorf("delivery type %s requires ai mode", hirehub.DeliveryAI)
	}

	s.delivery = delivery
	return nil
}

// LoadInterview puts the session into edit mode for an existing record. The
// recorded category is preserved as-is; the resolver's suggestion applies to
// new records only.
func (s *Session) LoadInterview(interview *hirehub.Interview) error {
	if interview == nil {
		return fmt.Errorf("interview is required")
	}
	if interview.Status != hirehub.StatusScheduled {
		return fmt.Errorf("interview %s is %s and can no longer be edited", interview.ID, interview.Status)
	}

	s.editing = interview
	s.aiMode = interview.IsAI
	s.delivery = interview.Type
	s.date = interview.When()
	s.notes = interview.Notes
	s.refresh()
	s.category = interview.Category

	return nil
}

// SuggestedCategory returns the resolver's recommended category for new
// records. Empty when editing, in AI mode, when the resolution is unknown or
// complete, or when the chosen interviewer cannot conduct it.
func (s *Session) SuggestedCategory() string {
	if s.editing != nil || s.aiMode {
		return ""
	}
	if s.resolution == nil || s.resolution.Complete {
		return ""
	}
	if s.interviewer != nil && !s.compat.Allows(s.resolution.NextCategory) {
		return ""
	}

	return s.resolution.NextCategory
}

// CategoryOptions returns the categories the session may be scheduled under.
// Empty in AI mode and when the sequence is unknown, in which case the
// category falls back to manual entry.
func (s *Session) CategoryOptions() []string {
	if s.aiMode {
		return nil
	}
	return s.compat.Available
}

// Gate decides whether the session may be submitted. A nil error means the
// draft is ready; otherwise the error is the blocking reason shown to the
// user. No network write happens while Gate fails.
func (s *Session) Gate() error {
	if s.application == nil {
		return fmt.Errorf("an application must be selected")
	}
	if s.date.IsZero() {
		return fmt.Errorf("an interview date must be set")
	}

	if s.aiMode {
		return nil
	}

	if !s.delivery.IsValid() || s.delivery == hirehub.DeliveryAI {
		return fmt.Errorf("a delivery type must be set for human interviews")
	}
	if s.interviewer != nil && s.compat.Blocking() {
		return fmt.Errorf("%s", s.compat.Warning)
	}

	return nil
}

// Draft builds the write payload for the current state. For AI interviews
// the category and interviewer are absent, not blank.
func (s *Session) Draft() (*hirehub.InterviewDraft, error) {
	if err := s.Gate(); err != nil {
		return nil, err
	}

	draft := &hirehub.InterviewDraft{
		ApplicationID: s.application.ID,
		Date:          s.date.UTC().Format(time.RFC3339),
		IsAI:          s.aiMode,
		Notes:         s.notes,
	}

	if s.editing == nil {
		draft.Status = hirehub.StatusScheduled
	}

	if s.aiMode {
		draft.Type = hirehub.DeliveryAI
		return draft, nil
	}

	draft.Type = s.delivery
	if s.category != "" {
		draft.Category = &s.category
	}
	if s.interviewer != nil {
		draft.InterviewerID = &s.interviewer.ID
	}

	return draft, nil
}

// Accessors for the derived state. Callers must treat the results as
// read-only snapshots.

func (s *Session) Application() *hirehub.Application { return s.application }
func (s *Session) Interviewer() *hirehub.Interviewer { return s.interviewer }
func (s *Session) Resolution() *Resolution           { return s.resolution }
func (s *Session) Compatibility() *Compatibility     { return s.compat }
func (s *Session) Category() string                  { return s.category }
func (s *Session) Date() time.Time                   { return s.date }
func (s *Session) Delivery() hirehub.DeliveryType    { return s.delivery }
func (s *Session) Notes() string                     { return s.notes }
func (s *Session) AIMode() bool                      { return s.aiMode }
func (s *Session) Editing() *hirehub.Interview       { return s.editing }

// refresh recomputes the compatibility result from the current selections
// and drops a category selection the new result no longer allows.
func (s *Session) refresh() {
	if s.aiMode {
		s.compat = &Compatibility{Level: WarningNone}
		return
	}

	var certified Certification
	if s.interviewer != nil {
		certified = NewCertification(s.interviewer.InterviewTypes)
	}

	s.compat = Match(s.sequence, certified)

	if s.category != "" && s.interviewer != nil && !s.compat.Allows(s.category) {
		s.logger.Debug("clearing category selection outside the available set",
			zap.String("category", s.category),
		)
		s.category = ""
	}
}
