package scheduling

import (
	"testing"
	"time"

	"github.com/CharbelDaher34/hair-AI-sub001/internal/hirehub"
	"go.uber.org/zap"
)

func newTestSession() *Session {
	return NewSession(zap.NewNop())
}

func planFixture() *hirehub.InterviewPlan {
	return &hirehub.InterviewPlan{
		Sequence:  []string{"phone", "technical", "technical", "final"},
		Completed: []string{"phone"},
	}
}

func TestSessionSubmissionGate(t *testing.T) {
	t.Parallel()

	s := newTestSession()

	if err := s.Gate(); err == nil {
		t.Fatalf("expected gate to fail without an application")
	}

	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	if err := s.Gate(); err == nil {
		t.Fatalf("expected gate to fail without a date")
	}

	if !s.ApplyPlan(epoch, planFixture()) {
		t.Fatalf("expected plan to apply")
	}

	s.SetDate(time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC))
	if err := s.Gate(); err != nil {
		t.Fatalf("unexpected gate error: %v", err)
	}

	draft, err := s.Draft()
	if err != nil {
		t.Fatalf("unexpected draft error: %v", err)
	}
	if draft.Status != hirehub.StatusScheduled {
		t.Fatalf("expected new drafts to start as %s, got %s", hirehub.StatusScheduled, draft.Status)
	}
	if draft.IsAI {
		t.Fatalf("did not expect an ai draft")
	}
}

func TestSessionBlockingInterviewerRefusesSubmission(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	s.ApplyPlan(epoch, planFixture())
	s.SetDate(time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC))

	s.SelectInterviewer(&hirehub.Interviewer{ID: "hr-1", InterviewTypes: []string{"culture"}})

	if !s.Compatibility().Blocking() {
		t.Fatalf("expected a blocking compatibility result")
	}
	if err := s.Gate(); err == nil {
		t.Fatalf("expected gate to refuse a blocked interviewer")
	}
}

func TestSessionAIModeBypassesCompatibility(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	s.ApplyPlan(epoch, planFixture())
	s.SetDate(time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC))
	s.SelectInterviewer(&hirehub.Interviewer{ID: "hr-1", InterviewTypes: []string{"culture"}})

	if err := s.Gate(); err == nil {
		t.Fatalf("expected a blocked gate before switching to ai mode")
	}

	// Switching to the AI path must immediately clear the blocking state.
	s.SetAIMode(true)

	if s.Compatibility().Blocking() {
		t.Fatalf("expected ai mode to bypass the compatibility filter")
	}
	if err := s.Gate(); err != nil {
		t.Fatalf("unexpected gate error in ai mode: %v", err)
	}

	draft, err := s.Draft()
	if err != nil {
		t.Fatalf("unexpected draft error: %v", err)
	}
	if !draft.IsAI {
		t.Fatalf("expected an ai draft")
	}
	if draft.Type != hirehub.DeliveryAI {
		t.Fatalf("expected delivery %s, got %s", hirehub.DeliveryAI, draft.Type)
	}
	if draft.Category != nil || draft.InterviewerID != nil {
		t.Fatalf("ai drafts must not carry a category or interviewer")
	}
}

func TestSessionCategoryClearedWhenInterviewerChanges(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	s.ApplyPlan(epoch, planFixture())

	s.SelectInterviewer(&hirehub.Interviewer{ID: "hr-1", InterviewTypes: []string{"technical", "phone"}})
	if err := s.SelectCategory("technical"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The new interviewer cannot run the selected category: the stale
	// selection must be dropped, not silently kept.
	s.SelectInterviewer(&hirehub.Interviewer{ID: "hr-2", InterviewTypes: []string{"phone"}})

	if s.Category() != "" {
		t.Fatalf("expected category to be cleared, got %q", s.Category())
	}
}

func TestSessionRejectsUnavailableCategory(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	s.ApplyPlan(epoch, planFixture())
	s.SelectInterviewer(&hirehub.Interviewer{ID: "hr-1", InterviewTypes: []string{"phone"}})

	if err := s.SelectCategory("technical"); err == nil {
		t.Fatalf("expected an error for a category outside the available set")
	}

	s.SetAIMode(true)
	if err := s.SelectCategory("phone"); err == nil {
		t.Fatalf("expected an error selecting a category in ai mode")
	}
}

func TestSessionStalePlanIsDiscarded(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	stale := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	fresh := s.SelectApplication(&hirehub.Application{ID: "app-2"})

	if s.ApplyPlan(stale, planFixture()) {
		t.Fatalf("expected the stale plan to be discarded")
	}
	if s.Resolution() != nil {
		t.Fatalf("expected no resolution after a discarded plan")
	}

	if !s.ApplyPlan(fresh, planFixture()) {
		t.Fatalf("expected the fresh plan to apply")
	}
	if s.Resolution() == nil {
		t.Fatalf("expected a resolution for the current application")
	}
}

func TestSessionSuggestedCategory(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	s.ApplyPlan(epoch, planFixture())

	if got := s.SuggestedCategory(); got != "technical" {
		t.Fatalf("expected suggestion technical, got %q", got)
	}

	// Suggestion disappears when the interviewer cannot conduct it.
	s.SelectInterviewer(&hirehub.Interviewer{ID: "hr-1", InterviewTypes: []string{"final"}})
	if got := s.SuggestedCategory(); got != "" {
		t.Fatalf("expected no suggestion, got %q", got)
	}

	// No suggestion without a resolution.
	s.SelectInterviewer(nil)
	s.ApplyPlan(s.Epoch(), nil)
	if got := s.SuggestedCategory(); got != "" {
		t.Fatalf("expected no suggestion without a plan, got %q", got)
	}
}

func TestSessionUnknownPlanFallsBackToManualCategory(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})

	// The plan fetch failed: no options, no suggestion, manual entry allowed.
	if !s.ApplyPlan(epoch, nil) {
		t.Fatalf("expected the nil plan to apply")
	}
	if len(s.CategoryOptions()) != 0 {
		t.Fatalf("expected no category options, got %v", s.CategoryOptions())
	}
	if err := s.SelectCategory("technical"); err != nil {
		t.Fatalf("expected manual category selection to work: %v", err)
	}

	s.SetDate(time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC))
	if err := s.Gate(); err != nil {
		t.Fatalf("an unknown plan must not block submission: %v", err)
	}
}

func TestSessionEditPreservesRecordedCategory(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	epoch := s.SelectApplication(&hirehub.Application{ID: "app-1"})
	s.ApplyPlan(epoch, planFixture())

	err := s.LoadInterview(&hirehub.Interview{
		ID:            "iv-1",
		ApplicationID: "app-1",
		Category:      "phone",
		Type:          hirehub.DeliveryVideo,
		Date:          "2026-09-14T10:00:00Z",
		Status:        hirehub.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The resolver points at "technical" but edits keep the recorded value.
	if s.Category() != "phone" {
		t.Fatalf("expected recorded category to be preserved, got %q", s.Category())
	}
	if s.SuggestedCategory() != "" {
		t.Fatalf("expected no suggestion while editing")
	}

	draft, err := s.Draft()
	if err != nil {
		t.Fatalf("unexpected draft error: %v", err)
	}
	if draft.Status != "" {
		t.Fatalf("edits must not reset the status, got %q", draft.Status)
	}
	if draft.Category == nil || *draft.Category != "phone" {
		t.Fatalf("expected draft category phone, got %v", draft.Category)
	}
}

func TestSessionRefusesEditingTerminalInterview(t *testing.T) {
	t.Parallel()

	s := newTestSession()

	for _, status := range []hirehub.Status{hirehub.StatusDone, hirehub.StatusCanceled} {
		err := s.LoadInterview(&hirehub.Interview{ID: "iv-1", Status: status})
		if err == nil {
			t.Fatalf("expected an error editing a %s interview", status)
		}
	}
}

func TestSessionDeliveryRules(t *testing.T) {
	t.Parallel()

	s := newTestSession()

	if err := s.SetDelivery("carrier-pigeon"); err == nil {
		t.Fatalf("expected an error for an unknown delivery type")
	}
	if err := s.SetDelivery(hirehub.DeliveryAI); err == nil {
		t.Fatalf("expected the ai delivery type to require ai mode")
	}
	if err := s.SetDelivery(hirehub.DeliveryPhone); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.SetAIMode(true)
	if s.Delivery() != hirehub.DeliveryAI {
		t.Fatalf("expected ai mode to pin delivery to %s", hirehub.DeliveryAI)
	}
	if err := s.SetDelivery(hirehub.DeliveryVideo); err == nil {
		t.Fatalf("expected human delivery types to be refused in ai mode")
	}
}
