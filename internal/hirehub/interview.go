package hirehub

import (
	"fmt"
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const apiInterviewsPath = "/interviews"

// Status is the lifecycle status of an interview record.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusDone      Status = "DONE"
	StatusCanceled  Status = "CANCELED"
)

// IsValid checks that the status is a known lifecycle value.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusDone, StatusCanceled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving to next is a legal transition.
// Only SCHEDULED may move, and only to DONE or CANCELED. Both are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusScheduled {
		return false
	}
	return next == StatusDone || next == StatusCanceled
}

// DeliveryType is how an interview is conducted.
type DeliveryType string

const (
	DeliveryPhone DeliveryType = "phone"
	DeliveryVideo DeliveryType = "video"
	DeliveryLive  DeliveryType = "live"
	DeliveryAI    DeliveryType = "ai"
)

// IsValid checks that the delivery type is a known value.
func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliveryPhone, DeliveryVideo, DeliveryLive, DeliveryAI:
		return true
	default:
		return false
	}
}

type Interviews struct {
	Items []*Interview
}

// Interview is an interview record as returned by the backend. Category and
// InterviewerID are empty for AI interviews.
type Interview struct {
	ID            string       `json:"id,omitempty"`
	ApplicationID string       `json:"application_id,omitempty" mapstructure:"application_id"`
	Date          string       `json:"date,omitempty"`
	Type          DeliveryType `json:"type,omitempty"`
	Category      string       `json:"interview_category,omitempty" mapstructure:"interview_category"`
	InterviewerID string       `json:"interviewer_id,omitempty" mapstructure:"interviewer_id"`
	IsAI          bool         `json:"is_ai_interview,omitempty" mapstructure:"is_ai_interview"`
	Status        Status       `json:"status,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

// When parses the interview date. The zero time is returned for empty or
// unparseable dates.
func (i *Interview) When() time.Time {
	t, err := time.Parse(time.RFC3339, i.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// InterviewDraft is the write payload for creating or updating an interview.
// Category and InterviewerID are pointers so the AI path can send explicit
// nulls rather than empty strings.
type InterviewDraft struct {
	ApplicationID string       `json:"application_id"`
	Date          string       `json:"date"`
	Type          DeliveryType `json:"type"`
	Category      *string      `json:"interview_category"`
	InterviewerID *string      `json:"interviewer_id"`
	IsAI          bool         `json:"is_ai_interview"`
	Status        Status       `json:"status,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

// CreateInterview creates a new interview record. The draft's status must be
// SCHEDULED: records are never born terminal.
func (c *Client) CreateInterview(draft *InterviewDraft) (*Interview, error) {
	if draft == nil {
		return nil, fmt.Errorf("interview draft is required")
	}

	if draft.Status == "" {
		draft.Status = StatusScheduled
	}

	if draft.Status != StatusScheduled {
		return nil, fmt.Errorf("new interviews must start as %s, got %s", StatusScheduled, draft.Status)
	}

	apiURL := fmt.Sprintf("%s%s", c.APIURL, apiInterviewsPath)

	var created Interview
	if err := c.sendJSON("POST", apiURL, draft, &created); err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}

	return &created, nil
}

// UpdateInterview patches an existing interview's editable fields.
func (c *Client) UpdateInterview(id string, draft *InterviewDraft) (*Interview, error) {
	if id == "" {
		return nil, fmt.Errorf("interview id is required")
	}
	if draft == nil {
		return nil, fmt.Errorf("interview draft is required")
	}

	apiURL := fmt.Sprintf("%s%s/%s", c.APIURL, apiInterviewsPath, id)

	var updated Interview
	if err := c.sendJSON("PATCH", apiURL, draft, &updated); err != nil {
		return nil, fmt.Errorf("update interview: %w", err)
	}

	return &updated, nil
}

// UpdateInterviewStatus transitions an interview's status. Illegal moves are
// refused locally before any network call.
func (c *Client) UpdateInterviewStatus(interview *Interview, next Status) error {
	if interview == nil {
		return fmt.Errorf("interview is required")
	}

	if !next.IsValid() {
		return fmt.Errorf("unknown interview status: %s", next)
	}

	if !interview.Status.CanTransitionTo(next) {
		return fmt.Errorf("interview %s cannot move from %s to %s", interview.ID, interview.Status, next)
	}

	apiURL := fmt.Sprintf("%s%s/%s", c.APIURL, apiInterviewsPath, interview.ID)

	payload := map[string]Status{"status": next}
	if err := c.sendJSON("PATCH", apiURL, payload, nil); err != nil {
		return fmt.Errorf("update interview status: %w", err)
	}

	interview.Status = next
	return nil
}

// GetInterviews returns the interviews recorded for an application.
func (c *Client) GetInterviews(applicationID string) (*Interviews, error) {
	if applicationID == "" {
		return nil, fmt.Errorf("application id is required")
	}

	apiURL := fmt.Sprintf("%s%s", c.APIURL, apiInterviewsPath)

	q := url.Values{}
	q.Add("application_id", applicationID)
	q.Add("per_page", perPage)

	items, err := c.GetItems(apiURL, q)
	if err != nil {
		return nil, err
	}

	var interviews []*Interview
	if err = mapstructure.Decode(items, &interviews); err != nil {
		c.logger.Warn("some interview records could not be decoded", zap.Error(err))
	}

	return &Interviews{Items: interviews}, nil
}

func (v *Interviews) Len() int {
	return len(v.Items)
}

func (v *Interviews) FindByID(id string) *Interview {
	for _, interview := range v.Items {
		if interview.ID == id {
			return interview
		}
	}
	return nil
}

// Scheduled returns the interviews still open for transitions.
func (v *Interviews) Scheduled() []*Interview {
	scheduled := make([]*Interview, 0, len(v.Items))
	for _, interview := range v.Items {
		if interview.Status == StatusScheduled {
			scheduled = append(scheduled, interview)
		}
	}
	return scheduled
}

// CompletedCategories returns the categories of DONE interviews, one entry
// per record. Scheduled and canceled interviews never count: a category is
// only consumed once its interview actually happened.
func (v *Interviews) CompletedCategories() []string {
	completed := make([]string, 0, len(v.Items))
	for _, interview := range v.Items {
		if interview.Status != StatusDone {
			continue
		}
		if interview.Category == "" {
			continue
		}
		completed = append(completed, interview.Category)
	}
	return completed
}
