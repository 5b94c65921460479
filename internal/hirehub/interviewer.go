package hirehub

import (
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const apiInterviewersPath = "/hr-users"

type Interviewers struct {
	Items []*Interviewer
}

// Interviewer is an HR user who may conduct interviews. InterviewTypes
// mirrors the backend's optional interviews_types field: a missing field
// decodes to nil, which means the user is certified for nothing. Whether an
// interviewer is selected at all is a scheduling-session concern, not a
// roster one.
type Interviewer struct {
	ID             string   `json:"id,omitempty"`
	FullName       string   `json:"full_name,omitempty" mapstructure:"full_name"`
	Email          string   `json:"email,omitempty"`
	InterviewTypes []string `json:"interviews_types,omitempty" mapstructure:"interviews_types"`
}

// GetInterviewers returns the roster of HR users with their certified
// category sets. Items with a malformed interviews_types value keep their
// identity fields and decode to an empty set.
func (c *Client) GetInterviewers() (*Interviewers, error) {
	apiURL := fmt.Sprintf("%s%s", c.APIURL, apiInterviewersPath)

	q := url.Values{}
	q.Add("per_page", perPage)

	items, err := c.GetItems(apiURL, q)
	if err != nil {
		return nil, err
	}

	var interviewers []*Interviewer
	if err = mapstructure.Decode(items, &interviewers); err != nil {
		// mapstructure fills what it can before reporting field errors, so a
		// loosely-typed interviews_types on one user does not sink the roster.
		c.logger.Warn("some interviewer records could not be fully decoded", zap.Error(err))
	}

	return &Interviewers{Items: interviewers}, nil
}

func (r *Interviewers) Len() int {
	return len(r.Items)
}

func (r *Interviewers) FindByID(id string) *Interviewer {
	for _, interviewer := range r.Items {
		if interviewer.ID == id {
			return interviewer
		}
	}
	return nil
}

// Label is the one-line summary shown in selection prompts.
func (i *Interviewer) Label() string {
	return fmt.Sprintf("%s %s / %s", i.ID, i.FullName, i.Email)
}
