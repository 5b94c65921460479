package hirehub

import (
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const apiApplicationsPath = "/applications"

type Applications struct {
	Items []*Application
}

// Application pairs a candidate with a job posting and owns the interviews
// recorded against it. The candidate and job fields are display summaries;
// both entities live behind their own CRUD endpoints.
type Application struct {
	ID            string       `json:"id,omitempty"`
	CandidateName string       `json:"candidate_name,omitempty" mapstructure:"candidate_name"`
	JobID         string       `json:"job_id,omitempty" mapstructure:"job_id"`
	JobTitle      string       `json:"job_title,omitempty" mapstructure:"job_title"`
	Status        string       `json:"status,omitempty"`
	Interviews    []*Interview `json:"interviews,omitempty"`
}

// InterviewPlan is the backend's view of an application's progress through
// its job's interview sequence. Completed holds categories of DONE
// interviews only.
type InterviewPlan struct {
	Sequence   []string `json:"interview_sequence"`
	Completed  []string `json:"completed_categories"`
	IsComplete bool     `json:"is_complete"`
	TotalSteps int      `json:"total_steps"`
}

// GetApplications returns the roster of applications open for scheduling.
func (c *Client) GetApplications() (*Applications, error) {
	apiURL := fmt.Sprintf("%s%s", c.APIURL, apiApplicationsPath)

	q := url.Values{}
	q.Add("per_page", perPage)

	items, err := c.GetItems(apiURL, q)
	if err != nil {
		return nil, err
	}

	var applications []*Application
	if err = mapstructure.Decode(items, &applications); err != nil {
		c.logger.Warn("some applications could not be decoded", zap.Error(err))
	}

	return &Applications{Items: applications}, nil
}

// GetApplication returns one application with its interviews embedded.
func (c *Client) GetApplication(id string) (*Application, error) {
	if id == "" {
		return nil, fmt.Errorf("application id is required")
	}

	apiURL := fmt.Sprintf("%s%s/%s", c.APIURL, apiApplicationsPath, id)

	var application Application
	if err := c.getJSON(apiURL, nil, &application); err != nil {
		return nil, err
	}

	return &application, nil
}

// GetInterviewPlan returns the ordered category sequence and completion
// state for an application.
func (c *Client) GetInterviewPlan(applicationID string) (*InterviewPlan, error) {
	if applicationID == "" {
		return nil, fmt.Errorf("application id is required")
	}

	apiURL := fmt.Sprintf("%s%s/%s/interview-plan", c.APIURL, apiApplicationsPath, applicationID)

	var plan InterviewPlan
	if err := c.getJSON(apiURL, nil, &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

func (a *Applications) Len() int {
	return len(a.Items)
}

func (a *Applications) FindByID(id string) *Application {
	for _, application := range a.Items {
		if application.ID == id {
			return application
		}
	}
	return nil
}

// Label is the one-line summary shown in selection prompts.
func (a *Application) Label() string {
	return fmt.Sprintf("%s %s / %s", a.ID, a.CandidateName, a.JobTitle)
}
