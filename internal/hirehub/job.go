package hirehub

import "fmt"

const apiJobsPath = "/jobs"

// Job is the posting an application belongs to. InterviewSequence is the
// ordered, possibly repeating list of interview categories every applicant
// must pass through. It is owned by the job and read-only here.
type Job struct {
	ID                string   `json:"id,omitempty"`
	Title             string   `json:"title,omitempty"`
	InterviewSequence []string `json:"interview_sequence,omitempty" mapstructure:"interview_sequence"`
}

// GetJob returns one job posting.
func (c *Client) GetJob(id string) (*Job, error) {
	if id == "" {
		return nil, fmt.Errorf("job id is required")
	}

	apiURL := fmt.Sprintf("%s%s/%s", c.APIURL, apiJobsPath, id)

	var job Job
	if err := c.getJSON(apiURL, nil, &job); err != nil {
		return nil, err
	}

	return &job, nil
}

// RequiredCategories returns the distinct categories of the sequence,
// preserving first-occurrence order.
func (j *Job) RequiredCategories() []string {
	seen := make(map[string]struct{}, len(j.InterviewSequence))
	required := make([]string, 0, len(j.InterviewSequence))
	for _, category := range j.InterviewSequence {
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		required = append(required, category)
	}
	return required
}
