package scheduling

import (
	"fmt"
	"strings"
)

// WarningLevel describes how severe a compatibility warning is.
type WarningLevel string

const (
	// WarningNone means the interviewer covers every required category.
	WarningNone WarningLevel = "none"
	// WarningAdvisory means some required categories are out of reach but
	// scheduling may proceed for the remaining ones.
	WarningAdvisory WarningLevel = "advisory"
	// WarningBlocking means the interviewer covers no required category and
	// submission must be refused.
	WarningBlocking WarningLevel = "blocking"
)

// Certification is the set of interview categories an interviewer may
// conduct. A nil Certification means no interviewer is selected yet, so no
// filtering applies. A non-nil empty Certification means the interviewer is
// certified for nothing. The two must never be conflated.
type Certification map[string]struct{}

// NewCertification builds a non-nil Certification from a category list.
func NewCertification(categories []string) Certification {
	cert := make(Certification, len(categories))
	for _, category := range categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		cert[category] = struct{}{}
	}
	return cert
}

// Covers reports whether the certification allows the given category. A nil
// certification covers everything.
func (c Certification) Covers(category string) bool {
	if c == nil {
		return true
	}
	_, ok := c[category]
	return ok
}

// Compatibility is the outcome of matching a job's required categories
// against an interviewer's certification.
type Compatibility struct {
	// Available preserves the order of the required categories.
	Available []string
	Missing   []string
	Level     WarningLevel
	Warning   string
}

// Blocking reports whether the result forbids submission.
func (c *Compatibility) Blocking() bool {
	return c.Level == WarningBlocking
}

// Allows reports whether the given category may be scheduled under this
// result.
func (c *Compatibility) Allows(category string) bool {
	for _, available := range c.Available {
		if available == category {
			return true
		}
	}
	return false
}

// Match intersects a job's required categories with an interviewer's
// certification. Required categories are deduplicated and their order is
// preserved. Human interviews only: AI interviews bypass this entirely.
func Match(required []string, certified Certification) *Compatibility {
	seen := make(map[string]struct{}, len(required))
	unique := make([]string, 0, len(required))
	for _, category := range required {
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		unique = append(unique, category)
	}

	result := &Compatibility{Level: WarningNone}

	if certified == nil {
		result.Available = unique
		return result
	}

	for _, category := range unique {
		if certified.Covers(category) {
			result.Available = append(result.Available, category)
			continue
		}
		result.Missing = append(result.Missing, category)
	}

	switch {
	case len(result.Available) == 0 && len(unique) > 0:
		result.Level = WarningBlocking
		result.Warning = "this interviewer cannot conduct any required category for this position"
	case len(result.Missing) > 0:
		result.Level = WarningAdvisory
		result.Warning = fmt.Sprintf("interviewer is not certified for: %s", strings.Join(result.Missing, ", "))
	}

	return result
}
