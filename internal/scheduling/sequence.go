package scheduling

// Resolution describes where an application stands in its job's ordered
// interview sequence.
type Resolution struct {
	// NextCategory is the category due next. Empty when Complete is true.
	NextCategory string
	// StepNumber is the 1-indexed position of the next due category in the
	// sequence. Zero when Complete is true.
	StepNumber int
	TotalSteps int
	// Completed holds the categories consumed by the walk, in sequence order.
	Completed []string
	Complete  bool
}

// Resolve walks the job's ordered category sequence against the categories
// already completed for an application and returns the next due step.
//
// The completed list is treated as a consumable multiset: each position in
// the sequence consumes at most one matching completion. A sequence with two
// "technical" rounds therefore needs two completed "technical" interviews
// before it moves past them. Completions for categories that never appear in
// the sequence are ignored.
func Resolve(sequence, completed []string) *Resolution {
	remaining := make(map[string]int, len(completed))
	for _, category := range completed {
		remaining[category]++
	}

	res := &Resolution{
		TotalSteps: len(sequence),
		Completed:  make([]string, 0, len(sequence)),
	}

	for idx, category := range sequence {
		if remaining[category] > 0 {
			remaining[category]--
			res.Completed = append(res.Completed, category)
			continue
		}

		res.NextCategory = category
		res.StepNumber = idx + 1
		return res
	}

	// Every position is satisfied. An empty sequence lands here too.
	res.Complete = true
	return res
}
