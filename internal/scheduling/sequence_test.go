package scheduling

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sequence  []string
		completed []string
		next      string
		step      int
		total     int
		complete  bool
		consumed  []string
	}{
		{
			name:      "nothing completed",
			sequence:  []string{"phone", "technical", "final"},
			completed: nil,
			next:      "phone",
			step:      1,
			total:     3,
		},
		{
			name:      "repeat category needs a second completion",
			sequence:  []string{"phone", "technical", "technical", "final"},
			completed: []string{"phone", "technical"},
			next:      "technical",
			step:      3,
			total:     4,
			consumed:  []string{"phone", "technical"},
		},
		{
			name:      "repeat category fully consumed",
			sequence:  []string{"phone", "technical", "technical", "final"},
			completed: []string{"technical", "phone", "technical"},
			next:      "final",
			step:      4,
			total:     4,
			consumed:  []string{"phone", "technical", "technical"},
		},
		{
			name:      "all steps satisfied",
			sequence:  []string{"phone", "final"},
			completed: []string{"phone", "final"},
			total:     2,
			complete:  true,
			consumed:  []string{"phone", "final"},
		},
		{
			name:      "completion order does not matter",
			sequence:  []string{"phone", "final"},
			completed: []string{"final", "phone"},
			total:     2,
			complete:  true,
			consumed:  []string{"phone", "final"},
		},
		{
			name:     "empty sequence is complete",
			sequence: nil,
			complete: true,
		},
		{
			name:      "completions outside the sequence are ignored",
			sequence:  []string{"phone", "final"},
			completed: []string{"culture", "phone", "culture"},
			next:      "final",
			step:      2,
			total:     2,
			consumed:  []string{"phone"},
		},
		{
			name:      "out-of-sequence completion does not skip earlier steps",
			sequence:  []string{"phone", "technical", "final"},
			completed: []string{"final"},
			next:      "phone",
			step:      1,
			total:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := Resolve(tt.sequence, tt.completed)

			if res.NextCategory != tt.next {
				t.Fatalf("expected next category %q, got %q", tt.next, res.NextCategory)
			}
			if res.StepNumber != tt.step {
				t.Fatalf("expected step %d, got %d", tt.step, res.StepNumber)
			}
			if res.TotalSteps != tt.total {
				t.Fatalf("expected %d total steps, got %d", tt.total, res.TotalSteps)
			}
			if res.Complete != tt.complete {
				t.Fatalf("expected complete=%v, got %v", tt.complete, res.Complete)
			}
			if len(tt.consumed) > 0 && !reflect.DeepEqual(res.Completed, tt.consumed) {
				t.Fatalf("expected consumed %v, got %v", tt.consumed, res.Completed)
			}
		})
	}
}

func TestResolveStepNumberZeroOnlyWhenComplete(t *testing.T) {
	t.Parallel()

	sequences := [][]string{
		nil,
		{"phone"},
		{"phone", "technical", "technical", "final"},
	}
	completions := [][]string{
		nil,
		{"phone"},
		{"phone", "technical"},
		{"phone", "technical", "technical", "final"},
	}

	for _, sequence := range sequences {
		for _, completed := range completions {
			res := Resolve(sequence, completed)
			if (res.StepNumber == 0) != res.Complete {
				t.Fatalf("step=%d complete=%v for sequence %v completed %v",
					res.StepNumber, res.Complete, sequence, completed)
			}
			if (res.NextCategory == "") != res.Complete {
				t.Fatalf("next=%q complete=%v for sequence %v completed %v",
					res.NextCategory, res.Complete, sequence, completed)
			}
		}
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	sequence := []string{"phone", "technical", "technical", "final"}
	completed := []string{"technical", "phone"}

	first := Resolve(sequence, completed)
	second := Resolve(sequence, completed)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical resolutions, got %+v and %+v", first, second)
	}
}

func TestResolveAdvancesByOneAfterDone(t *testing.T) {
	t.Parallel()

	// Marking a DONE interview for the next category advances the walk by
	// exactly one step when the category has no later repeat.
	sequence := []string{"phone", "technical", "final"}

	before := Resolve(sequence, []string{"phone"})
	after := Resolve(sequence, []string{"phone", before.NextCategory})

	if after.StepNumber != before.StepNumber+1 {
		t.Fatalf("expected step %d, got %d", before.StepNumber+1, after.StepNumber)
	}

	// With a later repeat of the same category the walk stays on it.
	repeats := []string{"phone", "technical", "technical", "final"}

	before = Resolve(repeats, []string{"phone"})
	after = Resolve(repeats, []string{"phone", before.NextCategory})

	if after.NextCategory != before.NextCategory {
		t.Fatalf("expected walk to stay on %q, got %q", before.NextCategory, after.NextCategory)
	}
	if after.StepNumber != before.StepNumber+1 {
		t.Fatalf("expected step %d, got %d", before.StepNumber+1, after.StepNumber)
	}
}
