package api

import (
	"errors"
	"sort"
)

// Schema-level binding catches missing fields; these checks enforce the
// cross-element structure of a workout: positions, supersets and, for
// executions, the per-exercise set numbering.

var (
	errNoElements = errors.New("Invalid payload. A workout must contain at least one element")

	errTemplateElementValues = errors.New("Invalid payload. Sets and reps must be at least 1; rest and weight can't be negative")
	errTemplatePositions     = errors.New("Invalid payload. Element positions must be sequential, starting from 1")
	errSuperSetValues        = errors.New("Invalid payload. Super set values must be sequential, starting from 1")
	errSuperSetGroupSize     = errors.New("Invalid payload. Every super set must contain at least 2 elements")
	errSuperSetGroupGap      = errors.New("Invalid payload. Elements of a super set must occupy consecutive positions")

	errExecutionElementValues = errors.New("Invalid payload. Reps, exercise numbers, set numbers and times must be at least 1; rest and weight can't be negative")
	errExerciseNumbers        = errors.New("Invalid payload. Exercise numbers must be sequential, starting from 1")
	errSetNumbers             = errors.New("Invalid payload. Set numbers of each exercise must be sequential, starting from 1")
	errSuperSetSetOrder       = errors.New("Invalid payload. Set numbers inside a super set must not decrease")
	errSuperSetExerciseCount  = errors.New("Invalid payload. Every super set must contain at least 2 exercises")
)

// validateTemplateElements checks the structural rules for template elements.
// Elements may arrive in any order; all positional rules are evaluated
// against the position field, not the slice order.
func validateTemplateElements(elements []TemplateElementRequest) error {
	if len(elements) == 0 {
		return errNoElements
	}

	positions := make([]int16, len(elements))
	for i, e := range elements {
		if e.Sets < 1 || e.Reps < 1 {
			return errTemplateElementValues
		}
		if (e.Rest != nil && *e.Rest < 0) || (e.Weight != nil && *e.Weight < 0) {
			return errTemplateElementValues
		}
		positions[i] = e.Position
	}
	if !isPermutationFromOne(positions) {
		return errTemplatePositions
	}

	groups := map[int16][]int16{}
	for _, e := range elements {
		if e.SuperSet != nil {
			groups[*e.SuperSet] = append(groups[*e.SuperSet], e.Position)
		}
	}
	if err := validateSuperSetValues(groups); err != nil {
		return err
	}
	for _, members := range groups {
		if len(members) < 2 {
			return errSuperSetGroupSize
		}
		if !isConsecutive(members) {
			return errSuperSetGroupGap
		}
	}
	return nil
}

// validateExecutionElements checks the structural rules for execution
// elements. On top of the template rules, elements are grouped into
// exercises by exercise_number, and each exercise's sets must be numbered
// 1..k in position order.
func validateExecutionElements(elements []ExecutionElementRequest) error {
	if len(elements) == 0 {
		return errNoElements
	}

	positions := make([]int16, len(elements))
	for i, e := range elements {
		if e.Reps < 1 || e.ExerciseNumber < 1 || e.SetNumber < 1 || e.Time < 1 {
			return errExecutionElementValues
		}
		if (e.Rest != nil && *e.Rest < 0) || (e.Weight != nil && *e.Weight < 0) {
			return errExecutionElementValues
		}
		positions[i] = e.Position
	}
	if !isPermutationFromOne(positions) {
		return errTemplatePositions
	}

	ordered := make([]ExecutionElementRequest, len(elements))
	copy(ordered, elements)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })

	// Exercise numbers repeat (one entry per set) but must not skip values,
	// and the first exercise is number 1.
	seen := map[int16]struct{}{}
	maxNumber := int16(0)
	for _, e := range ordered {
		seen[e.ExerciseNumber] = struct{}{}
		if e.ExerciseNumber > maxNumber {
			maxNumber = e.ExerciseNumber
		}
	}
	if int(maxNumber) != len(seen) {
		return errExerciseNumbers
	}

	// Within each exercise, set numbers run 1..k in position order.
	setsByExercise := map[int16][]int16{}
	for _, e := range ordered {
		setsByExercise[e.ExerciseNumber] = append(setsByExercise[e.ExerciseNumber], e.SetNumber)
	}
	for _, sets := range setsByExercise {
		for i, setNumber := range sets {
			if int(setNumber) != i+1 {
				return errSetNumbers
			}
		}
	}

	groups := map[int16][]int16{}
	exercisesByGroup := map[int16]map[int16]struct{}{}
	for _, e := range ordered {
		if e.SuperSet == nil {
			continue
		}
		groups[*e.SuperSet] = append(groups[*e.SuperSet], e.Position)
		if exercisesByGroup[*e.SuperSet] == nil {
			exercisesByGroup[*e.SuperSet] = map[int16]struct{}{}
		}
		exercisesByGroup[*e.SuperSet][e.ExerciseNumber] = struct{}{}
	}
	if err := validateSuperSetValues(groups); err != nil {
		return err
	}
	for group, members := range groups {
		if len(exercisesByGroup[group]) < 2 {
			return errSuperSetExerciseCount
		}
		if !isConsecutive(members) {
			return errSuperSetGroupGap
		}
	}

	// Inside a super set the set numbers may interleave across exercises but
	// must never go back down as positions advance.
	lastSet := map[int16]int16{}
	for _, e := range ordered {
		if e.SuperSet == nil {
			continue
		}
		if e.SetNumber < lastSet[*e.SuperSet] {
			return errSuperSetSetOrder
		}
		lastSet[*e.SuperSet] = e.SetNumber
	}
	return nil
}

// validateSuperSetValues requires the distinct super set labels to be
// 1..n with no gaps.
func validateSuperSetValues(groups map[int16][]int16) error {
	if len(groups) == 0 {
		return nil
	}
	labels := make([]int16, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	if !isPermutationFromOne(labels) {
		return errSuperSetValues
	}
	return nil
}

// isPermutationFromOne reports whether values is exactly 1..len(values).
func isPermutationFromOne(values []int16) bool {
	sorted := make([]int16, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, v := range sorted {
		if int(v) != i+1 {
			return false
		}
	}
	return true
}

// isConsecutive reports whether values form an unbroken run of integers.
func isConsecutive(values []int16) bool {
	sorted := make([]int16, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}
