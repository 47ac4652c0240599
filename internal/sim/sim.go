package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/stitts-dev/bevcart-sim/internal/models"
)

var (
	ErrInvalidSpeed   = errors.New("solver speeds must be strictly positive")
	ErrNoMeetingFound = errors.New("meeting simulator exceeded its step budget")
)

// PathModel selects which crossing model applies to a course
// representation. Callers state the model explicitly; nothing is
// inferred from filenames or node counts.
type PathModel int

const (
	// PathModelClosedForm solves crossings algebraically for paths with
	// arbitrary node spacing
	PathModelClosedForm PathModel = iota
	// PathModelMinuteIndexed walks paths known to carry exactly one node
	// per minute of travel
	PathModelMinuteIndexed
)

func (m PathModel) String() string {
	switch m {
	case PathModelClosedForm:
		return "closed_form"
	case PathModelMinuteIndexed:
		return "minute_indexed"
	default:
		return fmt.Sprintf("PathModel(%d)", int(m))
	}
}

// ParsePathModel converts a wire string into a PathModel
func ParsePathModel(s string) (PathModel, error) {
	switch s {
	case "closed_form", "":
		return PathModelClosedForm, nil
	case "minute_indexed":
		return PathModelMinuteIndexed, nil
	default:
		return PathModelClosedForm, fmt.Errorf("unknown path model %q", s)
	}
}

// renumberByTeeTime sorts group results by ascending tee time and
// reassigns group ids, so group 1 always means earliest tee-off.
func renumberByTeeTime(results []models.GroupCrossings) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TeeTime.Before(results[j].TeeTime)
	})
	for i := range results {
		results[i].GroupID = i + 1
	}
}
