package schedule

import "fmt"

// ParseError reports a malformed time, weekday or modality token. It is fatal
// for the request that carried it and is never retried.
type ParseError struct {
	Input  string
	Reason string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %v", err.Input, err.Reason)
}

// EmptyCourseError reports a course that offers no candidate sections. The
// search is never started once one is detected.
type EmptyCourseError struct {
	Course string
}

func (err *EmptyCourseError) Error() string {
	return fmt.Sprintf("course %q has no candidate sections", err.Course)
}
