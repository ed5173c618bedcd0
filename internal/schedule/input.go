package schedule

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// IntervalInput is the wire form of one weekly meeting.
type IntervalInput struct {
	Day    string `json:"day" mapstructure:"day"`
	Start  string `json:"start" mapstructure:"start"`
	End    string `json:"end" mapstructure:"end"`
	Format string `json:"format" mapstructure:"format"`
}

type SectionInput struct {
	Day1      IntervalInput `json:"day1" mapstructure:"day1"`
	Day2      IntervalInput `json:"day2" mapstructure:"day2"`
	Professor string        `json:"professor" mapstructure:"professor"`
}

type CourseInput struct {
	Course   string         `json:"course" mapstructure:"course"`
	Sections []SectionInput `json:"sections" mapstructure:"sections"`
}

// Request is a full scheduling request as received on the wire. Weekends are
// excluded unless the flag explicitly says otherwise.
type Request struct {
	Courses        []CourseInput `json:"courses" mapstructure:"courses"`
	ExcludeWeekend *bool         `json:"exclude_weekend" mapstructure:"exclude_weekend"`
}

func (request Request) IncludeWeekend() bool {
	return request.ExcludeWeekend != nil && !*request.ExcludeWeekend
}

// RequestFromJSON decodes raw JSON into a Request.
func RequestFromJSON(data []byte) (Request, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Request{}, err
	}

	var request Request
	if err := mapstructure.Decode(raw, &request); err != nil {
		return Request{}, err
	}
	return request, nil
}

// BuildCourses converts the wire form into engine courses, validating every
// day token, time string and modality.
func (request Request) BuildCourses() ([]Course, error) {
	courses := make([]Course, 0, len(request.Courses))
	for _, courseInput := range request.Courses {
		course := Course{ID: courseInput.Course, Sections: make([]Section, 0, len(courseInput.Sections))}
		for _, sectionInput := range courseInput.Sections {
			section, err := sectionInput.build()
			if err != nil {
				return nil, err
			}
			course.Sections = append(course.Sections, section)
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (input SectionInput) build() (Section, error) {
	day1, err := input.Day1.build()
	if err != nil {
		return Section{}, err
	}
	day2, err := input.Day2.build()
	if err != nil {
		return Section{}, err
	}
	return Section{Day1: day1, Day2: day2, Instructor: input.Professor}, nil
}

func (input IntervalInput) build() (TimeInterval, error) {
	day, err := ParseWeekday(input.Day)
	if err != nil {
		return TimeInterval{}, err
	}
	start, err := ParseClock(input.Start)
	if err != nil {
		return TimeInterval{}, err
	}
	end, err := ParseClock(input.End)
	if err != nil {
		return TimeInterval{}, err
	}
	modality, err := ParseModality(input.Format)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(day, start, end, modality)
}

// ScheduleEntry is the wire form of one chosen section.
type ScheduleEntry struct {
	Course    string        `json:"course"`
	Day1      IntervalInput `json:"day1"`
	Day2      IntervalInput `json:"day2"`
	Professor string        `json:"professor"`
}

// Entries renders an assignment back into wire form, in the request's course
// order with duplicate identifiers collapsed.
func (request Request) Entries(assignment Assignment) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(assignment))
	emitted := make(map[string]bool, len(assignment))
	for _, courseInput := range request.Courses {
		section, ok := assignment[courseInput.Course]
		if !ok || emitted[courseInput.Course] {
			continue
		}
		emitted[courseInput.Course] = true
		entries = append(entries, ScheduleEntry{
			Course:    courseInput.Course,
			Day1:      intervalOutput(section.Day1),
			Day2:      intervalOutput(section.Day2),
			Professor: section.Instructor,
		})
	}
	return entries
}

func intervalOutput(interval TimeInterval) IntervalInput {
	return IntervalInput{
		Day:    interval.Day.String(),
		Start:  FormatClock(interval.Start),
		End:    FormatClock(interval.End),
		Format: interval.Modality.String(),
	}
}
