package schedule

import "fmt"

const minutesPerDay = 24 * 60

// Modality tells whether a meeting requires physical presence.
type Modality int

const (
	Online Modality = iota
	InPerson
)

var modalityByToken = map[string]Modality{
	"online":    Online,
	"in-person": InPerson,
}

func ParseModality(token string) (Modality, error) {
	modality, ok := modalityByToken[token]
	if !ok {
		return 0, &ParseError{Input: token, Reason: "unknown modality token"}
	}
	return modality, nil
}

func (modality Modality) String() string {
	if modality == Online {
		return "online"
	}
	return "in-person"
}

// ParseClock converts a 24-hour "HH:MM" wall-clock string into minutes since
// midnight. The minute part must be exactly two digits: "9:05" parses, "9:5"
// does not.
func ParseClock(value string) (int, error) {
	colon := -1
	for i := 0; i < len(value); i++ {
		if value[i] == ':' {
			colon = i
			break
		}
	}
	if colon < 1 || colon > 2 || len(value)-colon-1 != 2 {
		return 0, &ParseError{Input: value, Reason: "expected HH:MM"}
	}

	hours, minutes := 0, 0
	for _, c := range []byte(value[:colon]) {
		if c < '0' || c > '9' {
			return 0, &ParseError{Input: value, Reason: "expected HH:MM"}
		}
		hours = hours*10 + int(c-'0')
	}
	for _, c := range []byte(value[colon+1:]) {
		if c < '0' || c > '9' {
			return 0, &ParseError{Input: value, Reason: "expected HH:MM"}
		}
		minutes = minutes*10 + int(c-'0')
	}

	if hours > 23 {
		return 0, &ParseError{Input: value, Reason: "hour out of range"}
	}
	if minutes > 59 {
		return 0, &ParseError{Input: value, Reason: "minute out of range"}
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight back into "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// TimeInterval is one weekly meeting: an end-exclusive [Start, End) minute
// range on a fixed weekday.
type TimeInterval struct {
	Day      Weekday
	Start    int
	End      int
	Modality Modality
}

// NewTimeInterval validates the interval invariant: 0 <= Start < End < 1440.
func NewTimeInterval(day Weekday, start, end int, modality Modality) (TimeInterval, error) {
	if start < 0 || end >= minutesPerDay || start >= end {
		return TimeInterval{}, &ParseError{
			Input:  fmt.Sprintf("%v %v-%v", day, FormatClock(start), FormatClock(end)),
			Reason: "interval start must precede its end within one day",
		}
	}
	return TimeInterval{Day: day, Start: start, End: end, Modality: modality}, nil
}

// Overlaps reports whether two intervals claim common time on the same day.
func (interval TimeInterval) Overlaps(other TimeInterval) bool {
	return interval.Day == other.Day && interval.Start < other.End && other.Start < interval.End
}
