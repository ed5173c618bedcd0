package schedule

// Weekday identifies a day of the week. The ordering Monday..Sunday is relied
// upon by ActiveDays and by the optimizer's per-day indexing.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayTokens = [...]string{"M", "Tu", "W", "Th", "F", "S", "Su"}

var weekdayByToken = map[string]Weekday{
	"M":  Monday,
	"Tu": Tuesday,
	"W":  Wednesday,
	"Th": Thursday,
	"F":  Friday,
	"S":  Saturday,
	"Su": Sunday,
}

// ParseWeekday maps a short day token onto a Weekday. Unknown tokens are a
// validation error, never silently dropped.
func ParseWeekday(token string) (Weekday, error) {
	day, ok := weekdayByToken[token]
	if !ok {
		return 0, &ParseError{Input: token, Reason: "unknown weekday token"}
	}
	return day, nil
}

func (day Weekday) String() string {
	if day < Monday || day > Sunday {
		return "invalid"
	}
	return weekdayTokens[day]
}

func (day Weekday) Weekend() bool {
	return day == Saturday || day == Sunday
}

// ActiveDays returns the weekdays considered by a scheduling run. Weekends
// are excluded unless explicitly requested.
func ActiveDays(includeWeekend bool) []Weekday {
	days := []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
	if includeWeekend {
		days = append(days, Saturday, Sunday)
	}
	return days
}
