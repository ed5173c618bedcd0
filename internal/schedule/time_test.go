package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	t.Run("valid times", func(t *testing.T) {
		cases := map[string]int{
			"00:00": 0,
			"09:00": 9 * 60,
			"9:05":  9*60 + 5,
			"13:30": 13*60 + 30,
			"23:59": 23*60 + 59,
		}
		for input, expected := range cases {
			minutes, err := ParseClock(input)
			assert.Nil(t, err)
			assert.Equal(t, expected, minutes)
		}
	})

	t.Run("malformed times", func(t *testing.T) {
		cases := []string{"9:5", "24:00", "12:60", "ab:cd", "12", "12:", ":30", "12:300", "1200", ""}
		for _, input := range cases {
			_, err := ParseClock(input)
			var parseErr *ParseError
			assert.ErrorAs(t, err, &parseErr, "input %q", input)
		}
	})
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(9*60))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "23:59", FormatClock(23*60+59))
}

func TestParseWeekday(t *testing.T) {
	for token, expected := range map[string]Weekday{
		"M": Monday, "Tu": Tuesday, "W": Wednesday, "Th": Thursday,
		"F": Friday, "S": Saturday, "Su": Sunday,
	} {
		day, err := ParseWeekday(token)
		assert.Nil(t, err)
		assert.Equal(t, expected, day)
		assert.Equal(t, token, day.String())
	}

	for _, token := range []string{"Mon", "X", "", "m", "SU"} {
		_, err := ParseWeekday(token)
		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr, "token %q", token)
	}
}

func TestParseModality(t *testing.T) {
	online, err := ParseModality("online")
	assert.Nil(t, err)
	assert.Equal(t, Online, online)

	inPerson, err := ParseModality("in-person")
	assert.Nil(t, err)
	assert.Equal(t, InPerson, inPerson)

	_, err = ParseModality("hybrid")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestNewTimeInterval(t *testing.T) {
	_, err := NewTimeInterval(Monday, 9*60, 10*60, Online)
	assert.Nil(t, err)

	// Start must strictly precede end within one day
	_, err = NewTimeInterval(Monday, 10*60, 10*60, Online)
	assert.NotNil(t, err)
	_, err = NewTimeInterval(Monday, 10*60, 9*60, Online)
	assert.NotNil(t, err)
	_, err = NewTimeInterval(Monday, -1, 60, Online)
	assert.NotNil(t, err)
	_, err = NewTimeInterval(Monday, 23*60, 24*60, Online)
	assert.NotNil(t, err)
}

func TestIntervalOverlaps(t *testing.T) {
	base, _ := NewTimeInterval(Monday, 9*60, 10*60, Online)

	overlapping, _ := NewTimeInterval(Monday, 9*60+30, 10*60+30, InPerson)
	assert.True(t, base.Overlaps(overlapping))

	// End-exclusive boundaries do not collide
	adjacent, _ := NewTimeInterval(Monday, 10*60, 11*60, Online)
	assert.False(t, base.Overlaps(adjacent))

	otherDay, _ := NewTimeInterval(Tuesday, 9*60, 10*60, Online)
	assert.False(t, base.Overlaps(otherDay))
}

func TestActiveDays(t *testing.T) {
	assert.Equal(t, []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}, ActiveDays(false))
	assert.Len(t, ActiveDays(true), 7)
}
