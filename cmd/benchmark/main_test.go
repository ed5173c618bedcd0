package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCoursesIsReproducible(t *testing.T) {
	test := TestMetadata{Name: "random-3x4", Courses: 3, Sections: 4, Seed: 7}

	first := generateCourses(test)
	second := generateCourses(test)

	assert.Equal(t, first, second)
	assert.Len(t, first, 3)
	for _, course := range first {
		assert.Len(t, course.Sections, 4)
		for _, section := range course.Sections {
			for _, interval := range section.Intervals() {
				assert.GreaterOrEqual(t, interval.Start, 8*60)
				assert.Less(t, interval.End, 21*60)
			}
		}
	}
}

func TestGetTestsGrowInSize(t *testing.T) {
	tests := getTests()

	assert.NotEmpty(t, tests)
	for i := 1; i < len(tests); i++ {
		assert.Greater(t, tests[i].Courses, tests[i-1].Courses)
	}
}
