package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeOfDay_Boundaries(t *testing.T) {
	testCases := []struct {
		hour     int
		expected string
	}{
		{0, TimeOfDayNight},
		{4, TimeOfDayNight},
		{5, TimeOfDayMorning},
		{11, TimeOfDayMorning},
		{12, TimeOfDayAfternoon},
		{16, TimeOfDayAfternoon},
		{17, TimeOfDayEvening},
		{20, TimeOfDayEvening},
		{21, TimeOfDayNight},
		{23, TimeOfDayNight},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, TimeOfDay(tc.hour), "hour %d", tc.hour)
	}
}

func TestTimeOfDay_TotalOverAllHours(t *testing.T) {
	valid := map[string]bool{
		TimeOfDayMorning:   true,
		TimeOfDayAfternoon: true,
		TimeOfDayEvening:   true,
		TimeOfDayNight:     true,
	}
	for hour := 0; hour < 24; hour++ {
		assert.True(t, valid[TimeOfDay(hour)], "hour %d must map to a coarse time of day", hour)
	}
}

func TestTopLanguage(t *testing.T) {
	empty := &YearSummary{}
	assert.Empty(t, empty.TopLanguage())

	summary := &YearSummary{Languages: []LanguageStat{{Name: "Go"}, {Name: "Rust"}}}
	assert.Equal(t, "Go", summary.TopLanguage())
}

func TestDayNames(t *testing.T) {
	assert.Equal(t, "Sunday", DayNames[0])
	assert.Equal(t, "Saturday", DayNames[6])
}
