package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"centratutor/internal/models"
)

func TestPeriodKeyForTrackType(t *testing.T) {
	assert.Equal(t, "week", PeriodKeyForTrackType(models.TrackTypeWeeks))
	assert.Equal(t, "day", PeriodKeyForTrackType(models.TrackTypeDays))
	assert.Equal(t, "month", PeriodKeyForTrackType(models.TrackTypeMonths))
	assert.Equal(t, "semester", PeriodKeyForTrackType(models.TrackTypeSemester))
	assert.Equal(t, "year", PeriodKeyForTrackType(models.TrackTypeYears))
	assert.Empty(t, PeriodKeyForTrackType("unknown"))
}

func TestValidatePeriodBound(t *testing.T) {
	track := models.Track{TrackType: models.TrackTypeWeeks, Duration: 12}

	assert.NoError(t, ValidatePeriodBound(track, map[string]string{"week": "1"}, ""))
	assert.NoError(t, ValidatePeriodBound(track, map[string]string{"week": "12"}, ""))
	assert.Error(t, ValidatePeriodBound(track, map[string]string{"week": "13"}, ""))
	assert.Error(t, ValidatePeriodBound(track, map[string]string{"week": "0"}, ""))
}

func TestValidatePeriodBoundNameFallback(t *testing.T) {
	track := models.Track{TrackType: models.TrackTypeWeeks, Duration: 4}
	assert.Error(t, ValidatePeriodBound(track, nil, "Week 9 revision"))
	assert.NoError(t, ValidatePeriodBound(track, nil, "Week 3 revision"))
}

func TestValidatePeriodBoundUnboundedTrack(t *testing.T) {
	track := models.Track{TrackType: models.TrackTypeWeeks, Duration: 0}
	assert.NoError(t, ValidatePeriodBound(track, map[string]string{"week": "999"}, ""))
}

func TestValidatePeriodBoundNoClaim(t *testing.T) {
	track := models.Track{TrackType: models.TrackTypeWeeks, Duration: 4}
	assert.NoError(t, ValidatePeriodBound(track, nil, "General notes"))
}

func TestValidateTopicsDedupesCaseInsensitively(t *testing.T) {
	known := map[string]string{"algebra": "t1", "geometry": "t2"}
	lookup := func(name string) (string, bool) {
		id, ok := known[strings.ToLower(strings.TrimSpace(name))]
		return id, ok
	}

	report := ValidateTopics([]string{"Algebra", "ALGEBRA", "Geometry", "Topology", " "}, lookup)

	assert.Equal(t, []string{"Algebra", "Geometry", "Topology"}, report.UniqueTopics)
	assert.Equal(t, []string{"Topology"}, report.MissingTopics)
	assert.False(t, report.Valid())
}

func TestValidateTopicsAllResolved(t *testing.T) {
	lookup := func(name string) (string, bool) { return "t1", true }
	report := ValidateTopics([]string{"Algebra", "Geometry"}, lookup)
	assert.True(t, report.Valid())
	assert.Empty(t, report.MissingTopics)
}

func TestValidateTopicsEmptyInput(t *testing.T) {
	report := ValidateTopics(nil, func(string) (string, bool) { return "", false })
	assert.True(t, report.Valid())
	assert.Empty(t, report.UniqueTopics)
}
