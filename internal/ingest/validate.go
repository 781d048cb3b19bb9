package ingest

import (
	"fmt"
	"sort"
	"strings"

	"centratutor/internal/models"
	"centratutor/internal/query"
)

// PeriodKeyForTrackType maps a track type to the metadata key its periods
// live under.
func PeriodKeyForTrackType(trackType string) string {
	switch trackType {
	case models.TrackTypeWeeks:
		return models.MetaWeek
	case models.TrackTypeDays:
		return models.MetaDay
	case models.TrackTypeMonths:
		return models.MetaMonth
	case models.TrackTypeSemester:
		return models.MetaSemester
	case models.TrackTypeYears:
		return models.MetaYear
	default:
		return ""
	}
}

// ValidatePeriodBound rejects content claiming a period index outside the
// track's duration. Tracks with zero duration are unbounded, and content
// claiming no period at all passes.
func ValidatePeriodBound(track models.Track, metadata map[string]string, name string) error {
	if track.Duration == 0 {
		return nil
	}
	period := PeriodKeyForTrackType(track.TrackType)
	if period == "" {
		return nil
	}
	n, ok := query.PeriodFromMeta(metadata, name, period)
	if !ok {
		return nil
	}
	if n < 1 || n > track.Duration {
		return fmt.Errorf("%s %d is outside the track duration of %d %s", period, n, track.Duration, track.TrackType)
	}
	return nil
}

// TopicValidationReport is the all-or-nothing pre-check for topic-validated
// content batches.
type TopicValidationReport struct {
	MissingTopics []string `json:"missingTopics"`
	UniqueTopics  []string `json:"uniqueTopics"`
}

// Valid reports whether every candidate topic resolved.
func (r TopicValidationReport) Valid() bool {
	return len(r.MissingTopics) == 0
}

// ValidateTopics folds the candidate topic names to their unique set and
// resolves each through lookup (topic name → topic id). Names are compared
// case-insensitively; the first spelling seen is the one reported.
func ValidateTopics(names []string, lookup func(name string) (topicID string, ok bool)) TopicValidationReport {
	report := TopicValidationReport{MissingTopics: []string{}, UniqueTopics: []string{}}

	seen := map[string]bool{}
	for _, name := range names {
		folded := strings.ToLower(strings.TrimSpace(name))
		if folded == "" || seen[folded] {
			continue
		}
		seen[folded] = true
		report.UniqueTopics = append(report.UniqueTopics, name)
		if _, ok := lookup(name); !ok {
			report.MissingTopics = append(report.MissingTopics, name)
		}
	}

	sort.Strings(report.UniqueTopics)
	sort.Strings(report.MissingTopics)
	return report
}
