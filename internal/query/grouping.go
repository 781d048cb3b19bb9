package query

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"centratutor/internal/models"
)

// GroupedQuestions is the flat filtered set partitioned by topic. Topics with
// zero matching questions are omitted, never zero-filled.
type GroupedQuestions struct {
	TotalQuestions      int                          `json:"totalQuestions"`
	TopicsWithQuestions []string                     `json:"topicsWithQuestions"`
	QuestionsByTopics   map[string][]models.Question `json:"questionsByTopics"`
}

// GroupQuestionsByTopic partitions questions client-side by topic id.
func GroupQuestionsByTopic(questions []models.Question) GroupedQuestions {
	grouped := GroupedQuestions{
		TotalQuestions:      len(questions),
		TopicsWithQuestions: []string{},
		QuestionsByTopics:   map[string][]models.Question{},
	}
	for _, q := range questions {
		grouped.QuestionsByTopics[q.TopicID] = append(grouped.QuestionsByTopics[q.TopicID], q)
	}
	for topicID := range grouped.QuestionsByTopics {
		grouped.TopicsWithQuestions = append(grouped.TopicsWithQuestions, topicID)
	}
	sort.Strings(grouped.TopicsWithQuestions)
	return grouped
}

// GroupedContent mirrors GroupedQuestions for content rows.
type GroupedContent struct {
	TotalContent      int                         `json:"totalContent"`
	TopicsWithContent []string                    `json:"topicsWithContent"`
	ContentByTopics   map[string][]models.Content `json:"contentByTopics"`
}

// GroupContentByTopic partitions content client-side by topic id.
func GroupContentByTopic(items []models.Content) GroupedContent {
	grouped := GroupedContent{
		TotalContent:      len(items),
		TopicsWithContent: []string{},
		ContentByTopics:   map[string][]models.Content{},
	}
	for _, c := range items {
		grouped.ContentByTopics[c.TopicID] = append(grouped.ContentByTopics[c.TopicID], c)
	}
	for topicID := range grouped.ContentByTopics {
		grouped.TopicsWithContent = append(grouped.TopicsWithContent, topicID)
	}
	sort.Strings(grouped.TopicsWithContent)
	return grouped
}

// Periods accepted by the groupBy query parameter.
var ValidPeriods = map[string]bool{
	models.MetaDay:      true,
	models.MetaWeek:     true,
	models.MetaMonth:    true,
	models.MetaSemester: true,
	models.MetaYear:     true,
}

// UngroupedKey collects content rows carrying no period signal at all.
const UngroupedKey = "ungrouped"

// PeriodGroup is one partition of a time-period grouping. Key is the group
// identity: for semesters the original textual label, otherwise
// "<period><n>". Value orders groups; equal values fall back to Key order.
type PeriodGroup struct {
	Key   string           `json:"period"`
	Value int              `json:"value"`
	Count int              `json:"count"`
	Items []models.Content `json:"items"`
}

// PeriodFromMeta extracts a period number from a metadata map, falling back
// to the first "<period>N" match in the row name.
func PeriodFromMeta(metadata map[string]string, name, period string) (int, bool) {
	if raw, ok := metadata[period]; ok && raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, true
		}
	}
	pattern := regexp.MustCompile(`(?i)` + period + `\s*(\d+)`)
	if m := pattern.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	return 0, false
}

// PeriodValue extracts the period number for a content row: the metadata
// value when present, else the row name.
func PeriodValue(c models.Content, period string) (int, bool) {
	return PeriodFromMeta(c.Metadata, c.Name, period)
}

// periodKey decides group identity. Semester groups keep the original
// textual label so "1", "001" and "First Semester" stay distinct even when
// their numeric value agrees.
func periodKey(c models.Content, period string, value int, hasValue bool) string {
	if period == models.MetaSemester {
		if label := c.Metadata[models.MetaSemesterName]; label != "" {
			return label
		}
		if raw := c.Metadata[models.MetaSemester]; raw != "" {
			return raw
		}
	}
	if !hasValue {
		return UngroupedKey
	}
	return fmt.Sprintf("%s%d", period, value)
}

// GroupContentByPeriod partitions content by the requested time period.
// Groups are ordered by numeric period value, then alphabetically by label;
// rows with no period signal land in a trailing "ungrouped" group.
func GroupContentByPeriod(items []models.Content, period string) []PeriodGroup {
	byKey := map[string]*PeriodGroup{}
	valued := map[string]bool{}
	for _, c := range items {
		value, hasValue := PeriodValue(c, period)
		key := periodKey(c, period, value, hasValue)
		group, ok := byKey[key]
		if !ok {
			group = &PeriodGroup{Key: key}
			byKey[key] = group
		}
		// Any row of the group may carry the numeric value; the first one
		// that does fixes the sort position.
		if hasValue && !valued[key] {
			group.Value = value
			valued[key] = true
		}
		group.Items = append(group.Items, c)
		group.Count = len(group.Items)
	}

	groups := make([]PeriodGroup, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, *g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Key == UngroupedKey {
			return false
		}
		if groups[j].Key == UngroupedKey {
			return true
		}
		if groups[i].Value != groups[j].Value {
			return groups[i].Value < groups[j].Value
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}
