package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centratutor/internal/models"
)

func question(id, topicID string) models.Question {
	return models.Question{QuestionID: id, TopicID: topicID}
}

func TestGroupQuestionsByTopicConservesCount(t *testing.T) {
	questions := []models.Question{
		question("q1", "algebra"),
		question("q2", "algebra"),
		question("q3", "geometry"),
		question("q4", "calculus"),
	}

	grouped := GroupQuestionsByTopic(questions)

	assert.Equal(t, 4, grouped.TotalQuestions)
	assert.Equal(t, []string{"algebra", "calculus", "geometry"}, grouped.TopicsWithQuestions)

	sum := 0
	for _, qs := range grouped.QuestionsByTopics {
		sum += len(qs)
	}
	assert.Equal(t, grouped.TotalQuestions, sum)
}

func TestGroupQuestionsByTopicEmptyInput(t *testing.T) {
	grouped := GroupQuestionsByTopic(nil)
	assert.Zero(t, grouped.TotalQuestions)
	assert.Empty(t, grouped.TopicsWithQuestions)
	assert.Empty(t, grouped.QuestionsByTopics)
}

func TestGroupContentByTopic(t *testing.T) {
	items := []models.Content{
		{ContentID: "c1", TopicID: "t1"},
		{ContentID: "c2", TopicID: "t1"},
		{ContentID: "c3", TopicID: "t2"},
	}
	grouped := GroupContentByTopic(items)
	assert.Equal(t, 3, grouped.TotalContent)
	assert.Equal(t, []string{"t1", "t2"}, grouped.TopicsWithContent)
	assert.Len(t, grouped.ContentByTopics["t1"], 2)
}

func TestPeriodFromMetaPrefersMetadata(t *testing.T) {
	n, ok := PeriodFromMeta(map[string]string{"week": "3"}, "Week 7 notes", "week")
	require.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestPeriodFromMetaFallsBackToName(t *testing.T) {
	n, ok := PeriodFromMeta(nil, "Week 7 notes", "week")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	n, ok = PeriodFromMeta(map[string]string{"week": "not-a-number"}, "week12-revision", "week")
	require.True(t, ok)
	assert.Equal(t, 12, n)
}

func TestPeriodFromMetaNoSignal(t *testing.T) {
	_, ok := PeriodFromMeta(nil, "General revision notes", "week")
	assert.False(t, ok)
}

func TestGroupContentByPeriodOrdersAndTrailsUngrouped(t *testing.T) {
	items := []models.Content{
		{ContentID: "c1", Name: "Week 2 drills", Metadata: map[string]string{"week": "2"}},
		{ContentID: "c2", Name: "Week 1 intro", Metadata: map[string]string{"week": "1"}},
		{ContentID: "c3", Name: "Syllabus overview"},
		{ContentID: "c4", Name: "More week 1", Metadata: map[string]string{"week": "1"}},
	}

	groups := GroupContentByPeriod(items, "week")
	require.Len(t, groups, 3)

	assert.Equal(t, "week1", groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "week2", groups[1].Key)
	assert.Equal(t, UngroupedKey, groups[2].Key)
	assert.Equal(t, 1, groups[2].Count)
}

func TestGroupContentByPeriodSemesterLabelsStayDistinct(t *testing.T) {
	items := []models.Content{
		{ContentID: "c1", Name: "a", Metadata: map[string]string{"semester": "1"}},
		{ContentID: "c2", Name: "b", Metadata: map[string]string{"semester": "1", "semesterName": "First Semester"}},
		{ContentID: "c3", Name: "c", Metadata: map[string]string{"semester": "001"}},
	}

	groups := GroupContentByPeriod(items, "semester")

	// Same numeric value, three distinct labels, three groups.
	require.Len(t, groups, 3)
	keys := []string{groups[0].Key, groups[1].Key, groups[2].Key}
	assert.Contains(t, keys, "1")
	assert.Contains(t, keys, "001")
	assert.Contains(t, keys, "First Semester")
}

func TestGroupContentByPeriodLateValueFixesSortPosition(t *testing.T) {
	items := []models.Content{
		// The first row of the second-semester group has a label but no
		// numeric value; a later row supplies it.
		{ContentID: "c1", Name: "a", Metadata: map[string]string{"semesterName": "Second Semester"}},
		{ContentID: "c2", Name: "b", Metadata: map[string]string{"semesterName": "Second Semester", "semester": "2"}},
		{ContentID: "c3", Name: "c", Metadata: map[string]string{"semester": "1", "semesterName": "First Semester"}},
	}

	groups := GroupContentByPeriod(items, "semester")

	require.Len(t, groups, 2)
	assert.Equal(t, "First Semester", groups[0].Key)
	assert.Equal(t, 1, groups[0].Value)
	assert.Equal(t, "Second Semester", groups[1].Key)
	assert.Equal(t, 2, groups[1].Value)
	assert.Equal(t, 2, groups[1].Count)
}

func TestGroupContentByPeriodCountConservation(t *testing.T) {
	items := []models.Content{
		{ContentID: "c1", Name: "Day 1"},
		{ContentID: "c2", Name: "Day 2"},
		{ContentID: "c3", Name: "no period here"},
	}
	groups := GroupContentByPeriod(items, "day")

	total := 0
	for _, g := range groups {
		assert.Equal(t, len(g.Items), g.Count)
		total += g.Count
	}
	assert.Equal(t, len(items), total)
}
