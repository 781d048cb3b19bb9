package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestQuestionFiltersZeroValueMatchesActiveOnly(t *testing.T) {
	filter := QuestionFilters{}.Build()
	assert.Equal(t, bson.M{"is_active": true}, filter)
}

func TestQuestionFiltersANDComposition(t *testing.T) {
	f := QuestionFilters{
		ExamID:     "exam-1",
		SubjectID:  "subject-1",
		TrackID:    "track-1",
		Year:       2023,
		Difficulty: "hard",
	}
	filter := f.Build()

	assert.Equal(t, "exam-1", filter["exam_id"])
	assert.Equal(t, "subject-1", filter["subject_id"])
	assert.Equal(t, "track-1", filter["track_id"])
	assert.Equal(t, 2023, filter["year"])
	assert.Equal(t, "hard", filter["difficulty"])
	assert.Equal(t, true, filter["is_active"])
	assert.NotContains(t, filter, "topic_id")
}

func TestQuestionFiltersNarrowingIsMonotonic(t *testing.T) {
	base := QuestionFilters{ExamID: "exam-1"}
	narrower := QuestionFilters{ExamID: "exam-1", SubjectID: "subject-1", Year: 2022}

	baseFilter := base.Build()
	narrowFilter := narrower.Build()

	// Every clause of the broad filter survives in the narrow one.
	for k, v := range baseFilter {
		assert.Equal(t, v, narrowFilter[k])
	}
	assert.Greater(t, len(narrowFilter), len(baseFilter))
}

func TestTopicFilterSingleAndSet(t *testing.T) {
	assert.Equal(t, "topic-1", topicFilter("topic-1", nil))
	assert.Equal(t, bson.M{"$in": []string{"a", "b"}}, topicFilter("", []string{"a", "b"}))
	assert.Equal(t,
		bson.M{"$eq": "topic-1", "$in": []string{"topic-1", "topic-2"}},
		topicFilter("topic-1", []string{"topic-1", "topic-2"}),
	)
	assert.Nil(t, topicFilter("", nil))
}

func TestContentFiltersIncludeSubCategory(t *testing.T) {
	filter := ContentFilters{ExamID: "exam-1", SubCatID: "subcat-1"}.Build()
	assert.Equal(t, "subcat-1", filter["subcategory_id"])
	assert.Equal(t, true, filter["is_active"])
}

func TestParseLimitOffset(t *testing.T) {
	limit, offset, err := ParseLimitOffset(url.Values{"limit": {"25"}, "offset": {"50"}})
	require.NoError(t, err)
	assert.Equal(t, int64(25), limit)
	assert.Equal(t, int64(50), offset)
}

func TestParseLimitOffsetAbsentMeansUnbounded(t *testing.T) {
	limit, offset, err := ParseLimitOffset(url.Values{})
	require.NoError(t, err)
	assert.Zero(t, limit)
	assert.Zero(t, offset)
}

func TestParseLimitOffsetRejectsGarbage(t *testing.T) {
	cases := []url.Values{
		{"limit": {"abc"}},
		{"limit": {"10.5"}},
		{"limit": {"-1"}},
		{"offset": {"xyz"}},
		{"offset": {"-10"}},
	}
	for _, values := range cases {
		_, _, err := ParseLimitOffset(values)
		assert.Error(t, err, "values %v should not parse", values)
	}
}
