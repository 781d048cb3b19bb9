package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centratutor/internal/models"
)

func topic(id string, orderIndex int) models.Topic {
	return models.Topic{TopicID: id, Name: id, OrderIndex: orderIndex}
}

func TestJoinTopicCountsOmitsZeroTopics(t *testing.T) {
	topics := []models.Topic{topic("t1", 1), topic("t2", 2), topic("t3", 3)}
	counts := map[string]int64{"t1": 5, "t3": 2}

	joined := JoinTopicCounts(topics, counts, CountContent)

	require.Len(t, joined, 2)
	assert.Equal(t, "t1", joined[0].TopicID)
	assert.Equal(t, int64(5), joined[0].ContentCount)
	assert.Equal(t, "t3", joined[1].TopicID)
}

func TestJoinTopicCountsOrdersByOrderIndex(t *testing.T) {
	topics := []models.Topic{topic("late", 9), topic("early", 1), topic("mid", 5)}
	counts := map[string]int64{"late": 1, "early": 1, "mid": 1}

	joined := JoinTopicCounts(topics, counts, CountQuestions)

	require.Len(t, joined, 3)
	assert.Equal(t, "early", joined[0].TopicID)
	assert.Equal(t, "mid", joined[1].TopicID)
	assert.Equal(t, "late", joined[2].TopicID)
	assert.Equal(t, int64(1), joined[0].QuestionCount)
	assert.Zero(t, joined[0].ContentCount)
}

func TestJoinTopicCountsEmpty(t *testing.T) {
	assert.Empty(t, JoinTopicCounts(nil, nil, CountContent))
	assert.Empty(t, JoinTopicCounts([]models.Topic{topic("t1", 1)}, nil, CountContent))
}

func TestNormalizeExamName(t *testing.T) {
	assert.Equal(t, "JAMB", NormalizeExamName("jamb"))
	assert.Equal(t, "WAEC", NormalizeExamName("  waec "))
}

func TestNormalizeSubCategoryName(t *testing.T) {
	assert.Equal(t, "past-questions", NormalizeSubCategoryName("Past-Questions"))
	assert.Equal(t, "notes", NormalizeSubCategoryName(" NOTES "))
}
