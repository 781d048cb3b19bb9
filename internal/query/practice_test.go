package query

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centratutor/internal/models"
)

func practicePool(n int) []models.Question {
	pool := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, models.Question{
			QuestionID:       string(rune('a' + i)),
			Question:         "question",
			CorrectAnswer:    "right",
			IncorrectAnswers: []string{"wrong1", "wrong2", "wrong3"},
		})
	}
	return pool
}

func TestBuildPracticeSessionTruncatesToRequestedCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	session := BuildPracticeSession("exam-1", "subject-1", practicePool(10), 4, rng)

	assert.Equal(t, 4, session.QuestionCount)
	assert.Len(t, session.Questions, 4)
	assert.Equal(t, "exam-1", session.ExamID)
	assert.Equal(t, "subject-1", session.SubjectID)
	assert.NotEmpty(t, session.SessionID)
}

func TestBuildPracticeSessionSmallPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	session := BuildPracticeSession("exam-1", "subject-1", practicePool(3), 10, rng)
	assert.Equal(t, 3, session.QuestionCount)
	assert.Len(t, session.Questions, 3)
}

func TestBuildPracticeSessionOptionsContainCorrectAnswer(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	session := BuildPracticeSession("exam-1", "subject-1", practicePool(8), 8, rng)

	for _, q := range session.Questions {
		require.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}
}

func TestBuildPracticeSessionDoesNotMutateCandidates(t *testing.T) {
	pool := practicePool(6)
	first := pool[0].QuestionID
	BuildPracticeSession("exam-1", "subject-1", pool, 3, rand.New(rand.NewSource(7)))
	assert.Equal(t, first, pool[0].QuestionID)
}

func TestBuildPracticeSessionNilRNG(t *testing.T) {
	session := BuildPracticeSession("exam-1", "subject-1", practicePool(5), 2, nil)
	assert.Equal(t, 2, session.QuestionCount)
}
