package query

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"centratutor/internal/models"
)

// PracticeQuestion carries shuffled answer options. The correct answer is
// tagged explicitly for the evaluator rather than positionally.
type PracticeQuestion struct {
	QuestionID      string   `json:"questionId"`
	Question        string   `json:"question"`
	QuestionDiagram string   `json:"questionDiagram,omitempty"`
	Options         []string `json:"options"`
	CorrectAnswer   string   `json:"correctAnswer"`
	Explanation     string   `json:"explanation,omitempty"`
	Difficulty      string   `json:"difficulty,omitempty"`
}

type PracticeSession struct {
	SessionID     string             `json:"sessionId"`
	ExamID        string             `json:"examId"`
	SubjectID     string             `json:"subjectId"`
	QuestionCount int                `json:"questionCount"`
	Questions     []PracticeQuestion `json:"questions"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// BuildPracticeSession shuffles the candidate pool uniformly, keeps
// min(questionCount, len(candidates)) questions and independently shuffles
// each question's options. A nil rng gets a time-seeded source.
func BuildPracticeSession(examID, subjectID string, candidates []models.Question, questionCount int, rng *rand.Rand) PracticeSession {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	pool := make([]models.Question, len(candidates))
	copy(pool, candidates)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if questionCount > 0 && questionCount < len(pool) {
		pool = pool[:questionCount]
	}

	session := PracticeSession{
		SessionID:     uuid.New().String(),
		ExamID:        examID,
		SubjectID:     subjectID,
		QuestionCount: len(pool),
		Questions:     make([]PracticeQuestion, 0, len(pool)),
		CreatedAt:     time.Now().UTC(),
	}

	for _, q := range pool {
		options := make([]string, 0, len(q.IncorrectAnswers)+1)
		options = append(options, q.IncorrectAnswers...)
		options = append(options, q.CorrectAnswer)
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		session.Questions = append(session.Questions, PracticeQuestion{
			QuestionID:      q.QuestionID,
			Question:        q.Question,
			QuestionDiagram: q.QuestionDiagram,
			Options:         options,
			CorrectAnswer:   q.CorrectAnswer,
			Explanation:     q.Explanation,
			Difficulty:      q.Difficulty,
		})
	}

	return session
}
