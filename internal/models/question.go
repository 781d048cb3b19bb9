package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Question struct {
	ID               primitive.ObjectID `bson:"_id" json:"-"`
	QuestionID       string             `bson:"question_id" json:"questionId"`
	ExamID           string             `bson:"exam_id" json:"examId" validate:"required"`
	SubjectID        string             `bson:"subject_id" json:"subjectId" validate:"required"`
	TrackID          string             `bson:"track_id" json:"trackId"`
	TopicID          string             `bson:"topic_id" json:"topicId"`
	Year             int                `bson:"year" json:"year"`
	Question         string             `bson:"question" json:"question" validate:"required"`
	QuestionDiagram  string             `bson:"question_diagram" json:"questionDiagram"`
	CorrectAnswer    string             `bson:"correct_answer" json:"correctAnswer" validate:"required"`
	IncorrectAnswers []string           `bson:"incorrect_answers" json:"incorrectAnswers" validate:"required,min=1"`
	Explanation      string             `bson:"explanation" json:"explanation"`
	Difficulty       string             `bson:"difficulty" json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	OrderIndex       int                `bson:"order_index" json:"orderIndex"`
	IsActive         bool               `bson:"is_active" json:"isActive"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
