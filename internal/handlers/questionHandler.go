package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"centratutor/database"
	"centratutor/internal/ingest"
	"centratutor/internal/models"
	"centratutor/internal/query"
	"centratutor/internal/taxonomy"
	httpClient "centratutor/internal/utility/http"
)

var questionCollection *mongo.Collection = database.OpenCollection(database.Client, "questions")

// questionFiltersFromQuery reads the filter query parameters. Numeric
// parameters parse strictly: non-numeric input is a client error.
func questionFiltersFromQuery(values url.Values) (query.QuestionFilters, error) {
	f := query.QuestionFilters{
		ExamID:     values.Get("examId"),
		SubjectID:  values.Get("subjectId"),
		TrackID:    values.Get("trackId"),
		TopicID:    values.Get("topicId"),
		Difficulty: values.Get("difficulty"),
	}
	if raw := values.Get("topicIds"); raw != "" {
		f.TopicIDs = strings.Split(raw, ",")
	}
	if raw := values.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("invalid year %q", raw)
		}
		f.Year = year
	}
	return f, nil
}

func GetQuestions(w http.ResponseWriter, r *http.Request) {
	filters, err := questionFiltersFromQuery(r.URL.Query())
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	limit, offset, err := query.ParseLimitOffset(r.URL.Query())
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	questions, err := query.QuestionsByFilters(ctx, filters, limit, offset)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}
	total, err := query.CountQuestions(ctx, filters)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}

	httpClient.RespondSuccess(w, map[string]interface{}{
		"questions":      questions,
		"totalQuestions": total,
	})
}

func CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var question models.Question
	if !decodeBody(w, r, &question) {
		return
	}

	if err := validate.Struct(question); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyExists, err := questionCollection.CountDocuments(ctx, bson.M{
		"exam_id":    question.ExamID,
		"subject_id": question.SubjectID,
		"year":       question.Year,
		"question":   question.Question,
	})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "Question already exists!", nil)
		return
	}

	question.ID = primitive.NewObjectID()
	question.QuestionID = question.ID.Hex()
	question.IsActive = true
	question.CreatedAt = time.Now().UTC()
	question.UpdatedAt = question.CreatedAt

	if _, err := questionCollection.InsertOne(ctx, question); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, question)
}

func GetQuestionByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	var question models.Question
	err := questionCollection.FindOne(ctx, bson.M{"question_id": chi.URLParam(r, "id")}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpClient.RespondError(w, http.StatusNotFound, "Question not found", nil)
		} else {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving question", err)
		}
		return
	}
	httpClient.RespondSuccess(w, question)
}

func UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}
	set := buildUpdate(body, map[string]string{
		"question":         "question",
		"questionDiagram":  "question_diagram",
		"correctAnswer":    "correct_answer",
		"incorrectAnswers": "incorrect_answers",
		"explanation":      "explanation",
		"difficulty":       "difficulty",
		"year":             "year",
		"topicId":          "topic_id",
		"trackId":          "track_id",
		"orderIndex":       "order_index",
		"isActive":         "is_active",
	})

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := questionCollection.UpdateOne(ctx,
		bson.M{"question_id": chi.URLParam(r, "id")},
		bson.M{"$set": set},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating question", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Question not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

func DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := questionCollection.UpdateOne(ctx,
		bson.M{"question_id": chi.URLParam(r, "id")},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting question", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Question not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

// QuestionsMultiSelection returns questions across a required set of tracks,
// optionally narrowed to a topic set.
func QuestionsMultiSelection(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExamID    string   `json:"examId"`
		SubjectID string   `json:"subjectId"`
		TrackIDs  []string `json:"trackIds"`
		TopicIDs  []string `json:"topicIds"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	questions, err := query.QuestionsMultiSelection(ctx, payload.ExamID, payload.SubjectID, payload.TrackIDs, payload.TopicIDs)
	if err == query.ErrEmptyTrackSelection {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}
	httpClient.RespondSuccess(w, questions)
}

// GroupedQuestions fetches the flat filtered set once and partitions it by
// topic client-side.
func GroupedQuestions(w http.ResponseWriter, r *http.Request) {
	filters, err := questionFiltersFromQuery(r.URL.Query())
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	questions, err := query.QuestionsByFilters(ctx, filters, 0, 0)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}
	httpClient.RespondSuccess(w, query.GroupQuestionsByTopic(questions))
}

type bulkQuestionItem struct {
	Subject          string   `json:"subject"`
	Year             int      `json:"year"`
	Topic            string   `json:"topic"`
	Question         string   `json:"question"`
	QuestionDiagram  string   `json:"question_diagram"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Explanation      string   `json:"explanation"`
	Difficulty       string   `json:"difficulty"`
}

func (item bulkQuestionItem) validate() error {
	switch {
	case item.Subject == "":
		return fmt.Errorf("subject is required")
	case item.Year == 0:
		return fmt.Errorf("year is required")
	case item.Topic == "":
		return fmt.Errorf("topic is required")
	case item.Question == "":
		return fmt.Errorf("question is required")
	case item.CorrectAnswer == "":
		return fmt.Errorf("correct_answer is required")
	case len(item.IncorrectAnswers) == 0:
		return fmt.Errorf("incorrect_answers is required")
	}
	return nil
}

// BulkUploadQuestions ingests a question batch scoped to one exam. Subjects
// and topics are referenced by name and resolved per row; an unresolvable
// reference classifies that row as an error, not the whole batch.
func BulkUploadQuestions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExamName  string             `json:"examName"`
		TrackID   string             `json:"trackId"`
		Questions []bulkQuestionItem `json:"questions"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.ExamName == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "examName is required", nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	resolved, err := taxonomy.ResolveContext(ctx, payload.ExamName, "", "", "")
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if !resolved.Resolved {
		httpClient.RespondError(w, http.StatusNotFound, "exam not found", nil)
		return
	}
	examID := resolved.Context.Exam.ExamID

	subjectIDs := map[string]string{}
	topicIDs := map[string]string{}

	resolveSubject := func(ctx context.Context, name string) (string, error) {
		key := strings.ToLower(name)
		if id, ok := subjectIDs[key]; ok {
			return id, nil
		}
		res, err := taxonomy.ResolveContext(ctx, payload.ExamName, "", name, "")
		if err != nil {
			return "", err
		}
		if !res.Resolved {
			return "", fmt.Errorf("subject %q not found", name)
		}
		subjectIDs[key] = res.Context.Subject.SubjectID
		return subjectIDs[key], nil
	}

	resolveTopic := func(ctx context.Context, subjectID, name string) (string, error) {
		key := subjectID + "/" + strings.ToLower(name)
		if id, ok := topicIDs[key]; ok {
			return id, nil
		}
		validation, err := taxonomy.ValidateTopicForContent(ctx, examID, subjectID, name)
		if err != nil {
			return "", err
		}
		if !validation.IsValid {
			return "", fmt.Errorf("%s", validation.Message)
		}
		topicIDs[key] = validation.TopicID
		return validation.TopicID, nil
	}

	rows := make([]ingest.Row, 0, len(payload.Questions))
	for _, item := range payload.Questions {
		item := item
		rows = append(rows, ingest.Row{
			Item:     item,
			Validate: item.validate,
			Exists: func(ctx context.Context) (bool, error) {
				subjectID, err := resolveSubject(ctx, item.Subject)
				if err != nil {
					return false, err
				}
				n, err := questionCollection.CountDocuments(ctx, bson.M{
					"exam_id":    examID,
					"subject_id": subjectID,
					"year":       item.Year,
					"question":   item.Question,
				})
				return n > 0, err
			},
			Insert: func(ctx context.Context) error {
				subjectID, err := resolveSubject(ctx, item.Subject)
				if err != nil {
					return err
				}
				topicID, err := resolveTopic(ctx, subjectID, item.Topic)
				if err != nil {
					return err
				}
				now := time.Now().UTC()
				question := models.Question{
					ID:               primitive.NewObjectID(),
					ExamID:           examID,
					SubjectID:        subjectID,
					TrackID:          payload.TrackID,
					TopicID:          topicID,
					Year:             item.Year,
					Question:         item.Question,
					QuestionDiagram:  item.QuestionDiagram,
					CorrectAnswer:    item.CorrectAnswer,
					IncorrectAnswers: item.IncorrectAnswers,
					Explanation:      item.Explanation,
					Difficulty:       item.Difficulty,
					IsActive:         true,
					CreatedAt:        now,
					UpdatedAt:        now,
				}
				question.QuestionID = question.ID.Hex()
				_, err = questionCollection.InsertOne(ctx, question)
				return err
			},
		})
	}

	httpClient.RespondSuccess(w, ingest.Run(ctx, rows))
}

// PracticeSession assembles a randomized practice set from the filtered
// candidate pool.
func PracticeSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExamID        string   `json:"examId"`
		SubjectID     string   `json:"subjectId"`
		TrackIDs      []string `json:"trackIds"`
		TopicIDs      []string `json:"topicIds"`
		Difficulty    string   `json:"difficulty"`
		QuestionCount int      `json:"questionCount"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.ExamID == "" || payload.SubjectID == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "examId and subjectId are required", nil)
		return
	}
	if payload.QuestionCount <= 0 {
		payload.QuestionCount = 20
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var candidates []models.Question
	var err error
	if len(payload.TrackIDs) > 0 {
		candidates, err = query.QuestionsMultiSelection(ctx, payload.ExamID, payload.SubjectID, payload.TrackIDs, payload.TopicIDs)
	} else {
		candidates, err = query.QuestionsByFilters(ctx, query.QuestionFilters{
			ExamID:     payload.ExamID,
			SubjectID:  payload.SubjectID,
			TopicIDs:   payload.TopicIDs,
			Difficulty: payload.Difficulty,
		}, 0, 0)
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}

	// The multi-track query has no difficulty knob, so narrow here.
	if payload.Difficulty != "" && len(payload.TrackIDs) > 0 {
		filtered := candidates[:0]
		for _, q := range candidates {
			if q.Difficulty == payload.Difficulty {
				filtered = append(filtered, q)
			}
		}
		candidates = filtered
	}

	session := query.BuildPracticeSession(payload.ExamID, payload.SubjectID, candidates, payload.QuestionCount, nil)
	httpClient.RespondSuccess(w, session)
}

// QuickPractice samples random questions server-side, so the full candidate
// set never leaves the database.
func QuickPractice(w http.ResponseWriter, r *http.Request) {
	filters, err := questionFiltersFromQuery(r.URL.Query())
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	count := int64(10)
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || count <= 0 {
			httpClient.RespondError(w, http.StatusBadRequest, fmt.Sprintf("invalid count %q", raw), nil)
			return
		}
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	questions, err := query.SampleQuestions(ctx, filters, count)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error sampling questions", err)
		return
	}
	httpClient.RespondSuccess(w, questions)
}

type exportQuestion struct {
	Subject          string   `json:"subject"`
	Year             int      `json:"year"`
	Topic            string   `json:"topic"`
	Question         string   `json:"question"`
	QuestionDiagram  string   `json:"question_diagram"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Explanation      string   `json:"explanation"`
	Difficulty       string   `json:"difficulty"`
}

// ExportQuestions emits the filtered question set as a downloadable JSON
// attachment, with subject and topic ids resolved back to display names.
func ExportQuestions(w http.ResponseWriter, r *http.Request) {
	filters, err := questionFiltersFromQuery(r.URL.Query())
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	questions, err := query.QuestionsByFilters(ctx, filters, 0, 0)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}

	subjectNames, err := displayNames(ctx, subjectCollection, "subject_id")
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error exporting questions", err)
		return
	}
	topicNames, err := displayNames(ctx, topicCollection, "topic_id")
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error exporting questions", err)
		return
	}

	items := make([]exportQuestion, 0, len(questions))
	for _, q := range questions {
		items = append(items, exportQuestion{
			Subject:          subjectNames[q.SubjectID],
			Year:             q.Year,
			Topic:            topicNames[q.TopicID],
			Question:         q.Question,
			QuestionDiagram:  q.QuestionDiagram,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: q.IncorrectAnswers,
			Explanation:      q.Explanation,
			Difficulty:       q.Difficulty,
		})
	}

	filename := fmt.Sprintf("questions-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	httpClient.RespondRaw(w, http.StatusOK, map[string]interface{}{
		"exportInfo": map[string]interface{}{
			"exportedAt":     time.Now().UTC(),
			"totalQuestions": len(items),
		},
		"questions": items,
	})
}

// displayNames maps entity ids to display names for export joins.
func displayNames(ctx context.Context, coll *mongo.Collection, idField string) (map[string]string, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	names := map[string]string{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		id, _ := doc[idField].(string)
		name, _ := doc["display_name"].(string)
		if id != "" {
			names[id] = name
		}
	}
	return names, cur.Err()
}
