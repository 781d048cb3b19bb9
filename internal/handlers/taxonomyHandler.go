package handlers

import (
	"net/http"

	"github.com/go-chi/chi"

	"centratutor/internal/taxonomy"
	httpClient "centratutor/internal/utility/http"
)

// TrackTopicsWithContent resolves the full four-segment path and returns the
// subject's topics holding content under that track, with counts.
func TrackTopicsWithContent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := taxonomy.ResolveContext(ctx,
		chi.URLParam(r, "examName"),
		chi.URLParam(r, "subCategoryName"),
		chi.URLParam(r, "subjectName"),
		chi.URLParam(r, "trackName"),
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if !result.Resolved {
		httpClient.RespondError(w, http.StatusNotFound, result.MissingSegment+" not found", nil)
		return
	}

	c := result.Context
	topics, err := taxonomy.TopicsWithContentForTrack(ctx, c.Exam.ExamID, c.Subject.SubjectID, c.Track.TrackID, c.SubCategory.SubCatID)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching topics", err)
		return
	}
	httpClient.RespondSuccess(w, map[string]interface{}{
		"context": c,
		"topics":  topics,
	})
}

// TrackTopicsWithQuestions is the past-questions variant; no subcategory
// dimension applies.
func TrackTopicsWithQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := taxonomy.ResolveContext(ctx,
		chi.URLParam(r, "examName"),
		"",
		chi.URLParam(r, "subjectName"),
		chi.URLParam(r, "trackName"),
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if !result.Resolved {
		httpClient.RespondError(w, http.StatusNotFound, result.MissingSegment+" not found", nil)
		return
	}

	c := result.Context
	topics, err := taxonomy.TopicsWithQuestionsForTrack(ctx, c.Exam.ExamID, c.Subject.SubjectID, c.Track.TrackID)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching topics", err)
		return
	}
	httpClient.RespondSuccess(w, map[string]interface{}{
		"context": c,
		"topics":  topics,
	})
}

// UserFlow returns the denormalized navigation tree for one exam.
func UserFlow(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	flow, err := taxonomy.CompleteUserFlow(ctx, chi.URLParam(r, "examId"))
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error assembling user flow", err)
		return
	}
	httpClient.RespondSuccess(w, flow)
}
