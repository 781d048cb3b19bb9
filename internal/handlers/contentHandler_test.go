package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"centratutor/internal/ingest"
	"centratutor/internal/models"
)

func validContent(name string) models.Content {
	return models.Content{
		ExamID:      "exam-1",
		SubjectID:   "subject-1",
		TrackID:     "track-1",
		SubCatID:    "subcat-1",
		Name:        name,
		DisplayName: name,
		Metadata:    map[string]string{"week": "5"},
	}
}

func TestContentKeyFilterScopesActiveRows(t *testing.T) {
	filter := contentKeyFilter(validContent("Week 5 notes"))

	assert.Equal(t, bson.M{
		"exam_id":        "exam-1",
		"subject_id":     "subject-1",
		"track_id":       "track-1",
		"subcategory_id": "subcat-1",
		"name":           "Week 5 notes",
		"is_active":      true,
	}, filter)
}

func TestBulkContentRowRejectsFailedAdmission(t *testing.T) {
	admit := func(ctx context.Context, c *models.Content) (int, string, error) {
		return http.StatusBadRequest, "week 5 is outside the track duration of 2 weeks", nil
	}
	row := newContentRow(validContent("Week 5 notes"), admit)
	row.Exists = func(ctx context.Context) (bool, error) { return false, nil }

	outcome := ingest.Run(context.Background(), []ingest.Row{row})

	assert.Empty(t, outcome.Created)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "week 5 is outside the track duration of 2 weeks", outcome.Errors[0].Message)
}

func TestBulkContentRowPropagatesAdmissionError(t *testing.T) {
	admit := func(ctx context.Context, c *models.Content) (int, string, error) {
		return 0, "", errors.New("connection lost")
	}
	row := newContentRow(validContent("Week 1 notes"), admit)
	row.Exists = func(ctx context.Context) (bool, error) { return false, nil }

	outcome := ingest.Run(context.Background(), []ingest.Row{row})

	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "connection lost", outcome.Errors[0].Message)
}

func TestBulkContentRowValidatesBeforeAdmission(t *testing.T) {
	admitCalled := false
	admit := func(ctx context.Context, c *models.Content) (int, string, error) {
		admitCalled = true
		return 0, "", nil
	}
	row := newContentRow(models.Content{Name: "missing required fields"}, admit)
	row.Exists = func(ctx context.Context) (bool, error) { return false, nil }

	outcome := ingest.Run(context.Background(), []ingest.Row{row})

	require.Len(t, outcome.Errors, 1)
	assert.False(t, admitCalled)
}
