package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUpdateWhitelistsFields(t *testing.T) {
	body := map[string]interface{}{
		"displayName": "Algebra Basics",
		"orderIndex":  float64(3),
		"role":        "admin",
	}
	set := buildUpdate(body, map[string]string{
		"displayName": "display_name",
		"orderIndex":  "order_index",
	})

	assert.Equal(t, "Algebra Basics", set["display_name"])
	assert.Equal(t, float64(3), set["order_index"])
	assert.NotContains(t, set, "role")
	assert.Contains(t, set, "updated_at")
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", bearerToken(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "abc123")
	assert.Equal(t, "abc123", bearerToken(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("x-auth-token", "xyz789")
	assert.Equal(t, "xyz789", bearerToken(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(r))
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, VerifyPassword("hunter2hunter2", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
}

func TestQuestionFiltersFromQuery(t *testing.T) {
	values := url.Values{
		"examId":     {"exam-1"},
		"topicIds":   {"t1,t2,t3"},
		"year":       {"2021"},
		"difficulty": {"easy"},
	}
	f, err := questionFiltersFromQuery(values)
	require.NoError(t, err)
	assert.Equal(t, "exam-1", f.ExamID)
	assert.Equal(t, []string{"t1", "t2", "t3"}, f.TopicIDs)
	assert.Equal(t, 2021, f.Year)
	assert.Equal(t, "easy", f.Difficulty)
}

func TestQuestionFiltersFromQueryRejectsBadYear(t *testing.T) {
	_, err := questionFiltersFromQuery(url.Values{"year": {"twenty21"}})
	assert.Error(t, err)
}

func TestContentFiltersFromQuery(t *testing.T) {
	values := url.Values{
		"examId":        {"exam-1"},
		"subCategoryId": {"subcat-1"},
		"topicIds":      {"t1,t2"},
	}
	f := contentFiltersFromQuery(values)
	assert.Equal(t, "exam-1", f.ExamID)
	assert.Equal(t, "subcat-1", f.SubCatID)
	assert.Equal(t, []string{"t1", "t2"}, f.TopicIDs)
}
