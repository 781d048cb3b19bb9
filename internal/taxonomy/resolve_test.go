package taxonomy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"centratutor/internal/models"
)

// fakeLookups backs resolveSegments with an in-memory taxonomy: one exam
// "JAMB", subcategory "past-questions", subject "Mathematics" available under
// that subcategory, and track "Year 2023".
func fakeLookups() segmentLookups {
	exam := &models.Exam{ExamID: "exam-1", Name: "JAMB"}
	subCat := &models.SubCategory{SubCatID: "subcat-1", ExamID: "exam-1", Name: "past-questions"}
	subject := &models.Subject{SubjectID: "subject-1", ExamID: "exam-1", Name: "Mathematics"}
	track := &models.Track{TrackID: "track-1", ExamID: "exam-1", SubCatID: "subcat-1", Name: "Year 2023"}

	return segmentLookups{
		exam: func(ctx context.Context, name string) (*models.Exam, error) {
			if name == exam.Name {
				return exam, nil
			}
			return nil, nil
		},
		subCategory: func(ctx context.Context, examID, name string) (*models.SubCategory, error) {
			if examID == exam.ExamID && name == subCat.Name {
				return subCat, nil
			}
			return nil, nil
		},
		subject: func(ctx context.Context, examID, name string) (*models.Subject, error) {
			if examID == exam.ExamID && strings.EqualFold(name, subject.Name) {
				return subject, nil
			}
			return nil, nil
		},
		available: func(ctx context.Context, examID, subjectID, subCatID string) (bool, error) {
			return examID == exam.ExamID && subjectID == subject.SubjectID && subCatID == subCat.SubCatID, nil
		},
		track: func(ctx context.Context, examID, subCatID, name string) (*models.Track, error) {
			if examID == exam.ExamID && strings.EqualFold(name, track.Name) {
				if subCatID != "" && subCatID != track.SubCatID {
					return nil, nil
				}
				return track, nil
			}
			return nil, nil
		},
	}
}

func TestResolveSegmentsFullPath(t *testing.T) {
	result, err := resolveSegments(context.Background(), fakeLookups(),
		"jamb", "Past-Questions", "mathematics", "year 2023")

	require.NoError(t, err)
	require.True(t, result.Resolved)
	assert.Empty(t, result.MissingSegment)
	assert.Equal(t, "exam-1", result.Context.Exam.ExamID)
	assert.Equal(t, "subcat-1", result.Context.SubCategory.SubCatID)
	assert.Equal(t, "subject-1", result.Context.Subject.SubjectID)
	assert.Equal(t, "track-1", result.Context.Track.TrackID)
}

func TestResolveSegmentsSkipsEmptyNames(t *testing.T) {
	result, err := resolveSegments(context.Background(), fakeLookups(), "JAMB", "", "", "")

	require.NoError(t, err)
	require.True(t, result.Resolved)
	assert.NotNil(t, result.Context.Exam)
	assert.Nil(t, result.Context.SubCategory)
	assert.Nil(t, result.Context.Subject)
	assert.Nil(t, result.Context.Track)
}

func TestResolveSegmentsNormalizesNames(t *testing.T) {
	var gotExam, gotSubCat string
	l := fakeLookups()
	baseExam, baseSubCat := l.exam, l.subCategory
	l.exam = func(ctx context.Context, name string) (*models.Exam, error) {
		gotExam = name
		return baseExam(ctx, name)
	}
	l.subCategory = func(ctx context.Context, examID, name string) (*models.SubCategory, error) {
		gotSubCat = name
		return baseSubCat(ctx, examID, name)
	}

	_, err := resolveSegments(context.Background(), l, "  jamb ", " PAST-QUESTIONS ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "JAMB", gotExam)
	assert.Equal(t, "past-questions", gotSubCat)
}

func TestResolveSegmentsReportsFirstMiss(t *testing.T) {
	cases := []struct {
		name    string
		path    [4]string
		missing string
	}{
		{"unknown exam", [4]string{"NECO", "past-questions", "Mathematics", "Year 2023"}, SegmentExam},
		{"unknown subcategory", [4]string{"JAMB", "syllabus", "Mathematics", "Year 2023"}, SegmentSubCategory},
		{"unknown subject", [4]string{"JAMB", "past-questions", "Alchemy", "Year 2023"}, SegmentSubject},
		{"unknown track", [4]string{"JAMB", "past-questions", "Mathematics", "Year 1999"}, SegmentTrack},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := resolveSegments(context.Background(), fakeLookups(),
				tc.path[0], tc.path[1], tc.path[2], tc.path[3])
			require.NoError(t, err)
			assert.False(t, result.Resolved)
			assert.Equal(t, tc.missing, result.MissingSegment)
		})
	}
}

func TestResolveSegmentsSubjectNeedsAvailability(t *testing.T) {
	l := fakeLookups()
	l.available = func(ctx context.Context, examID, subjectID, subCatID string) (bool, error) {
		return false, nil
	}

	result, err := resolveSegments(context.Background(), l,
		"JAMB", "past-questions", "Mathematics", "")

	require.NoError(t, err)
	assert.False(t, result.Resolved)
	assert.Equal(t, SegmentSubject, result.MissingSegment)
}

func TestResolveSegmentsSubjectWithoutSubCategorySkipsAvailability(t *testing.T) {
	l := fakeLookups()
	l.available = func(ctx context.Context, examID, subjectID, subCatID string) (bool, error) {
		t.Fatal("availability must not be consulted without a subcategory")
		return false, nil
	}

	result, err := resolveSegments(context.Background(), l, "JAMB", "", "Mathematics", "")

	require.NoError(t, err)
	assert.True(t, result.Resolved)
}

func TestResolveSegmentsTrackScopedToSubCategory(t *testing.T) {
	var gotSubCatID string
	l := fakeLookups()
	baseTrack := l.track
	l.track = func(ctx context.Context, examID, subCatID, name string) (*models.Track, error) {
		gotSubCatID = subCatID
		return baseTrack(ctx, examID, subCatID, name)
	}

	result, err := resolveSegments(context.Background(), l,
		"JAMB", "past-questions", "Mathematics", "Year 2023")
	require.NoError(t, err)
	require.True(t, result.Resolved)
	assert.Equal(t, "subcat-1", gotSubCatID)
}

func TestResolveSegmentsPropagatesLookupErrors(t *testing.T) {
	l := fakeLookups()
	l.subject = func(ctx context.Context, examID, name string) (*models.Subject, error) {
		return nil, errors.New("connection lost")
	}

	_, err := resolveSegments(context.Background(), l, "JAMB", "", "Mathematics", "")
	assert.EqualError(t, err, "connection lost")
}
