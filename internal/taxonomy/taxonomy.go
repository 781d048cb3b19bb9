// Package taxonomy resolves and validates the exam → subcategory → subject →
// track → topic hierarchy. Referential integrity between the taxonomy
// collections is enforced here, at the application layer, not by the
// database.
package taxonomy

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"centratutor/database"
	"centratutor/internal/models"
)

var (
	examCollection         *mongo.Collection = database.OpenCollection(database.Client, "exams")
	subCategoryCollection  *mongo.Collection = database.OpenCollection(database.Client, "subcategories")
	subjectCollection      *mongo.Collection = database.OpenCollection(database.Client, "subjects")
	availabilityCollection *mongo.Collection = database.OpenCollection(database.Client, "subjectavailability")
	trackCollection        *mongo.Collection = database.OpenCollection(database.Client, "tracks")
	topicCollection        *mongo.Collection = database.OpenCollection(database.Client, "topics")
	contentCollection      *mongo.Collection = database.OpenCollection(database.Client, "contents")
	questionCollection     *mongo.Collection = database.OpenCollection(database.Client, "questions")
)

// NormalizeExamName uppercases an exam name the way it is stored.
func NormalizeExamName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NormalizeSubCategoryName lowercases a subcategory name the way it is stored.
func NormalizeSubCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func caseInsensitiveExact(name string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$", Options: "i"}
}

// Context holds the entities a path resolved to. Segments the caller did not
// ask for stay nil.
type Context struct {
	Exam        *models.Exam        `json:"exam,omitempty"`
	SubCategory *models.SubCategory `json:"subCategory,omitempty"`
	Subject     *models.Subject     `json:"subject,omitempty"`
	Track       *models.Track       `json:"track,omitempty"`
}

// ResolveResult is a tagged variant: either Resolved with a full Context, or
// unresolved with the first segment that failed to match.
type ResolveResult struct {
	Resolved       bool    `json:"resolved"`
	MissingSegment string  `json:"missingSegment,omitempty"`
	Context        Context `json:"context"`
}

// Segment names reported in ResolveResult.MissingSegment.
const (
	SegmentExam        = "exam"
	SegmentSubCategory = "subcategory"
	SegmentSubject     = "subject"
	SegmentTrack       = "track"
)

// segmentLookups supplies the storage queries the resolution fold runs over.
// Every lookup matches active entities only and returns (nil, nil) on a miss.
type segmentLookups struct {
	exam        func(ctx context.Context, name string) (*models.Exam, error)
	subCategory func(ctx context.Context, examID, name string) (*models.SubCategory, error)
	subject     func(ctx context.Context, examID, name string) (*models.Subject, error)
	available   func(ctx context.Context, examID, subjectID, subCatID string) (bool, error)
	track       func(ctx context.Context, examID, subCatID, name string) (*models.Track, error)
}

// resolveSegments folds the path segments in order. Empty names are skipped,
// normalization happens here (exams upper, subcategories lower, the rest
// trimmed), resolution stops at the first miss and that segment is reported.
// A subject only resolves under a subcategory if an availability record links
// the two.
func resolveSegments(ctx context.Context, l segmentLookups, examName, subCategoryName, subjectName, trackName string) (ResolveResult, error) {
	var result ResolveResult

	exam, err := l.exam(ctx, NormalizeExamName(examName))
	if err != nil {
		return result, err
	}
	if exam == nil {
		result.MissingSegment = SegmentExam
		return result, nil
	}
	result.Context.Exam = exam

	if subCategoryName != "" {
		subCat, err := l.subCategory(ctx, exam.ExamID, NormalizeSubCategoryName(subCategoryName))
		if err != nil {
			return result, err
		}
		if subCat == nil {
			result.MissingSegment = SegmentSubCategory
			return result, nil
		}
		result.Context.SubCategory = subCat
	}

	if subjectName != "" {
		subject, err := l.subject(ctx, exam.ExamID, strings.TrimSpace(subjectName))
		if err != nil {
			return result, err
		}
		if subject == nil {
			result.MissingSegment = SegmentSubject
			return result, nil
		}

		if result.Context.SubCategory != nil {
			ok, err := l.available(ctx, exam.ExamID, subject.SubjectID, result.Context.SubCategory.SubCatID)
			if err != nil {
				return result, err
			}
			if !ok {
				result.MissingSegment = SegmentSubject
				return result, nil
			}
		}
		result.Context.Subject = subject
	}

	if trackName != "" {
		subCatID := ""
		if result.Context.SubCategory != nil {
			subCatID = result.Context.SubCategory.SubCatID
		}
		track, err := l.track(ctx, exam.ExamID, subCatID, strings.TrimSpace(trackName))
		if err != nil {
			return result, err
		}
		if track == nil {
			result.MissingSegment = SegmentTrack
			return result, nil
		}
		result.Context.Track = track
	}

	result.Resolved = true
	return result, nil
}

func mongoLookups() segmentLookups {
	return segmentLookups{
		exam: func(ctx context.Context, name string) (*models.Exam, error) {
			var exam models.Exam
			err := examCollection.FindOne(ctx, bson.M{
				"name":      name,
				"is_active": true,
			}).Decode(&exam)
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &exam, nil
		},
		subCategory: func(ctx context.Context, examID, name string) (*models.SubCategory, error) {
			var subCat models.SubCategory
			err := subCategoryCollection.FindOne(ctx, bson.M{
				"exam_id":   examID,
				"name":      name,
				"is_active": true,
			}).Decode(&subCat)
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &subCat, nil
		},
		subject: func(ctx context.Context, examID, name string) (*models.Subject, error) {
			var subject models.Subject
			err := subjectCollection.FindOne(ctx, bson.M{
				"exam_id":   examID,
				"name":      caseInsensitiveExact(name),
				"is_active": true,
			}).Decode(&subject)
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &subject, nil
		},
		available: func(ctx context.Context, examID, subjectID, subCatID string) (bool, error) {
			count, err := availabilityCollection.CountDocuments(ctx, bson.M{
				"exam_id":        examID,
				"subject_id":     subjectID,
				"subcategory_id": subCatID,
			})
			return count > 0, err
		},
		track: func(ctx context.Context, examID, subCatID, name string) (*models.Track, error) {
			filter := bson.M{
				"exam_id":   examID,
				"name":      caseInsensitiveExact(name),
				"is_active": true,
			}
			if subCatID != "" {
				filter["subcategory_id"] = subCatID
			}
			var track models.Track
			err := trackCollection.FindOne(ctx, filter).Decode(&track)
			if err == mongo.ErrNoDocuments {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			return &track, nil
		},
	}
}

// ResolveContext resolves human-readable path segments into entity
// references.
func ResolveContext(ctx context.Context, examName, subCategoryName, subjectName, trackName string) (ResolveResult, error) {
	return resolveSegments(ctx, mongoLookups(), examName, subCategoryName, subjectName, trackName)
}
