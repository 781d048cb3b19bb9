// Package query produces filtered, grouped, paginated views over the content
// and question collections. Fetches hit mongo once; grouping and practice
// shaping happen in memory on the fetched set.
package query

import (
	"fmt"
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// QuestionFilters AND together; the zero value matches every active
// question. TopicID and TopicIDs are compatible: when both are set the
// question must equal the former and be a member of the latter.
type QuestionFilters struct {
	ExamID     string
	SubjectID  string
	TrackID    string
	TopicID    string
	TopicIDs   []string
	Year       int
	Difficulty string
}

// Build renders the filters as a mongo query over active questions.
func (f QuestionFilters) Build() bson.M {
	filter := bson.M{"is_active": true}
	if f.ExamID != "" {
		filter["exam_id"] = f.ExamID
	}
	if f.SubjectID != "" {
		filter["subject_id"] = f.SubjectID
	}
	if f.TrackID != "" {
		filter["track_id"] = f.TrackID
	}
	filter["topic_id"] = topicFilter(f.TopicID, f.TopicIDs)
	if filter["topic_id"] == nil {
		delete(filter, "topic_id")
	}
	if f.Year != 0 {
		filter["year"] = f.Year
	}
	if f.Difficulty != "" {
		filter["difficulty"] = f.Difficulty
	}
	return filter
}

// ContentFilters mirror QuestionFilters for the content collection, adding
// the subcategory dimension.
type ContentFilters struct {
	ExamID    string
	SubjectID string
	TrackID   string
	SubCatID  string
	TopicID   string
	TopicIDs  []string
}

func (f ContentFilters) Build() bson.M {
	filter := bson.M{"is_active": true}
	if f.ExamID != "" {
		filter["exam_id"] = f.ExamID
	}
	if f.SubjectID != "" {
		filter["subject_id"] = f.SubjectID
	}
	if f.TrackID != "" {
		filter["track_id"] = f.TrackID
	}
	if f.SubCatID != "" {
		filter["subcategory_id"] = f.SubCatID
	}
	filter["topic_id"] = topicFilter(f.TopicID, f.TopicIDs)
	if filter["topic_id"] == nil {
		delete(filter, "topic_id")
	}
	return filter
}

func topicFilter(topicID string, topicIDs []string) interface{} {
	switch {
	case topicID != "" && len(topicIDs) > 0:
		return bson.M{"$eq": topicID, "$in": topicIDs}
	case topicID != "":
		return topicID
	case len(topicIDs) > 0:
		return bson.M{"$in": topicIDs}
	default:
		return nil
	}
}

// ParseLimitOffset reads limit/offset query parameters strictly: absent means
// zero (no limit, no skip), anything non-numeric or negative is an error the
// handler surfaces as a 400.
func ParseLimitOffset(values url.Values) (limit int64, offset int64, err error) {
	if raw := values.Get("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", raw)
		}
	}
	if raw := values.Get("offset"); raw != "" {
		offset, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", raw)
		}
	}
	return limit, offset, nil
}
