package taxonomy

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"centratutor/internal/models"
)

// TrackFlow is a track together with its topics that actually hold content.
type TrackFlow struct {
	Track  models.Track     `json:"track"`
	Topics []TopicWithCount `json:"topics"`
}

// SubCategoryFlow is one branch of the user-flow tree.
type SubCategoryFlow struct {
	SubCategory models.SubCategory `json:"subCategory"`
	Subjects    []models.Subject   `json:"subjects"`
	Tracks      []TrackFlow        `json:"tracks"`
}

// UserFlow is the denormalized navigation tree for one exam.
type UserFlow struct {
	ExamID        string            `json:"examId"`
	SubCategories []SubCategoryFlow `json:"subCategories"`
}

// CompleteUserFlow assembles the full navigation tree for an exam by
// sequential queries: subcategories, then per-subcategory subjects and
// tracks, then per-track topic aggregation. The result is not a snapshot;
// concurrent writes can show through between queries.
func CompleteUserFlow(ctx context.Context, examID string) (UserFlow, error) {
	flow := UserFlow{ExamID: examID, SubCategories: []SubCategoryFlow{}}

	orderIdx := options.Find().SetSort(bson.M{"order_index": 1})
	cur, err := subCategoryCollection.Find(ctx, bson.M{"exam_id": examID, "is_active": true}, orderIdx)
	if err != nil {
		return flow, err
	}
	subCats := []models.SubCategory{}
	if err := cur.All(ctx, &subCats); err != nil {
		return flow, err
	}

	for _, subCat := range subCats {
		branch := SubCategoryFlow{SubCategory: subCat, Subjects: []models.Subject{}, Tracks: []TrackFlow{}}

		subjects, err := availableSubjects(ctx, examID, subCat.SubCatID)
		if err != nil {
			return flow, err
		}
		branch.Subjects = subjects

		trackCur, err := trackCollection.Find(ctx, bson.M{
			"exam_id":        examID,
			"subcategory_id": subCat.SubCatID,
			"is_active":      true,
		}, options.Find().SetSort(bson.M{"order_index": 1}))
		if err != nil {
			return flow, err
		}
		tracks := []models.Track{}
		if err := trackCur.All(ctx, &tracks); err != nil {
			return flow, err
		}

		for _, track := range tracks {
			topics, err := trackTopics(ctx, examID, subCat.SubCatID, track.TrackID)
			if err != nil {
				return flow, err
			}
			branch.Tracks = append(branch.Tracks, TrackFlow{Track: track, Topics: topics})
		}

		flow.SubCategories = append(flow.SubCategories, branch)
	}

	return flow, nil
}

// availableSubjects lists the active subjects linked to a subcategory via
// availability records.
func availableSubjects(ctx context.Context, examID, subCatID string) ([]models.Subject, error) {
	cur, err := availabilityCollection.Find(ctx, bson.M{"exam_id": examID, "subcategory_id": subCatID})
	if err != nil {
		return nil, err
	}
	links := []models.SubjectAvailability{}
	if err := cur.All(ctx, &links); err != nil {
		return nil, err
	}

	subjects := []models.Subject{}
	if len(links) == 0 {
		return subjects, nil
	}
	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.SubjectID)
	}

	subjectCur, err := subjectCollection.Find(ctx, bson.M{
		"subject_id": bson.M{"$in": ids},
		"is_active":  true,
	})
	if err != nil {
		return nil, err
	}
	if err := subjectCur.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// trackTopics aggregates content counts per topic across all subjects of a
// track branch.
func trackTopics(ctx context.Context, examID, subCatID, trackID string) ([]TopicWithCount, error) {
	counts, err := countByTopic(ctx, contentCollection, bson.M{
		"exam_id":        examID,
		"subcategory_id": subCatID,
		"track_id":       trackID,
		"is_active":      true,
	})
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return []TopicWithCount{}, nil
	}

	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	cur, err := topicCollection.Find(ctx, bson.M{"topic_id": bson.M{"$in": ids}, "is_active": true})
	if err != nil {
		return nil, err
	}
	topics := []models.Topic{}
	if err := cur.All(ctx, &topics); err != nil {
		return nil, err
	}

	return JoinTopicCounts(topics, counts, CountContent), nil
}
