package mongostore

import (
	"context"
	"fmt"
	"time"

	"team-roster-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type guestDocument struct {
	UserID     string `bson:"userId"`
	Attendance bool   `bson:"attendance"`
}

type activityDocument struct {
	ID             string          `bson:"_id"`
	Subject        string          `bson:"subject"`
	ActivityType   string          `bson:"activityType"`
	HostingTeamID  string          `bson:"hostingTeam"`
	OpponentTeamID string          `bson:"opponent"`
	Date           *time.Time      `bson:"date,omitempty"`
	Location       string          `bson:"location"`
	Guests         []guestDocument `bson:"guests"`
}

// ActivityRepository хранит активности в коллекции activities, а ссылки на них
// в массиве activities документа команды.
type ActivityRepository struct {
	activities *mongo.Collection
	teams      *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) domain.ActivityRepository {
	return &ActivityRepository{
		activities: db.Collection(activitiesCollection),
		teams:      db.Collection(teamsCollection),
	}
}

// Create вставляет активность, затем добавляет ссылку командам.
// $addToSet делает повтор после сбоя идемпотентным.
func (r *ActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if _, err := r.activities.InsertOne(ctx, toActivityDocument(activity)); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	if err := r.link(ctx, activity.ID, teamIDs(activity)...); err != nil {
		return err
	}
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, activityID string) (*domain.Activity, error) {
	var doc activityDocument
	err := r.activities.FindOne(ctx, bson.M{"_id": activityID}).Decode(&doc)
	if isNoDocuments(err) {
		return nil, domain.ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ActivityRepository) GetByIDs(ctx context.Context, activityIDs []string) ([]*domain.Activity, error) {
	if len(activityIDs) == 0 {
		return []*domain.Activity{}, nil
	}

	cursor, err := r.activities.Find(ctx, bson.M{"_id": bson.M{"$in": activityIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find activities: %w", err)
	}

	var docs []activityDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}

	activities := make([]*domain.Activity, 0, len(docs))
	for _, doc := range docs {
		activities = append(activities, doc.toDomain())
	}
	return orderByIDs(activityIDs, activities, func(a *domain.Activity) string { return a.ID }), nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity *domain.Activity, previousOpponentID string) error {
	doc := toActivityDocument(activity)
	set := bson.M{
		"subject":      doc.Subject,
		"activityType": doc.ActivityType,
		"opponent":     doc.OpponentTeamID,
		"location":     doc.Location,
		"guests":       doc.Guests,
	}
	update := bson.M{"$set": set}
	if doc.Date != nil {
		set["date"] = doc.Date
	} else {
		update["$unset"] = bson.M{"date": ""}
	}

	result, err := r.activities.UpdateByID(ctx, activity.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrActivityNotFound
	}

	if previousOpponentID == activity.OpponentTeamID {
		return nil
	}
	if previousOpponentID != "" && previousOpponentID != activity.HostingTeamID {
		if err := r.unlink(ctx, activity.ID, previousOpponentID); err != nil {
			return err
		}
	}
	if !activity.IsSelfHosted() {
		return r.link(ctx, activity.ID, activity.OpponentTeamID)
	}
	return nil
}

// SetAttendance меняет отметку через позиционный оператор, не трогая остальных гостей.
func (r *ActivityRepository) SetAttendance(ctx context.Context, activityID, userID string, attendance bool) error {
	filter := bson.M{"_id": activityID, "guests.userId": userID}
	update := bson.M{"$set": bson.M{"guests.$.attendance": attendance}}

	result, err := r.activities.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set attendance: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrGuestNotFound
	}
	return nil
}

func (r *ActivityRepository) Delete(ctx context.Context, activity *domain.Activity) error {
	if err := r.unlink(ctx, activity.ID, teamIDs(activity)...); err != nil {
		return err
	}

	result, err := r.activities.DeleteOne(ctx, bson.M{"_id": activity.ID})
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

// Link добавляет активность в список команды через $addToSet.
func (r *ActivityRepository) Link(ctx context.Context, activityID, teamID string) error {
	return r.link(ctx, activityID, teamID)
}

func (r *ActivityRepository) link(ctx context.Context, activityID string, teamIDs ...string) error {
	_, err := r.teams.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": teamIDs}},
		bson.M{"$addToSet": bson.M{"activities": activityID}},
	)
	if err != nil {
		return fmt.Errorf("failed to link activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) unlink(ctx context.Context, activityID string, teamIDs ...string) error {
	_, err := r.teams.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": teamIDs}},
		bson.M{"$pull": bson.M{"activities": activityID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlink activity: %w", err)
	}
	return nil
}

func teamIDs(activity *domain.Activity) []string {
	if activity.IsSelfHosted() {
		return []string{activity.HostingTeamID}
	}
	return []string{activity.HostingTeamID, activity.OpponentTeamID}
}

func toActivityDocument(activity *domain.Activity) activityDocument {
	doc := activityDocument{
		ID:             activity.ID,
		Subject:        activity.Subject,
		ActivityType:   activity.Type.String(),
		HostingTeamID:  activity.HostingTeamID,
		OpponentTeamID: activity.OpponentTeamID,
		Location:       activity.Location,
		Guests:         make([]guestDocument, 0, len(activity.Guests)),
	}
	if !activity.Date.IsZero() {
		date := activity.Date.UTC()
		doc.Date = &date
	}
	for _, g := range activity.Guests {
		doc.Guests = append(doc.Guests, guestDocument{UserID: g.UserID, Attendance: g.Attendance})
	}
	return doc
}

func (d activityDocument) toDomain() *domain.Activity {
	activity := &domain.Activity{
		ID:             d.ID,
		Subject:        d.Subject,
		Type:           domain.ParseActivityType(d.ActivityType),
		HostingTeamID:  d.HostingTeamID,
		OpponentTeamID: d.OpponentTeamID,
		Location:       d.Location,
		Guests:         make([]domain.Guest, 0, len(d.Guests)),
	}
	if d.Date != nil {
		activity.Date = d.Date.UTC()
	}
	for _, g := range d.Guests {
		activity.Guests = append(activity.Guests, domain.Guest{UserID: g.UserID, Attendance: g.Attendance})
	}
	return activity
}
