package mongostore

import (
	"context"
	"fmt"
	"time"

	"team-roster-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type teamDocument struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Sport          string    `bson:"sport"`
	ManagerID      string    `bson:"managerId"`
	Members        []string  `bson:"members"`
	PendingMembers []string  `bson:"pendingMembers"`
	Activities     []string  `bson:"activities"`
	InviteCode     string    `bson:"inviteCode"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// TeamRepository хранит команды в коллекции teams. Переходы членства
// выполняются одним условным обновлением документа.
type TeamRepository struct {
	teams *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) domain.TeamRepository {
	return &TeamRepository{teams: db.Collection(teamsCollection)}
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	doc := teamDocument{
		ID:             team.ID,
		Name:           team.Name,
		Sport:          team.Sport,
		ManagerID:      team.ManagerID,
		Members:        []string{team.ManagerID},
		PendingMembers: []string{},
		Activities:     []string{},
		InviteCode:     team.InviteCode,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := r.teams.InsertOne(ctx, doc)
	if index, ok := duplicateIndex(err); ok {
		if index == inviteCodeIndex {
			return domain.ErrInviteCodeTaken
		}
		return domain.ErrTeamAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	return r.findOne(ctx, bson.M{"_id": teamID}, nil)
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	return r.findOne(ctx, bson.M{"name": name}, nil)
}

func (r *TeamRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Team, error) {
	return r.findOne(ctx, bson.M{"inviteCode": code}, nil)
}

func (r *TeamRepository) GetByManager(ctx context.Context, managerID string) (*domain.Team, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.findOne(ctx, bson.M{"managerId": managerID}, opts)
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]*domain.Team, error) {
	if len(teamIDs) == 0 {
		return []*domain.Team{}, nil
	}

	teams, err := r.find(ctx, bson.M{"_id": bson.M{"$in": teamIDs}})
	if err != nil {
		return nil, err
	}
	return orderByIDs(teamIDs, teams, func(t *domain.Team) string { return t.ID }), nil
}

func (r *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, bson.M{"name": name})
}

func (r *TeamRepository) ExistsByInviteCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, bson.M{"inviteCode": code})
}

func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	return r.find(ctx, bson.M{})
}

func (r *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Team, error) {
	return r.find(ctx, bson.M{"members": userID})
}

func (r *TeamRepository) UpdateDetails(ctx context.Context, teamID, name, sport string) error {
	result, err := r.teams.UpdateByID(ctx, teamID, bson.M{"$set": bson.M{"name": name, "sport": sport}})
	if _, ok := duplicateIndex(err); ok {
		return domain.ErrTeamAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	result, err := r.teams.DeleteOne(ctx, bson.M{"_id": teamID})
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) AddPending(ctx context.Context, teamID, userID string) error {
	filter := bson.M{
		"_id":            teamID,
		"members":        bson.M{"$ne": userID},
		"pendingMembers": bson.M{"$ne": userID},
	}
	result, err := r.teams.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"pendingMembers": userID}})
	if err != nil {
		return fmt.Errorf("failed to add pending member: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Пользователь уже в одном из списков, либо команды нет.
	exists, err := r.exists(ctx, bson.M{"_id": teamID})
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) ConfirmPending(ctx context.Context, teamID, userID string) error {
	filter := bson.M{"_id": teamID, "pendingMembers": userID}
	update := bson.M{
		"$pull": bson.M{"pendingMembers": userID},
		"$push": bson.M{"members": userID},
	}

	result, err := r.teams.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to confirm member: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotPending
	}
	return nil
}

func (r *TeamRepository) RemoveMembership(ctx context.Context, teamID, userID string) error {
	filter := bson.M{
		"_id":       teamID,
		"managerId": bson.M{"$ne": userID},
		"$or": bson.A{
			bson.M{"members": userID},
			bson.M{"pendingMembers": userID},
		},
	}
	update := bson.M{"$pull": bson.M{"members": userID, "pendingMembers": userID}}

	result, err := r.teams.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotInTeam
	}
	return nil
}

func (r *TeamRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Team, error) {
	var doc teamDocument
	var err error
	if opts != nil {
		err = r.teams.FindOne(ctx, filter, opts).Decode(&doc)
	} else {
		err = r.teams.FindOne(ctx, filter).Decode(&doc)
	}
	if isNoDocuments(err) {
		return nil, domain.ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) find(ctx context.Context, filter bson.M) ([]*domain.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.teams.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find teams: %w", err)
	}

	var docs []teamDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}

	teams := make([]*domain.Team, 0, len(docs))
	for _, doc := range docs {
		teams = append(teams, doc.toDomain())
	}
	return teams, nil
}

func (r *TeamRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := r.teams.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count teams: %w", err)
	}
	return count > 0, nil
}

func (d teamDocument) toDomain() *domain.Team {
	return &domain.Team{
		ID:             d.ID,
		Name:           d.Name,
		Sport:          d.Sport,
		ManagerID:      d.ManagerID,
		Members:        nonNil(d.Members),
		PendingMembers: nonNil(d.PendingMembers),
		Activities:     nonNil(d.Activities),
		InviteCode:     d.InviteCode,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
