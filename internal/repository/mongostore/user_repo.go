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

type userDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Firstname    string    `bson:"firstname"`
	Lastname     string    `bson:"lastname"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	Avatar       string    `bson:"avatar"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// UserRepository хранит пользователей в коллекции users.
type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &UserRepository{users: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := toUserDocument(user)
	doc.CreatedAt = time.Now().UTC()

	_, err := r.users.InsertOne(ctx, doc)
	if _, ok := duplicateIndex(err); ok {
		return domain.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": userID})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) GetByIDs(ctx context.Context, userIDs []string) ([]*domain.User, error) {
	if len(userIDs) == 0 {
		return []*domain.User{}, nil
	}

	users, err := r.find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	return orderByIDs(userIDs, users, func(u *domain.User) string { return u.ID }), nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var or bson.A
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return false, nil
	}

	count, err := r.users.CountDocuments(ctx, bson.M{"$or": or}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "username", Value: 1}}))
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	result, err := r.users.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"username":     user.Username,
		"firstname":    user.Firstname,
		"lastname":     user.Lastname,
		"email":        user.Email,
		"passwordHash": user.PasswordHash,
		"avatar":       user.Avatar,
	}})
	if _, ok := duplicateIndex(err); ok {
		return domain.ErrUserAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if isNoDocuments(err) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.User, error) {
	cursor, err := r.users.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func toUserDocument(user *domain.User) userDocument {
	return userDocument{
		ID:           user.ID,
		Username:     user.Username,
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Avatar:       user.Avatar,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Firstname:    d.Firstname,
		Lastname:     d.Lastname,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Avatar:       d.Avatar,
	}
}
