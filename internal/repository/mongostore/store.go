package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	teamsCollection      = "teams"
	activitiesCollection = "activities"

	usernameIndex   = "users_username_key"
	emailIndex      = "users_email_key"
	teamNameIndex   = "teams_name_key"
	inviteCodeIndex = "teams_invite_code_key"
)

// Connect подключается к MongoDB и проверяет соединение.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes создает уникальные индексы, на которые опираются репозитории.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName(usernameIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName(emailIndex).SetUnique(true)},
		},
		teamsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName(teamNameIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "inviteCode", Value: 1}}, Options: options.Index().SetName(inviteCodeIndex).SetUnique(true)},
			{Keys: bson.D{{Key: "managerId", Value: 1}}},
			{Keys: bson.D{{Key: "members", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}
	return nil
}

// duplicateIndex возвращает имя индекса, нарушенного вставкой или обновлением.
func duplicateIndex(err error) (string, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	for _, name := range []string{usernameIndex, emailIndex, teamNameIndex, inviteCodeIndex} {
		if strings.Contains(err.Error(), name) {
			return name, true
		}
	}
	return "", true
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// orderByIDs раскладывает документы в порядке ids, пропуская отсутствующие.
func orderByIDs[T any](ids []string, items []T, idOf func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}

	ordered := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered
}
