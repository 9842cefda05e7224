package chatRepo

import (
	"context"
	"fmt"
	"time"

	"brightsite/database"
	"brightsite/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoChatRepo implements ChatRepository backed by MongoDB.
type MongoChatRepo struct {
	coll *mongo.Collection
}

// NewMongoChatRepo returns a repository over the "chat_sessions" collection.
func NewMongoChatRepo() *MongoChatRepo {
	repo := &MongoChatRepo{coll: database.Collection("chat_sessions")}
	repo.ensureIndexes()
	return repo
}

func readFlagField(side string) string {
	if side == models.ChatSenderAdmin {
		return "is_read_by_admin"
	}
	return "is_read_by_user"
}

func (repo *MongoChatRepo) Create(ctx context.Context, session *models.ChatSession) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert chat session: %w", err)
	}
	return nil
}

func (repo *MongoChatRepo) GetByID(ctx context.Context, id string) (*models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.ChatSession
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (repo *MongoChatRepo) FindActive(ctx context.Context, identity models.ChatIdentity, chatType string) (*models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"type":   chatType,
		"status": models.ChatStatusActive,
	}
	if identity.IsGuest() {
		filter["guest_uid"] = identity.GuestUID
	} else {
		filter["user_id"] = identity.UserID
	}

	var session models.ChatSession
	err := repo.coll.FindOne(ctx, filter).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	return &session, nil
}

func (repo *MongoChatRepo) AppendMessage(ctx context.Context, sessionID string, msg models.ChatMessage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": sessionID, "status": models.ChatStatusActive}
	update := bson.M{"$push": bson.M{"messages": msg}}

	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append message to session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotActive
	}
	return nil
}

func (repo *MongoChatRepo) MarkMessageRead(ctx context.Context, sessionID, messageID, side string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	field := readFlagField(side)
	update := bson.M{"$set": bson.M{"messages.$[m]." + field: true}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"m.id": messageID, "m." + field: false}},
	})

	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": sessionID}, update, opts)
	if err != nil {
		return false, fmt.Errorf("failed to mark message %s read: %w", messageID, err)
	}
	if res.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	return res.ModifiedCount > 0, nil
}

func (repo *MongoChatRepo) MarkMessagesRead(ctx context.Context, sessionID string, messageIDs []string, side string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	field := readFlagField(side)
	update := bson.M{"$set": bson.M{"messages.$[m]." + field: true}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"m.id": bson.M{"$in": messageIDs}}},
	})

	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": sessionID}, update, opts); err != nil {
		return fmt.Errorf("failed to mark messages read in session %s: %w", sessionID, err)
	}
	return nil
}

func (repo *MongoChatRepo) End(ctx context.Context, sessionID string, endedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": sessionID, "status": models.ChatStatusActive}
	update := bson.M{"$set": bson.M{
		"status":   models.ChatStatusEnded,
		"ended_at": endedAt,
	}}

	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to end session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotActive
	}
	return nil
}

func (repo *MongoChatRepo) ListAll(ctx context.Context) ([]models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode chat sessions: %w", err)
	}
	return sessions, nil
}
