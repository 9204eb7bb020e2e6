package repository

import (
	"context"
	"fmt"

	"pollos/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type messageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"correo"`
	Subject   string             `bson:"asunto"`
	Body      string             `bson:"mensaje"`
	CreatedAt string             `bson:"fecha"`
}

type MongoMessageRepository struct {
	collection *mongo.Collection
}

func NewMongoMessageRepository(collection *mongo.Collection) *MongoMessageRepository {
	return &MongoMessageRepository{collection: collection}
}

func (r *MongoMessageRepository) Create(ctx context.Context, msg domain.ContactMessage) (string, error) {
	doc := messageDocument{
		ID:        primitive.NewObjectID(),
		Email:     msg.Email,
		Subject:   msg.Subject,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt.Local().Format(domain.MessageTimeLayout),
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("inserting message document: %w", err)
	}

	return doc.ID.Hex(), nil
}
