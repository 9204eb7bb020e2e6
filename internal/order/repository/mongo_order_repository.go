package repository

import (
	"context"
	"fmt"
	"time"

	"pollos/internal/domain"
	"pollos/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// orderDocument keeps the field names used by the restaurant's admin app.
type orderDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName string             `bson:"cliente"`
	Phone        string             `bson:"telefono"`
	Product      string             `bson:"producto"`
	Price        float64            `bson:"precio"`
	Image        string             `bson:"imagen"`
	Status       string             `bson:"estado"`
	CreatedAt    string             `bson:"fecha"`
	Comment      string             `bson:"comentario"`
}

func toOrderDocument(o domain.Order) orderDocument {
	return orderDocument{
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Product:      o.Product,
		Price:        o.Price,
		Image:        o.Image,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt.Local().Format(domain.DisplayTimeLayout),
		Comment:      o.Comment,
	}
}

func (d orderDocument) toDomain() domain.Order {
	// Unparseable dates from legacy documents are left zero.
	createdAt, _ := time.ParseInLocation(domain.DisplayTimeLayout, d.CreatedAt, time.Local)

	return domain.Order{
		ID:           d.ID.Hex(),
		CustomerName: d.CustomerName,
		Phone:        d.Phone,
		Product:      d.Product,
		Price:        d.Price,
		Image:        d.Image,
		Status:       d.Status,
		CreatedAt:    createdAt,
		Comment:      d.Comment,
	}
}

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(collection *mongo.Collection) *MongoOrderRepository {
	return &MongoOrderRepository{collection: collection}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order domain.Order) (string, error) {
	doc := toOrderDocument(order)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("inserting order document: %w", err)
	}

	return doc.ID.Hex(), nil
}

func (r *MongoOrderRepository) FindByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	if phone == "" {
		return []domain.Order{}, nil
	}

	// ObjectIDs grow with insertion time.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"telefono": phone}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying orders by phone: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding order documents: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toDomain())
	}

	return orders, nil
}

func (r *MongoOrderRepository) UpdateComment(ctx context.Context, id string, comment string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"comentario": comment}},
	)
	if err != nil {
		return fmt.Errorf("updating order comment: %w", err)
	}

	if result.MatchedCount == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}
