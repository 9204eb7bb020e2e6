package repository

import (
	"context"
	"fmt"
	"time"

	"pollos/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"nombre"`
	Description string             `bson:"descripcion"`
	Price       float64            `bson:"precio"`
	Image       string             `bson:"imagen"`
	Category    string             `bson:"categoria"`
	IsActive    bool               `bson:"activo"`
	CreatedAt   time.Time          `bson:"creado"`
}

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(collection *mongo.Collection) *MongoProductRepository {
	return &MongoProductRepository{collection: collection}
}

func (r *MongoProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "categoria", Value: 1}, {Key: "nombre", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"activo": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding product documents: %w", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, domain.Product{
			ID:          d.ID.Hex(),
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			Image:       d.Image,
			Category:    d.Category,
			IsActive:    d.IsActive,
			CreatedAt:   d.CreatedAt,
		})
	}

	return products, nil
}

func (r *MongoProductRepository) Count(ctx context.Context) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("counting products: %w", err)
	}
	return int(n), nil
}

func (r *MongoProductRepository) Seed(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(products))
	for _, p := range products {
		docs = append(docs, productDocument{
			ID:          primitive.NewObjectID(),
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Image:       p.Image,
			Category:    p.Category,
			IsActive:    p.IsActive,
			CreatedAt:   p.CreatedAt,
		})
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("inserting product documents: %w", err)
	}
	return nil
}
