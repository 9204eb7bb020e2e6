package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pollos/internal/domain"
	"pollos/internal/errors"
)

// Unit Tests

func TestOrderDocument_RoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 19, 30, 0, 0, time.Local)
	order := domain.NewPendingOrder("ana lopez", "5551234", "", "8.50", "", createdAt)

	doc := toOrderDocument(order)
	assert.Equal(t, "14/03/2025 19:30", doc.CreatedAt)
	assert.Equal(t, "Pending", doc.Status)
	assert.Equal(t, domain.ProductUnspecified, doc.Product)

	doc.ID = primitive.NewObjectID()
	back := doc.toDomain()
	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, "Ana Lopez", back.CustomerName)
	assert.True(t, createdAt.Equal(back.CreatedAt))
}

func TestOrderDocument_LegacyDate(t *testing.T) {
	doc := orderDocument{ID: primitive.NewObjectID(), CreatedAt: "ayer"}

	assert.True(t, doc.toDomain().CreatedAt.IsZero())
}

// Integration Tests (require TEST_MONGO_URI)

func setupMongoCollection(t *testing.T) *mongo.Collection {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongo not available: %v", err)
	}

	coll := client.Database("pollos_test").Collection("pedidos_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = coll.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return coll
}

func TestMongoOrderRepository_CreateFindUpdate(t *testing.T) {
	repo := NewMongoOrderRepository(setupMongoCollection(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, domain.NewPendingOrder("ana lopez", "5551234", "Combo", "8.50", "", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateComment(ctx, id, "Sin cebolla"))
	require.NoError(t, repo.UpdateComment(ctx, id, "Sin cebolla"))

	orders, err := repo.FindByPhone(ctx, "5551234")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, id, orders[0].ID)
	assert.Equal(t, "Ana Lopez", orders[0].CustomerName)
	assert.Equal(t, 8.5, orders[0].Price)
	assert.Equal(t, "Sin cebolla", orders[0].Comment)

	empty, err := repo.FindByPhone(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMongoOrderRepository_UpdateComment_NotFound(t *testing.T) {
	repo := NewMongoOrderRepository(setupMongoCollection(t))

	_, ok := errors.IsNotFoundError(repo.UpdateComment(context.Background(), primitive.NewObjectID().Hex(), "x"))
	assert.True(t, ok)
}

func TestMongoOrderRepository_UpdateComment_MalformedID(t *testing.T) {
	repo := NewMongoOrderRepository(nil)

	_, ok := errors.IsNotFoundError(repo.UpdateComment(context.Background(), "not-an-object-id", "x"))
	assert.True(t, ok)
}
