package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/babycare/shop-api/internal/core/domain"
)

type CategoryRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewCategoryRepository(db *mongo.Database, timeout time.Duration) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(collectionCategories), timeout: opTimeout(timeout)}
}

type mongoCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Image       string             `bson:"image,omitempty"`
	Description string             `bson:"description,omitempty"`
}

func (c mongoCategory) toDomain() *domain.Category {
	return &domain.Category{ID: c.ID.Hex(), Name: c.Name, Image: c.Image, Description: c.Description}
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate("list categories", err, nil)
	}
	defer cur.Close(ctx)

	var docs []mongoCategory
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("decode categories", err, nil)
	}

	out := make([]*domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := mongoCategory{Name: c.Name, Image: c.Image, Description: c.Description}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, translate("insert category", err, nil)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}
