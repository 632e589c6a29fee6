package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babycare/shop-api/internal/core/domain"
	"github.com/babycare/shop-api/internal/core/ports"
)

type ProductRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewProductRepository(db *mongo.Database, timeout time.Duration) *ProductRepository {
	return &ProductRepository{coll: db.Collection(collectionProducts), timeout: opTimeout(timeout)}
}

type mongoProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Image       string             `bson:"image"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	PrevPrice   float64            `bson:"prevPrice,omitempty"`
	IsFlashSale bool               `bson:"isFlashSale"`
	Rating      float64            `bson:"rating,omitempty"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func (p mongoProduct) toDomain() *domain.Product {
	return &domain.Product{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Image:       p.Image,
		Category:    p.Category,
		Price:       p.Price,
		PrevPrice:   p.PrevPrice,
		IsFlashSale: p.IsFlashSale,
		Rating:      p.Rating,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// categoryFilter matches the category case-insensitively as a substring. The
// input is quoted so it is never interpreted as a pattern.
func categoryFilter(category string) bson.M {
	if category == "" {
		return bson.M{}
	}
	return bson.M{"category": primitive.Regex{Pattern: regexp.QuoteMeta(category), Options: "i"}}
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, categoryFilter(filter.Category))
	if err != nil {
		return nil, translate("list products", err, nil)
	}
	defer cur.Close(ctx)

	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("decode products", err, nil)
	}

	out := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mongoProduct
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("find product", err, domain.ErrProductNotFound)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := mongoProduct{
		Title:       p.Title,
		Image:       p.Image,
		Category:    p.Category,
		Price:       p.Price,
		PrevPrice:   p.PrevPrice,
		IsFlashSale: p.IsFlashSale,
		Rating:      p.Rating,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, translate("insert product", err, nil)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// patchSet builds the $set document for the fields present in patch.
func patchSet(patch ports.ProductPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.PrevPrice != nil {
		set["prevPrice"] = *patch.PrevPrice
	}
	if patch.IsFlashSale != nil {
		set["isFlashSale"] = *patch.IsFlashSale
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	return set
}

// Update applies patch and returns the document as stored afterwards. A
// matched document counts as found even when no field actually changed.
func (r *ProductRepository) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mongoProduct
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patchSet(patch, time.Now().UTC())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate("update product", err, domain.ErrProductNotFound)
	}
	return doc.toDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate("delete product", err, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
