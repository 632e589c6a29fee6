package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babycare/shop-api/internal/core/domain"
)

type OrderRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewOrderRepository(db *mongo.Database, timeout time.Duration) *OrderRepository {
	return &OrderRepository{coll: db.Collection(collectionOrders), timeout: opTimeout(timeout)}
}

type mongoOrderItem struct {
	ProductID string  `bson:"productId"`
	Title     string  `bson:"title"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
}

type mongoShipping struct {
	Name   string `bson:"name"`
	Street string `bson:"street"`
	City   string `bson:"city"`
	Phone  string `bson:"phone"`
}

type mongoOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OrderNumber string             `bson:"orderNumber"`
	UserEmail   string             `bson:"userEmail"`
	Items       []mongoOrderItem   `bson:"items"`
	Total       float64            `bson:"total"`
	Status      string             `bson:"status"`
	Shipping    mongoShipping      `bson:"shipping"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func toMongoOrder(o *domain.Order) mongoOrder {
	items := make([]mongoOrderItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = mongoOrderItem{ProductID: it.ProductID, Title: it.Title, Price: it.Price, Quantity: it.Quantity}
	}
	return mongoOrder{
		OrderNumber: o.OrderNumber,
		UserEmail:   o.UserEmail,
		Items:       items,
		Total:       o.Total,
		Status:      string(o.Status),
		Shipping: mongoShipping{
			Name:   o.Shipping.Name,
			Street: o.Shipping.Street,
			City:   o.Shipping.City,
			Phone:  o.Shipping.Phone,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (m mongoOrder) toDomain() *domain.Order {
	items := make([]domain.OrderItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.OrderItem{ProductID: it.ProductID, Title: it.Title, Price: it.Price, Quantity: it.Quantity}
	}
	return &domain.Order{
		ID:          m.ID.Hex(),
		OrderNumber: m.OrderNumber,
		UserEmail:   m.UserEmail,
		Items:       items,
		Total:       m.Total,
		Status:      domain.OrderStatus(m.Status),
		Shipping: domain.Shipping{
			Name:   m.Shipping.Name,
			Street: m.Shipping.Street,
			City:   m.Shipping.City,
			Phone:  m.Shipping.Phone,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := toMongoOrder(o)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, translate("insert order", err, nil)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mongoOrder
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate("find order", err, domain.ErrOrderNotFound)
	}
	return doc.toDomain(), nil
}

// List returns orders newest first, scoped to userEmail when it is non-empty.
func (r *OrderRepository) List(ctx context.Context, userEmail string) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{}
	if userEmail != "" {
		filter["userEmail"] = userEmail
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, translate("list orders", err, nil)
	}
	defer cur.Close(ctx)

	var docs []mongoOrder
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("decode orders", err, nil)
	}

	out := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpdateStatus moves the order from one status to another. The update only
// applies while the stored status is still from; otherwise it fails with
// domain.ErrInvalidTransition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, at time.Time) (*domain.Order, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc mongoOrder
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updatedAt": at}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		changed := fmt.Errorf("%w: order is no longer %s", domain.ErrInvalidTransition, from)
		return nil, translate("update order", err, changed)
	}
	return doc.toDomain(), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate("delete order", err, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
