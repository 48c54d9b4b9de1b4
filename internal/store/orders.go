package store

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coffeeshop/internal/models"
)

// Page selects a window of orders. The zero Page selects everything.
type Page struct {
	Number int64
	Limit  int64
}

func (p Page) all() bool {
	return p.Number <= 0 || p.Limit <= 0
}

// skip returns how many orders precede the page. ok is false when the offset
// does not fit in an int64, in which case the page is past the end.
func (p Page) skip() (n int64, ok bool) {
	if p.Number-1 > math.MaxInt64/p.Limit {
		return 0, false
	}
	return (p.Number - 1) * p.Limit, true
}

// NewOrder carries the caller-supplied fields of an order.
type NewOrder struct {
	Items         []string
	CustomerName  string
	Price         float64
	OrderStatus   string
	PaymentStatus string
}

func (s *Store) ListOrders(ctx context.Context, page Page) ([]models.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "orderedDate", Value: -1}})
	if !page.all() {
		skip, ok := page.skip()
		if !ok {
			return make([]models.Order, 0), nil
		}
		findOptions.
			SetSkip(skip).
			SetLimit(page.Limit)
	}

	cursor, err := s.orders.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, storeErr("list orders", err)
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storeErr("decode orders", err)
	}
	return orders, nil
}

// CreateOrder persists a new order. orderedDate and updatedAt are both set to
// the creation time.
func (s *Store) CreateOrder(ctx context.Context, in NewOrder) (models.Order, error) {
	now := s.timestamp()
	order := models.Order{
		Items:         models.StringList(in.Items),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Price:         in.Price,
		OrderStatus:   strings.TrimSpace(in.OrderStatus),
		PaymentStatus: strings.TrimSpace(in.PaymentStatus),
		OrderedDate:   now,
		UpdatedAt:     now,
	}
	if err := s.checkStruct(order); err != nil {
		return models.Order{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.orders.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, storeErr("insert order", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}
	return order, nil
}

// ReplaceOrder overwrites the provided fields of an order. Each provided field
// must satisfy the same constraints as on creation. orderedDate is never
// touched.
func (s *Store) ReplaceOrder(ctx context.Context, id string, fields models.OrderFields) (models.Order, error) {
	if fields.Empty() {
		return models.Order{}, &ValidationError{Reason: "no fields to update"}
	}

	set := bson.M{}
	var checks []fieldCheck
	if fields.Items != nil {
		set["items"] = models.StringList(*fields.Items)
		checks = append(checks, fieldCheck{name: "items", value: *fields.Items, tag: "required,min=1", present: true})
	}
	if fields.CustomerName != nil {
		name := strings.TrimSpace(*fields.CustomerName)
		set["customerName"] = name
		checks = append(checks, required("customerName", name))
	}
	if fields.Price != nil {
		set["price"] = *fields.Price
		checks = append(checks, required("price", *fields.Price))
	}
	if fields.OrderStatus != nil {
		status := strings.TrimSpace(*fields.OrderStatus)
		set["orderStatus"] = status
		checks = append(checks, required("orderStatus", status))
	}
	if fields.PaymentStatus != nil {
		status := strings.TrimSpace(*fields.PaymentStatus)
		set["paymentStatus"] = status
		checks = append(checks, required("paymentStatus", status))
	}
	if err := s.checkFields(checks...); err != nil {
		return models.Order{}, err
	}
	set["updatedAt"] = s.timestamp()

	return s.findAndUpdate(ctx, "replace order", id, bson.M{"$set": set})
}

// UpdateOrderStatus sets orderStatus and moves updatedAt forward. The new
// updatedAt is strictly later than the stored one even when both fall in the
// same millisecond.
func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) (models.Order, error) {
	status = strings.TrimSpace(status)
	if err := s.checkFields(required("orderStatus", status)); err != nil {
		return models.Order{}, err
	}

	return s.findAndUpdate(ctx, "update order status", id, statusUpdate(status, s.timestamp()))
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notFound("order")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.orders.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete order", err)
	}
	if res.DeletedCount == 0 {
		return notFound("order")
	}
	return nil
}

func (s *Store) findAndUpdate(ctx context.Context, op, id string, update any) (models.Order, error) {
	// A malformed id cannot name an existing order.
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, notFound("order")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var updated models.Order
	err = s.orders.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, notFound("order")
	}
	if err != nil {
		return models.Order{}, storeErr(op, err)
	}
	return updated, nil
}

// statusUpdate builds a pipeline update so the new updatedAt can be computed
// from the stored one. User input goes through $literal so a leading "$" is
// never read as a field path. When updatedAt is missing, $add yields null and
// $max ignores it, so the order gets now.
func statusUpdate(status string, now time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "orderStatus", Value: bson.D{{Key: "$literal", Value: status}}},
			{Key: "updatedAt", Value: bson.D{{Key: "$max", Value: bson.A{
				now,
				bson.D{{Key: "$add", Value: bson.A{"$updatedAt", 1}}},
			}}}},
		}}},
	}
}
