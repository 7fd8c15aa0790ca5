package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	unitserrors "fleetrent/internal/units/errors"
	"fleetrent/pkg/config"
	mongotx "fleetrent/pkg/db/mongo"
	"fleetrent/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Units"
)

type mongoUnitRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type UnitRepository interface {
	Create(ctx context.Context, unit *model.Unit) error
	FindByID(ctx context.Context, id string) (*model.Unit, error)
	FindAll(ctx context.Context, filters *model.UnitFilters, limit int, offset int64) ([]*model.Unit, error)
	Count(ctx context.Context, filters *model.UnitFilters) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Update(ctx context.Context, id string, unit *model.Unit) (*mongo.UpdateResult, error)
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoUnitRepository(cfg *config.Config) UnitRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUnitRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// SessionContext cannot be wrapped without breaking transaction semantics.
func (r *mongoUnitRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoUnitRepository) Create(ctx context.Context, unit *model.Unit) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	unit.CreatedAt = now
	unit.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, unit)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", unitserrors.ErrDuplicatePlate, unit.Plate)
		}
		return fmt.Errorf("failed to create unit: %w", err)
	}

	return nil
}

func (r *mongoUnitRepository) FindByID(ctx context.Context, id string) (*model.Unit, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var unit model.Unit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&unit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, unitserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find unit: %w", err)
	}

	return &unit, nil
}

func (r *mongoUnitRepository) FindAll(ctx context.Context, filters *model.UnitFilters, limit int, offset int64) ([]*model.Unit, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildUnitFilter(filters), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find units: %w", err)
	}
	defer cursor.Close(ctx)

	var units []*model.Unit
	if err = cursor.All(ctx, &units); err != nil {
		return nil, fmt.Errorf("failed to decode units: %w", err)
	}

	return units, nil
}

func (r *mongoUnitRepository) Count(ctx context.Context, filters *model.UnitFilters) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildUnitFilter(filters))
	if err != nil {
		return 0, fmt.Errorf("failed to count units: %w", err)
	}

	return count, nil
}

func (r *mongoUnitRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate unit statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode unit status counts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}

func (r *mongoUnitRepository) Update(ctx context.Context, id string, unit *model.Unit) (*mongo.UpdateResult, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":          unit.Name,
			"brand":         unit.Brand,
			"year":          unit.Year,
			"plate":         unit.Plate,
			"transmission":  unit.Transmission,
			"capacity":      unit.Capacity,
			"price_per_day": unit.PricePerDay,
			"status":        unit.Status,
			"image_url":     unit.ImageURL,
			"updated_at":    time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", unitserrors.ErrDuplicatePlate, unit.Plate)
		}
		return nil, fmt.Errorf("failed to update unit: %w", err)
	}

	if result.MatchedCount == 0 {
		return nil, unitserrors.ErrNotFound
	}

	return result, nil
}

func (r *mongoUnitRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	if result.DeletedCount == 0 {
		return unitserrors.ErrNotFound
	}

	return nil
}

func (r *mongoUnitRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

func buildUnitFilter(filters *model.UnitFilters) bson.M {
	filter := bson.M{}
	if filters == nil {
		return filter
	}

	if filters.Status != "" {
		filter["status"] = filters.Status
	}
	if filters.Transmission != "" {
		filter["transmission"] = filters.Transmission
	}
	if filters.Name != "" {
		filter["name"] = caseInsensitive(filters.Name)
	}
	if filters.Brand != "" {
		filter["brand"] = caseInsensitive(filters.Brand)
	}
	if filters.Plate != "" {
		filter["plate"] = caseInsensitive(filters.Plate)
	}

	if rangeFilter := numericRange(filters.YearMin, filters.YearMax); rangeFilter != nil {
		filter["year"] = rangeFilter
	}
	if rangeFilter := numericRange(filters.CapacityMin, filters.CapacityMax); rangeFilter != nil {
		filter["capacity"] = rangeFilter
	}
	if rangeFilter := floatRange(filters.PriceMin, filters.PriceMax); rangeFilter != nil {
		filter["price_per_day"] = rangeFilter
	}

	return filter
}

func caseInsensitive(substring string) primitive.Regex {
	return primitive.Regex{Pattern: regexEscape(substring), Options: "i"}
}

// regexEscape quotes regex metacharacters so user input is matched literally.
func regexEscape(s string) string {
	escaped := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '.', '+', '*', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return string(escaped)
}

func numericRange(min, max *int) bson.M {
	if min == nil && max == nil {
		return nil
	}
	rangeFilter := bson.M{}
	if min != nil {
		rangeFilter["$gte"] = *min
	}
	if max != nil {
		rangeFilter["$lte"] = *max
	}
	return rangeFilter
}

func floatRange(min, max *float64) bson.M {
	if min == nil && max == nil {
		return nil
	}
	rangeFilter := bson.M{}
	if min != nil {
		rangeFilter["$gte"] = *min
	}
	if max != nil {
		rangeFilter["$lte"] = *max
	}
	return rangeFilter
}
