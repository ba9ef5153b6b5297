package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

const subscribersCollection = "subscriber_emails"

type SubscriberRepository struct {
	coll *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) *SubscriberRepository {
	return &SubscriberRepository{coll: db.Collection(subscribersCollection)}
}

type mongoSubscriber struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *SubscriberRepository) Create(ctx context.Context, email string) (*domain.Subscriber, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoSubscriber{Email: email, CreatedAt: now.Unix()}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}

	return &domain.Subscriber{
		ID:        res.InsertedID.(primitive.ObjectID).Hex(),
		Email:     email,
		CreatedAt: now,
	}, nil
}

func ensureSubscriberIndexes(ctx context.Context, coll *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
