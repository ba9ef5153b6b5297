package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siher/webpage-publisher/internal/core/domain"
)

const webContentCollection = "web_contents"

type WebContentRepository struct {
	coll *mongo.Collection
}

func NewWebContentRepository(db *mongo.Database) *WebContentRepository {
	return &WebContentRepository{coll: db.Collection(webContentCollection)}
}

type mongoWebContent struct {
	ID           primitive.ObjectID      `bson:"_id,omitempty"`
	User         primitive.ObjectID      `bson:"user"`
	ContentHash  string                  `bson:"content_hash,omitempty"`
	Landing      domain.Landing          `bson:"landing"`
	Slider       []string                `bson:"slider"`
	Value        domain.ValueSection     `bson:"value"`
	Live         domain.Live             `bson:"live"`
	Orgs         []string                `bson:"organizations"`
	Timeline     []domain.TimelineEntry  `bson:"timeline"`
	Available    domain.AvailableSection `bson:"available"`
	Social       []domain.SocialChannel  `bson:"social_channels"`
	IsNewWebpage bool                    `bson:"is_new_webpage"`
	CreatedAt    int64                   `bson:"created_at"`
	UpdatedAt    int64                   `bson:"updated_at"`
}

func (m mongoWebContent) toDomain() *domain.WebContent {
	record := &domain.WebContent{
		ID:          m.ID.Hex(),
		UserID:      m.User.Hex(),
		ContentHash: m.ContentHash,
		Sections: domain.ContentSections{
			Landing:        m.Landing,
			Slider:         m.Slider,
			Value:          m.Value,
			Live:           m.Live,
			Organizations:  m.Orgs,
			Timeline:       m.Timeline,
			Available:      m.Available,
			SocialChannels: m.Social,
		},
		IsNewWebpage: m.IsNewWebpage,
		CreatedAt:    unixToTime(m.CreatedAt),
		UpdatedAt:    unixToTime(m.UpdatedAt),
	}
	// BSON decodes empty arrays as nil slices; re-normalize so callers can
	// merge over the sections without nil checks.
	record.Sections = domain.SectionPatch{}.ApplyTo(record.Sections)
	return record
}

func (r *WebContentRepository) FindByUser(ctx context.Context, userID string) (*domain.WebContent, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoWebContent
	if err := r.coll.FindOne(ctx, bson.M{"user": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find web content: %w", err)
	}
	return mc.toDomain(), nil
}

// Upsert creates or wholesale-replaces the user's content record. The user
// reference is unique, so concurrent upserts for one user collapse into a
// single record.
func (r *WebContentRepository) Upsert(ctx context.Context, userID, contentHash string, sections domain.ContentSections) (*domain.WebContent, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set": bson.M{
			"content_hash":    contentHash,
			"landing":         sections.Landing,
			"slider":          sections.Slider,
			"value":           sections.Value,
			"live":            sections.Live,
			"organizations":   sections.Organizations,
			"timeline":        sections.Timeline,
			"available":       sections.Available,
			"social_channels": sections.SocialChannels,
			"is_new_webpage":  false,
			"updated_at":      now,
		},
		"$setOnInsert": bson.M{
			"user":       oid,
			"created_at": now,
		},
	}

	var mc mongoWebContent
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"user": oid},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&mc)
	if err != nil {
		return nil, fmt.Errorf("upsert web content: %w", err)
	}
	return mc.toDomain(), nil
}

// Delete removes the user's content record and returns it so the caller can
// unpin the artifact.
func (r *WebContentRepository) Delete(ctx context.Context, userID string) (*domain.WebContent, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrContentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoWebContent
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"user": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("delete web content: %w", err)
	}
	return mc.toDomain(), nil
}

func ensureWebContentIndexes(ctx context.Context, coll *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
