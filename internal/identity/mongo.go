package identity

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const authUserCollectionName = "auth_users"

// identityDoc is the stored shape of a principal. The bcrypt hash stays
// inside this package; Record never carries it.
type identityDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	DisplayName  string             `bson:"displayName"`
	Disabled     bool               `bson:"disabled"`
	Claims       map[string]string  `bson:"claims,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *identityDoc) toRecord() *Record {
	return &Record{
		UID:         d.ID.Hex(),
		Email:       d.Email,
		DisplayName: d.DisplayName,
		Disabled:    d.Disabled,
		Claims:      d.Claims,
	}
}

// mongoProvider implements Provider on a MongoDB collection with a unique
// email index.
type mongoProvider struct {
	collection *mongo.Collection
}

// NewMongoProvider creates a Mongo-backed identity provider.
func NewMongoProvider(db *mongo.Database) Provider {
	return &mongoProvider{
		collection: db.Collection(authUserCollectionName),
	}
}

// Create provisions a new principal with a bcrypt-hashed credential.
func (p *mongoProvider) Create(ctx context.Context, params CreateParams) (*Record, error) {
	if params.Email == "" || params.Password == "" {
		return nil, errors.New("identity email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &identityDoc{
		ID:           primitive.NewObjectID(),
		Email:        params.Email,
		PasswordHash: string(hash),
		DisplayName:  params.DisplayName,
		Disabled:     params.Disabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := p.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return doc.toRecord(), nil
}

// GetByUID retrieves a principal by uid.
func (p *mongoProvider) GetByUID(ctx context.Context, uid string) (*Record, error) {
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, ErrIdentityNotFound
	}

	var doc identityDoc
	if err := p.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return doc.toRecord(), nil
}

// GetByEmail retrieves a principal by email.
func (p *mongoProvider) GetByEmail(ctx context.Context, email string) (*Record, error) {
	var doc identityDoc
	if err := p.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}
	return doc.toRecord(), nil
}

// VerifyPassword checks a login credential.
func (p *mongoProvider) VerifyPassword(ctx context.Context, email, password string) (*Record, error) {
	var doc identityDoc
	if err := p.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	if doc.Disabled {
		return nil, ErrDisabled
	}
	return doc.toRecord(), nil
}

// SetClaims replaces the custom claims map on the identity.
func (p *mongoProvider) SetClaims(ctx context.Context, uid string, claims map[string]string) error {
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return ErrIdentityNotFound
	}

	update := bson.M{"$set": bson.M{"claims": claims, "updatedAt": time.Now().UTC()}}
	result, err := p.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// Delete removes the principal.
func (p *mongoProvider) Delete(ctx context.Context, uid string) error {
	id, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return ErrIdentityNotFound
	}

	result, err := p.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrIdentityNotFound
	}
	return nil
}

// EnsureIdentityIndexes creates the unique email index that backs the
// AlreadyExists guarantee on Create.
func EnsureIdentityIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
