package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jefta/portfolio-api/internal/model"
	"github.com/jefta/portfolio-api/shared/mongodb"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

const userCollection = "users"

type userMongoRepository struct {
	manager *mongodb.Manager

	indexMu sync.Mutex
	indexed bool
}

// NewUserMongoRepository creates a user repository backed by the document
// store. The connection is established lazily on first use.
func NewUserMongoRepository(manager *mongodb.Manager) UserRepository {
	return &userMongoRepository{manager: manager}
}

// collection resolves the collection handle through the connection manager
// and ensures the unique email index exists, once per process.
func (r *userMongoRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.manager.Database(ctx)
	if err != nil {
		return nil, err
	}

	collection := db.Collection(userCollection)

	r.indexMu.Lock()
	defer r.indexMu.Unlock()

	if !r.indexed {
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return nil, err
		}
		r.indexed = true
	}

	return collection, nil
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	collection, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	collection, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	result := collection.FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}
