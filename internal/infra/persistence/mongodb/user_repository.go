// Package mongodb stores users in a MongoDB collection.
package mongodb

import (
	"context"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"usersvc/config"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/lifecycle"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultDatabase   = "usersvc"
	defaultCollection = "users"
	sequenceID        = "users"

	// legacyUsernameIndex was unique; usernames are now checked on insert only.
	legacyUsernameIndex = "username_unique"
)

// userDocument is the stored shape of a user. Seq records insertion order.
type userDocument struct {
	ID        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Seq       int64     `bson:"seq"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type counterDocument struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

// UserRepository implements repository.UserRepository on top of a MongoDB collection.
type UserRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	counters   *mongo.Collection
	namespace  uuid.UUID
	logger     *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// UserRepoOption configures UserRepository.
type UserRepoOption func(*UserRepository)

// WithUserRepoLogger sets the logger for the user repository.
func WithUserRepoLogger(logger *slog.Logger) UserRepoOption {
	return func(r *UserRepository) {
		r.logger = logger
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)

// Open connects to cfg.URI, verifies the connection and creates the indexes the repository relies on.
// The returned repository owns the client; Close disconnects it.
func Open(ctx context.Context, cfg *config.MongoConfig, namespace uuid.UUID, opts ...UserRepoOption) (*UserRepository, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo.uri is required for the mongodb storage driver")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	database := cfg.Database
	if database == "" {
		database = defaultDatabase
	}
	collection := cfg.Collection
	if collection == "" {
		collection = defaultCollection
	}

	repo := NewUserRepository(client, client.Database(database).Collection(collection), namespace, opts...)
	if err := repo.EnsureIndexes(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())

		return nil, err
	}

	return repo, nil
}

// NewUserRepository wraps an existing collection. Sequence counters live in "<collection>_counters".
func NewUserRepository(client *mongo.Client, collection *mongo.Collection, namespace uuid.UUID, opts ...UserRepoOption) *UserRepository {
	r := &UserRepository{
		client:     client,
		collection: collection,
		counters:   collection.Database().Collection(collection.Name() + "_counters"),
		namespace:  namespace,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// EnsureIndexes creates the username lookup index and the insertion-order index,
// and drops the unique username index older deployments created.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	// The legacy index shares the lookup key pattern, so it has to go first.
	specs, err := r.collection.Indexes().ListSpecifications(ctx)
	if err != nil {
		return HandleMongoError(err, "list user indexes")
	}
	for _, spec := range specs {
		if spec.Name != legacyUsernameIndex {
			continue
		}
		if err := r.collection.Indexes().DropOne(ctx, legacyUsernameIndex); err != nil {
			return HandleMongoError(err, "drop unique username index")
		}
	}

	_, err = r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_lookup"),
		},
		{
			Keys:    bson.D{{Key: "seq", Value: 1}},
			Options: options.Index().SetName("seq_asc"),
		},
	})

	return HandleMongoError(err, "create user indexes")
}

// CreateUser inserts the user unless a stored user already has the username.
// Concurrent creates of one username collide on the derived _id.
func (r *UserRepository) CreateUser(ctx context.Context, username string) (*entity.User, bool, error) {
	user := entity.NewUser(r.namespace, username)

	held, err := r.collection.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return nil, false, HandleMongoError(err, "check username")
	}
	if held > 0 {
		return nil, false, nil
	}

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	doc := userDocument{
		ID:        user.ID.String(),
		Username:  user.Username,
		Seq:       seq,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, false, nil
		}
		r.logger.ErrorContext(ctx, "failed to insert user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)

		return nil, false, HandleMongoError(err, "insert user")
	}

	return user, true, nil
}

// UpdateUser renames the user; the new username is not checked against other users.
func (r *UserRepository) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, bool, error) {
	if user == nil {
		return nil, false, nil
	}

	update := bson.M{"$set": bson.M{
		"username":   user.Username,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": user.ID.String()}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update user",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)

		return nil, false, HandleMongoError(err, "update user")
	}

	return r.documentToUser(&doc)
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]*entity.User, error) {
	return r.findUsers(ctx, bson.M{})
}

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to find user by ID",
			slog.String("user_id", id.String()),
			slog.String("error", err.Error()),
		)

		return nil, false, HandleMongoError(err, "find user")
	}

	return r.documentToUser(&doc)
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) (*entity.User, bool, error) {
	var doc userDocument
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, HandleMongoError(err, "delete user")
	}

	return r.documentToUser(&doc)
}

// FindUsersByName matches the quoted query case-insensitively, so regex metacharacters match literally.
func (r *UserRepository) FindUsersByName(ctx context.Context, query string) ([]*entity.User, error) {
	filter := bson.M{"username": bson.M{
		"$regex":   regexp.QuoteMeta(query),
		"$options": "i",
	}}

	return r.findUsers(ctx, filter)
}

func (r *UserRepository) Close(ctx context.Context) error {
	r.closeOnce.Do(func() {
		if r.client != nil {
			r.closeErr = r.client.Disconnect(ctx)
		}
	})

	return HandleMongoError(r.closeErr, "disconnect")
}

func (r *UserRepository) findUsers(ctx context.Context, filter bson.M) ([]*entity.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, HandleMongoError(err, "find users")
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, HandleMongoError(err, "decode users")
	}

	users := make([]*entity.User, 0, len(docs))
	for i := range docs {
		user, _, err := r.documentToUser(&docs[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// nextSeq atomically increments the collection's insertion counter.
func (r *UserRepository) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDocument
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": sequenceID},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, HandleMongoError(err, "increment user sequence")
	}

	return counter.Value, nil
}

func (r *UserRepository) documentToUser(doc *userDocument) (*entity.User, bool, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, false, errors.Wrapf(err, "stored user id %q", doc.ID)
	}

	return &entity.User{
		ID:       id,
		Username: doc.Username,
	}, true, nil
}

// HandleMongoError wraps a driver failure as a storage error.
func HandleMongoError(err error, operation string) error {
	if err == nil {
		return nil
	}

	return domainerrors.NewDatabaseExecuteError(err, operation)
}
