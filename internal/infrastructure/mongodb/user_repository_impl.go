package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/docuchat/auth-service/internal/domain/entity"
	"github.com/docuchat/auth-service/internal/domain/repository"
)

const usersCollection = "users"

// userDoc is the persisted shape of a user. The entity keeps a hex
// string ID; the document keeps the native ObjectID.
type userDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Email          string        `bson:"email"`
	FullName       string        `bson:"full_name"`
	HashedPassword string        `bson:"hashed_password"`
	Role           string        `bson:"role"`
	Disabled       bool          `bson:"disabled"`
	CreatedAt      time.Time     `bson:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at"`
}

func (d *userDoc) toEntity() *entity.User {
	role, err := entity.ParseRole(d.Role)
	if err != nil {
		// Legacy or hand-edited documents fall back to the least
		// privileged role rather than failing the read.
		role = entity.RoleUser
	}
	return &entity.User{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		FullName:       d.FullName,
		HashedPassword: d.HashedPassword,
		Role:           role,
		Disabled:       d.Disabled,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique index on email. The index is the
// actual uniqueness guarantee under concurrent registration; the
// service-level pre-check alone cannot close the race.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	doc := &userDoc{}
	err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, unavailable(err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) (*entity.User, error) {
	doc := &userDoc{
		Email:          u.Email,
		FullName:       u.FullName,
		HashedPassword: u.HashedPassword,
		Role:           u.Role.String(),
		Disabled:       u.Disabled,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, translateWriteError(err)
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, unavailable(fmt.Errorf("unexpected inserted id type %T", res.InsertedID))
	}
	u.ID = oid.Hex()
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, unavailable(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var out []entity.User
	for cur.Next(ctx) {
		doc := &userDoc{}
		if err := cur.Decode(doc); err != nil {
			return nil, unavailable(err)
		}
		out = append(out, *doc.toEntity())
	}
	if err := cur.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

// translateWriteError classifies an insert failure: a duplicate-key
// rejection from the unique email index becomes ErrDuplicateEmail,
// anything else is a transient store failure.
func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateEmail
	}
	return unavailable(err)
}

// unavailable wraps driver errors so callers can match on the
// repository sentinel without seeing driver internals.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
