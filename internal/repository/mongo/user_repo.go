package mongo

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user email and password hash are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.WorkoutIDs == nil {
		user.WorkoutIDs = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// The unique email index turns a concurrent double-register into
		// a duplicate key error here.
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies a partial field-set and returns the updated document.
func (r *mongoUserRepository) Update(ctx context.Context, id primitive.ObjectID, update repository.UserUpdate) (*domain.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		set["passwordHash"] = *update.PasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicateKey
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes a user document by id.
func (r *mongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddWorkoutRef appends a workout id to the user's workout list.
func (r *mongoUserRepository) AddWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"workouts": workoutID}, // $addToSet prevents duplicates
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveWorkoutRef removes a workout id from the user's workout list and
// clears every week slot that still points at it. The filter and the
// per-day conditionals run inside one pipeline update, so a slot assigned
// concurrently is either seen and cleared or kept with its list entry;
// no interleaving can leave a slot pointing at a removed workout. The
// pre-update document tells the caller which slots were actually cleared.
func (r *mongoUserRepository) RemoveWorkoutRef(ctx context.Context, userID, workoutID primitive.ObjectID) ([]domain.Weekday, error) {
	set := bson.D{
		{Key: "workouts", Value: bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: "$workouts"},
			{Key: "as", Value: "w"},
			{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$w", workoutID}}}},
		}}}},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}
	for _, day := range domain.Weekdays {
		path := "week." + string(day)
		set = append(set, bson.E{Key: path, Value: bson.D{{Key: "$cond", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$" + path, workoutID}}},
			nil,
			"$" + path,
		}}}})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	var before domain.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, mongo.Pipeline{bson.D{{Key: "$set", Value: set}}}, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return before.Week.DaysReferencing(workoutID), nil
}

// SetWeekSlot assigns or clears a weekday slot and returns the updated user.
func (r *mongoUserRepository) SetWeekSlot(ctx context.Context, userID primitive.ObjectID, day domain.Weekday, workoutID *primitive.ObjectID) (*domain.User, error) {
	if !day.IsValid() {
		return nil, errors.New("unknown weekday: " + string(day))
	}

	set := bson.M{
		"week." + string(day): workoutID,
		"updatedAt":           time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user domain.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetAvatarKey records the object-storage key of the user's avatar.
func (r *mongoUserRepository) SetAvatarKey(ctx context.Context, userID primitive.ObjectID, key string) error {
	update := bson.M{
		"$set": bson.M{
			"avatarKey": key,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "workouts", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; the unique constraint check
		// in the service layer still catches most duplicates.
	}
}
