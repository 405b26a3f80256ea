package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/identikit/user-service/internal/core/domain"
	"github.com/identikit/user-service/internal/infrastructure/config"
)

// SeedAdmin ensures the bootstrap administrator exists. The upsert only takes
// effect when no account with the configured login is present, so running it
// on every startup is safe and never resets an existing admin's password.
func SeedAdmin(ctx context.Context, db *mongo.Database, admin config.AdminConfig) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	user := domain.User{
		Guid:         uuid.New(),
		Login:        admin.Login,
		PasswordHash: string(hash),
		Name:         admin.Name,
		Gender:       domain.GenderUnknown,
		Admin:        true,
		CreatedOn:    time.Now().UTC(),
		CreatedBy:    admin.Login,
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = db.Collection(collectionUsers).UpdateOne(ctx,
		bson.M{"login": admin.Login},
		bson.M{"$setOnInsert": user},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
