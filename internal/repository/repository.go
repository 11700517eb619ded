// Package repository defines the storage interfaces the service layer
// programs against. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/sakif/dev-network/internal/model"
)

// ProfileRepository stores the profile aggregate, keyed by the owning user.
//
// Upsert is the only write: it must atomically create the profile on first
// call for a user and merge on subsequent calls, such that two concurrent
// upserts for the same user can never produce two rows. Fields that are nil
// in ProfileFields keep their stored value.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	Upsert(ctx context.Context, userID string, fields model.ProfileFields) (*model.Profile, error)
	// DeleteByUserID removes the profile owned by userID. Deleting a
	// non-existent profile is not an error.
	DeleteByUserID(ctx context.Context, userID string) error
}

// UserRepository stores user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// UpsertByGitHubID creates or refreshes the account tied to
	// user.GitHubID, keeping the existing internal ID on update.
	UpsertByGitHubID(ctx context.Context, user *model.User) error
	// Delete removes the user by id. Deleting a non-existent user is not
	// an error, so the account cascade stays idempotent.
	Delete(ctx context.Context, id string) error
}

// ContentRepository is the extension point for cascading removal of
// user-authored content (posts etc.) when an account is deleted. No backend
// implements it yet; ProfileService skips the step when none is wired and
// the cascade stays idempotent on profile+user alone.
type ContentRepository interface {
	DeleteByAuthor(ctx context.Context, userID string) error
}
