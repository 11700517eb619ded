package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/dev-network/internal/apperror"
	"github.com/sakif/dev-network/internal/model"
	"github.com/sakif/dev-network/internal/repository"
)

// ProfileService orchestrates the profile aggregate lifecycle: read by owner
// or by arbitrary user id, list, merge-upsert, and the cascading account
// delete.
//
// It holds no state between calls; the one-profile-per-owner invariant under
// concurrency is the repository's contract (ProfileRepository.Upsert), not
// something enforced with locks here.
type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	content  repository.ContentRepository // optional; nil until a content store exists
	logger   *slog.Logger
}

// NewProfileService creates a ProfileService. content may be nil — the
// account cascade then removes profile and user only.
func NewProfileService(
	profiles repository.ProfileRepository,
	users repository.UserRepository,
	content repository.ContentRepository,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		content:  content,
		logger:   logger,
	}
}

// GetOwn returns the caller's profile, projected with the owner's name and
// avatar. userID is the verified identity from the auth middleware.
// Returns apperror.ErrNotFound when the user has not created a profile yet.
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// GetByUserID returns any user's profile. Public — no identity needed.
//
// A value that cannot be an identifier at all is rejected as ErrInvalidID
// before the store is asked; a well-formed id with no profile behind it is
// ErrNotFound. The two are distinct client errors.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	userID = strings.TrimSpace(userID)
	if _, err := xid.FromString(userID); err != nil {
		return nil, apperror.InvalidID("userId", userID)
	}
	return s.profiles.GetByUserID(ctx, userID)
}

// List returns every profile with its owner projection. An empty store is a
// successful empty result, not an error.
func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		s.logger.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}

// Upsert creates the caller's profile on first call and merge-updates it on
// subsequent calls: supplied fields overwrite, omitted fields keep their
// stored value. Returns the resulting record.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in ProfileInput) (*model.Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}

	fields := NormalizeProfileFields(in)

	profile, err := s.profiles.Upsert(ctx, userID, fields)
	if err != nil {
		s.logger.Error("failed to upsert profile",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("upserting profile: %w", err)
	}

	s.logger.Info("profile upserted",
		slog.String("userID", userID),
		slog.String("profileID", profile.ID),
	)

	return profile, nil
}

// DeleteAccount removes the caller's profile and then the account itself —
// one resolved identifier drives both removals. The operation is idempotent:
// repeating it (including after a crash between the two steps left an
// orphaned user) succeeds and leaves zero records either way.
//
// Removal of user-authored content is the ContentRepository extension point;
// when none is wired the cascade covers profile and user only.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return apperror.Unauthorized("valid authentication required")
	}

	if s.content != nil {
		if err := s.content.DeleteByAuthor(ctx, userID); err != nil {
			return fmt.Errorf("deleting content for user %s: %w", userID, err)
		}
	}

	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("deleting profile for user %s: %w", userID, err)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting user %s: %w", userID, err)
	}

	s.logger.Info("account deleted", slog.String("userID", userID))
	return nil
}
