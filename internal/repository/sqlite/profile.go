package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/dev-network/internal/apperror"
	"github.com/sakif/dev-network/internal/model"
	"github.com/sakif/dev-network/internal/repository"
)

// compile-time check that *DB implements repository.ProfileRepository
var _ repository.ProfileRepository = (*DB)(nil)

// profileColumns is the SELECT list shared by every profile read, joined
// with the owner's name and avatar. The join is LEFT so a profile row is
// still readable if its user row is somehow gone.
const profileColumns = `
	p.id, p.user_id, p.status, p.company, p.website, p.location, p.bio,
	p.github_username, p.skills,
	p.social_youtube, p.social_twitter, p.social_facebook,
	p.social_linkedin, p.social_instagram,
	p.created_at, p.updated_at,
	COALESCE(u.name, ''), COALESCE(u.avatar_url, '')`

// rowScanner lets scanProfile work with both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile reads one joined row into a model.Profile. Nullable columns
// (never-supplied fields) come back as empty strings on the model.
func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		p          model.Profile
		status     sql.NullString
		company    sql.NullString
		website    sql.NullString
		location   sql.NullString
		bio        sql.NullString
		ghUsername sql.NullString
		skills     sql.NullString
		youtube    sql.NullString
		twitter    sql.NullString
		facebook   sql.NullString
		linkedin   sql.NullString
		instagram  sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.UserID, &status, &company, &website, &location, &bio,
		&ghUsername, &skills,
		&youtube, &twitter, &facebook, &linkedin, &instagram,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Owner.Name, &p.Owner.AvatarURL,
	)
	if err != nil {
		return nil, err
	}

	p.Status = status.String
	p.Company = company.String
	p.Website = website.String
	p.Location = location.String
	p.Bio = bio.String
	p.GitHubUsername = ghUsername.String
	p.Social = model.SocialLinks{
		YouTube:   youtube.String,
		Twitter:   twitter.String,
		Facebook:  facebook.String,
		LinkedIn:  linkedin.String,
		Instagram: instagram.String,
	}
	p.Owner.ID = p.UserID

	// Skills are stored as a JSON array; NULL means they were never set.
	p.Skills = []string{}
	if skills.Valid && skills.String != "" {
		if err := json.Unmarshal([]byte(skills.String), &p.Skills); err != nil {
			return nil, fmt.Errorf("decoding skills: %w", err)
		}
	}

	return &p, nil
}

// GetByUserID retrieves the profile owned by userID, projected with the
// owner's name and avatar. Returns apperror.ErrNotFound if the user has no
// profile.
func (db *DB) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p
		 LEFT JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = ?`,
		userID,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("profile", userID)
		}
		return nil, fmt.Errorf("sqlite: getting profile for user %s: %w", userID, err)
	}

	return p, nil
}

// List returns every profile with its owner projection, newest first.
// An empty table yields an empty (non-nil) slice, not an error.
func (db *DB) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+profileColumns+`
		 FROM profiles p
		 LEFT JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning profile row: %w", err)
		}
		profiles = append(profiles, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating profiles: %w", err)
	}

	return profiles, nil
}

// Upsert creates the profile on a user's first call and merges on every
// later one, in a single statement.
//
// The merge rule rides on SQL NULL: absent fields bind as NULL, and the
// conflict branch keeps the stored value through COALESCE(excluded.f, f).
// Because the whole decision happens inside one INSERT against the
// UNIQUE(user_id) constraint, two concurrent upserts for the same user
// cannot both take the create path — one inserts, the other merges.
//
// The row is then read back joined with the owner projection. Under
// concurrent writers the read-back may observe a later merge, which is a
// valid last-writer-wins-per-field interleaving.
func (db *DB) Upsert(ctx context.Context, userID string, f model.ProfileFields) (*model.Profile, error) {
	var skillsJSON *string
	if f.Skills != nil {
		b, err := json.Marshal(f.Skills)
		if err != nil {
			return nil, fmt.Errorf("sqlite: encoding skills: %w", err)
		}
		s := string(b)
		skillsJSON = &s
	}

	now := time.Now()

	// id and created_at from the VALUES clause only apply on insert; the
	// conflict branch deliberately leaves both untouched.
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO profiles (
			id, user_id, status, company, website, location, bio,
			github_username, skills,
			social_youtube, social_twitter, social_facebook,
			social_linkedin, social_instagram,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			status           = COALESCE(excluded.status, status),
			company          = COALESCE(excluded.company, company),
			website          = COALESCE(excluded.website, website),
			location         = COALESCE(excluded.location, location),
			bio              = COALESCE(excluded.bio, bio),
			github_username  = COALESCE(excluded.github_username, github_username),
			skills           = COALESCE(excluded.skills, skills),
			social_youtube   = COALESCE(excluded.social_youtube, social_youtube),
			social_twitter   = COALESCE(excluded.social_twitter, social_twitter),
			social_facebook  = COALESCE(excluded.social_facebook, social_facebook),
			social_linkedin  = COALESCE(excluded.social_linkedin, social_linkedin),
			social_instagram = COALESCE(excluded.social_instagram, social_instagram),
			updated_at       = excluded.updated_at`,
		xid.New().String(), userID,
		f.Status, f.Company, f.Website, f.Location, f.Bio,
		f.GitHubUsername, skillsJSON,
		f.YouTube, f.Twitter, f.Facebook, f.LinkedIn, f.Instagram,
		now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: upserting profile for user %s: %w", userID, err)
	}

	return db.GetByUserID(ctx, userID)
}

// DeleteByUserID removes the profile owned by userID. Absence is not an
// error — the account cascade must stay idempotent.
func (db *DB) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM profiles WHERE user_id = ?`, userID,
	); err != nil {
		return fmt.Errorf("sqlite: deleting profile for user %s: %w", userID, err)
	}
	return nil
}
