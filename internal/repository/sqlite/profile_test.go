package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/dev-network/internal/apperror"
	"github.com/sakif/dev-network/internal/model"
)

// newTestDB opens a fresh in-memory database for one test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err, "creating test db")
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts an owner row so profiles can reference it.
func createTestUser(t *testing.T, db *DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, AvatarURL: "https://example.com/a.png"}
	require.NoError(t, db.Create(context.Background(), user), "creating test user")
	return user
}

func str(s string) *string { return &s }

func TestProfileUpsert_CreatesThenMerges(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Sakif", "sakif@example.com")

	created, err := db.Upsert(context.Background(), user.ID, model.ProfileFields{
		Status: str("Developer"),
		Bio:    str("x"),
		Skills: []string{"node", "react", "css"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, "Developer", created.Status)
	assert.Equal(t, []string{"node", "react", "css"}, created.Skills)

	// Second upsert supplies only status. Bio and skills keep their stored
	// values; id and created_at stay those of the first insert.
	merged, err := db.Upsert(context.Background(), user.ID, model.ProfileFields{
		Status: str("new"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, merged.ID, "merge must not mint a new record")
	assert.Equal(t, "new", merged.Status)
	assert.Equal(t, "x", merged.Bio, "omitted field must keep prior value")
	assert.Equal(t, []string{"node", "react", "css"}, merged.Skills)
	assert.Equal(t, created.CreatedAt, merged.CreatedAt)
}

func TestProfileUpsert_OneRowPerOwner(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Sakif", "sakif@example.com")

	// Many upserts with disjoint payloads still leave exactly one row
	// holding all the fields.
	payloads := []model.ProfileFields{
		{Status: str("Developer")},
		{Company: str("ACME")},
		{Location: str("Dhaka")},
		{Bio: str("hello")},
		{YouTube: str("y")},
		{Twitter: str("t")},
	}
	for _, f := range payloads {
		_, err := db.Upsert(context.Background(), user.ID, f)
		require.NoError(t, err)
	}

	all, err := db.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	p := all[0]
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, "ACME", p.Company)
	assert.Equal(t, "Dhaka", p.Location)
	assert.Equal(t, "hello", p.Bio)
	assert.Equal(t, "y", p.Social.YouTube)
	assert.Equal(t, "t", p.Social.Twitter)
}

func TestProfileUpsert_SocialColumnsIndependent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Sakif", "sakif@example.com")

	p, err := db.Upsert(context.Background(), user.ID, model.ProfileFields{
		Status:  str("Developer"),
		Twitter: str("t"),
	})
	require.NoError(t, err)

	assert.Equal(t, "t", p.Social.Twitter)
	assert.Empty(t, p.Social.YouTube)
	assert.Empty(t, p.Social.Facebook)
	assert.Empty(t, p.Social.LinkedIn)
	assert.Empty(t, p.Social.Instagram)
}

func TestProfileGetByUserID_ProjectsOwner(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Sakif", "sakif@example.com")

	_, err := db.Upsert(context.Background(), user.ID, model.ProfileFields{Status: str("dev")})
	require.NoError(t, err)

	p, err := db.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sakif", p.Owner.Name)
	assert.Equal(t, "https://example.com/a.png", p.Owner.AvatarURL)
	assert.Equal(t, user.ID, p.Owner.ID)
}

func TestProfileGetByUserID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByUserID(context.Background(), "cv37rs3pp9olc6atsptg")
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "error = %v, want ErrNotFound", err)
}

func TestProfileList_EmptyTable(t *testing.T) {
	db := newTestDB(t)

	profiles, err := db.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, profiles, "must be an empty slice, not nil, so it encodes as []")
	assert.Len(t, profiles, 0)
}

func TestProfileDeleteByUserID_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Sakif", "sakif@example.com")

	_, err := db.Upsert(context.Background(), user.ID, model.ProfileFields{Status: str("dev")})
	require.NoError(t, err)

	require.NoError(t, db.DeleteByUserID(context.Background(), user.ID))
	// Again, with nothing left to delete.
	require.NoError(t, db.DeleteByUserID(context.Background(), user.ID))

	_, err = db.GetByUserID(context.Background(), user.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestProfileSkills_NeverSetReadsAsEmpty(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "Sakif", "sakif@example.com")

	p, err := db.Upsert(context.Background(), user.ID, model.ProfileFields{Status: str("dev")})
	require.NoError(t, err)
	assert.NotNil(t, p.Skills)
	assert.Len(t, p.Skills, 0)
}
