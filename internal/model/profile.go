package model

import "time"

// SocialLinks holds the per-network URLs on a profile. Each field is written
// independently — supplying one network never touches the others. An empty
// string means the link is not set.
type SocialLinks struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// ProfileOwner is the slice of the owning User that gets projected onto a
// Profile read (the name and avatar shown next to the profile).
type ProfileOwner struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// Profile is the single-owner aggregate: at most one Profile exists per
// UserID (enforced by a UNIQUE constraint in the store). It is created on
// the first upsert for a user, merged in place on subsequent upserts, and
// destroyed only together with its owning User.
type Profile struct {
	ID             string       `json:"id"`
	UserID         string       `json:"userId"`
	Status         string       `json:"status"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	GitHubUsername string       `json:"githubUsername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Owner          ProfileOwner `json:"user"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// ProfileFields is a normalized partial update. A nil pointer (or nil Skills
// slice) means the field was not supplied and the stored value must be kept;
// a non-nil value overwrites.
type ProfileFields struct {
	Status         *string
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	GitHubUsername *string
	Skills         []string
	YouTube        *string
	Twitter        *string
	Facebook       *string
	LinkedIn       *string
	Instagram      *string
}
