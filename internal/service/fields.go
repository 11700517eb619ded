// Package service contains the business logic layer: the profile aggregate
// operations, account/auth orchestration, and the payload normalizer.
//
// Services accept plain values plus a context and return domain errors from
// internal/apperror; they know nothing about HTTP. The verified user ID is
// always an explicit parameter — never pulled from ambient state — so every
// operation is testable without a transport layer.
package service

import (
	"strings"

	"github.com/sakif/dev-network/internal/model"
)

// ProfileInput is the raw upsert payload as submitted by the client:
// flat strings, with skills as one comma-delimited value.
type ProfileInput struct {
	Status         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GitHubUsername string
	Skills         string
	YouTube        string
	Twitter        string
	Facebook       string
	LinkedIn       string
	Instagram      string
}

// NormalizeProfileFields shapes a raw payload into a storage-ready partial
// update. Pure function, no side effects.
//
// Rules:
//   - scalar fields: trimmed; blank input means "not supplied" and comes out
//     nil, so a later merge never clobbers stored data with emptiness
//   - skills: split on ",", each element trimmed, order preserved; blank
//     input yields a nil slice (absent), never an empty one
//   - social links: each network maps from its own same-named input,
//     independently of the other four
func NormalizeProfileFields(in ProfileInput) model.ProfileFields {
	f := model.ProfileFields{
		Status:         optional(in.Status),
		Company:        optional(in.Company),
		Website:        optional(in.Website),
		Location:       optional(in.Location),
		Bio:            optional(in.Bio),
		GitHubUsername: optional(in.GitHubUsername),
		YouTube:        optional(in.YouTube),
		Twitter:        optional(in.Twitter),
		Facebook:       optional(in.Facebook),
		LinkedIn:       optional(in.LinkedIn),
		Instagram:      optional(in.Instagram),
	}

	if raw := strings.TrimSpace(in.Skills); raw != "" {
		parts := strings.Split(raw, ",")
		skills := make([]string, 0, len(parts))
		for _, p := range parts {
			skills = append(skills, strings.TrimSpace(p))
		}
		f.Skills = skills
	}

	return f
}

// optional trims s and returns nil for a blank value, a pointer otherwise.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
