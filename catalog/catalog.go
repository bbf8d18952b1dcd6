// Package catalog holds the instruments and genres musicians pick from, and
// the per-account selections made from them.
package catalog

import (
	"context"
	"errors"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// SkillLevels lists the accepted levels, lowest first.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert}

func (s SkillLevel) IsValid() bool {
	for _, l := range SkillLevels {
		if s == l {
			return true
		}
	}
	return false
}

// ErrUnknownEntry is returned when a selection refers to an instrument or
// genre that is not in the catalog.
var ErrUnknownEntry = errors.New("unknown catalog entry")

type Instrument struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	IconURL  *string `json:"icon_url,omitempty"`
}

type Genre struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UserInstrument is an instrument an account plays and how well.
type UserInstrument struct {
	Instrument
	SkillLevel SkillLevel `json:"skill_level"`
}

// Selection is one instrument pick submitted by an account.
type Selection struct {
	InstrumentID string     `json:"instrument_id"`
	SkillLevel   SkillLevel `json:"skill_level"`
}

// Repo stores the catalog and the selections made from it. Results are
// ordered by name.
type Repo interface {
	ListInstruments(ctx context.Context) ([]Instrument, error)
	ListGenres(ctx context.Context) ([]Genre, error)
	// UpsertInstrument and UpsertGenre insert or update by name and fill in
	// the stored id.
	UpsertInstrument(ctx context.Context, instrument *Instrument) error
	UpsertGenre(ctx context.Context, genre *Genre) error

	GetUserInstruments(ctx context.Context, userID string) ([]UserInstrument, error)
	// ReplaceUserInstruments swaps the whole set atomically. An id missing
	// from the catalog fails with ErrUnknownEntry and leaves the set intact.
	ReplaceUserInstruments(ctx context.Context, userID string, selections []Selection) error
	GetUserGenres(ctx context.Context, userID string) ([]Genre, error)
	ReplaceUserGenres(ctx context.Context, userID string, genreIDs []string) error
}
