package models

import (
	"time"

	"github.com/google/uuid"
)

// BracketType соответствует колонке tournament_brackets.type.
type BracketType string

const (
	BracketSingleElimination BracketType = "SE"
	BracketDoubleElimination BracketType = "DE"
	BracketRoundRobin        BracketType = "RR"
)

// Tournament is the full tournament row with the relations FindByID expands.
type Tournament struct {
	ID                uuid.UUID   `json:"id" db:"id"`
	Name              string      `json:"name" db:"name"`
	NameForURL        string      `json:"name_for_url" db:"name_for_url"`
	Description       string      `json:"description" db:"description"`
	StartTime         time.Time   `json:"start_time" db:"start_time"`
	CheckInStartTime  time.Time   `json:"check_in_start_time" db:"check_in_start_time"`
	BannerBackground  string      `json:"banner_background" db:"banner_background"`
	BannerTextHSLArgs string      `json:"banner_text_hsl_args" db:"banner_text_hsl_args"`
	Seeds             []uuid.UUID `json:"seeds" db:"seeds"`
	OrganizerID       uuid.UUID   `json:"organizer_id" db:"organizer_id"`

	Organizer *Organizer `json:"organizer,omitempty" db:"-"`
	Teams     []Team     `json:"teams,omitempty" db:"-"`
}

type Organizer struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	DiscordInvite string    `json:"discord_invite" db:"discord_invite"`
	Twitter       *string   `json:"twitter,omitempty" db:"twitter"`
	NameForURL    string    `json:"name_for_url" db:"name_for_url"`
	OwnerID       int       `json:"owner_id" db:"owner_id"`
}

type MapPoolEntry struct {
	ID   int    `json:"id" db:"id"`
	Mode string `json:"mode" db:"mode"`
	Name string `json:"name" db:"name"`
}

type Bracket struct {
	ID   uuid.UUID   `json:"id" db:"id"`
	Type BracketType `json:"type" db:"type"`
}

// HasTeam reports whether teamID is registered in the tournament. Teams must be loaded.
func (t *Tournament) HasTeam(teamID uuid.UUID) bool {
	for _, team := range t.Teams {
		if team.ID == teamID {
			return true
		}
	}
	return false
}
