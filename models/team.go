package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CheckedInTime *time.Time `json:"checked_in_time" db:"checked_in_time"`
	InviteCode    string     `json:"invite_code" db:"invite_code"`
	TournamentID  uuid.UUID  `json:"tournament_id" db:"tournament_id"`

	Members []TeamMember `json:"members,omitempty" db:"-"`
}

// TeamMember is a row of tournament_team_members.
type TeamMember struct {
	TeamID       uuid.UUID `json:"team_id" db:"team_id"`
	MemberID     int       `json:"member_id" db:"member_id"`
	TournamentID uuid.UUID `json:"tournament_id" db:"tournament_id"`
	Captain      bool      `json:"captain" db:"captain"`
}
