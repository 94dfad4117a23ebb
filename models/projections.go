package models

import (
	"time"

	"github.com/google/uuid"
)

// Projections below are shaped per consumer. Public ones never carry invite codes.

// PublicTournament backs the public tournament page.
type PublicTournament struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	StartTime         time.Time       `json:"start_time"`
	CheckInStartTime  time.Time       `json:"check_in_start_time"`
	BannerBackground  string          `json:"banner_background"`
	BannerTextHSLArgs string          `json:"banner_text_hsl_args"`
	Seeds             []uuid.UUID     `json:"seeds"`
	Organizer         PublicOrganizer `json:"organizer"`
	MapPool           []MapPoolEntry  `json:"map_pool"`
	Brackets          []PublicBracket `json:"brackets"`
	Teams             []PublicTeam    `json:"teams"`
}

type PublicOrganizer struct {
	Name          string  `json:"name"`
	DiscordInvite string  `json:"discord_invite"`
	Twitter       *string `json:"twitter"`
	NameForURL    string  `json:"name_for_url"`
	OwnerID       int     `json:"owner_id"`
}

type PublicBracket struct {
	Type BracketType `json:"type"`
}

type PublicTeam struct {
	CheckedInTime *time.Time     `json:"checked_in_time"`
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	CreatedAt     time.Time      `json:"created_at"`
	Members       []PublicMember `json:"members"`
}

type PublicMember struct {
	Captain bool          `json:"captain"`
	Member  MemberProfile `json:"member"`
}

// MemberProfile is the public discord identity of a team member.
type MemberProfile struct {
	ID                   int     `json:"id"`
	DiscordAvatar        *string `json:"discord_avatar"`
	DiscordName          string  `json:"discord_name"`
	DiscordID            string  `json:"discord_id"`
	DiscordDiscriminator string  `json:"discord_discriminator"`
}

// InviteCodeTournament is the organizer view. Callers must authorize before loading it.
type InviteCodeTournament struct {
	StartTime time.Time           `json:"start_time"`
	Organizer InviteCodeOrganizer `json:"organizer"`
	Teams     []InviteCodeTeam    `json:"teams"`
}

type InviteCodeOrganizer struct {
	NameForURL string `json:"name_for_url"`
	OwnerID    int    `json:"-"`
}

type InviteCodeTeam struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	InviteCode    string             `json:"invite_code"`
	CheckedInTime *time.Time         `json:"checked_in_time"`
	Members       []InviteCodeMember `json:"members"`
}

type InviteCodeMember struct {
	Captain bool                    `json:"captain"`
	Member  InviteCodeMemberProfile `json:"member"`
}

// InviteCodeMemberProfile has no discriminator.
type InviteCodeMemberProfile struct {
	ID            int     `json:"id"`
	DiscordAvatar *string `json:"discord_avatar"`
	DiscordName   string  `json:"discord_name"`
	DiscordID     string  `json:"discord_id"`
}
