package models

type User struct {
	ID                   int     `json:"id"`
	DiscordID            string  `json:"discord_id"`
	DiscordName          string  `json:"discord_name"`
	DiscordDiscriminator string  `json:"discord_discriminator"`
	DiscordAvatar        *string `json:"discord_avatar"`
	YoutubeID            *string `json:"youtube_id"`
	Twitch               *string `json:"twitch"`
	Twitter              *string `json:"twitter"`
	Bio                  *string `json:"bio"`
	Country              *string `json:"country,omitempty"`
	CustomURL            *string `json:"custom_url,omitempty"`
}

// BadgeCount is how many times one badge is owned by a user.
type BadgeCount struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Hue         *int   `json:"hue,omitempty"`
	Count       int    `json:"count"`
}

// Country is the display record of an ISO 3166-1 alpha-2 code.
type Country struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// UserPageData is the payload of the user profile layout.
type UserPageData struct {
	ID                   int          `json:"id"`
	DiscordName          string       `json:"discord_name"`
	DiscordAvatar        *string      `json:"discord_avatar"`
	DiscordDiscriminator string       `json:"discord_discriminator"`
	DiscordID            string       `json:"discord_id"`
	YoutubeID            *string      `json:"youtube_id"`
	Twitch               *string      `json:"twitch"`
	Twitter              *string      `json:"twitter"`
	Bio                  *string      `json:"bio"`
	Country              *Country     `json:"country,omitempty"`
	Badges               []BadgeCount `json:"badges"`
}

type NavLink struct {
	Label string `json:"label"`
	To    string `json:"to"`
}
