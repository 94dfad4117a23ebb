package utils

import "strings"

const titleSeparator = " | "

// MakeTitle appends the site name to a page title. Empty parts are skipped.
func MakeTitle(siteName string, parts ...string) string {
	kept := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if siteName != "" {
		kept = append(kept, siteName)
	}
	return strings.Join(kept, titleSeparator)
}

// DiscordFullName renders name#discriminator. Accounts migrated off discriminators ("0") show the bare name.
func DiscordFullName(name, discriminator string) string {
	if discriminator == "" || discriminator == "0" {
		return name
	}
	return name + "#" + discriminator
}
