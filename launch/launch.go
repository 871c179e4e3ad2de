// Package launch starts the game through the Steam client.
package launch

// SteamURL returns the steam:// URL that runs the given app id.
func SteamURL(appID string) string {
	return "steam://rungameid/" + appID
}
