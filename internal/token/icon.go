package token

import "strings"

// FallbackIcon is an inline placeholder rendered when the asset host has no
// icon for a currency.
const FallbackIcon = `data:image/svg+xml,<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24"><circle cx="12" cy="12" r="10" fill="%236366f1"/></svg>`

// ResolveIcon returns the icon URI for a currency symbol. The asset host
// serves icons by the `<currency>.svg` convention. An empty currency or base
// URL resolves to the fallback so callers never deal with a broken reference.
func ResolveIcon(baseURL, currency string) string {
	if baseURL == "" || currency == "" {
		return FallbackIcon
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + currency + ".svg"
}
