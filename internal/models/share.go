package models

import (
	"net/url"
	"strings"
)

// SharedPlatform guesses which social network a shared link came from.
//
// Unknown or unparsable links report "social".
func SharedPlatform(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return "social"
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch {
	case host == "twitter.com" || host == "x.com" || strings.HasSuffix(host, ".twitter.com") || strings.HasSuffix(host, ".x.com"):
		return "Twitter"
	case host == "instagram.com" || strings.HasSuffix(host, ".instagram.com"):
		return "Instagram"
	case host == "facebook.com" || strings.HasSuffix(host, ".facebook.com") || host == "fb.watch":
		return "Facebook"
	default:
		return "social"
	}
}
