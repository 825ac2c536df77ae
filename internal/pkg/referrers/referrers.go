// Package referrers maps referrer domains to display names for
// reporting. The mapping is cosmetic only and never participates in
// entity identity.
package referrers

import "strings"

// knownReferrers maps common referrer domains to friendly display names.
var knownReferrers = map[string]string{
	// Search engines
	"google.com":     "Google",
	"bing.com":       "Bing",
	"duckduckgo.com": "DuckDuckGo",
	"yahoo.com":      "Yahoo",
	"ecosia.org":     "Ecosia",
	"kagi.com":       "Kagi",

	// Social media
	"x.com":           "X/Twitter",
	"twitter.com":     "X/Twitter",
	"t.co":            "X/Twitter",
	"facebook.com":    "Facebook",
	"instagram.com":   "Instagram",
	"linkedin.com":    "LinkedIn",
	"reddit.com":      "Reddit",
	"bsky.app":        "Bluesky",
	"mastodon.social": "Mastodon",
	"youtube.com":     "YouTube",
	"t.me":            "Telegram",

	// Tech communities
	"news.ycombinator.com": "Hacker News",
	"lobste.rs":            "Lobsters",
	"producthunt.com":      "Product Hunt",
	"dev.to":               "DEV Community",
	"medium.com":           "Medium",
	"substack.com":         "Substack",
	"github.com":           "GitHub",
	"stackoverflow.com":    "Stack Overflow",
}

// DisplayName returns a friendly name for a referrer domain. Unknown
// domains come back unchanged apart from a stripped "www." prefix, so
// the raw domain stays visible in reports.
func DisplayName(domain string) string {
	domain = strings.ToLower(domain)

	if name, ok := knownReferrers[domain]; ok {
		return name
	}

	trimmed := strings.TrimPrefix(domain, "www.")
	if name, ok := knownReferrers[trimmed]; ok {
		return name
	}

	// Subdomains of known referrers count as the referrer itself
	// (m.facebook.com is still Facebook).
	for known, name := range knownReferrers {
		if strings.HasSuffix(trimmed, "."+known) {
			return name
		}
	}

	return trimmed
}
