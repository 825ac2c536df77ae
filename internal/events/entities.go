package events

import (
	"net/url"
	"strings"

	"lumetric/internal/pkg/fingerprint"
	"lumetric/internal/pkg/referrers"
	"lumetric/internal/pkg/timezones"
	"lumetric/internal/pkg/user_agent"
)

// NewVisitor canonicalizes the raw visitor attributes of a beacon.
// Unknown timezones and unparseable user agents degrade to absent
// fields; construction never fails.
//
// The identity hash covers, in order: project, region (if resolved),
// timezone, language, browser (if resolved), platform (if resolved),
// width, height. Absent fields contribute nothing to the hash stream.
func NewVisitor(projectID int64, visitor *VisitorPayload, userAgent string) Visitor {
	val := Visitor{
		Project:  projectID,
		Timezone: visitor.Tz,
		Language: visitor.Lang,
		Width:    visitor.Screen.Width,
		Height:   visitor.Screen.Height,
	}

	if region, ok := timezones.Lookup(visitor.Tz); ok {
		val.Region = &region
	}

	ua := user_agent.Parse(userAgent)
	if ua.Browser != "" {
		val.Browser = &ua.Browser
	}
	if ua.OS != "" {
		val.Platform = &ua.OS
	}

	var hasher fingerprint.Hasher
	hasher.Write(uint64(val.Project))
	if val.Region != nil {
		hasher.WriteBytes([]byte(*val.Region))
	}
	hasher.WriteBytes([]byte(val.Timezone))
	hasher.WriteBytes([]byte(val.Language))
	if val.Browser != nil {
		hasher.WriteBytes([]byte(*val.Browser))
	}
	if val.Platform != nil {
		hasher.WriteBytes([]byte(*val.Platform))
	}
	// Screen dimensions widen through int64 so negative values keep the
	// same bit pattern as previously stored identifiers.
	hasher.Write(uint64(int64(val.Width)))
	hasher.Write(uint64(int64(val.Height)))

	val.ID = int64(hasher.Sum64())
	return val
}

// NewPage canonicalizes the visited URL to its domain and path. A URL
// without a host component is the one unrecoverable entity failure: no
// report can be recorded without a page.
func NewPage(projectID int64, pageURL *url.URL) (Page, error) {
	domain := strings.ToLower(pageURL.Hostname())
	if domain == "" {
		return Page{}, &MissingFieldError{Field: "domain"}
	}

	path := pageURL.Path
	if path == "" {
		path = "/"
	}

	val := Page{
		Project: projectID,
		Domain:  domain,
		Path:    path,
	}

	var hasher fingerprint.Hasher
	hasher.Write(uint64(val.Project))
	hasher.WriteBytes([]byte(val.Domain))
	hasher.WriteBytes([]byte(val.Path))

	val.ID = int64(hasher.Sum64())
	return val, nil
}

// NewUtmParam scans the page URL's query string for the five recognized
// campaign keys. Keys match case-sensitively; a repeated key keeps its
// last value. Returns nil when no key was found, so storage never sees
// an all-empty UTM record.
//
// Fields contribute to the identity hash in the fixed order campaign,
// content, medium, source, term, regardless of their order in the query
// string.
func NewUtmParam(projectID int64, pageURL *url.URL) *UtmParam {
	query := pageURL.Query()

	val := UtmParam{Project: projectID}
	foundAny := false

	pick := func(key string) *string {
		values, ok := query[key]
		if !ok || len(values) == 0 {
			return nil
		}
		foundAny = true
		value := values[len(values)-1]
		return &value
	}

	val.Campaign = pick("campaign")
	val.Content = pick("content")
	val.Medium = pick("medium")
	val.Source = pick("source")
	val.Term = pick("term")

	if !foundAny {
		return nil
	}

	var hasher fingerprint.Hasher
	hasher.Write(uint64(val.Project))
	for _, field := range []*string{val.Campaign, val.Content, val.Medium, val.Source, val.Term} {
		if field != nil {
			hasher.WriteBytes([]byte(*field))
		}
	}

	val.ID = int64(hasher.Sum64())
	return &val
}

// NewReferrer canonicalizes the referring site. Returns nil when there
// is no referrer URL, the URL has no domain, or the referrer is the
// page's own domain (self-referrals are not referrers, compared
// case-insensitively). The stored domain is lower-cased.
func NewReferrer(projectID int64, referrerURL *url.URL, pageDomain string) *Referrer {
	if referrerURL == nil {
		return nil
	}

	domain := strings.ToLower(referrerURL.Hostname())
	if domain == "" || domain == strings.ToLower(pageDomain) {
		return nil
	}

	val := Referrer{
		Project: projectID,
		Domain:  domain,
		Name:    referrers.DisplayName(domain),
	}

	var hasher fingerprint.Hasher
	hasher.Write(uint64(val.Project))
	hasher.WriteBytes([]byte(val.Domain))

	val.ID = int64(hasher.Sum64())
	return &val
}
