package events_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumetric/internal/events"
)

const chromeOnLinuxUA = "Mozilla/5.0 (Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36"

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewVisitorResolvesRegionAndFamilies(t *testing.T) {
	payload := &events.VisitorPayload{
		Tz:     "Europe/Zurich",
		Lang:   "en",
		Screen: events.ScreenSize{Width: 1920, Height: 1080},
	}

	visitor := events.NewVisitor(1, payload, chromeOnLinuxUA)

	require.NotNil(t, visitor.Region)
	assert.Equal(t, "CH", *visitor.Region)
	require.NotNil(t, visitor.Browser)
	assert.Equal(t, "Chrome", *visitor.Browser)
	require.NotNil(t, visitor.Platform)
	assert.Equal(t, "Linux", *visitor.Platform)
	assert.Equal(t, int32(1920), visitor.Width)
	assert.Equal(t, int32(1080), visitor.Height)
	assert.NotZero(t, visitor.ID)
}

func TestNewVisitorDegradesToAbsentFields(t *testing.T) {
	payload := &events.VisitorPayload{Tz: "Atlantis/Lost_City", Lang: "en"}

	visitor := events.NewVisitor(1, payload, "curl/8.0.1")

	assert.Nil(t, visitor.Region)
	assert.Nil(t, visitor.Browser)
	assert.Nil(t, visitor.Platform)
	assert.Equal(t, "Atlantis/Lost_City", visitor.Timezone)
	assert.NotZero(t, visitor.ID)
}

func TestNewVisitorIdentityIsDeterministic(t *testing.T) {
	payload := &events.VisitorPayload{
		Tz:     "Europe/Zurich",
		Lang:   "en",
		Screen: events.ScreenSize{Width: 1920, Height: 1080},
	}

	a := events.NewVisitor(1, payload, chromeOnLinuxUA)
	b := events.NewVisitor(1, payload, chromeOnLinuxUA)
	assert.Equal(t, a.ID, b.ID)

	other := events.NewVisitor(1, &events.VisitorPayload{
		Tz:     "Europe/Zurich",
		Lang:   "de",
		Screen: events.ScreenSize{Width: 1920, Height: 1080},
	}, chromeOnLinuxUA)
	assert.NotEqual(t, a.ID, other.ID)

	otherProject := events.NewVisitor(2, payload, chromeOnLinuxUA)
	assert.NotEqual(t, a.ID, otherProject.ID)
}

func TestNewVisitorNegativeScreenDimensions(t *testing.T) {
	payload := &events.VisitorPayload{
		Tz:     "Europe/Zurich",
		Lang:   "en",
		Screen: events.ScreenSize{Width: -1, Height: -1},
	}

	a := events.NewVisitor(1, payload, chromeOnLinuxUA)
	b := events.NewVisitor(1, payload, chromeOnLinuxUA)
	assert.Equal(t, a.ID, b.ID)

	zero := events.NewVisitor(1, &events.VisitorPayload{Tz: "Europe/Zurich", Lang: "en"}, chromeOnLinuxUA)
	assert.NotEqual(t, a.ID, zero.ID)
}

func TestNewPage(t *testing.T) {
	page, err := events.NewPage(1, mustParseURL(t, "https://shop.example/products/shoes"))
	require.NoError(t, err)
	assert.Equal(t, "shop.example", page.Domain)
	assert.Equal(t, "/products/shoes", page.Path)
	assert.NotZero(t, page.ID)

	again, err := events.NewPage(1, mustParseURL(t, "https://shop.example/products/shoes"))
	require.NoError(t, err)
	assert.Equal(t, page.ID, again.ID)

	other, err := events.NewPage(1, mustParseURL(t, "https://shop.example/products/hats"))
	require.NoError(t, err)
	assert.NotEqual(t, page.ID, other.ID)
}

func TestNewPageDefaultsPathToSlash(t *testing.T) {
	page, err := events.NewPage(1, mustParseURL(t, "https://shop.example"))
	require.NoError(t, err)
	assert.Equal(t, "/", page.Path)

	explicit, err := events.NewPage(1, mustParseURL(t, "https://shop.example/"))
	require.NoError(t, err)
	assert.Equal(t, page.ID, explicit.ID)
}

func TestNewPageLowercasesDomain(t *testing.T) {
	upper, err := events.NewPage(1, mustParseURL(t, "https://SHOP.Example/p"))
	require.NoError(t, err)
	lower, err := events.NewPage(1, mustParseURL(t, "https://shop.example/p"))
	require.NoError(t, err)

	assert.Equal(t, "shop.example", upper.Domain)
	assert.Equal(t, lower.ID, upper.ID)
}

func TestNewPageFailsWithoutDomain(t *testing.T) {
	for _, raw := range []string{"/just/a/path", "not a url at all", ""} {
		_, err := events.NewPage(1, mustParseURL(t, raw))
		var missingErr *events.MissingFieldError
		require.ErrorAs(t, err, &missingErr, "url %q", raw)
		assert.Equal(t, "domain", missingErr.Field)
	}
}

func TestNewUtmParamPresence(t *testing.T) {
	assert.Nil(t, events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p")))
	assert.Nil(t, events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?foo=bar&baz=1")))
	// keys match case-sensitively and without the utm_ prefix
	assert.Nil(t, events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?utm_campaign=x&Campaign=y")))

	utm := events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?campaign=spring"))
	require.NotNil(t, utm)
	require.NotNil(t, utm.Campaign)
	assert.Equal(t, "spring", *utm.Campaign)
	assert.Nil(t, utm.Content)
	assert.Nil(t, utm.Medium)
	assert.Nil(t, utm.Source)
	assert.Nil(t, utm.Term)
}

func TestNewUtmParamIdentityIgnoresUnrelatedQueryParams(t *testing.T) {
	a := events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?campaign=x"))
	b := events.NewUtmParam(1, mustParseURL(t, "https://other.example/different?campaign=x&foo=bar"))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.ID, b.ID)

	other := events.NewUtmParam(2, mustParseURL(t, "https://shop.example/p?campaign=x"))
	require.NotNil(t, other)
	assert.NotEqual(t, a.ID, other.ID)
}

func TestNewUtmParamFieldOrderIsFixed(t *testing.T) {
	a := events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?source=news&campaign=spring"))
	b := events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?campaign=spring&source=news"))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, a.ID, b.ID)
}

func TestNewUtmParamLastOccurrenceWins(t *testing.T) {
	utm := events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?campaign=first&campaign=second"))
	require.NotNil(t, utm)
	require.NotNil(t, utm.Campaign)
	assert.Equal(t, "second", *utm.Campaign)
}

func TestNewUtmParamEmptyValueIsStillPresent(t *testing.T) {
	utm := events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?campaign="))
	require.NotNil(t, utm)
	require.NotNil(t, utm.Campaign)
	assert.Equal(t, "", *utm.Campaign)

	// a present empty value still participates in the identity
	other := events.NewUtmParam(1, mustParseURL(t, "https://shop.example/p?campaign=x"))
	require.NotNil(t, other)
	assert.NotEqual(t, utm.ID, other.ID)
}

func TestNewReferrer(t *testing.T) {
	ref := events.NewReferrer(1, mustParseURL(t, "https://News.Ycombinator.com/item"), "shop.example")
	require.NotNil(t, ref)
	assert.Equal(t, "news.ycombinator.com", ref.Domain)
	assert.Equal(t, "Hacker News", ref.Name)
	assert.NotZero(t, ref.ID)

	again := events.NewReferrer(1, mustParseURL(t, "https://news.ycombinator.com/other"), "shop.example")
	require.NotNil(t, again)
	assert.Equal(t, ref.ID, again.ID)
}

func TestNewReferrerAbsence(t *testing.T) {
	assert.Nil(t, events.NewReferrer(1, nil, "shop.example"))
	assert.Nil(t, events.NewReferrer(1, mustParseURL(t, "/relative/path"), "shop.example"))
}

func TestNewReferrerSelfReferralIsExcluded(t *testing.T) {
	assert.Nil(t, events.NewReferrer(1, mustParseURL(t, "https://example.com/other"), "example.com"))
	// case-insensitive on both sides
	assert.Nil(t, events.NewReferrer(1, mustParseURL(t, "https://EXAMPLE.com/other"), "example.com"))
	assert.Nil(t, events.NewReferrer(1, mustParseURL(t, "https://example.com/other"), "EXAMPLE.COM"))
}
