package events

import (
	"encoding/json"
	"net/url"
	"time"
)

// ScreenSize decodes the wire form of the reported screen dimensions, a
// two-element JSON array. Short or missing arrays default to zero
// rather than failing.
type ScreenSize struct {
	Width  int32
	Height int32
}

func (s *ScreenSize) UnmarshalJSON(data []byte) error {
	var dims []int32
	if err := json.Unmarshal(data, &dims); err != nil {
		return err
	}
	if len(dims) > 0 {
		s.Width = dims[0]
	}
	if len(dims) > 1 {
		s.Height = dims[1]
	}
	return nil
}

func (s ScreenSize) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int32{s.Width, s.Height})
}

// VisitorPayload carries the raw visitor attributes of a beacon. All
// fields default when absent from the request body.
type VisitorPayload struct {
	Tz     string     `json:"tz"`
	Lang   string     `json:"lang"`
	Screen ScreenSize `json:"screen"`
}

// PagePayload carries the page URL and the optional referrer URL.
type PagePayload struct {
	URL      string `json:"url"`
	Referrer string `json:"ref"`
}

// VisitRequest is the body of a page visit report.
type VisitRequest struct {
	Session string         `json:"session"`
	Visitor VisitorPayload `json:"visitor"`
	Page    PagePayload    `json:"page"`
}

// ExitRequest is the body of a page exit report, a visit with the
// client-measured duration and scroll distance.
type ExitRequest struct {
	VisitRequest
	Dur  int32   `json:"dur"`
	Dist float64 `json:"dist"`
}

// EventRequest is the body of a custom event report.
type EventRequest struct {
	VisitRequest
	Name string          `json:"name"`
	Data json.RawMessage `json:"data"`
}

// HandleVisit canonicalizes a page visit report into a Visit record.
// It fails only on a malformed session identifier or a page URL
// without a domain.
func HandleVisit(projectID int64, body VisitRequest, userAgent string) (*Visit, error) {
	session, err := parseSession(body.Session)
	if err != nil {
		return nil, err
	}

	visitor := NewVisitor(projectID, &body.Visitor, userAgent)

	pageURL, err := parsePageURL(body.Page.URL)
	if err != nil {
		return nil, err
	}
	page, err := NewPage(projectID, pageURL)
	if err != nil {
		return nil, err
	}

	utmParam := NewUtmParam(projectID, pageURL)
	referrer := NewReferrer(projectID, parseReferrerURL(body.Page.Referrer), page.Domain)

	return &Visit{
		Time:     time.Now().UTC(),
		Project:  projectID,
		Session:  session,
		Visitor:  visitor,
		Page:     page,
		UtmParam: utmParam,
		Referrer: referrer,
	}, nil
}

// HandleExit canonicalizes a page exit report: a Visit carrying the
// client-reported duration and distance.
func HandleExit(projectID int64, body ExitRequest, userAgent string) (*Visit, error) {
	visit, err := HandleVisit(projectID, body.VisitRequest, userAgent)
	if err != nil {
		return nil, err
	}

	visit.Duration = &body.Dur
	visit.Distance = &body.Dist
	return visit, nil
}

// HandleEvent canonicalizes a custom event report into an Event record.
// The payload passes through untouched.
func HandleEvent(projectID int64, body EventRequest, userAgent string) (*Event, error) {
	session, err := parseSession(body.Session)
	if err != nil {
		return nil, err
	}

	visitor := NewVisitor(projectID, &body.Visitor, userAgent)

	pageURL, err := parsePageURL(body.Page.URL)
	if err != nil {
		return nil, err
	}
	page, err := NewPage(projectID, pageURL)
	if err != nil {
		return nil, err
	}

	return &Event{
		Time:    time.Now().UTC(),
		Project: projectID,
		Session: session,
		Visitor: visitor,
		Page:    page,
		Name:    body.Name,
		Data:    body.Data,
	}, nil
}

// parsePageURL parses the page URL; unparseable input counts as a URL
// without a domain.
func parsePageURL(raw string) (*url.URL, error) {
	pageURL, err := url.Parse(raw)
	if err != nil {
		return nil, &MissingFieldError{Field: "domain"}
	}
	return pageURL, nil
}

// parseReferrerURL parses the optional referrer; anything unparseable
// degrades to no referrer rather than failing the report.
func parseReferrerURL(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	referrerURL, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return referrerURL
}
