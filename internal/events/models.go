// Package events turns raw client beacons into canonical, deterministically
// identified entities. Each report resolves to a Visitor and a Page plus,
// when applicable, a UtmParam and a Referrer; entity identifiers are
// computed from the entity's fields with the fingerprint hash, never
// allocated, so identical reports collapse to the same identifier without
// any datastore lookup at ingestion time.
package events

import (
	"encoding/json"
	"time"
)

// Visitor is the canonical form of the reporting browser. Region,
// Browser and Platform are nil when the respective resolver could not
// determine them; absent fields do not participate in the identity hash.
type Visitor struct {
	ID       int64
	Project  int64
	Region   *string
	Timezone string
	Language string
	Browser  *string
	Platform *string
	Width    int32
	Height   int32
}

// Page is the canonical form of the visited URL, reduced to its domain
// and path.
type Page struct {
	ID      int64
	Project int64
	Domain  string
	Path    string
}

// UtmParam holds the recognized campaign query parameters of a page
// URL. A UtmParam only exists when at least one field was found; each
// field is nil when its key did not occur.
type UtmParam struct {
	ID       int64
	Project  int64
	Campaign *string
	Content  *string
	Medium   *string
	Source   *string
	Term     *string
}

// Referrer is the canonical form of an external referring site. Domain
// is stored lower-cased; Name is a display label and not part of the
// identity.
type Referrer struct {
	ID      int64
	Project int64
	Domain  string
	Name    string
}

// Visit is the assembled record of a page visit or exit report.
// Duration and Distance are only set for exits. The embedded entities
// are owned by value and immutable once constructed.
type Visit struct {
	Time     time.Time
	Project  int64
	Session  int64
	Visitor  Visitor
	Page     Page
	UtmParam *UtmParam
	Referrer *Referrer
	Duration *int32
	Distance *float64
}

// Event is the assembled record of a custom event report. Data is the
// client payload passed through opaque and unvalidated.
type Event struct {
	Time    time.Time
	Project int64
	Session int64
	Visitor Visitor
	Page    Page
	Name    string
	Data    json.RawMessage
}
