package storage

import (
	"time"
)

// Entity rows are keyed by the fingerprint-derived identifier, not an
// allocated one, and are written with ON CONFLICT DO NOTHING: two
// reports describing the same entity collapse to a single row without
// any read-before-write.

// VisitorRecord is the stored form of a canonical visitor.
type VisitorRecord struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	ProjectID int64 `gorm:"index;not null"`
	Region    *string
	Country   string // display name resolved from Region, reporting only
	Timezone  string
	Language  string
	Browser   *string
	Platform  *string
	Width     int32
	Height    int32
	CreatedAt time.Time
}

func (VisitorRecord) TableName() string { return "visitors" }

// PageRecord is the stored form of a canonical page.
type PageRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	ProjectID int64  `gorm:"index;not null"`
	Domain    string `gorm:"index;not null"`
	Path      string `gorm:"not null"`
	CreatedAt time.Time
}

func (PageRecord) TableName() string { return "pages" }

// UtmParamRecord is the stored form of a canonical UTM parameter set.
type UtmParamRecord struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	ProjectID int64 `gorm:"index;not null"`
	Campaign  *string
	Content   *string
	Medium    *string
	Source    *string
	Term      *string
	CreatedAt time.Time
}

func (UtmParamRecord) TableName() string { return "utm_params" }

// ReferrerRecord is the stored form of a canonical referrer.
type ReferrerRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	ProjectID int64  `gorm:"index;not null"`
	Domain    string `gorm:"index;not null"`
	Name      string
	CreatedAt time.Time
}

func (ReferrerRecord) TableName() string { return "referrers" }

// VisitRecord is an append-only visit or exit report, referencing its
// entities by their computed identifiers.
type VisitRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Time       time.Time `gorm:"index:idx_visits_project_time"`
	ProjectID  int64     `gorm:"index:idx_visits_project_time;not null"`
	SessionID  int64     `gorm:"index;not null"`
	VisitorID  int64     `gorm:"index;not null"`
	PageID     int64     `gorm:"index;not null"`
	UtmParamID *int64
	ReferrerID *int64
	Duration   *int32
	Distance   *float64
	CreatedAt  time.Time
}

func (VisitRecord) TableName() string { return "visits" }

// EventRecord is an append-only custom event report. Data holds the
// client payload verbatim.
type EventRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Time      time.Time `gorm:"index:idx_events_project_time"`
	ProjectID int64     `gorm:"index:idx_events_project_time;not null"`
	SessionID int64     `gorm:"index;not null"`
	VisitorID int64     `gorm:"index;not null"`
	PageID    int64     `gorm:"index;not null"`
	Name      string    `gorm:"index;not null"`
	Data      string    `gorm:"type:text"`
	CreatedAt time.Time
}

func (EventRecord) TableName() string { return "events" }
