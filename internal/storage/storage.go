// Package storage persists canonicalized Visit and Event records. The
// deterministic entity identifiers computed upstream do the heavy
// lifting here: entity rows are upserted blindly with ON CONFLICT DO
// NOTHING, so deduplication costs no lookups.
package storage

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lumetric/internal/events"
	"lumetric/internal/pkg/timezones"
)

// Recorder is the persistence interface the transport layer consumes.
type Recorder interface {
	RecordVisit(visit *events.Visit) error
	RecordEvent(event *events.Event) error
}

// Store is the SQLite-backed Recorder.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

var _ Recorder = (*Store)(nil)

// NewStore wraps an open gorm connection.
func NewStore(db *gorm.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// DB exposes the underlying connection for migrations and queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the schema.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&VisitorRecord{},
		&PageRecord{},
		&UtmParamRecord{},
		&ReferrerRecord{},
		&VisitRecord{},
		&EventRecord{},
	)
}

// RecordVisit stores a visit report and its entities in one
// transaction.
func (s *Store) RecordVisit(visit *events.Visit) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertVisitor(tx, &visit.Visitor); err != nil {
			return err
		}
		if err := upsertPage(tx, &visit.Page); err != nil {
			return err
		}

		record := VisitRecord{
			Time:      visit.Time,
			ProjectID: visit.Project,
			SessionID: visit.Session,
			VisitorID: visit.Visitor.ID,
			PageID:    visit.Page.ID,
			Duration:  visit.Duration,
			Distance:  visit.Distance,
		}

		if visit.UtmParam != nil {
			if err := upsertUtmParam(tx, visit.UtmParam); err != nil {
				return err
			}
			record.UtmParamID = &visit.UtmParam.ID
		}
		if visit.Referrer != nil {
			if err := upsertReferrer(tx, visit.Referrer); err != nil {
				return err
			}
			record.ReferrerID = &visit.Referrer.ID
		}

		return tx.Create(&record).Error
	})
	if err != nil {
		s.logger.Error("Failed to store visit",
			slog.Int64("project", visit.Project),
			slog.Any("error", err))
		return fmt.Errorf("failed to store visit: %w", err)
	}
	return nil
}

// RecordEvent stores a custom event report and its entities in one
// transaction.
func (s *Store) RecordEvent(event *events.Event) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertVisitor(tx, &event.Visitor); err != nil {
			return err
		}
		if err := upsertPage(tx, &event.Page); err != nil {
			return err
		}

		record := EventRecord{
			Time:      event.Time,
			ProjectID: event.Project,
			SessionID: event.Session,
			VisitorID: event.Visitor.ID,
			PageID:    event.Page.ID,
			Name:      event.Name,
			Data:      string(event.Data),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		s.logger.Error("Failed to store event",
			slog.Int64("project", event.Project),
			slog.String("name", event.Name),
			slog.Any("error", err))
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

func upsertVisitor(tx *gorm.DB, visitor *events.Visitor) error {
	record := VisitorRecord{
		ID:        visitor.ID,
		ProjectID: visitor.Project,
		Region:    visitor.Region,
		Timezone:  visitor.Timezone,
		Language:  visitor.Language,
		Browser:   visitor.Browser,
		Platform:  visitor.Platform,
		Width:     visitor.Width,
		Height:    visitor.Height,
	}
	if visitor.Region != nil {
		record.Country = timezones.CountryName(*visitor.Region)
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

func upsertPage(tx *gorm.DB, page *events.Page) error {
	record := PageRecord{
		ID:        page.ID,
		ProjectID: page.Project,
		Domain:    page.Domain,
		Path:      page.Path,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

func upsertUtmParam(tx *gorm.DB, utm *events.UtmParam) error {
	record := UtmParamRecord{
		ID:        utm.ID,
		ProjectID: utm.Project,
		Campaign:  utm.Campaign,
		Content:   utm.Content,
		Medium:    utm.Medium,
		Source:    utm.Source,
		Term:      utm.Term,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}

func upsertReferrer(tx *gorm.DB, referrer *events.Referrer) error {
	record := ReferrerRecord{
		ID:        referrer.ID,
		ProjectID: referrer.Project,
		Domain:    referrer.Domain,
		Name:      referrer.Name,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error
}
