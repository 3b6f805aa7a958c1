// Package sqlite is the gorm-backed store used for single-node deployments
// and tests.
package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	repo "github.com/wcraske/simpleCalendar/internal/repository"
)

type userRow struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:user"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type eventRow struct {
	ID          string    `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"size:255;not null;default:''"`
	StartDate   time.Time `gorm:"not null;index"`
	EndDate     time.Time `gorm:"not null"`
	OwnerID     string    `gorm:"column:owner_user_id;not null;index"`
	Owner       *userRow  `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

func (eventRow) TableName() string { return "events" }

type Store struct{ db *gorm.DB }

// NewStore migrates the schema and wraps db.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&userRow{}, &eventRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func NewRepositories(db *gorm.DB) repo.Repositories {
	return repo.Repositories{
		Users:  &usersRepo{db},
		Events: &eventsRepo{db},
	}
}

func (s *Store) WithTx(ctx context.Context, fn func(repo.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repo.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repo.ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repo.ErrNotFound
	}
	return err
}
