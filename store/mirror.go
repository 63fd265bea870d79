package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/postbox/models"
)

// GormMirror writes created users to the users table.
type GormMirror struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormMirror migrates the users table when missing and returns a mirror over db.
func NewGormMirror(db *gorm.DB) (*GormMirror, error) {
	if !db.Migrator().HasTable(&models.User{}) {
		if err := db.AutoMigrate(&models.User{}); err != nil {
			return nil, fmt.Errorf("migrate users: %w", err)
		}
	}
	return &GormMirror{db: db, timeout: 3 * time.Second}, nil
}

// MirrorUser upserts the user row keyed by id.
func (m *GormMirror) MirrorUser(user models.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&user).Error
}

// Close releases the underlying connection pool.
func (m *GormMirror) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
