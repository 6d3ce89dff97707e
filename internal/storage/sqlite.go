package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"gourmet/internal/models"
)

// slotRecord is a named slot row holding a serialized collection.
type slotRecord struct {
	Name      string `gorm:"primary_key"`
	Data      []byte
	UpdatedAt time.Time
}

// TableName sets the table for slot rows.
func (slotRecord) TableName() string {
	return "slots"
}

// SQLiteRepository keeps the order collection in a single slot row of
// a SQLite database. SQLite exposes no change feed, so Watch returns
// a nil channel; in-process observers are served by the order store's
// own subscriptions instead.
type SQLiteRepository struct {
	db   *gorm.DB
	slot string
}

// NewSQLiteRepository opens (or creates) the database at path and
// ensures the slots table exists.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&slotRecord{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}

	return &SQLiteRepository{db: db, slot: SlotName}, nil
}

// Load reads the slot row. A missing row or unparseable payload
// yields an empty collection.
func (r *SQLiteRepository) Load(ctx context.Context) ([]models.Order, error) {
	var rec slotRecord
	if err := r.db.Where("name = ?", r.slot).First(&rec).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeOrders(rec.Data), nil
}

// Save replaces the slot row with the serialized collection.
func (r *SQLiteRepository) Save(ctx context.Context, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return err
	}

	rec := slotRecord{Name: r.slot}
	return r.db.
		Where(slotRecord{Name: r.slot}).
		Assign(map[string]interface{}{"data": data, "updated_at": time.Now()}).
		FirstOrCreate(&rec).Error
}

// Watch is not supported for SQLite slots.
func (r *SQLiteRepository) Watch(ctx context.Context) (<-chan []models.Order, error) {
	return nil, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
