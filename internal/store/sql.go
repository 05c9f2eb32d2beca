package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/moizhassan7/crisp-cms/internal/config"
)

// documentRow is the single relational table behind SQLStore: one row per
// content document, body kept as a JSON column. Collection plus DocID is
// the logical key.
type documentRow struct {
	ID         uint   `gorm:"primaryKey"`
	Collection string `gorm:"size:64;uniqueIndex:idx_collection_doc"`
	DocID      string `gorm:"size:64;uniqueIndex:idx_collection_doc"`
	Body       datatypes.JSON
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (documentRow) TableName() string { return "documents" }

// SQLStore implements Store on Postgres for deployments that already run a
// relational database instead of Mongo. Ordering is applied in memory over
// the decoded bodies; content collections are small (tens of documents).
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(cfg config.StoreConfig) (*SQLStore, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Username, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var row documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return decodeBody(row.Body)
}

func (s *SQLStore) List(ctx context.Context, collection string, opts ListOptions) ([]Record, error) {
	var rows []documentRow
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		doc, err := decodeBody(row.Body)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{ID: row.DocID, Data: doc})
	}
	sortRecords(records, opts)
	return records, nil
}

func (s *SQLStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	body, err := encodeBody(doc)
	if err != nil {
		return "", err
	}
	row := documentRow{
		Collection: collection,
		DocID:      uuid.NewString(),
		Body:       body,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to add to %s: %w", collection, err)
	}
	return row.DocID, nil
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, doc Document) error {
	body, err := encodeBody(doc)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Model(&documentRow{}).
		Where("collection = ? AND doc_id = ?", collection, id).
		Update("body", body)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Put(ctx context.Context, collection, id string, doc Document) error {
	err := s.Update(ctx, collection, id, doc)
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	body, encErr := encodeBody(doc)
	if encErr != nil {
		return encErr
	}
	row := documentRow{Collection: collection, DocID: id, Body: body}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&documentRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func encodeBody(doc Document) (datatypes.JSON, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document body: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func decodeBody(body datatypes.JSON) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document body: %w", err)
	}
	return doc, nil
}
