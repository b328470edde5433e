package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/toolindex/enrich/pkg/models"
)

// DB is the Postgres-backed Store used in production.
type DB struct {
	db *gorm.DB
}

// Open connects to the directory database. GORM's own logger is silenced;
// the engine logs through zerolog instead.
func Open(dsn string) (*DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &DB{db: db}, nil
}

// underEnrichedFilter selects tools still missing at least one enrichment
// field. pricing_model = 'freemium' counts as missing because it is the
// cascade's default placeholder.
const underEnrichedFilter = `logo_url IS NULL OR logo_url = ''
	OR twitter_url IS NULL OR twitter_url = ''
	OR linkedin_url IS NULL OR linkedin_url = ''
	OR github_url IS NULL OR github_url = ''
	OR base_price IS NULL OR base_price = ''
	OR ios_app_url IS NULL OR ios_app_url = ''
	OR android_app_url IS NULL OR android_app_url = ''
	OR api_available = false
	OR pricing_model = 'freemium'`

// FindUnderEnriched returns up to limit under-enriched tools, featured and
// well-liked tools first.
func (d *DB) FindUnderEnriched(ctx context.Context, limit int) ([]models.Tool, error) {
	var tools []models.Tool
	err := d.db.WithContext(ctx).
		Where(underEnrichedFilter).
		Order("featured DESC, likes DESC").
		Limit(limit).
		Find(&tools).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query under-enriched tools: %w", err)
	}
	return tools, nil
}

// AllTools returns every row of the websites table.
func (d *DB) AllTools(ctx context.Context) ([]models.Tool, error) {
	var tools []models.Tool
	if err := d.db.WithContext(ctx).Find(&tools).Error; err != nil {
		return nil, fmt.Errorf("failed to load tools: %w", err)
	}
	return tools, nil
}

// UpdateTool applies a sparse patch against a single row. Only the columns
// present in the patch are written.
func (d *DB) UpdateTool(ctx context.Context, id uint, patch models.Patch) error {
	if len(patch) == 0 {
		return nil
	}
	err := d.db.WithContext(ctx).
		Model(&models.Tool{}).
		Where("id = ?", id).
		Updates(map[string]any(patch)).Error
	if err != nil {
		return fmt.Errorf("failed to update tool %d: %w", id, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
