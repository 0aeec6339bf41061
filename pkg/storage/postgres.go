package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driverprofilebot/pkg/survey"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// profileRow maps the profiles table: one JSONB document per user.
type profileRow struct {
	UserID    int64          `gorm:"column:user_id;primaryKey"`
	Username  string         `gorm:"column:username"`
	Data      datatypes.JSON `gorm:"column:data"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (profileRow) TableName() string { return "profiles" }

// Postgres implements ProfileStore on a profiles table with a JSONB document
// column.
type Postgres struct {
	db  *gorm.DB
	log *zap.Logger
}

var _ ProfileStore = (*Postgres)(nil)

// Open connects to Postgres and migrates the profiles table.
func Open(dsn string, log *zap.Logger) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.AutoMigrate(&profileRow{}); err != nil {
		return nil, fmt.Errorf("migrating profiles table: %w", err)
	}
	return &Postgres{db: db, log: log}, nil
}

func (p *Postgres) Get(ctx context.Context, userID int64) (*survey.Profile, error) {
	var row profileRow
	err := p.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile %d: %w", userID, err)
	}
	var profile survey.Profile
	if err := json.Unmarshal(row.Data, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile %d: %w", userID, err)
	}
	// The columns are authoritative for identity.
	profile.UserID = row.UserID
	profile.Username = row.Username
	return &profile, nil
}

func (p *Postgres) CreateOrReplace(ctx context.Context, profile *survey.Profile) error {
	if profile.UserID <= 0 {
		return fmt.Errorf("profile user id must be positive, got %d", profile.UserID)
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile %d: %w", profile.UserID, err)
	}
	row := profileRow{
		UserID:   profile.UserID,
		Username: profile.Username,
		Data:     data,
	}
	err = p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "data", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("storing profile %d: %w", profile.UserID, err)
	}
	p.log.Info("profile stored", zap.Int64("user_id", profile.UserID))
	return nil
}

func (p *Postgres) Update(ctx context.Context, userID int64, fields map[string]any) (bool, error) {
	var row profileRow
	err := p.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading profile %d for update: %w", userID, err)
	}

	doc := make(map[string]any)
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		return false, fmt.Errorf("decoding profile %d for update: %w", userID, err)
	}
	for k, v := range fields {
		if k == "user_id" || k == "username" {
			continue
		}
		doc[k] = v
	}
	doc["user_id"] = row.UserID
	doc["username"] = row.Username

	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("encoding profile %d for update: %w", userID, err)
	}
	err = p.db.WithContext(ctx).
		Model(&profileRow{}).
		Where("user_id = ?", userID).
		Update("data", datatypes.JSON(data)).Error
	if err != nil {
		return false, fmt.Errorf("updating profile %d: %w", userID, err)
	}
	p.log.Info("profile updated",
		zap.Int64("user_id", userID),
		zap.Int("fields", len(fields)))
	return true, nil
}

func (p *Postgres) Delete(ctx context.Context, userID int64) (bool, error) {
	res := p.db.WithContext(ctx).Delete(&profileRow{}, "user_id = ?", userID)
	if res.Error != nil {
		return false, fmt.Errorf("deleting profile %d: %w", userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	p.log.Info("profile deleted", zap.Int64("user_id", userID))
	return true, nil
}
