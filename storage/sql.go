// Package storage persists file IDs of uploaded contents and long polling offsets.
package storage

import (
	"context"
	"time"

	"github.com/pkg/errors"
	null "gopkg.in/guregu/null.v3"
	"gorm.io/gorm"

	"tgram/types"
	gormutil "tgram/util/gorm"
)

// FileIDEntry maps an upload cache key to the file ID assigned by the API.
type FileIDEntry struct {
	Key       string    `gorm:"primaryKey"`
	FileID    string    `gorm:"not null"`
	ExpiresAt null.Time `gorm:"index"`
}

func (FileIDEntry) TableName() string { return "file_ids" }

// UpdateOffset is the next update ID to be requested by a bot.
type UpdateOffset struct {
	Bot    string `gorm:"primaryKey"`
	Offset int64  `gorm:"not null"`
}

func (UpdateOffset) TableName() string { return "update_offsets" }

// SQL is the gorm-backed storage.
type SQL struct {
	DB  *gorm.DB
	TTL time.Duration
	Now func() time.Time
}

// NewSQL wraps the database. File IDs expire after ttl, zero ttl means never.
func NewSQL(db *gorm.DB, ttl time.Duration) *SQL {
	return &SQL{DB: db, TTL: ttl, Now: time.Now}
}

// Init migrates the schema.
func (s *SQL) Init(ctx context.Context) error {
	return errors.Wrap(s.DB.WithContext(ctx).AutoMigrate(new(FileIDEntry), new(UpdateOffset)), "migrate")
}

func (s *SQL) GetFileID(ctx context.Context, key string) (types.FileID, bool, error) {
	entry := new(FileIDEntry)
	err := s.DB.WithContext(ctx).
		Where("key = ? and (expires_at is null or expires_at > ?)", key, s.now()).
		First(entry).
		Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	case err != nil:
		return "", false, err
	default:
		return types.FileID(entry.FileID), true, nil
	}
}

func (s *SQL) SetFileID(ctx context.Context, key string, id types.FileID) error {
	entry := &FileIDEntry{Key: key, FileID: string(id)}
	if s.TTL > 0 {
		entry.ExpiresAt = null.TimeFrom(s.now().Add(s.TTL))
	}

	return s.DB.WithContext(ctx).
		Clauses(gormutil.Upsert(entry)).
		Create(entry).
		Error
}

// Expire deletes expired file IDs and returns the number of deleted rows.
func (s *SQL) Expire(ctx context.Context) (int64, error) {
	tx := s.DB.WithContext(ctx).
		Where("expires_at is not null and expires_at <= ?", s.now()).
		Delete(new(FileIDEntry))
	return tx.RowsAffected, tx.Error
}

func (s *SQL) LoadOffset(ctx context.Context, bot string) (types.ID, error) {
	offset := new(UpdateOffset)
	err := s.DB.WithContext(ctx).
		Where("bot = ?", bot).
		First(offset).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}

	return types.ID(offset.Offset), err
}

func (s *SQL) SaveOffset(ctx context.Context, bot string, offset types.ID) error {
	entry := &UpdateOffset{Bot: bot, Offset: int64(offset)}
	return s.DB.WithContext(ctx).
		Clauses(gormutil.Upsert(entry, "offset")).
		Create(entry).
		Error
}

func (s *SQL) Close() error {
	return gormutil.Close(s.DB)
}

func (s *SQL) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}

	return time.Now()
}
