package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/korvo-dev/echofeed/backend/internal/models"
)

// SavedPostRepository defines the interface for saved post operations
type SavedPostRepository interface {
	SavePost(ctx context.Context, record *models.SavedPostRecord, userID uuid.UUID) error
	ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedPostRecord, error)
}

// PostgresSavedPostRepository implements SavedPostRepository
type PostgresSavedPostRepository struct {
	db *gorm.DB
}

func NewPostgresSavedPostRepository(db *gorm.DB) *PostgresSavedPostRepository {
	return &PostgresSavedPostRepository{db: db}
}

// SavePost persists a content-addressed post record and adds its id to the
// user's saved collection, in one transaction. The record insert is a no-op
// when the hash already exists; the append is a no-op when the id is already
// in the collection, so concurrent saves of the same item stay consistent.
func (r *PostgresSavedPostRepository) SavePost(ctx context.Context, record *models.SavedPostRecord, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error
		if err != nil {
			return fmt.Errorf("inserting post record: %w", err)
		}

		err = tx.Exec(`UPDATE users
			SET saved_posts = array_append(saved_posts, ?)
			WHERE id = ? AND NOT (saved_posts @> ARRAY[?]::bigint[])`,
			record.PostID, userID, record.PostID,
		).Error
		if err != nil {
			return fmt.Errorf("appending to saved collection: %w", err)
		}
		return nil
	})
}

// ListSavedByUser returns the post records referenced by the user's saved
// collection, newest first.
func (r *PostgresSavedPostRepository) ListSavedByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedPostRecord, error) {
	var records []models.SavedPostRecord
	err := r.db.WithContext(ctx).Raw(`SELECT hash, post_id, title, url, author, timestamp
		FROM posts
		WHERE post_id = ANY(SELECT unnest(saved_posts) FROM users WHERE id = ?)
		ORDER BY timestamp DESC`,
		userID,
	).Scan(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing saved posts: %w", err)
	}
	return records, nil
}
