package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// updateAll writes every column of m, including zero values, and returns
// notFound when no row matches the primary key.
func updateAll(ctx context.Context, db *gorm.DB, m any, notFound error) error {
	result := db.WithContext(ctx).Model(m).Select("*").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// deleteByID hard deletes the row with the given id and returns notFound when nothing was removed.
func deleteByID(ctx context.Context, db *gorm.DB, m any, id uuid.UUID, notFound error) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// userAccountIDs is a subquery selecting the ids of a user's accounts.
func userAccountIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Table("accounts").Select("id").Where("user_id = ?", userID)
}
