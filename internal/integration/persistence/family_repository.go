package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/core/internal/application/adapter"
	"github.com/finance-tracker/core/internal/domain/entity"
	domainerror "github.com/finance-tracker/core/internal/domain/error"
	"github.com/finance-tracker/core/internal/integration/persistence/model"
)

// familyMemberRepository implements the adapter.FamilyMemberRepository interface.
type familyMemberRepository struct {
	db *gorm.DB
}

// NewFamilyMemberRepository creates a new family member repository instance.
func NewFamilyMemberRepository(db *gorm.DB) adapter.FamilyMemberRepository {
	return &familyMemberRepository{
		db: db,
	}
}

// Create creates a new family member.
func (r *familyMemberRepository) Create(ctx context.Context, member *entity.FamilyMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.FamilyMemberFromEntity(member)).Error
}

// FindByOwner retrieves the members invited by an owner.
func (r *familyMemberRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.FamilyMember, error) {
	var memberModels []model.FamilyMemberModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&memberModels)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]*entity.FamilyMember, len(memberModels))
	for i, m := range memberModels {
		members[i] = m.ToEntity()
	}
	return members, nil
}

// FindByOwnerAndEmail retrieves a member by email, case-insensitively.
func (r *familyMemberRepository) FindByOwnerAndEmail(ctx context.Context, ownerID uuid.UUID, email string) (*entity.FamilyMember, error) {
	var memberModel model.FamilyMemberModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND LOWER(email) = ?", ownerID, strings.ToLower(email)).
		First(&memberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFamilyMemberNotFound
		}
		return nil, result.Error
	}
	return memberModel.ToEntity(), nil
}

// CountActiveByOwner counts members that have not been removed.
func (r *familyMemberRepository) CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FamilyMemberModel{}).
		Where("owner_id = ? AND status <> ?", ownerID, string(entity.MemberStatusRemoved)).
		Count(&count).Error
	return count, err
}

// bankConnectionRepository implements the adapter.BankConnectionRepository interface.
type bankConnectionRepository struct {
	db *gorm.DB
}

// NewBankConnectionRepository creates a new bank connection repository instance.
func NewBankConnectionRepository(db *gorm.DB) adapter.BankConnectionRepository {
	return &bankConnectionRepository{
		db: db,
	}
}

// Create creates a new bank connection.
func (r *bankConnectionRepository) Create(ctx context.Context, connection *entity.BankConnection) error {
	if connection.ID == uuid.Nil {
		connection.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.BankConnectionFromEntity(connection)).Error
}

// FindByUser retrieves the bank connections of a user.
func (r *bankConnectionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankConnection, error) {
	var connectionModels []model.BankConnectionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&connectionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	connections := make([]*entity.BankConnection, len(connectionModels))
	for i, m := range connectionModels {
		connections[i] = m.ToEntity()
	}
	return connections, nil
}

// CountByUser counts the bank connections of a user.
func (r *bankConnectionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BankConnectionModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
