package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// FamilyMemberRepository defines the interface for family member persistence operations.
type FamilyMemberRepository interface {
	Create(ctx context.Context, member *entity.FamilyMember) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.FamilyMember, error)
	FindByOwnerAndEmail(ctx context.Context, ownerID uuid.UUID, email string) (*entity.FamilyMember, error)

	// CountActiveByOwner counts members that have not been removed.
	CountActiveByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// BankConnectionRepository defines the interface for bank connection persistence operations.
type BankConnectionRepository interface {
	Create(ctx context.Context, connection *entity.BankConnection) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BankConnection, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
