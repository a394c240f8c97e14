package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/core/internal/domain/entity"
)

// FamilyMemberModel represents the family_members table in the database.
type FamilyMemberModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Name      string    `gorm:"type:varchar(100)"`
	Role      string    `gorm:"type:varchar(10);not null"`
	Status    string    `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the FamilyMemberModel.
func (FamilyMemberModel) TableName() string {
	return "family_members"
}

// ToEntity converts a FamilyMemberModel to a domain FamilyMember entity.
func (m *FamilyMemberModel) ToEntity() *entity.FamilyMember {
	return &entity.FamilyMember{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      entity.MemberRole(m.Role),
		Status:    entity.MemberStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FamilyMemberFromEntity creates a FamilyMemberModel from a domain FamilyMember entity.
func FamilyMemberFromEntity(member *entity.FamilyMember) *FamilyMemberModel {
	return &FamilyMemberModel{
		ID:        member.ID,
		OwnerID:   member.OwnerID,
		Email:     member.Email,
		Name:      member.Name,
		Role:      string(member.Role),
		Status:    string(member.Status),
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
}

// BankConnectionModel represents the bank_connections table in the database.
type BankConnectionModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID          string    `gorm:"type:varchar(100);not null;index"`
	InstitutionID   string    `gorm:"type:varchar(100);not null"`
	InstitutionName string    `gorm:"type:varchar(255)"`
	Status          string    `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName returns the table name for the BankConnectionModel.
func (BankConnectionModel) TableName() string {
	return "bank_connections"
}

// ToEntity converts a BankConnectionModel to a domain BankConnection entity.
func (m *BankConnectionModel) ToEntity() *entity.BankConnection {
	return &entity.BankConnection{
		ID:              m.ID,
		UserID:          m.UserID,
		ItemID:          m.ItemID,
		InstitutionID:   m.InstitutionID,
		InstitutionName: m.InstitutionName,
		Status:          entity.BankConnectionStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// BankConnectionFromEntity creates a BankConnectionModel from a domain BankConnection entity.
func BankConnectionFromEntity(connection *entity.BankConnection) *BankConnectionModel {
	return &BankConnectionModel{
		ID:              connection.ID,
		UserID:          connection.UserID,
		ItemID:          connection.ItemID,
		InstitutionID:   connection.InstitutionID,
		InstitutionName: connection.InstitutionName,
		Status:          string(connection.Status),
		CreatedAt:       connection.CreatedAt,
		UpdatedAt:       connection.UpdatedAt,
	}
}
