// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole represents the role of a family member on a shared dataset.
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
	MemberRoleViewer MemberRole = "viewer"
)

// IsValid reports whether r is a known member role.
func (r MemberRole) IsValid() bool {
	return r == MemberRoleAdmin || r == MemberRoleMember || r == MemberRoleViewer
}

// MemberStatus represents the lifecycle state of a family member.
type MemberStatus string

const (
	MemberStatusInvited MemberStatus = "invited"
	MemberStatusActive  MemberStatus = "active"
	MemberStatusRemoved MemberStatus = "removed"
)

// FamilyMember links another person to the owner's dataset.
type FamilyMember struct {
	ID        uuid.UUID    `json:"id"`
	OwnerID   uuid.UUID    `json:"ownerId"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Role      MemberRole   `json:"role"`
	Status    MemberStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewFamilyMember creates a new invited FamilyMember entity.
func NewFamilyMember(ownerID uuid.UUID, email, name string, role MemberRole) *FamilyMember {
	now := time.Now().UTC()

	return &FamilyMember{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Email:     email,
		Name:      name,
		Role:      role,
		Status:    MemberStatusInvited,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
