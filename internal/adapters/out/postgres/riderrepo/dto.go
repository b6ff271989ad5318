// Package riderrepo persists rider aggregates.
package riderrepo

import (
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// RiderDTO represents the database structure for persisting rider aggregates.
// The assigned order set is small and only ever read as a whole, so it is
// stored inline as a text[] column rather than a join table.
type RiderDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;index"`
	Status         string         `gorm:"type:varchar(16);index"`
	AssignedOrders pq.StringArray `gorm:"type:text[]"`
	WentOffline    bool
	UpdatedAt      time.Time
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// fromDomain converts a rider aggregate to its database representation.
func fromDomain(aggregate *rider.Rider) RiderDTO {
	assigned := make(pq.StringArray, 0, len(aggregate.AssignedOrders()))
	for _, id := range aggregate.AssignedOrders() {
		assigned = append(assigned, id.String())
	}

	return RiderDTO{
		ID:             aggregate.ID().Bytes(),
		UserID:         aggregate.UserID().Bytes(),
		Status:         aggregate.Status().String(),
		AssignedOrders: assigned,
		WentOffline:    aggregate.WentOffline(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to a rider aggregate via RestoreRider.
func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	status, err := rider.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	assigned := make([]kernel.UUID, 0, len(dto.AssignedOrders))
	for _, raw := range dto.AssignedOrders {
		orderID, oErr := kernel.UUIDFromString(raw)
		if oErr != nil {
			return nil, oErr
		}
		assigned = append(assigned, orderID)
	}

	return rider.RestoreRider(id, userID, status, assigned, dto.WentOffline, dto.UpdatedAt)
}
