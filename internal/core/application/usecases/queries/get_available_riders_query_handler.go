package queries

import (
	"context"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/rider"
	"orderhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAvailableRidersQueryHandler lists riders in available status.
type GetAvailableRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableRidersQueryHandler creates a handler over the given connection.
func NewGetAvailableRidersQueryHandler(db *gorm.DB) GetAvailableRidersQueryHandler {
	return GetAvailableRidersQueryHandler{db: db}
}

// Handle returns every available rider, sorted by id for stable output.
func (h GetAvailableRidersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableRidersQuery,
) ([]GetAvailableRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	riders := make([]GetAvailableRidersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			updated_at
		FROM riders
		WHERE status = ?
		ORDER BY id
	`, rider.Available.String()).Rows()
	if err != nil {
		return nil, errs.NewStorageUnavailableError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id        string
			userID    string
			updatedAt time.Time
		)

		if err = rows.Scan(&id, &userID, &updatedAt); err != nil {
			return nil, errs.NewStorageUnavailableError(err)
		}

		var resp GetAvailableRidersQueryResponse
		if resp.ID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}
		if resp.UserID, err = kernel.UUIDFromString(userID); err != nil {
			return nil, err
		}
		resp.UpdatedAt = updatedAt

		riders = append(riders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageUnavailableError(err)
	}

	return riders, nil
}
