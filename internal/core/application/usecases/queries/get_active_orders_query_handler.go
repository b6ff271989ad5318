package queries

import (
	"context"
	"database/sql"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads in-flight orders straight from the
// database, bypassing the aggregate layer. Read models do not need the
// state machine; they only render what is stored.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler over the given connection.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns every order outside the terminal statuses, oldest first.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			rider_id,
			status,
			total_amount,
			created_at,
			updated_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at, id
	`, order.Delivered.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, errs.NewStorageUnavailableError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          string
			customerID  string
			riderID     sql.NullString
			status      string
			totalAmount int64
			createdAt   time.Time
			updatedAt   time.Time
		)

		if err = rows.Scan(&id, &customerID, &riderID, &status, &totalAmount, &createdAt, &updatedAt); err != nil {
			return nil, errs.NewStorageUnavailableError(err)
		}

		var resp GetActiveOrdersQueryResponse
		if resp.ID, err = kernel.UUIDFromString(id); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromString(customerID); err != nil {
			return nil, err
		}
		if riderID.Valid {
			parsed, idErr := kernel.UUIDFromString(riderID.String)
			if idErr != nil {
				return nil, idErr
			}
			resp.RiderID = &parsed
		}
		if resp.Status, err = order.StatusFromString(status); err != nil {
			return nil, err
		}
		resp.TotalAmount = totalAmount
		resp.CreatedAt = createdAt
		resp.UpdatedAt = updatedAt

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageUnavailableError(err)
	}

	return orders, nil
}
