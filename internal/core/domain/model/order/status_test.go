package order_test

import (
	"fmt"
	"testing"

	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate defined statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Accepted,
			order.Preparing,
			order.Assigned,
			order.OutForDelivery,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(8), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				require.Error(t, status.Validate())
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire names", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Pending, "pending"},
			{order.Accepted, "accepted"},
			{order.Preparing, "preparing"},
			{order.Assigned, "assigned"},
			{order.OutForDelivery, "out-for-delivery"},
			{order.Delivered, "delivered"},
			{order.Cancelled, "cancelled"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round trip every wire name", func(t *testing.T) {
		statuses := []order.Status{
			order.Pending,
			order.Accepted,
			order.Preparing,
			order.Assigned,
			order.OutForDelivery,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range statuses {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "shipped", "PENDING"} {
			t.Run(fmt.Sprintf("name %q", name), func(t *testing.T) {
				_, err := order.StatusFromString(name)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark delivered and cancelled terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
	})

	t.Run("should mark every other status non-terminal", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.Accepted, order.Preparing, order.Assigned, order.OutForDelivery,
		} {
			assert.False(t, status.IsTerminal(), status.String())
		}
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should allow every edge of the table", func(t *testing.T) {
		edges := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Accepted},
			{order.Pending, order.Cancelled},
			{order.Accepted, order.Preparing},
			{order.Accepted, order.Assigned},
			{order.Accepted, order.Cancelled},
			{order.Preparing, order.Assigned},
			{order.Preparing, order.Cancelled},
			{order.Assigned, order.OutForDelivery},
			{order.Assigned, order.Cancelled},
			{order.OutForDelivery, order.Delivered},
			{order.OutForDelivery, order.Cancelled},
		}

		for _, edge := range edges {
			t.Run(fmt.Sprintf("%s to %s", edge.from, edge.to), func(t *testing.T) {
				next, err := edge.from.TransitionTo(edge.to)

				require.NoError(t, err)
				assert.Equal(t, edge.to, next)
			})
		}
	})

	t.Run("should reject skipping and reversing", func(t *testing.T) {
		invalidEdges := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Preparing},
			{order.Pending, order.Delivered},
			{order.Accepted, order.OutForDelivery},
			{order.Accepted, order.Pending},
			{order.Assigned, order.Delivered},
			{order.OutForDelivery, order.Assigned},
		}

		for _, edge := range invalidEdges {
			t.Run(fmt.Sprintf("%s to %s", edge.from, edge.to), func(t *testing.T) {
				_, err := edge.from.TransitionTo(edge.to)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			})
		}
	})

	t.Run("should reject every edge out of a terminal status", func(t *testing.T) {
		targets := []order.Status{
			order.Pending, order.Accepted, order.Preparing,
			order.Assigned, order.OutForDelivery, order.Delivered, order.Cancelled,
		}

		for _, from := range []order.Status{order.Delivered, order.Cancelled} {
			for _, to := range targets {
				_, err := from.TransitionTo(to)
				require.Error(t, err, "%s to %s must fail", from, to)
			}
		}
	})

	t.Run("should reject an invalid target before checking edges", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should not mutate the receiver", func(t *testing.T) {
		status := order.Pending

		next, err := status.TransitionTo(order.Accepted)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, status)
		assert.Equal(t, order.Accepted, next)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should agree with TransitionTo", func(t *testing.T) {
		all := []order.Status{
			order.Pending, order.Accepted, order.Preparing, order.Assigned,
			order.OutForDelivery, order.Delivered, order.Cancelled,
		}

		for _, from := range all {
			for _, to := range all {
				_, err := from.TransitionTo(to)
				assert.Equal(t, err == nil, from.CanTransitionTo(to), "%s to %s", from, to)
			}
		}
	})
}
