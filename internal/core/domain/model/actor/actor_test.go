package actor_test

import (
	"fmt"
	"testing"

	"orderhub/internal/core/domain/model/actor"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	t.Run("should round trip wire names", func(t *testing.T) {
		roles := []actor.Role{
			actor.RoleCustomer,
			actor.RoleRestaurant,
			actor.RoleRider,
			actor.RoleAdmin,
		}

		for _, role := range roles {
			parsed, err := actor.RoleFromString(role.String())

			require.NoError(t, err)
			assert.Equal(t, role, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"", "unknown", "manager", "Admin"} {
			t.Run(fmt.Sprintf("name %q", name), func(t *testing.T) {
				_, err := actor.RoleFromString(name)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})

	t.Run("should reject the unknown value", func(t *testing.T) {
		require.Error(t, actor.RoleUnknown.Validate())
		require.Error(t, actor.Role(99).Validate())
	})
}

func TestNewActor(t *testing.T) {
	t.Run("should create actors for plain roles", func(t *testing.T) {
		for _, role := range []actor.Role{actor.RoleCustomer, actor.RoleRider, actor.RoleAdmin} {
			t.Run(role.String(), func(t *testing.T) {
				id := kernel.NewUUID()

				a, err := actor.NewActor(id, role, nil)

				require.NoError(t, err)
				require.NoError(t, a.Validate())
				assert.True(t, a.ID().IsEqual(id))
				assert.Equal(t, role, a.Role())
				assert.Nil(t, a.OwnedRestaurantID())
			})
		}
	})

	t.Run("should create restaurant actor with owned restaurant", func(t *testing.T) {
		restaurantID := kernel.NewUUID()

		a, err := actor.NewActor(kernel.NewUUID(), actor.RoleRestaurant, &restaurantID)

		require.NoError(t, err)
		require.NotNil(t, a.OwnedRestaurantID())
		assert.True(t, a.OwnedRestaurantID().IsEqual(restaurantID))
	})

	t.Run("should copy the owned restaurant id", func(t *testing.T) {
		restaurantID := kernel.NewUUID()

		a, err := actor.NewActor(kernel.NewUUID(), actor.RoleRestaurant, &restaurantID)

		require.NoError(t, err)
		assert.NotSame(t, &restaurantID, a.OwnedRestaurantID())
	})

	t.Run("should require owned restaurant for restaurant role", func(t *testing.T) {
		_, err := actor.NewActor(kernel.NewUUID(), actor.RoleRestaurant, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should refuse owned restaurant on other roles", func(t *testing.T) {
		restaurantID := kernel.NewUUID()

		for _, role := range []actor.Role{actor.RoleCustomer, actor.RoleRider, actor.RoleAdmin} {
			_, err := actor.NewActor(kernel.NewUUID(), role, &restaurantID)

			require.Error(t, err, role.String())
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should fail with invalid id or role", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := actor.NewActor(invalidID, actor.RoleAdmin, nil)
		require.Error(t, err)

		_, err = actor.NewActor(kernel.NewUUID(), actor.RoleUnknown, nil)
		require.Error(t, err)
	})
}

func TestActor_Validate(t *testing.T) {
	t.Run("should fail for zero value actor", func(t *testing.T) {
		var a actor.Actor

		require.ErrorIs(t, a.Validate(), actor.ErrActorIsNotConstructed)
	})
}
