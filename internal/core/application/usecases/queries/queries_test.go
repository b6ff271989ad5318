package queries_test

import (
	"testing"

	"orderhub/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrdersQuery(t *testing.T) {
	query := queries.NewGetActiveOrdersQuery()

	require.NoError(t, query.Validate())
}

func TestGetActiveOrdersQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetActiveOrdersQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}

func TestNewGetAvailableRidersQuery(t *testing.T) {
	query := queries.NewGetAvailableRidersQuery()

	require.NoError(t, query.Validate())
}

func TestGetAvailableRidersQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetAvailableRidersQuery

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetAvailableRidersQueryIsNotConstructed)
}
