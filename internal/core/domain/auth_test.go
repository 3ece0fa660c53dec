package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, err := domain.ParseRole("ROLE_ADMIN")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, role)

	_, err = domain.ParseRole("ROLE_ROOT")
	require.EqualError(t, err, domain.ErrUnknownRole.Error())
}

func TestAuthSessionHasRole(t *testing.T) {
	t.Parallel()

	session := domain.AuthSession{Role: domain.RoleAdmin}
	require.False(t, session.HasRole(domain.RoleAdmin))

	session.Authenticated = true
	require.True(t, session.HasRole(domain.RoleAdmin))
	require.False(t, session.HasRole(domain.RoleUser))
}
