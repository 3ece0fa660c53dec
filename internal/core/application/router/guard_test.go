package router_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oysy-network/oysy-wallet/internal/core/application/router"
	"github.com/oysy-network/oysy-wallet/internal/core/domain"
	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

var (
	anonymous = domain.AuthSession{}
	user      = domain.AuthSession{Authenticated: true, Role: domain.RoleUser}
	admin     = domain.AuthSession{Authenticated: true, Role: domain.RoleAdmin}
)

func TestDecide(t *testing.T) {
	table, err := router.NewTable(router.DefaultRoutes)
	require.NoError(t, err)

	tests := []struct {
		name             string
		from             string
		to               string
		session          domain.AuthSession
		expectedKind     router.DecisionKind
		expectedLocation string
		expectedNotice   string
		expectedStop     bool
	}{
		{"home", "", "/", anonymous, router.Allow, "", "", false},
		{"hello", "/", "/hello", anonymous, router.Allow, "", "", false},
		{
			"not found", "/hello", "/missing/page", user,
			router.Redirect, "/", "toasts.pageNotFound", true,
		},
		{"login as guest", "/", "/login", anonymous, router.Allow, "", "", false},
		{
			"login when authenticated", "/hello", "/login", user,
			router.Redirect, "/hello", "", true,
		},
		{
			"login when authenticated without origin", "", "/login", user,
			router.Allow, "", "", false,
		},
		{
			"profile as guest", "/", "/auth/profile?tab=keys", anonymous,
			router.Redirect, "/login?redirect=%2Fauth%2Fprofile%3Ftab%3Dkeys",
			"toasts.unauthorized", false,
		},
		{"profile as user", "/", "/auth/profile", user, router.Allow, "", "", false},
		{
			"admin area only needs auth", "/", "/auth/admin/authenticated", user,
			router.Allow, "", "", false,
		},
		{
			"role route as guest", "/", "/auth/admin/accounts", anonymous,
			router.Redirect, "/login?redirect=%2Fauth%2Fadmin%2Faccounts",
			"toasts.unauthorized", false,
		},
		{
			"role route with wrong role", "/", "/auth/admin/accounts", user,
			router.Redirect, "/", "toasts.forbidden", true,
		},
		{
			"user route with admin role", "/", "/auth/user/authenticated", admin,
			router.Redirect, "/", "toasts.forbidden", true,
		},
		{
			"role route with right role", "/", "/auth/admin/accounts", admin,
			router.Allow, "", "", false,
		},
	}

	for _, tt := range tests {
		var from router.Route
		if tt.from != "" {
			from, err = table.Resolve(tt.from)
			require.NoError(t, err, tt.name)
		}
		to, err := table.Resolve(tt.to)
		require.NoError(t, err, tt.name)

		decision := router.Decide(from, to, tt.session)
		require.Equal(t, tt.expectedKind, decision.Kind, tt.name)
		require.Equal(t, tt.expectedLocation, decision.Location(), tt.name)
		require.Equal(t, tt.expectedStop, decision.StopProgress, tt.name)
		if tt.expectedNotice == "" {
			require.Nil(t, decision.Notice, tt.name)
		} else {
			require.NotNil(t, decision.Notice, tt.name)
			require.Equal(t, tt.expectedNotice, decision.Notice.Key, tt.name)
		}
	}
}

func TestDecideRedirectQuery(t *testing.T) {
	table, err := router.NewTable(router.DefaultRoutes)
	require.NoError(t, err)

	to, err := table.Resolve("/auth/admin/accounts")
	require.NoError(t, err)

	decision := router.Decide(router.Route{}, to, anonymous)
	require.Equal(t, "/login", decision.Path)
	require.Equal(t, "/auth/admin/accounts", decision.Query.Get(router.RedirectQueryKey))
	require.Equal(t, ports.SeverityWarning, decision.Notice.Severity)
}

func TestDecideMalformedTarget(t *testing.T) {
	decision := router.Decide(router.Route{}, router.Route{Path: "auth"}, admin)
	require.Equal(t, router.Deny, decision.Kind)
	require.Empty(t, decision.Location())
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name string
		defs []router.RouteDef
	}{
		{
			"missing catch-all",
			[]router.RouteDef{{Name: "home", Pattern: "/"}},
		},
		{
			"duplicated path",
			[]router.RouteDef{
				{Name: "a", Pattern: "/a"},
				{Name: "b", Pattern: "/a"},
				{Name: "all", Pattern: "*", Access: router.AccessNotFound},
			},
		},
		{
			"relative path",
			[]router.RouteDef{
				{Name: "a", Pattern: "a"},
				{Name: "all", Pattern: "*", Access: router.AccessNotFound},
			},
		},
		{
			"unknown role",
			[]router.RouteDef{
				{Name: "a", Pattern: "/a", Access: router.AccessRole, Role: "ROOT"},
				{Name: "all", Pattern: "*", Access: router.AccessNotFound},
			},
		},
	}

	for _, tt := range tests {
		table, err := router.NewTable(tt.defs)
		require.Error(t, err, tt.name)
		require.Nil(t, table, tt.name)
	}
}

func TestResolve(t *testing.T) {
	table, err := router.NewTable(router.DefaultRoutes)
	require.NoError(t, err)

	route, err := table.Resolve("/auth/profile?tab=keys")
	require.NoError(t, err)
	require.Equal(t, "profile", route.Name)
	require.Equal(t, "/auth/profile", route.Path)
	require.Equal(t, "/auth/profile?tab=keys", route.FullPath)
	require.Equal(t, "keys", route.Query.Get("tab"))

	route, err = table.Resolve("/nowhere")
	require.NoError(t, err)
	require.Equal(t, "everyOtherPage", route.Name)
	require.Equal(t, "/nowhere", route.Path)

	_, err = table.Resolve("nowhere")
	require.EqualError(t, err, router.ErrMalformedPath.Error())
}
