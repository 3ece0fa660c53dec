package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/oysy-network/oysy-wallet/internal/core/domain"
)

// Access is the kind of restriction applied to a route.
type Access int

const (
	AccessPublic Access = iota
	AccessLogin
	AccessAuthenticated
	AccessRole
	AccessNotFound
)

const catchAllPath = "*"

var (
	// ErrMalformedPath is returned when resolving a path that is not an
	// absolute URL path.
	ErrMalformedPath = errors.New("path must be absolute")

	// DefaultRoutes is the route table of the wallet.
	DefaultRoutes = []RouteDef{
		{Name: "home", Pattern: "/", Access: AccessPublic},
		{Name: "hello", Pattern: "/hello", Access: AccessPublic},
		{Name: "login", Pattern: "/login", Access: AccessLogin},
		{Name: "profile", Pattern: "/auth/profile", Access: AccessAuthenticated},
		{
			Name:    "user-authenticated",
			Pattern: "/auth/user/authenticated",
			Access:  AccessRole,
			Role:    domain.RoleUser,
		},
		{
			Name:    "authenticated",
			Pattern: "/auth/authenticated",
			Access:  AccessAuthenticated,
		},
		{
			Name:    "admin-authenticated",
			Pattern: "/auth/admin/authenticated",
			Access:  AccessAuthenticated,
		},
		{
			Name:    "admin-accounts",
			Pattern: "/auth/admin/accounts",
			Access:  AccessRole,
			Role:    domain.RoleAdmin,
		},
		{Name: "everyOtherPage", Pattern: catchAllPath, Access: AccessNotFound},
	}
)

// RouteDef is an entry of the route table.
type RouteDef struct {
	Name    string
	Pattern string
	Access  Access
	// Role is required for AccessRole routes only.
	Role domain.Role
}

// Route is a navigation endpoint, resolved against the route table.
// The zero value is the absence of a route, like the origin of the very
// first navigation.
type Route struct {
	RouteDef
	Path     string
	FullPath string
	Query    url.Values
}

func (r Route) IsZero() bool {
	return r.Path == ""
}

// Table resolves paths to routes.
type Table struct {
	byPath   map[string]RouteDef
	catchAll RouteDef
}

// NewTable validates the given definitions and returns a route Table.
// Paths must be unique and exactly one catch-all route must be defined.
func NewTable(defs []RouteDef) (*Table, error) {
	byPath := make(map[string]RouteDef, len(defs))
	var catchAll *RouteDef

	for i := range defs {
		def := defs[i]
		if def.Pattern == catchAllPath {
			if catchAll != nil {
				return nil, fmt.Errorf("duplicated catch-all route %s", def.Name)
			}
			catchAll = &def
			continue
		}
		if !strings.HasPrefix(def.Pattern, "/") {
			return nil, fmt.Errorf("route %s: %w", def.Name, ErrMalformedPath)
		}
		if _, ok := byPath[def.Pattern]; ok {
			return nil, fmt.Errorf("duplicated route path %s", def.Pattern)
		}
		if def.Access == AccessRole && !def.Role.IsValid() {
			return nil, fmt.Errorf("route %s: %w", def.Name, domain.ErrUnknownRole)
		}
		byPath[def.Pattern] = def
	}

	if catchAll == nil {
		return nil, fmt.Errorf("missing catch-all route")
	}
	return &Table{byPath, *catchAll}, nil
}

// Resolve returns the route matching the path of the given full path,
// falling back to the catch-all route.
func (t *Table) Resolve(fullPath string) (Route, error) {
	u, err := url.Parse(fullPath)
	if err != nil {
		return Route{}, err
	}
	if !strings.HasPrefix(u.Path, "/") {
		return Route{}, ErrMalformedPath
	}

	def, ok := t.byPath[u.Path]
	if !ok {
		def = t.catchAll
	}
	return Route{
		RouteDef: def,
		Path:     u.Path,
		FullPath: u.RequestURI(),
		Query:    u.Query(),
	}, nil
}
