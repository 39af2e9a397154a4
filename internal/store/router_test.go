package store

import (
	"testing"

	"clinicore/internal/config"
	"clinicore/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRoleRouting(t *testing.T) {
	r := NewRouter(nil, nil, nil, nil, nil, &config.Config{})

	cases := []struct {
		role string
		want *Set
	}{
		{model.RoleAdmin, r.Production()},
		{model.RoleStaff, r.Production()},
		{model.RoleVisitor, r.Demo()},
		{model.RoleVisitorStaff, r.Demo()},
		// Unknown roles that survive token verification default to production.
		{"auditor", r.Production()},
		{"", r.Production()},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			assert.Same(t, tc.want, r.ForRole(tc.role))
		})
	}
}

func TestSetsAreIsolated(t *testing.T) {
	r := NewRouter(nil, nil, nil, nil, nil, &config.Config{})

	require.NotSame(t, r.Production(), r.Demo())
	assert.Equal(t, Production, r.Production().Name)
	assert.Equal(t, Demo, r.Demo().Name)
}
