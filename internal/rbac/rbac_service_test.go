package rbac

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naywayne90/arti-key-web/internal/domain"
	"github.com/naywayne90/arti-key-web/internal/rbac/infra"
)

func newTestService(t *testing.T) Service {
	enforcer, err := infra.NewEnforcer(
		filepath.Join("infra", "model.conf"),
		filepath.Join("infra", "policy.csv"),
	)
	assert.NoError(t, err)
	return NewService(enforcer)
}

func TestEnforce_EmployeeBasePermissions(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(domain.EnforceRequest{Role: domain.RoleEmployee, Resource: "leave", Action: "create"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Role: domain.RoleEmployee, Resource: "workflow", Action: "transition"})
	assert.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Role: domain.RoleEmployee, Resource: "quota", Action: "adjust"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestEnforce_ApproverRolesInheritEmployee(t *testing.T) {
	svc := newTestService(t)

	for _, role := range []string{domain.RoleManager, domain.RoleDGPEC, domain.RoleDG} {
		allowed, err := svc.Enforce(domain.EnforceRequest{Role: role, Resource: "leave", Action: "read"})
		assert.NoError(t, err)
		assert.True(t, allowed, "role %s should inherit leave read", role)

		allowed, err = svc.Enforce(domain.EnforceRequest{Role: role, Resource: "workflow", Action: "transition"})
		assert.NoError(t, err)
		assert.True(t, allowed, "role %s should transition", role)
	}
}

func TestEnforce_DGPECExclusives(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(domain.EnforceRequest{Role: domain.RoleDGPEC, Resource: "quota", Action: "adjust"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Role: domain.RoleDGPEC, Resource: "holiday", Action: "manage"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	for _, role := range []string{domain.RoleManager, domain.RoleDG} {
		allowed, err = svc.Enforce(domain.EnforceRequest{Role: role, Resource: "quota", Action: "adjust"})
		assert.NoError(t, err)
		assert.False(t, allowed, "role %s must not adjust quotas", role)
	}
}

func TestEnforce_UnknownRole(t *testing.T) {
	svc := newTestService(t)

	allowed, err := svc.Enforce(domain.EnforceRequest{Role: "intern", Resource: "leave", Action: "read"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
