// Package rbac is the pure access-control decision component. Every
// authorization decision is driven by one capability table, so a rule
// can be read and tested without touching transport or storage code.
package rbac

import (
	"errors"

	"github.com/taskdeck/taskdeck/internal/domain"
)

var (
	// ErrUnauthenticated means no principal was presented.
	ErrUnauthenticated = errors.New("rbac: not authenticated")

	// ErrNoOrganization means the principal has not joined an
	// organization and the operation requires one.
	ErrNoOrganization = errors.New("rbac: principal has no organization")

	// ErrForbidden means the principal's role does not permit the
	// operation.
	ErrForbidden = errors.New("rbac: operation not permitted for role")
)

// Principal is the authenticated identity attached to a request: the
// user id plus the resolved role and organization.
type Principal struct {
	UserID string
	Role   domain.Role
	OrgID  string
}

// Operation enumerates everything a principal can ask the system to do.
type Operation int

const (
	OpCreateOrganization Operation = iota
	OpIssueInvite
	OpCreateTask
	OpListTasks
	OpUpdateTaskStatus
	OpDeleteTask
	OpListUsers
	OpChangeUserRole
	OpDeleteUser
)

// capabilities maps each operation to the set of roles allowed to
// perform it. OpCreateOrganization and OpUpdateTaskStatus carry extra
// constraints handled in Authorize and the fine-grained helpers below.
var capabilities = map[Operation][]domain.Role{
	OpCreateOrganization: {domain.RoleNone},
	OpIssueInvite:        {domain.RoleAdmin, domain.RoleManager},
	OpCreateTask:         {domain.RoleAdmin, domain.RoleManager},
	OpListTasks:          {domain.RoleAdmin, domain.RoleManager, domain.RoleMember},
	OpUpdateTaskStatus:   {domain.RoleAdmin, domain.RoleManager, domain.RoleMember},
	OpDeleteTask:         {domain.RoleAdmin},
	OpListUsers:          {domain.RoleAdmin, domain.RoleManager},
	OpChangeUserRole:     {domain.RoleAdmin},
	OpDeleteUser:         {domain.RoleAdmin},
}

// Authorize decides whether the principal may perform op. Checks run in
// order: authentication, organization membership, role capability. The
// first failing check wins and no side effects occur here.
func Authorize(p Principal, op Operation) error {
	if p.UserID == "" {
		return ErrUnauthenticated
	}

	allowed, ok := capabilities[op]
	if !ok {
		return ErrForbidden
	}

	if op == OpCreateOrganization {
		// The one operation reserved for users without an organization;
		// the founder becomes admin of the new organization.
		if p.OrgID != "" {
			return ErrForbidden
		}
		return nil
	}

	if p.OrgID == "" {
		return ErrNoOrganization
	}

	for _, role := range allowed {
		if p.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// CanAssign reports whether a task creator with callerRole may assign
// work to a user with assigneeRole. Admins assign anyone in the
// organization; managers only members.
func CanAssign(callerRole, assigneeRole domain.Role) bool {
	switch callerRole {
	case domain.RoleAdmin:
		return assigneeRole.Valid()
	case domain.RoleManager:
		return assigneeRole == domain.RoleMember
	}
	return false
}

// CanUpdateTaskStatus reports whether p may update the status of task.
// Admins and managers update any task in their organization; members
// only tasks they are assigned to. Tenant scoping is enforced before
// this check, so the task is already known to be in p's organization.
func CanUpdateTaskStatus(p Principal, task domain.Task) bool {
	switch p.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return true
	case domain.RoleMember:
		return task.IsAssignee(p.UserID)
	}
	return false
}

// AssignableRoleTarget reports whether target may be assigned through
// the role-change operation. Admin is deliberately excluded: the only
// path that grants admin is founding an organization, so role changes
// cannot escalate a member to admin.
func AssignableRoleTarget(target domain.Role) bool {
	return target == domain.RoleManager || target == domain.RoleMember
}
