package services

import (
	"fmt"
	"strings"

	"github.com/fdcsoft/fdc_core_app/internal/apperrors"
	"github.com/fdcsoft/fdc_core_app/internal/core/domain"
)

const minUnlockCommentLen = 10

// PermissionGate centralizes every role and lifecycle rule for mutating a
// transaction. All mutating service paths call it before touching storage, so
// the rule set lives in one place.
type PermissionGate struct{}

// NewPermissionGate creates a new PermissionGate.
func NewPermissionGate() *PermissionGate {
	return &PermissionGate{}
}

// canWriteBookkeeperFields reports whether the role may write bookkeeper
// provenance fields at all. Clients submit through the MyFDC sync adapter and
// never write here; system is an attribution role, not an interactive one.
func canWriteBookkeeperFields(role domain.Role) bool {
	switch role {
	case domain.RoleStaff, domain.RoleBookkeeper, domain.RoleAdmin:
		return true
	default:
		return false
	}
}

// CheckEdit decides whether the role may write the requested fields on the
// transaction. Rules are evaluated in order:
//  1. tax_agent is a read-only consumer and is denied all writes.
//  2. Only staff, bookkeeper and admin hold bookkeeper-tab write access;
//     client, system and unknown roles are denied outright.
//  3. On a LOCKED transaction, non-admins may only touch notes_bookkeeper.
//  4. A bookkeeper may not set status LOCKED directly; locking happens only
//     through the workpaper subsystem.
//
// Denials always name the disallowed fields so callers can report them.
func (g *PermissionGate) CheckEdit(txn *domain.Transaction, role domain.Role, patch domain.TransactionPatch) error {
	fields := patch.Fields()

	if role == domain.RoleTaxAgent {
		return fmt.Errorf("%w: role tax_agent has read-only access, denied fields: %s",
			apperrors.ErrForbidden, strings.Join(fields, ", "))
	}

	if !canWriteBookkeeperFields(role) {
		return fmt.Errorf("%w: role %s may not edit transactions, denied fields: %s",
			apperrors.ErrForbidden, role, strings.Join(fields, ", "))
	}

	if txn.StatusBookkeeper == domain.StatusLocked && role != domain.RoleAdmin {
		var denied []string
		for _, f := range fields {
			if f != domain.FieldNotesBookkeeper {
				denied = append(denied, f)
			}
		}
		if len(denied) > 0 {
			return fmt.Errorf("%w: transaction is locked, denied fields: %s",
				apperrors.ErrLockedField, strings.Join(denied, ", "))
		}
	}

	if patch.StatusBookkeeper != nil && *patch.StatusBookkeeper == domain.StatusLocked && role == domain.RoleBookkeeper {
		return fmt.Errorf("%w: status LOCKED can only be set by the workpaper locking operation, denied fields: %s",
			apperrors.ErrForbidden, domain.FieldStatusBookkeeper)
	}

	return nil
}

// CheckBulkEdit applies the role rules that hold independently of any single
// row: tax_agent never writes, and a bookkeeper cannot push rows to LOCKED.
// Row-level lock exclusion happens in the repository, which drops LOCKED rows
// from the match set for non-admins.
func (g *PermissionGate) CheckBulkEdit(role domain.Role, patch domain.TransactionPatch) error {
	if role == domain.RoleTaxAgent {
		return fmt.Errorf("%w: role tax_agent has read-only access, denied fields: %s",
			apperrors.ErrForbidden, strings.Join(patch.Fields(), ", "))
	}
	if !canWriteBookkeeperFields(role) {
		return fmt.Errorf("%w: role %s may not edit transactions, denied fields: %s",
			apperrors.ErrForbidden, role, strings.Join(patch.Fields(), ", "))
	}
	if patch.StatusBookkeeper != nil && *patch.StatusBookkeeper == domain.StatusLocked && role == domain.RoleBookkeeper {
		return fmt.Errorf("%w: status LOCKED can only be set by the workpaper locking operation, denied fields: %s",
			apperrors.ErrForbidden, domain.FieldStatusBookkeeper)
	}
	return nil
}

// CheckLock decides whether the role may freeze transactions into a
// workpaper. Only tax_agent and admin may lock; bookkeepers prepare rows up to
// READY_FOR_WORKPAPER but never freeze them.
func (g *PermissionGate) CheckLock(role domain.Role) error {
	if role != domain.RoleTaxAgent && role != domain.RoleAdmin {
		return fmt.Errorf("%w: only tax_agent and admin may lock transactions for workpapers, role %s denied",
			apperrors.ErrForbidden, role)
	}
	return nil
}

// CheckUnlock decides whether the role may release a locked transaction.
// Only admins may unlock, and the comment must carry at least 10 characters
// after trimming so the audit trail always explains the release.
func (g *PermissionGate) CheckUnlock(role domain.Role, comment string) error {
	if role != domain.RoleAdmin {
		return fmt.Errorf("%w: only admin may unlock a locked transaction", apperrors.ErrForbidden)
	}
	if len(strings.TrimSpace(comment)) < minUnlockCommentLen {
		return fmt.Errorf("%w: unlock comment must be at least %d characters", apperrors.ErrLockingRule, minUnlockCommentLen)
	}
	return nil
}
