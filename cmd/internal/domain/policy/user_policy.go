package policy

import (
	"aguagestor/cmd/internal/domain/entity"
	"aguagestor/cmd/internal/utils/apierror"
)

const (
	admin    = entity.PermissionAdministrator
	mngPerms = entity.PermissionManagePerms
	mngUsers = entity.PermissionManageUsers
)

// UserPolicy encapsulates all business rules for user manipulation.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type UserPolicy struct{}

func NewUserPolicy() *UserPolicy {
	return &UserPolicy{}
}

// CanUpdateProfile checks if 'actor' can update mutable fields of 'target'
func (p *UserPolicy) CanUpdateProfile(actor, target *entity.User) apierror.ErrorResponse {
	if actor.ID == target.ID {
		return nil
	}

	if target.Permissions.Has(admin) {
		return forbiddenError("administrators cannot be modified")
	}

	if !actor.Permissions.HasEffective(mngUsers) {
		return permError()
	}
	return nil
}

// CanUpdatePermissions checks if 'actor' can change 'target' permissions to 'newPerms'
func (p *UserPolicy) CanUpdatePermissions(actor, target *entity.User, newPerms entity.Permission) apierror.ErrorResponse {
	if target.Permissions.Has(admin) {
		return forbiddenError("administrators cannot be modified")
	}

	if !actor.Permissions.HasEffective(mngPerms) {
		return permError()
	}

	if newPerms.Has(admin) && !actor.Permissions.Has(admin) {
		return forbiddenError("only administrators can grant administrator")
	}
	return nil
}

// CanDelete checks if 'actor' can soft-delete 'target'
func (p *UserPolicy) CanDelete(actor, target *entity.User) apierror.ErrorResponse {
	if target.Permissions.Has(admin) {
		return forbiddenError("administrators cannot be deleted")
	}

	if actor.ID == target.ID {
		return forbiddenError("you cannot delete your own account")
	}

	if !actor.Permissions.HasEffective(mngUsers) {
		return permError()
	}
	return nil
}

func forbiddenError(reason string) apierror.ErrorResponse {
	return apierror.NewForbiddenError(reason)
}

func permError() apierror.ErrorResponse {
	return apierror.UserMissingPermsError
}
