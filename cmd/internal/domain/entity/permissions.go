package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode.
	// Admins are immune to all restrictions and cannot be modified via API.
	PermissionAdministrator Permission = 1 << iota

	// PermissionManageCatalog allows creating/editing partners, brands,
	// stores and prices.
	PermissionManageCatalog

	// PermissionImportStores allows running spreadsheet imports.
	PermissionImportStores

	// PermissionMergeStores allows merging duplicate store records.
	// This is separate from PermissionManageCatalog because merges
	// delete rows and cannot be undone.
	PermissionMergeStores

	// PermissionManageVouchers allows uploading and editing vouchers/reports.
	PermissionManageVouchers

	// PermissionManageUsers allows modifying mutable fields of other users.
	// It does NOT grant the ability to change permissions.
	PermissionManageUsers

	// PermissionManagePerms allows granting/revoking permissions for others.
	// Administrators cannot be modified.
	PermissionManagePerms

	// PermissionPerformLookup allows calling endpoints outside the general
	// platform scope, like CNPJ registry lookups.
	PermissionPerformLookup
)

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasAny returns true if the user has ANY of the target permissions
func (p Permission) HasAny(target Permission) bool {
	return (p & target) > 0
}

// Add appends a permission to the bitmask
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove clears a permission from the bitmask
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}
