package inventory

import (
	"context"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

// OrgAPI lists the account hierarchy from AWS Organizations. Implementations
// drain pagination internally and return complete collections.
type OrgAPI interface {
	RootID(ctx context.Context) (string, error)
	UnitsForParent(ctx context.Context, parentID string) ([]model.OrgUnit, error)
	AccountsForParent(ctx context.Context, parentID string) ([]model.Account, error)
	Accounts(ctx context.Context) ([]model.Account, error)
}

// IdentityStoreAPI lists users, groups and group memberships from an
// Identity Store.
type IdentityStoreAPI interface {
	Users(ctx context.Context, storeID string) ([]model.User, error)
	Groups(ctx context.Context, storeID string) ([]model.Group, error)
	GroupMemberIDs(ctx context.Context, storeID, groupID string) ([]string, error)
}

// SSOAdminAPI lists IAM Identity Center instances, permission sets and
// account assignments.
type SSOAdminAPI interface {
	Instances(ctx context.Context) ([]model.Instance, error)
	PermissionSets(ctx context.Context, instanceARN string) ([]model.PermissionSet, error)
	AccountAssignments(ctx context.Context, instanceARN, accountID, permissionSetARN string) ([]model.AssignmentRecord, error)
}

// STSAPI identifies the account executing the run.
type STSAPI interface {
	CallerAccountID(ctx context.Context) (string, error)
}
