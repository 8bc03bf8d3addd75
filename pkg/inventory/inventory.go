package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

// ErrNoInstance is returned when the organization has no IAM Identity Center
// instance to inventory.
var ErrNoInstance = errors.New("no IAM Identity Center instance found")

// rootUnitName is the display name used for the organization root, which has
// no name of its own in the hierarchy listing.
const rootUnitName = "root"

// Clients bundles the remote APIs a full inventory run needs.
type Clients struct {
	Org   OrgAPI
	Store IdentityStoreAPI
	SSO   SSOAdminAPI
	STS   STSAPI
}

// Snapshot is the complete inventory of one run. All collections are
// immutable once built; ordering is applied by the renderers.
type Snapshot struct {
	RetrievedAt     time.Time
	ExecAccountID   string
	ExecAccountName string
	Instance        model.Instance

	Accounts       []model.Account
	Users          []model.User
	Groups         []model.Group
	PermissionSets []model.PermissionSet
	Memberships    []model.Membership
	Assignments    []model.Assignment
}

// AccountRow is an account joined with the OU it sits under.
type AccountRow struct {
	model.Account
	OUPath string
	OUID   string
}

// OUPathsFromRoot resolves the organization root and expands the OU path map
// for the whole tree under it.
func OUPathsFromRoot(ctx context.Context, api OrgAPI) (map[string]string, error) {
	rootID, err := api.RootID(ctx)
	if err != nil {
		return nil, err
	}
	return BuildOUPaths(ctx, api, rootID, rootUnitName)
}

// AccountsByOU walks the OU tree and lists the accounts directly under each
// unit, tagging every account with its unit's path.
func AccountsByOU(ctx context.Context, api OrgAPI) ([]AccountRow, error) {
	paths, err := OUPathsFromRoot(ctx, api)
	if err != nil {
		return nil, err
	}
	log.Info().Int("units", len(paths)).Msg("built OU paths")

	var rows []AccountRow
	for ouID, ouPath := range paths {
		log.Info().Str("path", ouPath).Msg("searching accounts")
		accounts, err := api.AccountsForParent(ctx, ouID)
		if err != nil {
			return nil, err
		}
		for _, a := range accounts {
			rows = append(rows, AccountRow{Account: a, OUPath: ouPath, OUID: ouID})
		}
	}
	return rows, nil
}

// Build runs a full Identity Center inventory: accounts, users, groups,
// permission sets, group memberships and account assignments, plus the OU
// path map. Any remote failure aborts the whole run.
func Build(ctx context.Context, c Clients) (*Snapshot, error) {
	snap := &Snapshot{RetrievedAt: time.Now()}

	log.Info().Msg("fetching AWS accounts")
	accounts, err := c.Org.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	accountIdx := NewIndex(accounts,
		func(a model.Account) string { return a.ID },
		func(a model.Account) string { return a.Name })
	log.Info().Int("accounts", len(accounts)).Msg("fetched accounts")

	execID, err := c.STS.CallerAccountID(ctx)
	if err != nil {
		return nil, err
	}
	execName, ok := accountIdx[execID]
	if !ok {
		execName = "Unknown"
	}

	instances, err := c.SSO.Instances(ctx)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, ErrNoInstance
	}
	instance := instances[0]

	log.Info().Msg("fetching users")
	users, err := c.Store.Users(ctx, instance.IdentityStoreID)
	if err != nil {
		return nil, err
	}
	userIdx := NewIndex(users,
		func(u model.User) string { return u.ID },
		func(u model.User) string { return u.DisplayName })
	log.Info().Int("users", len(users)).Msg("fetched users")

	log.Info().Msg("fetching groups")
	groups, err := c.Store.Groups(ctx, instance.IdentityStoreID)
	if err != nil {
		return nil, err
	}
	groupIdx := NewIndex(groups,
		func(g model.Group) string { return g.ID },
		func(g model.Group) string { return g.DisplayName })
	log.Info().Int("groups", len(groups)).Msg("fetched groups")

	log.Info().Msg("fetching permission sets")
	permissionSets, err := c.SSO.PermissionSets(ctx, instance.ARN)
	if err != nil {
		return nil, err
	}
	log.Info().Int("permission_sets", len(permissionSets)).Msg("fetched permission sets")

	log.Info().Msg("fetching group memberships")
	memberships, err := GroupMemberships(ctx, c.Store, instance.IdentityStoreID, groups, userIdx)
	if err != nil {
		return nil, err
	}
	log.Info().Int("memberships", len(memberships)).Msg("fetched group memberships")

	log.Info().Msg("fetching account assignments")
	assignments, err := AccountAssignments(ctx, c.SSO, instance.ARN, accounts, permissionSets, userIdx, groupIdx)
	if err != nil {
		return nil, err
	}
	log.Info().Int("assignments", len(assignments)).Msg("fetched account assignments")

	snap.ExecAccountID = execID
	snap.ExecAccountName = execName
	snap.Instance = instance
	snap.Accounts = accounts
	snap.Users = users
	snap.Groups = groups
	snap.PermissionSets = permissionSets
	snap.Memberships = memberships
	snap.Assignments = assignments
	return snap, nil
}
