package inventory

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

// GroupMemberships lists every group's memberships and resolves member IDs
// against the user index. Members missing from the index (removed after
// being added to the group) resolve to the placeholder form.
func GroupMemberships(ctx context.Context, api IdentityStoreAPI, storeID string, groups []model.Group, users Index) ([]model.Membership, error) {
	var memberships []model.Membership
	for _, g := range groups {
		ids, err := api.GroupMemberIDs(ctx, storeID, g.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			memberships = append(memberships, model.Membership{
				GroupName: g.DisplayName,
				UserName:  users.Resolve(id),
			})
		}
	}
	return memberships, nil
}

// AccountAssignments queries the full cross-product of accounts and
// permission sets, one pagination sequence per pair. Every pair is queried
// even when it holds no assignments; output order is determined by the
// renderer's sort, not call order.
func AccountAssignments(ctx context.Context, api SSOAdminAPI, instanceARN string, accounts []model.Account, permissionSets []model.PermissionSet, users, groups Index) ([]model.Assignment, error) {
	var assignments []model.Assignment
	for _, acct := range accounts {
		for _, ps := range permissionSets {
			log.Debug().Str("account", acct.Name).Str("permission_set", ps.Name).Msg("fetching assignments")
			records, err := api.AccountAssignments(ctx, instanceARN, acct.ID, ps.ARN)
			if err != nil {
				return nil, err
			}
			for _, r := range records {
				assignments = append(assignments, model.Assignment{
					AccountName:       acct.Name,
					PrincipalType:     r.PrincipalType,
					PrincipalName:     ResolvePrincipal(users, groups, r.PrincipalType, r.PrincipalID),
					PermissionSetName: ps.Name,
				})
			}
		}
	}
	return assignments, nil
}
