package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

func TestGroupMemberships(t *testing.T) {
	users := Index{"u-1": "Alice", "u-2": "Bob"}

	t.Run("resolves members through the user index", func(t *testing.T) {
		store := &fakeStore{
			members: map[string][]string{
				"g-1": {"u-1", "u-2"},
				"g-2": {"u-1"},
			},
		}
		groups := []model.Group{
			{ID: "g-1", DisplayName: "Admins"},
			{ID: "g-2", DisplayName: "Readers"},
		}
		got, err := GroupMemberships(context.Background(), store, "d-1", groups, users)
		require.NoError(t, err)
		assert.Equal(t, []model.Membership{
			{GroupName: "Admins", UserName: "Alice"},
			{GroupName: "Admins", UserName: "Bob"},
			{GroupName: "Readers", UserName: "Alice"},
		}, got)
		assert.Equal(t, []string{"g-1", "g-2"}, store.listCalls)
	})

	t.Run("removed member becomes placeholder", func(t *testing.T) {
		store := &fakeStore{members: map[string][]string{"g-1": {"u-999"}}}
		groups := []model.Group{{ID: "g-1", DisplayName: "Admins"}}
		got, err := GroupMemberships(context.Background(), store, "d-1", groups, users)
		require.NoError(t, err)
		assert.Equal(t, []model.Membership{{GroupName: "Admins", UserName: "#DELETED(u-999)"}}, got)
	})

	t.Run("listing failure aborts with no partial result", func(t *testing.T) {
		boom := errors.New("throttled")
		store := &fakeStore{membersErr: boom}
		groups := []model.Group{{ID: "g-1", DisplayName: "Admins"}}
		got, err := GroupMemberships(context.Background(), store, "d-1", groups, users)
		require.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})
}

func TestAccountAssignments(t *testing.T) {
	users := Index{"u-1": "Alice"}
	groups := Index{"g-1": "Admins"}
	accounts := []model.Account{
		{ID: "111", Name: "audit"},
		{ID: "222", Name: "workload"},
	}
	permissionSets := []model.PermissionSet{
		{ARN: "ps-admin", Name: "AdminAccess"},
		{ARN: "ps-read", Name: "ReadOnly"},
		{ARN: "ps-bill", Name: "Billing"},
	}

	t.Run("queries every account and permission set pair", func(t *testing.T) {
		sso := &fakeSSO{}
		got, err := AccountAssignments(context.Background(), sso, "arn:i", accounts, permissionSets, users, groups)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.Len(t, sso.queried, len(accounts)*len(permissionSets))
		assert.Contains(t, sso.queried, pair{accountID: "222", permissionSetARN: "ps-bill"})
	})

	t.Run("resolves principals by type", func(t *testing.T) {
		sso := &fakeSSO{
			assignments: map[pair][]model.AssignmentRecord{
				{accountID: "111", permissionSetARN: "ps-admin"}: {
					{PrincipalType: "USER", PrincipalID: "u-1"},
					{PrincipalType: "GROUP", PrincipalID: "g-1"},
					{PrincipalType: "MACHINE", PrincipalID: "m-1"},
				},
			},
		}
		got, err := AccountAssignments(context.Background(), sso, "arn:i", accounts, permissionSets, users, groups)
		require.NoError(t, err)
		assert.Equal(t, []model.Assignment{
			{AccountName: "audit", PrincipalType: "USER", PrincipalName: "Alice", PermissionSetName: "AdminAccess"},
			{AccountName: "audit", PrincipalType: "GROUP", PrincipalName: "Admins", PermissionSetName: "AdminAccess"},
			{AccountName: "audit", PrincipalType: "MACHINE", PrincipalName: "#UNKNOWN(m-1)", PermissionSetName: "AdminAccess"},
		}, got)
	})

	t.Run("listing failure aborts with no partial result", func(t *testing.T) {
		boom := errors.New("expired token")
		sso := &fakeSSO{assignErr: boom}
		got, err := AccountAssignments(context.Background(), sso, "arn:i", accounts, permissionSets, users, groups)
		require.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})
}
