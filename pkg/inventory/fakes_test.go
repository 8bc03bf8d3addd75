package inventory

import (
	"context"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

type fakeOrg struct {
	rootID    string
	units     map[string][]model.OrgUnit // parent ID → children
	accounts  map[string][]model.Account // parent ID → accounts
	all       []model.Account
	unitsErr  error
	rootErr   error
	callerID  string
	callerErr error
}

func (f *fakeOrg) RootID(ctx context.Context) (string, error) {
	return f.rootID, f.rootErr
}

func (f *fakeOrg) UnitsForParent(ctx context.Context, parentID string) ([]model.OrgUnit, error) {
	if f.unitsErr != nil {
		return nil, f.unitsErr
	}
	return f.units[parentID], nil
}

func (f *fakeOrg) AccountsForParent(ctx context.Context, parentID string) ([]model.Account, error) {
	return f.accounts[parentID], nil
}

func (f *fakeOrg) Accounts(ctx context.Context) ([]model.Account, error) {
	return f.all, nil
}

func (f *fakeOrg) CallerAccountID(ctx context.Context) (string, error) {
	return f.callerID, f.callerErr
}

type fakeStore struct {
	users      []model.User
	groups     []model.Group
	members    map[string][]string // group ID → member user IDs
	membersErr error
	listCalls  []string
}

func (f *fakeStore) Users(ctx context.Context, storeID string) ([]model.User, error) {
	return f.users, nil
}

func (f *fakeStore) Groups(ctx context.Context, storeID string) ([]model.Group, error) {
	return f.groups, nil
}

func (f *fakeStore) GroupMemberIDs(ctx context.Context, storeID, groupID string) ([]string, error) {
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	f.listCalls = append(f.listCalls, groupID)
	return f.members[groupID], nil
}

type pair struct {
	accountID        string
	permissionSetARN string
}

type fakeSSO struct {
	instances      []model.Instance
	permissionSets []model.PermissionSet
	assignments    map[pair][]model.AssignmentRecord
	assignErr      error
	queried        []pair
}

func (f *fakeSSO) Instances(ctx context.Context) ([]model.Instance, error) {
	return f.instances, nil
}

func (f *fakeSSO) PermissionSets(ctx context.Context, instanceARN string) ([]model.PermissionSet, error) {
	return f.permissionSets, nil
}

func (f *fakeSSO) AccountAssignments(ctx context.Context, instanceARN, accountID, permissionSetARN string) ([]model.AssignmentRecord, error) {
	if f.assignErr != nil {
		return nil, f.assignErr
	}
	p := pair{accountID: accountID, permissionSetARN: permissionSetARN}
	f.queried = append(f.queried, p)
	return f.assignments[p], nil
}
