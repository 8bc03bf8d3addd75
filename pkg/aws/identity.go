package aws

import (
	"context"
	"fmt"

	sdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	"github.com/aws/aws-sdk-go-v2/service/identitystore/types"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

// IdentityStore lists users, groups and memberships from an Identity Store.
type IdentityStore struct {
	client *identitystore.Client
}

func (s *IdentityStore) Users(ctx context.Context, storeID string) ([]model.User, error) {
	return collectPages(func(token *string) ([]model.User, *string, error) {
		out, err := s.client.ListUsers(ctx, &identitystore.ListUsersInput{
			IdentityStoreId: &storeID,
			NextToken:       token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list users: %w", err)
		}
		users := make([]model.User, 0, len(out.Users))
		for _, u := range out.Users {
			users = append(users, model.User{
				ID:          sdk.ToString(u.UserId),
				DisplayName: sdk.ToString(u.DisplayName),
			})
		}
		return users, out.NextToken, nil
	})
}

func (s *IdentityStore) Groups(ctx context.Context, storeID string) ([]model.Group, error) {
	return collectPages(func(token *string) ([]model.Group, *string, error) {
		out, err := s.client.ListGroups(ctx, &identitystore.ListGroupsInput{
			IdentityStoreId: &storeID,
			NextToken:       token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list groups: %w", err)
		}
		groups := make([]model.Group, 0, len(out.Groups))
		for _, g := range out.Groups {
			groups = append(groups, model.Group{
				ID:          sdk.ToString(g.GroupId),
				DisplayName: sdk.ToString(g.DisplayName),
			})
		}
		return groups, out.NextToken, nil
	})
}

func (s *IdentityStore) GroupMemberIDs(ctx context.Context, storeID, groupID string) ([]string, error) {
	return collectPages(func(token *string) ([]string, *string, error) {
		out, err := s.client.ListGroupMemberships(ctx, &identitystore.ListGroupMembershipsInput{
			IdentityStoreId: &storeID,
			GroupId:         &groupID,
			NextToken:       token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list memberships for group %s: %w", groupID, err)
		}
		ids := make([]string, 0, len(out.GroupMemberships))
		for _, m := range out.GroupMemberships {
			if userID, ok := m.MemberId.(*types.MemberIdMemberUserId); ok {
				ids = append(ids, userID.Value)
			}
		}
		return ids, out.NextToken, nil
	})
}
