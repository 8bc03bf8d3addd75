package aws

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/organizations/types"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

// Org lists the account hierarchy from AWS Organizations.
type Org struct {
	client *organizations.Client
}

func (o *Org) RootID(ctx context.Context) (string, error) {
	out, err := o.client.ListRoots(ctx, &organizations.ListRootsInput{})
	if err != nil {
		return "", fmt.Errorf("list roots: %w", err)
	}
	if len(out.Roots) == 0 {
		return "", errors.New("organization has no root")
	}
	return sdk.ToString(out.Roots[0].Id), nil
}

func (o *Org) UnitsForParent(ctx context.Context, parentID string) ([]model.OrgUnit, error) {
	return collectPages(func(token *string) ([]model.OrgUnit, *string, error) {
		out, err := o.client.ListOrganizationalUnitsForParent(ctx, &organizations.ListOrganizationalUnitsForParentInput{
			ParentId:  &parentID,
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list organizational units for %s: %w", parentID, err)
		}
		units := make([]model.OrgUnit, 0, len(out.OrganizationalUnits))
		for _, ou := range out.OrganizationalUnits {
			units = append(units, model.OrgUnit{
				ID:       sdk.ToString(ou.Id),
				Name:     sdk.ToString(ou.Name),
				ParentID: parentID,
			})
		}
		return units, out.NextToken, nil
	})
}

func (o *Org) AccountsForParent(ctx context.Context, parentID string) ([]model.Account, error) {
	return collectPages(func(token *string) ([]model.Account, *string, error) {
		out, err := o.client.ListAccountsForParent(ctx, &organizations.ListAccountsForParentInput{
			ParentId:  &parentID,
			NextToken: token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list accounts for %s: %w", parentID, err)
		}
		return toAccounts(out.Accounts), out.NextToken, nil
	})
}

func (o *Org) Accounts(ctx context.Context) ([]model.Account, error) {
	return collectPages(func(token *string) ([]model.Account, *string, error) {
		out, err := o.client.ListAccounts(ctx, &organizations.ListAccountsInput{NextToken: token})
		if err != nil {
			return nil, nil, fmt.Errorf("list accounts: %w", err)
		}
		return toAccounts(out.Accounts), out.NextToken, nil
	})
}

func toAccounts(accounts []types.Account) []model.Account {
	out := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, model.Account{
			ID:           sdk.ToString(a.Id),
			Name:         sdk.ToString(a.Name),
			Email:        sdk.ToString(a.Email),
			Status:       string(a.Status),
			JoinedMethod: string(a.JoinedMethod),
			JoinedAt:     sdk.ToTime(a.JoinedTimestamp),
		})
	}
	return out
}
