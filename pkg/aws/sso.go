package aws

import (
	"context"
	"fmt"

	sdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

// SSOAdmin lists IAM Identity Center instances, permission sets and account
// assignments.
type SSOAdmin struct {
	client *ssoadmin.Client
}

func (s *SSOAdmin) Instances(ctx context.Context) ([]model.Instance, error) {
	return collectPages(func(token *string) ([]model.Instance, *string, error) {
		out, err := s.client.ListInstances(ctx, &ssoadmin.ListInstancesInput{NextToken: token})
		if err != nil {
			return nil, nil, fmt.Errorf("list instances: %w", err)
		}
		instances := make([]model.Instance, 0, len(out.Instances))
		for _, i := range out.Instances {
			instances = append(instances, model.Instance{
				ARN:             sdk.ToString(i.InstanceArn),
				IdentityStoreID: sdk.ToString(i.IdentityStoreId),
			})
		}
		return instances, out.NextToken, nil
	})
}

// PermissionSets lists every permission set ARN under the instance and then
// describes each one to obtain its name and description.
func (s *SSOAdmin) PermissionSets(ctx context.Context, instanceARN string) ([]model.PermissionSet, error) {
	arns, err := collectPages(func(token *string) ([]string, *string, error) {
		out, err := s.client.ListPermissionSets(ctx, &ssoadmin.ListPermissionSetsInput{
			InstanceArn: &instanceARN,
			NextToken:   token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list permission sets: %w", err)
		}
		return out.PermissionSets, out.NextToken, nil
	})
	if err != nil {
		return nil, err
	}

	sets := make([]model.PermissionSet, 0, len(arns))
	for _, arn := range arns {
		out, err := s.client.DescribePermissionSet(ctx, &ssoadmin.DescribePermissionSetInput{
			InstanceArn:      &instanceARN,
			PermissionSetArn: &arn,
		})
		if err != nil {
			return nil, fmt.Errorf("describe permission set %s: %w", arn, err)
		}
		sets = append(sets, model.PermissionSet{
			ARN:         sdk.ToString(out.PermissionSet.PermissionSetArn),
			Name:        sdk.ToString(out.PermissionSet.Name),
			Description: sdk.ToString(out.PermissionSet.Description),
		})
	}
	return sets, nil
}

func (s *SSOAdmin) AccountAssignments(ctx context.Context, instanceARN, accountID, permissionSetARN string) ([]model.AssignmentRecord, error) {
	return collectPages(func(token *string) ([]model.AssignmentRecord, *string, error) {
		out, err := s.client.ListAccountAssignments(ctx, &ssoadmin.ListAccountAssignmentsInput{
			InstanceArn:      &instanceARN,
			AccountId:        &accountID,
			PermissionSetArn: &permissionSetARN,
			NextToken:        token,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list assignments for account %s: %w", accountID, err)
		}
		records := make([]model.AssignmentRecord, 0, len(out.AccountAssignments))
		for _, a := range out.AccountAssignments {
			records = append(records, model.AssignmentRecord{
				PrincipalType: string(a.PrincipalType),
				PrincipalID:   sdk.ToString(a.PrincipalId),
			})
		}
		return records, out.NextToken, nil
	})
}
