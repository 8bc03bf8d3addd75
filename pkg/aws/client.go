package aws

import (
	"context"
	"fmt"

	sdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/identitystore"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssoadmin"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Clients holds the service clients for one inventory run, built from the
// default credential and region chain.
type Clients struct {
	Org   *Org
	Store *IdentityStore
	SSO   *SSOAdmin
	STS   *STS
	S3    *s3.Client
}

func NewClients(ctx context.Context) (*Clients, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Clients{
		Org:   &Org{client: organizations.NewFromConfig(cfg)},
		Store: &IdentityStore{client: identitystore.NewFromConfig(cfg)},
		SSO:   &SSOAdmin{client: ssoadmin.NewFromConfig(cfg)},
		STS:   &STS{client: sts.NewFromConfig(cfg)},
		S3:    s3.NewFromConfig(cfg),
	}, nil
}

// STS answers who is executing the run.
type STS struct {
	client *sts.Client
}

func (s *STS) CallerAccountID(ctx context.Context) (string, error) {
	out, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("get caller identity: %w", err)
	}
	return sdk.ToString(out.Account), nil
}
