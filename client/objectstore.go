// client/objectstore.go
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/madmin-go/v3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/sse"
	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/config"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
)

// IObjectStoreClient provisions project buckets and access policies on
// the object store.
type IObjectStoreClient interface {
	EnsureBucket(ctx context.Context, name string) error
	CreateProjectPolicies(ctx context.Context, projectCode string) error
}

type ObjectStoreClient struct {
	store *minio.Client
	admin *madmin.AdminClient
}

var _ IObjectStoreClient = &ObjectStoreClient{}

func NewObjectStoreClient() (*ObjectStoreClient, error) {
	endpoint := config.GetString("minio.endpoint")
	accessKey := config.GetString("minio.accessKey")
	secretKey := config.GetString("minio.secretKey")
	useHTTPS := config.GetBool("minio.useHTTPS")

	store, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useHTTPS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	admin, err := madmin.New(endpoint, accessKey, secretKey, useHTTPS)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store admin client: %w", err)
	}

	return &ObjectStoreClient{store: store, admin: admin}, nil
}

// EnsureBucket creates the bucket if absent and enables versioning and
// server-side encryption. Pre-existing buckets are tolerated.
func (o *ObjectStoreClient) EnsureBucket(ctx context.Context, name string) error {
	exists, err := o.store.BucketExists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", name, err)
	}
	if !exists {
		if err := o.store.MakeBucket(ctx, name, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", name, err)
		}
		logger.Info("Bucket created", zap.String("bucket", name))
	}
	if err := o.store.EnableVersioning(ctx, name); err != nil {
		return fmt.Errorf("failed to enable versioning on %s: %w", name, err)
	}
	if err := o.store.SetBucketEncryption(ctx, name, sse.NewConfigurationSSES3()); err != nil {
		return fmt.Errorf("failed to enable encryption on %s: %w", name, err)
	}
	return nil
}

type policyStatement struct {
	Action   []string `json:"Action"`
	Effect   string   `json:"Effect"`
	Resource []string `json:"Resource"`
}

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

// The username placeholder is interpolated by the object store itself,
// not by the BFF.
const usernameToken = "${jwt:preferred_username}"

// CreateProjectPolicies installs the admin, contributor and
// collaborator access policies for a project's buckets.
func (o *ObjectStoreClient) CreateProjectPolicies(ctx context.Context, projectCode string) error {
	greenBucket := config.GetString("zones.greenroomPrefix") + projectCode
	coreBucket := config.GetString("zones.corePrefix") + projectCode

	bucketStatement := policyStatement{
		Action:   []string{"s3:GetBucketLocation", "s3:ListBucket"},
		Effect:   "Allow",
		Resource: []string{arn(greenBucket), arn(coreBucket)},
	}
	objectActions := []string{"s3:GetObject", "s3:PutObject", "s3:DeleteObject"}

	policies := map[string]policyDocument{
		model.ProjectRoleAdmin: {
			Version: "2012-10-17",
			Statement: []policyStatement{
				bucketStatement,
				{
					Action:   objectActions,
					Effect:   "Allow",
					Resource: []string{arn(greenBucket + "/*"), arn(coreBucket + "/*")},
				},
			},
		},
		model.ProjectRoleCollaborator: {
			Version: "2012-10-17",
			Statement: []policyStatement{
				bucketStatement,
				{
					Action: objectActions,
					Effect: "Allow",
					Resource: []string{
						arn(greenBucket + "/" + usernameToken + "/*"),
						arn(coreBucket + "/*"),
					},
				},
			},
		},
		model.ProjectRoleContributor: {
			Version: "2012-10-17",
			Statement: []policyStatement{
				bucketStatement,
				{
					Action: objectActions,
					Effect: "Allow",
					Resource: []string{
						arn(greenBucket + "/" + usernameToken + "/*"),
						arn(coreBucket + "/" + usernameToken + "/*"),
					},
				},
			},
		},
	}

	for role, doc := range policies {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal %s policy: %w", role, err)
		}
		name := fmt.Sprintf("%s-%s", projectCode, role)
		if err := o.admin.AddCannedPolicy(ctx, name, payload); err != nil {
			return fmt.Errorf("failed to install policy %s: %w", name, err)
		}
		logger.Info("Object store policy installed",
			zap.String("policy", name),
			zap.String("project_code", projectCode))
	}
	return nil
}

func arn(resource string) string {
	return "arn:aws:s3:::" + resource
}
