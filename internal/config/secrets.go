package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsAPI is the subset of the Secrets Manager client used for DSN
// resolution.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, input *secretsmanager.GetSecretValueInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ResolveDatabaseURL fills DatabaseURL from Secrets Manager when only a
// secret ARN was configured. A directly configured DATABASE_URL wins.
func (c *Config) ResolveDatabaseURL(ctx context.Context, api SecretsAPI) error {
	if c.DatabaseURL != "" || c.DatabaseURLSecretARN == "" {
		return nil
	}
	if api == nil {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.AWSRegion))
		if err != nil {
			return fmt.Errorf("loading AWS config: %w", err)
		}
		api = secretsmanager.NewFromConfig(awsCfg)
	}

	out, err := api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(c.DatabaseURLSecretARN),
	})
	if err != nil {
		return fmt.Errorf("resolving database secret: %w", err)
	}
	if out.SecretString == nil || *out.SecretString == "" {
		return fmt.Errorf("database secret %s is empty", c.DatabaseURLSecretARN)
	}
	c.DatabaseURL = *out.SecretString
	return nil
}
