package config

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

func secretOutput(value string) *secretsmanager.GetSecretValueOutput {
	if value == "" {
		return &secretsmanager.GetSecretValueOutput{}
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}
}
