package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretsDir is where Docker mounts secrets.
const DefaultSecretsDir = "/run/secrets"

// ReadSecretFrom reads and trims the secret file dir/secretName.
func ReadSecretFrom(dir, secretName string) (string, error) {
	filePath := filepath.Join(dir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", filePath)
	}
	return secret, nil
}

// SecretOrValue prefers the secret file over the given fallback value
// (usually taken from the environment). Empty result means neither was set.
func SecretOrValue(dir, secretName, fallback string) string {
	if secret, err := ReadSecretFrom(dir, secretName); err == nil {
		return secret
	}
	return fallback
}
