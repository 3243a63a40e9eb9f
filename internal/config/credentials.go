package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Credentials is a resolved service-account key, ready to hand to the Sheets client.
type Credentials struct {
	// Source is the credentials_source value the key came from.
	Source string
	// JSON is the service-account key document.
	JSON []byte
}

// ResolveCredentials turns the configured credential source into a key
// document. It runs once at startup so that a missing or empty setting fails
// before any remote call is attempted.
func ResolveCredentials(_ context.Context, c *Config) (*Credentials, error) {
	switch c.CredentialsSource {
	case SourceInline:
		b, err := c.ServiceAccount.marshal()
		if err != nil {
			return nil, err
		}
		return &Credentials{Source: SourceInline, JSON: b}, nil
	case SourceFile:
		b, err := readKeyFile(c.CredentialsFile, "credentials_file")
		if err != nil {
			return nil, err
		}
		return &Credentials{Source: SourceFile, JSON: b}, nil
	case SourceEnv:
		name := strings.TrimSpace(c.CredentialsEnv)
		if name == "" {
			return nil, fmt.Errorf("%w: credentials_env must name a variable", ErrInvalidCredentials)
		}
		b, err := readKeyFile(os.Getenv(name), name)
		if err != nil {
			return nil, err
		}
		return &Credentials{Source: SourceEnv, JSON: b}, nil
	default:
		return nil, fmt.Errorf("%w: unknown credentials_source %q", ErrInvalidCredentials, c.CredentialsSource)
	}
}

func (sa ServiceAccount) marshal() ([]byte, error) {
	// Keys pasted into env files usually carry literal "\n" sequences.
	sa.PrivateKey = strings.ReplaceAll(sa.PrivateKey, `\n`, "\n")

	missing := make([]string, 0, 3)
	if strings.TrimSpace(sa.PrivateKey) == "" {
		missing = append(missing, "sa_private_key")
	}
	if strings.TrimSpace(sa.ClientEmail) == "" {
		missing = append(missing, "sa_client_email")
	}
	if strings.TrimSpace(sa.TokenURI) == "" {
		missing = append(missing, "sa_token_uri")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidCredentials, strings.Join(missing, ", "))
	}
	if sa.Type == "" {
		sa.Type = "service_account"
	}

	b, err := json.Marshal(sa)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	return b, nil
}

func readKeyFile(path, setting string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrInvalidCredentials, setting)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidCredentials, path, err)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidCredentials, path)
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidCredentials, path)
	}
	return b, nil
}
