package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials are the OAuth 1.0a secrets of the favorites API
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessKey      string
	AccessSecret   string
}

const (
	EnvConsumerKey    = "TWITTER_CONSUMER_KEY"
	EnvConsumerSecret = "TWITTER_CONSUMER_SECRET"
	EnvAccessKey      = "TWITTER_ACCESS_KEY"
	EnvAccessSecret   = "TWITTER_ACCESS_SECRET"
)

// LoadCredentials reads the four secrets from the environment. Missing
// variables are filled from the given .env files, in order; values already
// set in the environment win.
func LoadCredentials(envFiles ...string) (Credentials, error) {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return Credentials{}, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	creds := Credentials{
		ConsumerKey:    os.Getenv(EnvConsumerKey),
		ConsumerSecret: os.Getenv(EnvConsumerSecret),
		AccessKey:      os.Getenv(EnvAccessKey),
		AccessSecret:   os.Getenv(EnvAccessSecret),
	}

	var missing []string
	for name, v := range map[string]string{
		EnvConsumerKey:    creds.ConsumerKey,
		EnvConsumerSecret: creds.ConsumerSecret,
		EnvAccessKey:      creds.AccessKey,
		EnvAccessSecret:   creds.AccessSecret,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return creds, fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}

	return creds, nil
}
