package config

import (
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/artifetch/pkg/domain/interfaces"
	"github.com/m-mizutani/artifetch/pkg/domain/model"
	"github.com/m-mizutani/artifetch/pkg/domain/types"
	githubinfra "github.com/m-mizutani/artifetch/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	APIURL         string
	Timeout        time.Duration

	Owner string
	Repo  string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token with actions:read permission",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used when no token is given",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("ARTIFETCH_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("ARTIFETCH_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key, PEM content or file path",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("ARTIFETCH_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL",
			Value:       "https://api.github.com/",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("ARTIFETCH_GITHUB_API_URL"),
		},
		&cli.DurationFlag{
			Name:        "http-timeout",
			Usage:       "Timeout of each HTTP request, 0 for none",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("ARTIFETCH_HTTP_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Repository owner",
			Value:       "arihant2math",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("ARTIFETCH_OWNER"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository name",
			Value:       "prontus",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("ARTIFETCH_REPO"),
		},
	}
}

// Repository returns the configured repository
func (c *GitHub) Repository() model.Repository {
	return model.Repository{Owner: c.Owner, Name: c.Repo}
}

// NewClient builds an authenticated GitHub client. It fails without any
// network access when no credential is configured.
func (c *GitHub) NewClient() (interfaces.GitHubClient, error) {
	opts := []githubinfra.Option{
		githubinfra.WithBaseURL(c.APIURL),
		githubinfra.WithTimeout(c.Timeout),
	}

	switch {
	case c.Token != "":
		return githubinfra.NewClient(c.Token, opts...)

	case c.AppID != 0 || c.InstallationID != 0 || c.PrivateKey != "":
		key, err := c.loadPrivateKey()
		if err != nil {
			return nil, err
		}
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, key, opts...)

	default:
		return nil, goerr.Wrap(types.ErrMissingCredential, "neither token nor GitHub App is configured")
	}
}

func (c *GitHub) loadPrivateKey() ([]byte, error) {
	if c.PrivateKey == "" || strings.Contains(c.PrivateKey, "-----BEGIN") {
		return []byte(c.PrivateKey), nil
	}

	key, err := os.ReadFile(c.PrivateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKey))
	}
	return key, nil
}
