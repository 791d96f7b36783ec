package github

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/artifetch/pkg/domain/interfaces"
	"github.com/m-mizutani/artifetch/pkg/domain/model"
	"github.com/m-mizutani/artifetch/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultChunkSize is the buffer size used when streaming artifact content
	DefaultChunkSize = 8 * 1024

	listPerPage = 100

	// Follow at most one 301 before expecting the 302 carrying the signed URL
	maxRedirects = 1
)

// config holds internal client configuration
type config struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
	chunkSize int
}

// Option is a functional option for client configuration
type Option func(*config)

// WithBaseURL sets the GitHub API base URL, e.g. for GitHub Enterprise
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout of every HTTP request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.transport = transport
	}
}

// WithChunkSize sets the buffer size used by DownloadFile
func WithChunkSize(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

type client struct {
	githubClient *github.Client
	httpClient   *http.Client // for signed URLs, no credential attached
	chunkSize    int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		transport: http.DefaultTransport,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewClient creates a new GitHub client authenticated with a bearer token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	if token == "" {
		return nil, goerr.Wrap(types.ErrMissingCredential, "token is empty")
	}

	cfg := newConfig(opts)
	githubClient := github.NewClient(&http.Client{
		Transport: cfg.transport,
		Timeout:   cfg.timeout,
	}).WithAuthToken(token)

	c, err := newClient(githubClient, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// NewAppClient creates a new GitHub client with App authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.GitHubClient, error) {
	if appID == 0 || installationID == 0 || len(privateKey) == 0 {
		return nil, goerr.Wrap(types.ErrMissingCredential, "GitHub App credential is incomplete",
			goerr.V("app_id", appID),
			goerr.V("installation_id", installationID),
		)
	}

	cfg := newConfig(opts)

	// Create GitHub App transport
	itr, err := ghinstallation.New(cfg.transport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}
	if cfg.baseURL != "" {
		itr.BaseURL = strings.TrimSuffix(cfg.baseURL, "/")
	}

	githubClient := github.NewClient(&http.Client{
		Transport: itr,
		Timeout:   cfg.timeout,
	})

	c, err := newClient(githubClient, cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(githubClient *github.Client, cfg *config) (*client, error) {
	if cfg.baseURL != "" {
		baseURL, err := url.Parse(cfg.baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", cfg.baseURL))
		}
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}
		githubClient.BaseURL = baseURL
	}

	return &client{
		githubClient: githubClient,
		httpClient: &http.Client{
			Transport: cfg.transport,
			Timeout:   cfg.timeout,
		},
		chunkSize: cfg.chunkSize,
	}, nil
}

// ListRunArtifacts lists all artifacts of a workflow run, following pagination
func (c *client) ListRunArtifacts(ctx context.Context, repo model.Repository, runID model.RunID) ([]*model.Artifact, error) {
	var artifacts []*model.Artifact

	opts := &github.ListOptions{PerPage: listPerPage}
	for {
		list, resp, err := c.githubClient.Actions.ListWorkflowRunArtifacts(ctx, repo.Owner, repo.Name, int64(runID), opts)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list workflow run artifacts",
				goerr.V("repo", repo.String()),
				goerr.V("run_id", runID),
				goerr.V("page", opts.Page),
			)
		}

		for _, a := range list.Artifacts {
			artifacts = append(artifacts, &model.Artifact{
				ID:          a.GetID(),
				Name:        a.GetName(),
				SizeInBytes: a.GetSizeInBytes(),
				Expired:     a.GetExpired(),
				DownloadURL: a.GetArchiveDownloadURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return artifacts, nil
}

// ArtifactDownloadURL gets the signed download URL from the Location header of the zip endpoint
func (c *client) ArtifactDownloadURL(ctx context.Context, repo model.Repository, artifactID int64) (*url.URL, error) {
	u, _, err := c.githubClient.Actions.DownloadArtifact(ctx, repo.Owner, repo.Name, artifactID, maxRedirects)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get artifact download URL",
			goerr.V("repo", repo.String()),
			goerr.V("artifact_id", artifactID),
		)
	}

	return u, nil
}

// DownloadFile streams the content at u into w in fixed-size chunks
func (c *client) DownloadFile(ctx context.Context, u *url.URL, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", redactURL(u)))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to download artifact", goerr.V("url", redactURL(u)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, goerr.Wrap(types.ErrUnexpectedStatus, "artifact download failed",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", redactURL(u)),
		)
	}

	// Hide ReadFrom so the copy always goes through the fixed buffer
	n, err := io.CopyBuffer(writerOnly{w}, resp.Body, make([]byte, c.chunkSize))
	if err != nil {
		return n, goerr.Wrap(err, "failed to write artifact content", goerr.V("written", n))
	}

	return n, nil
}

type writerOnly struct {
	io.Writer
}

// redactURL drops the query string, which carries the signature of the URL
func redactURL(u *url.URL) string {
	stripped := *u
	stripped.RawQuery = ""
	return stripped.String()
}
