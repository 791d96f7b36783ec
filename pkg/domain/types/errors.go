package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrMissingCredential is returned when neither a token nor GitHub App credentials are configured
	ErrMissingCredential = goerr.New("no GitHub credential configured, set GITHUB_TOKEN")

	ErrEmptyPath           = goerr.New("empty directory path")
	ErrInvalidArtifactName = goerr.New("invalid artifact name")
	ErrInvalidRunID        = goerr.New("invalid run ID")
	ErrInvalidEntryName    = goerr.New("invalid archive entry name")

	// ErrUnexpectedStatus is returned for non-2xx responses from the artifact storage
	ErrUnexpectedStatus = goerr.New("unexpected HTTP status")
)
