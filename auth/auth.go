// Package auth supplies TokenProvider implementations for the bridge's
// Authorization header: fixed tokens, OAuth2 token sources (including the
// client-credentials grant), and certificate-signed JWT client assertions
// of the kind Azure service principals use.
package auth

import "context"

// Static is a fixed bearer token, useful for personal access tokens and
// pre-issued API keys.
type Static string

func (s Static) Token(_ context.Context) (string, error) { return string(s), nil }
