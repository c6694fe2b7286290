// Package oauth manages the LinkedIn OAuth 2.0 authorization-code token lifecycle.
//
// The Manager builds the authorization URL, exchanges codes, refreshes
// expired tokens and hands out a currently valid access token, persisting
// every new token through a tokenstore.TokenStore.
//
// # Token Source
//
// Manager implements oauth2.TokenSource, so outbound API clients attach the
// bearer credential with the standard transport:
//
//	mgr, _ := oauth.NewManager(creds, store)
//	client := &http.Client{Transport: &oauth2.Transport{Source: mgr}}
//
// Refresh happens strictly on demand: a token is only refreshed once a caller
// asks for it after expiry. Concurrent callers share one in-flight refresh.
//
// # Interactive Authorization
//
// CallbackListener completes the authorization-code leg on the operator's
// machine: it serves the redirect URI once, exchanges the received code and
// shuts down, or gives up after a timeout.
package oauth
