// Package auth provides bearer token validation for the HTTP API.
//
// Tokens are JWTs signed with a shared HMAC secret and issued out of
// band. The generic Service parses and validates them; AsValidator
// bridges it to the server middleware:
//
//	svc, err := auth.NewTokenService(auth.Config{Secret: secret})
//	engine.Use(middleware.Auth(middleware.AuthConfig{
//		Validator: svc.AsValidator(),
//		SkipPaths: []string{"/health"},
//	}))
package auth
