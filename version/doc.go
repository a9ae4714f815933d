// Package version identifies the running binary for the version
// subcommand and the /version and /info endpoints.
//
// Release builds stamp the identity via -ldflags; everything else falls
// back to the module's VCS build stamp:
//
//	go build -ldflags "-X github.com/skillsenselab/diascribe/version.Version=v1.4.0"
package version
