// Package version holds the client identity sent with every request and
// the build information printed by "paykit version".
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/paykit/version.Version=1.0.0" ./cmd/paykit
package version
