//go:build tools

// Package tools lists the developer tools used on the onboarding portal.
// None are imported by the module; each is run at a pinned version.
package tools

// mockgen regenerates internal/mocks from the repository ports in
// internal/core. The version matches go.uber.org/mock in go.mod.
//
//	go generate ./internal/mocks
//	(runs go.uber.org/mock/mockgen@v0.6.0)
//
// air reloads cmd/portal while editing templates and handlers.
//
//	go install github.com/air-verse/air@v1.63.0
//	air --build.cmd "go build -o ./tmp/portal ./cmd/portal" --build.bin ./tmp/portal \
//	    --build.include_ext "go,tmpl,css,js"
//
// portal-admin seeds a local database with the default modules, questions,
// a manager and an admin account.
//
//	go run ./cmd/portal-admin migrate
//	go run ./cmd/portal-admin db-seed
