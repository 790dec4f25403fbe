// Package mocks provides mock implementations for testing the session core.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the ports the guard and session store depend on. The mocks are generated
// using go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	nav := mocks.NewMockNavigator(ctrl)
//	nav.EXPECT().CurrentPage().Return("/admin")
//	nav.EXPECT().NavigateTo("/login")
package mocks

// Generate mock for the Navigator interface from internal/ports.
// This creates MockNavigator with CurrentPage and NavigateTo.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=navigator_mock.go github.com/forkful/forkful-cli/internal/ports Navigator
