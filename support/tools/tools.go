//go:build tools
// +build tools

// Package tools pins the linters run over the actors. Map iteration in actor
// code must be marked //nolint:nomaprange since its order is not deterministic.
package tools

import (
	_ "github.com/Kubuxu/go-no-map-range"
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
