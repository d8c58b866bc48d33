package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/swaggo/swag"
	"github.com/swaggo/swag/gen"
)

// apiVersions lists the handler packages below internal/app/api that carry swag annotations.
var apiVersions = []string{"v0"}

// Generates the OpenAPI documents served at /api/<version>/doc.html.
// Run from the project root: go run ./cmd/api_build_tool
func main() {
	wd, err := os.Getwd() // should be the project root
	if err != nil {
		panic(err)
	}

	apiBasePath := filepath.Join(wd, "internal", "app", "api")

	hasError := false
	for _, apiVersion := range apiVersions {
		apiPath := filepath.Join(apiBasePath, apiVersion, "handlers")

		slog.Info("generating swagger docs", "api", apiVersion, "path", apiPath)
		if err := generateApi(apiBasePath, apiPath, apiVersion); err != nil {
			hasError = true
			slog.Error("failed to generate swagger docs", "api", apiVersion, "error", err)
			continue
		}
		slog.Info("generated swagger docs", "api", apiVersion)
	}

	if hasError {
		os.Exit(1)
	}
}

func generateApi(basePath, apiPath, version string) error {
	err := gen.New().Build(&gen.Config{
		SearchDir:          apiPath,
		MainAPIFile:        "base.go",
		PropNamingStrategy: swag.PascalCase,
		OutputDir:          filepath.Join(basePath, "core", "assets", "doc"),
		OutputTypes:        []string{"json", "yaml"},
		ParseDependency:    true,
		ParseInternal:      true,
		GeneratedTime:      false,
		ParseDepth:         3,
		InstanceName:       version,
	})
	if err != nil {
		return fmt.Errorf("swag failed: %w", err)
	}

	return nil
}
