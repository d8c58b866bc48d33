package core

import "embed"

//go:embed assets/tpl/*
var apiTemplates embed.FS

// apiDocs holds the OpenAPI documents written by cmd/api_build_tool.
//
//go:embed all:assets/doc
var apiDocs embed.FS
