package ui

import (
	"embed"
)

//go:embed assets/tpl/*
var pageTemplates embed.FS

//go:embed assets/css/*
var staticFiles embed.FS
