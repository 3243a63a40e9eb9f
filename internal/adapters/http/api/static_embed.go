package api

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// dashboardTemplate renders the dashboard page.
var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))
