package dashboard

import (
	"embed"
	"html/template"
)

const (
	// TemplateName renders a whole page for a view in one pass.
	TemplateName = "dashboard.html"

	// LoadingTemplate and ResultTemplate split the page so the loading
	// placeholder can be sent before the articles arrive. Written back to
	// back they form a complete page.
	LoadingTemplate = "dashboard_loading"
	ResultTemplate  = "dashboard_result"
)

//go:embed templates/*.html
var templateFS embed.FS

func Templates() *template.Template {
	funcs := template.FuncMap{
		"echartsScript": func() string { return EChartsScriptURL },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
