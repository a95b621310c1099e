package handlers

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"

	"donations/internal/middleware"
)

//go:embed openapi.json
var openAPIDocument []byte

// apiTitle is read once from the embedded document so the docs page and the
// JSON never disagree.
var apiTitle = func() string {
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
	}
	if err := json.Unmarshal(openAPIDocument, &doc); err != nil || doc.Info.Title == "" {
		return "Donations API"
	}
	return doc.Info.Title
}()

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>body{margin:0}redoc{display:block;height:100vh}</style>
</head>
<body>
<redoc spec-url="{{.SpecURL}}"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"></script>
</body>
</html>
`))

type docsView struct {
	Lang    string
	Title   string
	SpecURL string
}

// OpenAPIJSON serves the embedded OpenAPI 3 document.
func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(openAPIDocument)
}

// OpenAPIDocs renders a Redoc page over /openapi.json in the negotiated locale.
func (a *App) OpenAPIDocs(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LocaleFromContext(r.Context())
	if lang == "" {
		lang = a.DefaultLocale
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := docsPage.Execute(w, docsView{Lang: lang, Title: apiTitle, SpecURL: "/openapi.json"}); err != nil {
		a.Logger.Error().Err(err).Msg("render docs page")
	}
}
