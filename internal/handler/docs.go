package handler

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"
)

const msgDocsFailed = "Failed to load API documentation"

// DocsHandler serves the OpenAPI document as JSON or as a browsable page,
// depending on the Accept header.
type DocsHandler struct {
	raw []byte
}

// NewDocsHandler takes the YAML source of the OpenAPI document. It is parsed
// per request so a broken document fails the request, not startup.
func NewDocsHandler(raw []byte) *DocsHandler {
	return &DocsHandler{raw: raw}
}

type docView struct {
	Info struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Version     string `yaml:"version"`
	} `yaml:"info"`
	Paths map[string]map[string]opView `yaml:"paths"`
}

type opView struct {
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	Parameters  []struct {
		Name        string `yaml:"name"`
		In          string `yaml:"in"`
		Description string `yaml:"description"`
		Required    bool   `yaml:"required"`
	} `yaml:"parameters"`
	RequestBody map[string]any `yaml:"requestBody"`
	Responses   map[string]any `yaml:"responses"`
}

// RequestSchema renders the JSON request schema, if any.
func (o opView) RequestSchema() string {
	content, _ := o.RequestBody["content"].(map[string]any)
	media, _ := content["application/json"].(map[string]any)
	if media == nil {
		return ""
	}
	return prettyJSON(media["schema"])
}

// SuccessResponse renders the 200 or 201 response object.
func (o opView) SuccessResponse() string {
	for _, code := range []string{"200", "201"} {
		if r, ok := o.Responses[code]; ok {
			return prettyJSON(r)
		}
	}
	return ""
}

func prettyJSON(v any) string {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(bs)
}

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Info.Title}}</title>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; margin: 20px; line-height: 1.6; background: #f9f9f9; color: #333; }
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
.section { background: #fff; border: 1px solid #ddd; border-radius: 5px; padding: 15px; margin-bottom: 20px; }
.method { font-weight: bold; color: #e74c3c; margin-right: 10px; text-transform: uppercase; }
.path { font-family: monospace; color: #27ae60; }
pre { background: #ecf0f1; padding: 10px; border-radius: 5px; overflow-x: auto; }
</style>
</head>
<body>
<h1>{{.Info.Title}}</h1>
<div class="section">
<p>Fetch this document as JSON with <code>Accept: application/json</code>.</p>
<p>{{.Info.Description}}</p>
<p><strong>Version:</strong> {{.Info.Version}}</p>
</div>
<div class="section">
<h2>Endpoints</h2>
{{range $path, $ops := .Paths}}{{range $method, $op := $ops}}
<div class="endpoint">
<p><span class="method">{{$method}}</span> <span class="path">{{$path}}</span></p>
<p>{{$op.Summary}}</p>
{{if $op.Description}}<p>{{$op.Description}}</p>{{end}}
{{with $op.RequestSchema}}<h3>Request Body</h3><pre>{{.}}</pre>{{end}}
{{if $op.Parameters}}<h3>Parameters</h3><ul>
{{range $op.Parameters}}<li><strong>{{.Name}}</strong> ({{.In}}): {{.Description}}{{if .Required}} (required){{end}}</li>
{{end}}</ul>{{end}}
{{with $op.SuccessResponse}}<h3>Responses</h3><pre>{{.}}</pre>{{end}}
</div>
{{end}}{{end}}
</div>
</body>
</html>
`))

// Docs: GET /api/docs
func (h *DocsHandler) Docs(c echo.Context) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) {
		var doc map[string]any
		if err := yaml.Unmarshal(h.raw, &doc); err != nil || doc == nil {
			return h.fail(c, err)
		}
		return c.JSON(http.StatusOK, doc)
	}

	var view docView
	if err := yaml.Unmarshal(h.raw, &view); err != nil {
		return h.fail(c, err)
	}
	var buf bytes.Buffer
	if err := docsPage.Execute(&buf, view); err != nil {
		return h.fail(c, err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *DocsHandler) fail(c echo.Context, err error) error {
	if err != nil {
		c.Logger().Errorf("docs: %v", err)
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgDocsFailed})
}
