package reporter

import (
	"html/template"
	"io"
	"strings"

	"github.com/okulov/windiag/internal/classify"
	"github.com/okulov/windiag/internal/models"
)

// HTMLReporter generates a standalone HTML report page
type HTMLReporter struct {
	writer io.Writer
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(writer io.Writer) *HTMLReporter {
	return &HTMLReporter{writer: writer}
}

// Generate renders the scan result as a self-contained HTML page
func (r *HTMLReporter) Generate(result *models.ScanResult) error {
	// Sections are precomputed in the fixed category order; absent
	// categories are left out entirely.
	var sections []models.CollectorResult
	for _, cat := range models.AllCategories() {
		if cr, ok := result.PerCategory[cat]; ok {
			sections = append(sections, cr)
		}
	}

	data := struct {
		*models.ScanResult
		Sections []models.CollectorResult
	}{
		ScanResult: result,
		Sections:   sections,
	}
	return htmlTemplate.Execute(r.writer, data)
}

var htmlFuncs = template.FuncMap{
	"bytes": classify.FormatBytes,
	"upper": strings.ToUpper,
	"sevClass": func(f models.Finding) string {
		if f.Indeterminate {
			return "unknown"
		}
		return f.Severity.String()
	},
	"ts": formatTimestamp,
	"yesno": yesNo,
}

var htmlTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>windiag Diagnostic Report</title>
<style>
  body { font-family: "Segoe UI", Arial, sans-serif; margin: 0; background: #f5f6fa; color: #2d3436; }
  .wrap { max-width: 960px; margin: 0 auto; padding: 24px; }
  header { background: #2d3436; color: #fff; padding: 20px 24px; border-radius: 8px; }
  header h1 { margin: 0 0 8px 0; font-size: 1.4em; }
  header .meta { font-size: 0.9em; color: #b2bec3; }
  .cards { display: flex; gap: 12px; margin: 20px 0; }
  .card { flex: 1; background: #fff; border-radius: 8px; padding: 16px; text-align: center; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
  .card .num { font-size: 1.8em; font-weight: bold; }
  .card.critical .num { color: #dc3545; }
  .card.warning .num { color: #ffc107; }
  .card.ok .num { color: #28a745; }
  section { background: #fff; border-radius: 8px; padding: 16px 20px; margin-bottom: 16px; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
  section h2 { margin-top: 0; font-size: 1.1em; border-bottom: 1px solid #dfe6e9; padding-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; font-size: 0.9em; }
  th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid #f1f2f6; vertical-align: top; }
  .badge { display: inline-block; padding: 2px 8px; border-radius: 10px; font-size: 0.78em; font-weight: bold; color: #fff; }
  .badge.critical { background: #dc3545; }
  .badge.warning { background: #ffc107; color: #2d3436; }
  .badge.ok { background: #28a745; }
  .badge.unknown { background: #6c757d; }
  .failure { color: #6c757d; font-style: italic; }
  ol.recs li { margin-bottom: 6px; }
</style>
</head>
<body>
<div class="wrap">
  <header>
    <h1>windiag Diagnostic Report</h1>
    <div class="meta">
      {{ts .Timestamp}} &middot; mode: {{.Mode}} &middot; elevated: {{yesno .Elevated}}
      {{- with .Host}} &middot; {{.Hostname}} ({{.Platform}}){{if .MemoryTotal}} &middot; memory {{bytes .MemoryUsed}} / {{bytes .MemoryTotal}}{{end}}{{end}}
    </div>
  </header>

  <div class="cards">
    <div class="card critical"><div class="num">{{.Summary.BySeverity.Critical}}</div>Critical</div>
    <div class="card warning"><div class="num">{{.Summary.BySeverity.Warning}}</div>Warning</div>
    <div class="card ok"><div class="num">{{.Summary.BySeverity.OK}}</div>OK</div>
    <div class="card"><div class="num">{{.Summary.Indeterminate}}</div>Not fully evaluated</div>
  </div>

  {{range .Sections}}
  <section>
    <h2>{{.Category.Title}}</h2>
    {{if .Failure}}
      <p class="failure">Not evaluated: {{.Failure.Message}} ({{.Failure.Kind}})</p>
    {{else if not .Findings}}
      <p>No findings.</p>
    {{else}}
      <table>
        <tr><th>Severity</th><th>Item</th><th>Details</th></tr>
        {{range .Findings}}
        <tr>
          <td><span class="badge {{sevClass .}}">{{upper (sevClass .)}}</span></td>
          <td>{{.Identifier}}</td>
          <td>{{.Description}}</td>
        </tr>
        {{end}}
      </table>
    {{end}}
  </section>
  {{end}}

  {{if .Summary.Recommendations}}
  <section>
    <h2>Recommended Actions</h2>
    <ol class="recs">
      {{range .Summary.Recommendations}}
      <li><span class="badge {{.Severity}}">{{upper .Severity.String}}</span> {{.Action}}</li>
      {{end}}
    </ol>
  </section>
  {{end}}
</div>
</body>
</html>
`))
