package chi

import (
	"html/template"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/browse"
)

type pageData struct {
	View      *browse.View
	From      string
	To        string
	Flash     *flash
	LoadError string
	ServerURL string
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"date": recordDate,
}).Parse(pageHTML))

// recordDate renders the capture date in local time, or the server's raw
// value when it was not a recognizable timestamp.
func recordDate(r *pagekeep.ContentRecord) string {
	if r.Date.IsZero() {
		if r.RawDate == "" {
			return "unknown"
		}
		return r.RawDate
	}
	return r.Date.Local().Format("Jan 2, 2006 15:04")
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Captured content</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; color: #222; }
form.inline { display: inline; }
.controls { display: flex; gap: 1em; flex-wrap: wrap; align-items: end; margin-bottom: 1em; }
.flash { padding: .5em 1em; border-radius: 4px; background: #e6f4ea; }
.flash.error, .no-items.error { background: #fce8e6; }
.no-items { padding: 1em; color: #555; }
.content-item { display: flex; gap: 1em; padding: .75em 0; border-bottom: 1px solid #ddd; }
.item-title { font-weight: bold; }
.item-url, .item-date { font-size: .85em; color: #666; }
.item-preview { margin-top: .25em; }
</style>
</head>
<body>
<h1>Captured content</h1>
{{with .Flash}}<div class="flash{{if .Error}} error{{end}}" role="alert">{{.Message}}</div>{{end}}
<div class="controls">
  <form class="inline" method="post" action="/filter">
    <label>From <input type="date" id="date-from" name="date-from" value="{{.From}}"></label>
    <label>To <input type="date" id="date-to" name="date-to" value="{{.To}}"></label>
    <button id="apply-filter" type="submit">Apply filter</button>
  </form>
  <form class="inline" method="post" action="/filter/clear"><button id="clear-filter" type="submit">Clear filter</button></form>
  <form class="inline" method="post" action="/select-all"><button id="select-all" type="submit">Select all</button></form>
  <form class="inline" method="post" action="/deselect-all"><button id="deselect-all" type="submit">Deselect all</button></form>
  <form class="inline" method="post" action="/delete" onsubmit="return confirm('Delete {{.View.Stats.Selected}} items?')"><button id="delete-selected" type="submit">Delete selected</button></form>
  <form class="inline" method="post" action="/refresh"><button id="refresh" type="submit">Refresh</button></form>
</div>
<p><span id="total-items">Items: <span>{{.View.Stats.Total}}</span></span>
   <span id="selected-items">Selected: <span>{{.View.Stats.Selected}}</span></span></p>
<div id="content-list">
{{if .LoadError}}<div class="no-items error" role="alert">Error loading content: {{.LoadError}}.{{with .ServerURL}} Please ensure the server is running at {{.}}.{{end}}</div>{{end}}
{{range .View.Items}}
  <div class="content-item" data-id="{{.ID}}">
    <form class="item-check" method="post" action="/select">
      <input type="hidden" name="id" value="{{.ID}}">
      <input type="hidden" name="checked" value="{{if .Selected}}false{{else}}true{{end}}">
      <button type="submit" aria-pressed="{{.Selected}}">{{if .Selected}}&#9745;{{else}}&#9744;{{end}}</button>
    </form>
    <div class="item-details">
      <div class="item-title">{{if .Title}}{{.Title}}{{else}}{{.URL}}{{end}}</div>
      <div class="item-url"><a href="{{.URL}}">{{.URL}}</a></div>
      <div class="item-date">Captured on: {{date .ContentRecord}}</div>
      <div class="item-preview">{{.ContentPreview}}</div>
    </div>
  </div>
{{else}}
  {{if not .LoadError}}<div class="no-items">No content found.</div>{{end}}
{{end}}
</div>
</body>
</html>
`
