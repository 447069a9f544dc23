package pergola

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Pergulator</title>
<link href="https://fonts.googleapis.com/icon?family=Material+Icons" rel="stylesheet">
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; }
form { display: grid; grid-template-columns: 1fr 1fr; gap: 1em; }
label { display: flex; flex-direction: column; gap: 0.3em; }
.result { display: flex; justify-content: center; align-items: center; height: 100px; }
.badge { font-size: 24px; font-weight: bold; background-color: #4CAF50; color: white;
  padding: 10px 20px; border-radius: 4px; display: flex; align-items: center; gap: 10px; }
.badge .material-icons { font-size: 24px; color: white; }
.error { color: #b00020; }
</style>
</head>
<body>
<h1>Pergulator</h1>
<form method="get" action="/">
{{range .Fields}}<label>{{.Label}}
<input type="number" name="{{.Key}}" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" placeholder="{{.Placeholder}}" value="{{.Current}}" onchange="this.form.submit()">
</label>
{{end}}<noscript><button type="submit">Calculate</button></noscript>
</form>
<div class="result">
{{if .Error}}<p class="error">{{.Error}}</p>{{else}}<span class="badge"><span class="material-icons">cabin</span>{{.Display}}</span>{{end}}
</div>
</body>
</html>
`))

type pageField struct {
	Field
	Current string
}

type pageData struct {
	Fields  []pageField
	Display string
	Error   string
}

// Page renders the calculator for the snapshot carried in the query string.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	data := pageData{}

	input, err := ParseQuery(r.URL.Query())
	if err == nil {
		var res Result
		res, err = Calculate(input)
		data.Display = res.Display
	}
	if err != nil {
		status = http.StatusBadRequest
		data.Error = err.Error()
	}
	for _, f := range Fields() {
		data.Fields = append(data.Fields, pageField{Field: f, Current: f.FormatValue(f.Value(input))})
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		log.Printf("render page: %v", err)
		http.Error(w, "Render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
