package web

import "html/template"

// formData backs both the upload form and the preview page. Error and
// Preview are mutually exclusive.
type formData struct {
	Error   string
	Preview *previewData

	// Sticky form values, echoed back after a failed submit.
	Year  string
	Month string
	Sheet string
	Title string
	Theme string
}

type previewData struct {
	ID       string
	Sheet    string
	Year     int
	Month    int
	Days     int
	Events   int
	Filename string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<title>roomcal</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
fieldset { border: 1px solid #ccc; padding: 1rem; margin-bottom: 1rem; }
label { display: inline-block; min-width: 6rem; }
.row { margin-bottom: .5rem; }
.error { color: #b00020; border: 1px solid #b00020; padding: .5rem 1rem; margin-bottom: 1rem; }
.preview img { max-width: 100%; border: 1px solid #ccc; }
.meta { color: #666; }
</style>
</head>
<body>
<h1>多功能教室月曆</h1>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
<form method="post" action="/render" enctype="multipart/form-data">
<fieldset>
<div class="row"><label for="workbook">登記表 (xlsx)</label><input type="file" id="workbook" name="workbook" accept=".xlsx" required></div>
<div class="row"><label for="year">年 (西元)</label><input type="number" id="year" name="year" value="{{.Year}}"></div>
<div class="row"><label for="month">月</label><input type="number" id="month" name="month" min="1" max="12" value="{{.Month}}"></div>
<div class="row"><label for="sheet">工作表</label><input type="text" id="sheet" name="sheet" value="{{.Sheet}}" placeholder="留空則依年月推算"></div>
<div class="row"><label for="title">標題</label><input type="text" id="title" name="title" value="{{.Title}}"></div>
<div class="row"><label for="theme">配色</label>
<select id="theme" name="theme">
<option value="light"{{if ne .Theme "dark"}} selected{{end}}>亮色</option>
<option value="dark"{{if eq .Theme "dark"}} selected{{end}}>暗色</option>
</select></div>
<button type="submit">產生月曆</button>
</fieldset>
</form>
{{with .Preview}}
<div class="preview">
<p class="meta">{{.Sheet}} — {{.Year}}/{{printf "%02d" .Month}}，{{.Days}} 天共 {{.Events}} 筆</p>
<img src="/image/{{.ID}}" alt="calendar preview">
<p><a href="/download/{{.ID}}" download="{{.Filename}}">下載 {{.Filename}}</a></p>
</div>
{{end}}
</body>
</html>
`))
