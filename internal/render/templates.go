package render

// 各模板变体的版式固定，互相独立；公共的条目块（经历/教育/
// 项目/自定义段落）以命名子模板共享，排布由变体自己决定。

const partialsHTML = `
{{define "experience"}}
{{if .Data.Experience}}
<section class="block">
  <h2 style="{{$.HeadingCSS}}">Experience</h2>
  {{range .Data.Experience}}
  <div class="entry entry-{{$.Custom.EntryLayout.LayoutType}}">
    <div class="entry-head">
      <span class="entry-title">{{.Title}}</span>
      {{if .Dates}}<span class="entry-dates">{{.Dates}}</span>{{end}}
    </div>
    {{if .Company}}<div class="entry-subtitle entry-subtitle-{{$.Custom.EntryLayout.SubtitleStyle}}">{{.Company}}</div>{{end}}
    {{if .Achievements}}
    <ul class="entry-body{{if $.Custom.EntryLayout.IndentBody}} indent{{end}} list-{{$.Custom.EntryLayout.ListStyle}}">
      {{range .Achievements}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}
  </div>
  {{end}}
</section>
{{end}}
{{end}}

{{define "education"}}
{{if .Data.Education}}
<section class="block">
  <h2 style="{{$.HeadingCSS}}">Education</h2>
  {{range .Data.Education}}
  <div class="entry entry-{{$.Custom.EntryLayout.LayoutType}}">
    <div class="entry-head">
      <span class="entry-title">{{.Degree}}</span>
      {{if .Dates}}<span class="entry-dates">{{.Dates}}</span>{{end}}
    </div>
    {{if .Institution}}<div class="entry-subtitle entry-subtitle-{{$.Custom.EntryLayout.SubtitleStyle}}">{{.Institution}}</div>{{end}}
    {{if .Details}}
    <ul class="entry-body{{if $.Custom.EntryLayout.IndentBody}} indent{{end}} list-{{$.Custom.EntryLayout.ListStyle}}">
      {{range .Details}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}
  </div>
  {{end}}
</section>
{{end}}
{{end}}

{{define "projects"}}
{{if .Data.Projects}}
<section class="block">
  <h2 style="{{$.HeadingCSS}}">Projects</h2>
  {{range .Data.Projects}}
  <div class="entry">
    <div class="entry-head">
      <span class="entry-title">{{.Name}}</span>
      {{if .Dates}}<span class="entry-dates">{{.Dates}}</span>{{end}}
    </div>
    {{if .TechStack}}<div class="entry-subtitle">{{.TechStack}}</div>{{end}}
    {{if .Description}}<p class="entry-desc">{{.Description}}</p>{{end}}
    {{if .Link}}<div class="entry-link">{{.Link}}</div>{{end}}
  </div>
  {{end}}
</section>
{{end}}
{{end}}

{{define "additional"}}
{{if .Data.HasAdditionalInfo}}
<section class="block">
  <h2 style="{{$.HeadingCSS}}">Additional Information</h2>
  {{with .Data.AdditionalInfo}}
  {{if .Languages}}<p><strong>Languages:</strong> {{join .Languages ", "}}</p>{{end}}
  {{if .Certifications}}<p><strong>Certifications:</strong> {{join .Certifications ", "}}</p>{{end}}
  {{if .Awards}}<p><strong>Awards:</strong> {{join .Awards ", "}}</p>{{end}}
  {{end}}
</section>
{{end}}
{{end}}

{{define "custom"}}
{{range .Data.SortedCustomSections}}
<section class="block">
  <h2 style="{{$.HeadingCSS}}">{{.Title}}</h2>
  {{if eq .Type "text"}}
    <p>{{.Text}}</p>
  {{else if eq .Type "list"}}
    <ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
  {{else if eq .Type "grid"}}
    <div class="tag-grid">{{range .Items}}<span class="tag">{{.}}</span>{{end}}</div>
  {{else}}
    {{if .Text}}<p>{{.Text}}</p>{{end}}
    {{range .Entries}}
    <div class="entry">
      <div class="entry-head">
        <span class="entry-title">{{.Heading}}</span>
        {{if .Dates}}<span class="entry-dates">{{.Dates}}</span>{{end}}
      </div>
      {{if .Body}}<p class="entry-desc">{{.Body}}</p>{{end}}
    </div>
    {{end}}
    {{if .Items}}<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{end}}
  {{end}}
</section>
{{end}}
{{end}}

{{define "skills-inline"}}
{{if or .Data.Skills.Technical .Data.Skills.Professional}}
<section class="block">
  <h2 style="{{.HeadingCSS}}">Skills</h2>
  {{if .Data.Skills.Technical}}<p><strong>Technical:</strong> {{join .Data.Skills.Technical ", "}}</p>{{end}}
  {{if .Data.Skills.Professional}}<p><strong>Professional:</strong> {{join .Data.Skills.Professional ", "}}</p>{{end}}
</section>
{{end}}
{{end}}

{{define "contact-line"}}
<div class="contact">
  {{with .Data.PersonalInfo}}
  {{if .Email}}<span>{{.Email}}</span>{{end}}
  {{if .Phone}}<span>{{.Phone}}</span>{{end}}
  {{if .Location}}<span>{{.Location}}</span>{{end}}
  {{if .Website}}<span>{{.Website}}</span>{{end}}
  {{if .LinkedIn}}<span>{{.LinkedIn}}</span>{{end}}
  {{end}}
</div>
{{end}}

{{define "base-style"}}
.page { max-width: 794px; margin: 0 auto; }
.block { margin-bottom: 8px; }
.entry { margin-bottom: 8px; }
.entry-head { display: flex; justify-content: space-between; }
.entry-title { font-weight: 600; }
.entry-dates { white-space: nowrap; }
.entry-subtitle-italic { font-style: italic; }
.entry-subtitle-bold { font-weight: 700; }
.entry-compact .entry-head { display: inline; }
.entry-two-column { display: grid; grid-template-columns: 1fr 3fr; gap: 8px; }
.entry-body { margin: 4px 0 0 0; padding-left: 18px; }
.entry-body.indent { margin-left: 12px; }
.list-dash { list-style-type: "- "; }
.list-none { list-style-type: none; padding-left: 0; }
.contact span + span::before { content: " · "; }
.tag-grid { display: flex; flex-wrap: wrap; gap: 4px; }
.tag { border: 1px solid currentColor; border-radius: 3px; padding: 1px 6px; }
{{end}}
`

// Executive Classic：单栏、居中头部、传统排序。
const executiveClassicHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>{{template "base-style"}}
.header { text-align: center; margin-bottom: 12px; }
.title-sep { border: 0; border-top: 1px solid {{.Custom.Theme.Border}}; margin: 6px auto; width: 40%; }
</style>
</head>
<body style="{{.PageCSS}}">
<div class="page">
  <header class="header">
    <h1 style="{{.NameCSS}}">{{.Data.PersonalInfo.Name}}</h1>
    {{if .Data.PersonalInfo.Title}}
      {{if eq .Custom.Title.Position "same-line"}}{{else}}<hr class="title-sep">{{end}}
      <div class="person-title">{{.Data.PersonalInfo.Title}}</div>
    {{end}}
    {{template "contact-line" .}}
  </header>
  {{if .Data.Summary}}
  <section class="block">
    <h2 style="{{.HeadingCSS}}">Professional Summary</h2>
    <p>{{.Data.Summary}}</p>
  </section>
  {{end}}
  {{template "experience" .}}
  {{template "education" .}}
  {{template "skills-inline" .}}
  {{template "projects" .}}
  {{template "additional" .}}
  {{template "custom" .}}
</div>
</body>
</html>
`

// Creative Designer：左侧强调色栏放技能/附加信息，右侧主栏。
const creativeDesignerHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>{{template "base-style"}}
.columns { display: grid; grid-template-columns: 1fr 2fr; gap: 16px; }
.side { border-right: 3px solid {{.Accent}}; padding-right: 12px; }
.header { margin-bottom: 12px; }
.person-title { color: {{.Accent}}; }
</style>
</head>
<body style="{{.PageCSS}}">
<div class="page">
  <header class="header">
    <h1 style="{{.NameCSS}}">{{.Data.PersonalInfo.Name}}{{if and .Data.PersonalInfo.Title (eq .Custom.Title.Position "same-line")}} <span class="person-title">— {{.Data.PersonalInfo.Title}}</span>{{end}}</h1>
    {{if and .Data.PersonalInfo.Title (ne .Custom.Title.Position "same-line")}}<div class="person-title">{{.Data.PersonalInfo.Title}}</div>{{end}}
    {{template "contact-line" .}}
  </header>
  <div class="columns">
    <aside class="side">
      {{if .Data.Skills.Technical}}
      <section class="block">
        <h2 style="{{.HeadingCSS}}">Skills</h2>
        <div class="tag-grid">{{range .Data.Skills.Technical}}<span class="tag">{{.}}</span>{{end}}</div>
      </section>
      {{end}}
      {{if .Data.Skills.Professional}}
      <section class="block">
        <h2 style="{{.HeadingCSS}}">Strengths</h2>
        <ul class="list-none">{{range .Data.Skills.Professional}}<li>{{.}}</li>{{end}}</ul>
      </section>
      {{end}}
      {{template "additional" .}}
    </aside>
    <main>
      {{if .Data.Summary}}
      <section class="block">
        <h2 style="{{.HeadingCSS}}">About</h2>
        <p>{{.Data.Summary}}</p>
      </section>
      {{end}}
      {{template "experience" .}}
      {{template "projects" .}}
      {{template "education" .}}
      {{template "custom" .}}
    </main>
  </div>
</div>
</body>
</html>
`

// Modern Minimal：扁平单栏，项目优先于教育。
const modernMinimalHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>{{template "base-style"}}
.header { margin-bottom: 16px; }
.person-title { letter-spacing: 2px; text-transform: uppercase; }
</style>
</head>
<body style="{{.PageCSS}}">
<div class="page">
  <header class="header">
    <h1 style="{{.NameCSS}}">{{.Data.PersonalInfo.Name}}</h1>
    {{if .Data.PersonalInfo.Title}}<div class="person-title">{{.Data.PersonalInfo.Title}}</div>{{end}}
    {{template "contact-line" .}}
  </header>
  {{if .Data.Summary}}<p class="block">{{.Data.Summary}}</p>{{end}}
  {{template "experience" .}}
  {{template "projects" .}}
  {{template "education" .}}
  {{template "skills-inline" .}}
  {{template "additional" .}}
  {{template "custom" .}}
</div>
</body>
</html>
`

// Timeline Pro：经历/教育沿强调色时间线排布。
const timelineProHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>{{template "base-style"}}
.header { margin-bottom: 12px; }
.timeline { border-left: 2px solid {{.Accent}}; padding-left: 14px; }
.timeline .entry { position: relative; }
.timeline .entry::before { content: ""; position: absolute; left: -19px; top: 4px; width: 8px; height: 8px; border-radius: 50%; background: {{.Accent}}; }
</style>
</head>
<body style="{{.PageCSS}}">
<div class="page">
  <header class="header">
    <h1 style="{{.NameCSS}}">{{.Data.PersonalInfo.Name}}</h1>
    {{if .Data.PersonalInfo.Title}}<div class="person-title">{{.Data.PersonalInfo.Title}}</div>{{end}}
    {{template "contact-line" .}}
  </header>
  {{if .Data.Summary}}
  <section class="block">
    <h2 style="{{.HeadingCSS}}">Summary</h2>
    <p>{{.Data.Summary}}</p>
  </section>
  {{end}}
  {{if .Data.Experience}}
  <section class="block">
    <h2 style="{{.HeadingCSS}}">Experience</h2>
    <div class="timeline">
      {{range .Data.Experience}}
      <div class="entry">
        <div class="entry-head">
          <span class="entry-title">{{.Title}}</span>
          {{if .Dates}}<span class="entry-dates">{{.Dates}}</span>{{end}}
        </div>
        {{if .Company}}<div class="entry-subtitle entry-subtitle-italic">{{.Company}}</div>{{end}}
        {{if .Achievements}}<ul class="entry-body">{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
      </div>
      {{end}}
    </div>
  </section>
  {{end}}
  {{if .Data.Education}}
  <section class="block">
    <h2 style="{{.HeadingCSS}}">Education</h2>
    <div class="timeline">
      {{range .Data.Education}}
      <div class="entry">
        <div class="entry-head">
          <span class="entry-title">{{.Degree}}</span>
          {{if .Dates}}<span class="entry-dates">{{.Dates}}</span>{{end}}
        </div>
        {{if .Institution}}<div class="entry-subtitle entry-subtitle-italic">{{.Institution}}</div>{{end}}
      </div>
      {{end}}
    </div>
  </section>
  {{end}}
  {{template "skills-inline" .}}
  {{template "projects" .}}
  {{template "additional" .}}
  {{template "custom" .}}
</div>
</body>
</html>
`
