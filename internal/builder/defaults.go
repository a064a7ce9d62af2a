package builder

// DefaultTemplates are used for every page template the site does not
// provide in its templates directory. `dok new site` writes them out.
var DefaultTemplates = map[string]string{
	partialsTemplate: partialsHTML,
	IndexTemplate:    indexHTML,
	ContentTemplate:  contentHTML,
	ArticleTemplate:  articleHTML,
	ShopTemplate:     shopHTML,
	ShopItemTemplate: shopItemHTML,
	TagTemplate:      tagHTML,
}

const partialsHTML = `{{ define "head" }}
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ if .Title }}{{ .Title }} | {{ end }}{{ .Settings.Title }}</title>
  <meta name="description" content="{{ .Settings.Description }}">
  <link rel="stylesheet" href="assets/main.css">
  <link rel="alternate" type="application/rss+xml" title="{{ .Settings.Title }}" href="rss.xml">
</head>
{{ end }}

{{ define "header" }}
<header class="topbar">
  <a class="topbar__title" href="index.html">{{ .Settings.Title }}</a>
  {{ .Settings.Topbar }}
  <nav><a href="content.html">Content</a></nav>
</header>
{{ end }}

{{ define "footer" }}
<footer>{{ .Settings.Footer }}</footer>
{{ end }}

{{ define "children" }}
{{ $articles := .Articles }}
{{ range .Article.ChildSlugs }}{{ with index $articles . }}
  {{ if .Open }}
  <section class="article--sub" id="{{ .Slug }}">
    <h2><a href="{{ .URL }}">{{ .Title }}</a></h2>
    {{ .Content }}
  </section>
  {{ else if not .Draft }}
  <a class="article__child" href="{{ .URL }}">{{ .Title }} <span>{{ .Published }}</span></a>
  {{ end }}
{{ end }}{{ end }}
{{ end }}

{{ define "backlinks" }}
{{ $articles := .Articles }}
{{ with .Article.BacklinksFrom }}
<aside class="article__backlinks">
  <h2>Backlinks</h2>
  <ul>{{ range . }}{{ with index $articles . }}<li><a href="{{ .URL }}">{{ .Title }}</a></li>{{ end }}{{ end }}</ul>
</aside>
{{ end }}
{{ end }}

{{ define "article-head" }}
{{ $articles := .Articles }}
{{ with .Article }}
{{ if .HasParent }}{{ with index $articles .ParentSlug }}<a class="article__parent" href="{{ .URL }}">{{ .Title }}</a>{{ end }}{{ end }}
<h1>{{ .Title }}</h1>
<p class="article__date">{{ .Published }}{{ if ne .Updated .Published }} · updated {{ .Updated }}{{ end }}</p>
{{ with .Tags }}<ul class="article__tags">{{ range . }}<li><a href="tag-{{ . }}.html">{{ . }}</a></li>{{ end }}</ul>{{ end }}
{{ end }}
{{ end }}`

const indexHTML = `<!DOCTYPE html>
<html lang="{{ .Settings.Language }}">
{{ template "head" . }}
<body>
{{ template "header" . }}
<main class="index">
  <div class="introduction">{{ .Settings.Introduction }}</div>
  <section class="featured">
  {{ range .Ordered }}{{ if and .Featured (not .Draft) }}
    <a class="featured__item" href="{{ .URL }}">
      {{ if .FeaturedImage }}<img src="medias/{{ .MediaSlug }}-{{ .FeaturedImage }}" alt="{{ .Title }}" loading="lazy">{{ end }}
      <h2>{{ .Title }}</h2>
      {{ if .FeaturedDesc }}<p>{{ .FeaturedDesc }}</p>{{ end }}
      {{ if .FeaturedPrice }}<p class="price">{{ .FeaturedPrice }}</p>{{ end }}
    </a>
  {{ end }}{{ end }}
  </section>
  <ul class="articles">
  {{ range .Ordered }}{{ if and (not .HasParent) (not .Draft) }}
    <li><a href="{{ .URL }}">{{ .Title }}</a> <span>{{ .Published }}</span></li>
  {{ end }}{{ end }}
  </ul>
</main>
{{ template "footer" . }}
</body>
</html>
`

const contentHTML = `<!DOCTYPE html>
<html lang="{{ .Settings.Language }}">
{{ template "head" . }}
<body>
{{ template "header" . }}
<main class="content">
  <h1>{{ .Title }}</h1>
  <ul>
  {{ range .Ordered }}{{ if not .Draft }}
    <li class="{{ if .HasParent }}child{{ else }}root{{ end }}"><a href="{{ .URL }}">{{ .Title }}</a> <span>{{ .Published }}</span></li>
  {{ end }}{{ end }}
  </ul>
  {{ with .Tags }}<ul class="tags">{{ range . }}<li><a href="tag-{{ . }}.html">{{ . }}</a></li>{{ end }}</ul>{{ end }}
</main>
{{ template "footer" . }}
</body>
</html>
`

const articleHTML = `<!DOCTYPE html>
<html lang="{{ .Settings.Language }}">
{{ template "head" . }}
<body>
{{ if not .Article.NoInterface }}{{ template "header" . }}{{ end }}
<main class="article">
  {{ template "article-head" . }}
  <nav class="article__toc">{{ .Article.TOC }}</nav>
  <section class="article__content">{{ .Article.Content }}</section>
  {{ template "children" . }}
  {{ template "backlinks" . }}
</main>
{{ if not .Article.NoInterface }}{{ template "footer" . }}{{ end }}
</body>
</html>
`

const shopHTML = `<!DOCTYPE html>
<html lang="{{ .Settings.Language }}">
{{ template "head" . }}
<body>
{{ template "header" . }}
<main class="article shop">
  {{ template "article-head" . }}
  <section class="article__content">{{ .Article.Content }}</section>
  <section class="shop__items">
  {{ $articles := .Articles }}
  {{ range .Article.ChildSlugs }}{{ with index $articles . }}{{ if not .Draft }}
    <a class="shop__item" href="{{ .URL }}">
      {{ if .FeaturedImage }}<img src="medias/{{ .MediaSlug }}-{{ .FeaturedImage }}" alt="{{ .Title }}" loading="lazy">{{ end }}
      <h2>{{ .Title }}</h2>
      {{ if .FeaturedPrice }}<p class="price">{{ .FeaturedPrice }}</p>{{ end }}
    </a>
  {{ end }}{{ end }}{{ end }}
  </section>
</main>
{{ template "footer" . }}
</body>
</html>
`

const shopItemHTML = `<!DOCTYPE html>
<html lang="{{ .Settings.Language }}">
{{ template "head" . }}
<body>
{{ template "header" . }}
<main class="article shop-item">
  {{ template "article-head" . }}
  {{ if .Article.FeaturedPrice }}<p class="price">{{ .Article.FeaturedPrice }}</p>{{ end }}
  <section class="article__content">{{ .Article.Content }}</section>
  {{ template "backlinks" . }}
</main>
{{ template "footer" . }}
</body>
</html>
`

const tagHTML = `<!DOCTYPE html>
<html lang="{{ .Settings.Language }}">
{{ template "head" . }}
<body>
{{ template "header" . }}
<main class="tag">
  <h1>{{ .Title }}</h1>
  <ul>
  {{ range .Tagged }}{{ if not .Draft }}
    <li><a href="{{ .URL }}">{{ .Title }}</a> <span>{{ .Published }}</span></li>
  {{ end }}{{ end }}
  </ul>
</main>
{{ template "footer" . }}
</body>
</html>
`
