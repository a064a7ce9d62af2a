// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/goliatone/go-slug"

	"dok/internal/builder"
	"dok/internal/content"
	"dok/internal/ident"
)

// CreateNewSite lays out a new site in directory name: settings, default
// templates, a stylesheet and a first article.
func CreateNewSite(name string, now time.Time) error {
	if _, err := os.Stat(filepath.Join(name, "settings.yml")); err == nil {
		return fmt.Errorf("a site already exists in %s", name)
	}
	fmt.Println("Scaffolding new site in:", name)
	mkdir := func(path string) error { return os.MkdirAll(filepath.Join(name, path), 0755) }
	writeFile := func(path, content string) error {
		return os.WriteFile(filepath.Join(name, path), []byte(content), 0644)
	}
	dirs := []string{"content", "assets", "templates"}
	for _, dir := range dirs {
		if err := mkdir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"settings.yml":    settingsContent,
		"assets/main.css": mainCSSContent,
	}
	for tmpl, src := range builder.DefaultTemplates {
		files[filepath.Join("templates", tmpl)] = src
	}
	for path, content := range files {
		if err := writeFile(path, content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}
	if _, err := CreateNewContent(filepath.Join(name, "content"), "Welcome", "", now); err != nil {
		return err
	}

	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", name)
	fmt.Println("  dok serve")
	return nil
}

// Slugify turns a title into the slug part of a folder name. Titles with
// nothing left to slug return "".
func Slugify(title string) string {
	s, err := slug.Normalize(title)
	if err != nil {
		return ""
	}
	return s
}

// CreateNewContent creates the folder of a new Document dated now under
// contentDir, or under parent when it is set, and returns its index path.
func CreateNewContent(contentDir, title, parent string, now time.Time) (string, error) {
	folderSlug := Slugify(title)
	if folderSlug == "" {
		return "", fmt.Errorf("title %q has no usable characters for a slug", title)
	}

	dir := contentDir
	if parent != "" {
		dir = filepath.Join(contentDir, parent)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return "", fmt.Errorf("parent folder %s does not exist", dir)
		}
	}
	folder := filepath.Join(dir, now.Format(ident.DateLayout)+"-"+folderSlug)
	if _, err := os.Stat(folder); err == nil {
		return "", fmt.Errorf("%s already exists", folder)
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}

	tmpl, err := template.New("article").Parse(articleContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse article template: %w", err)
	}
	var output bytes.Buffer
	if err := tmpl.Execute(&output, struct{ Title string }{Title: title}); err != nil {
		return "", fmt.Errorf("failed to execute article template: %w", err)
	}

	path := filepath.Join(folder, content.IndexFile)
	if err := os.WriteFile(path, output.Bytes(), 0644); err != nil {
		return "", err
	}
	fmt.Println("Created:", path)
	return path, nil
}

const settingsContent = `title: My dok site
description: A website made with dok
main_url: https://example.org
language: en
introduction: |
  Welcome to **my dok site**.
footer: Made with dok
topbar: ""
`

const articleContent = `title: {{ .Title }}
draft: False
tags: notes

Write something meaningful here.
`

const mainCSSContent = `body {
  font-family: sans-serif;
  max-width: 760px;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: #222;
  background: #fdfdfd;
}
.topbar { display: flex; justify-content: space-between; align-items: baseline; gap: 1em; margin-bottom: 2em; }
.topbar__title { font-weight: 600; text-decoration: none; color: inherit; }
.article__date { color: #777; font-size: 0.9em; }
.article__tags, .tags { list-style: none; padding: 0; display: flex; gap: 0.5em; }
.article--sub { border-top: 1px solid #ddd; margin-top: 2em; }
.admonition { border-left: 4px solid #888; padding: 0.5em 1em; margin: 1em 0; background: #f4f4f4; }
.admonition-title { font-weight: 600; margin: 0; }
.todo { color: #b35900; }
.table { overflow-x: auto; }
figure { margin: 1.5em 0; text-align: center; }
figure.sm img { max-width: 40%; }
figure.md img { max-width: 70%; }
figure.lg img { max-width: 100%; }
figcaption { color: #777; font-size: 0.9em; }
a.external::after { content: " ↗"; }
a.btn { display: inline-block; padding: 0.4em 1em; border: 1px solid #222; border-radius: 4px; text-decoration: none; }
footer { text-align: center; font-size: 0.9em; color: #555; margin-top: 3em; }
`
