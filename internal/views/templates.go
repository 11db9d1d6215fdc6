package views

import (
	"embed"
)

//go:embed templates/*.html
var templateFS embed.FS

func mustTemplate(name string) string {
	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		panic(err)
	}
	return string(content)
}
