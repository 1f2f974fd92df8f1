package editor

import (
	"embed"
	"fmt"
	"strings"

	"github.com/sevigo/wizpro/internal/core"
)

//go:embed templates/*.txt
var templateFiles embed.FS

// Template returns the example snippet for lang. Languages without a snippet
// get the javascript one.
func Template(lang core.Language) string {
	if t, err := readTemplate(lang); err == nil {
		return t
	}
	t, _ := readTemplate(core.DefaultLanguage)
	return t
}

func readTemplate(lang core.Language) (string, error) {
	content, err := templateFiles.ReadFile("templates/" + string(lang) + ".txt")
	if err != nil {
		return "", fmt.Errorf("no template for language %q: %w", lang, err)
	}
	return strings.TrimRight(string(content), "\n"), nil
}
