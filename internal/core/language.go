// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"path/filepath"
	"strings"
)

// Language identifies a programming language supported by the editor.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageJSX        Language = "jsx"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageCSS        Language = "css"
	LanguageJava       Language = "java"
	LanguagePHP        Language = "php"
	LanguageRust       Language = "rust"
	LanguageGo         Language = "go"
	LanguageCSharp     Language = "csharp"
	LanguageSQL        Language = "sql"

	// LanguagePlain is the pass-through grammar used when nothing better is registered.
	LanguagePlain Language = "plain"

	// DefaultLanguage is selected when nothing has been persisted yet.
	DefaultLanguage = LanguageJavaScript
)

// LanguageInfo describes a selectable language.
type LanguageInfo struct {
	ID        Language
	Name      string
	Extension string
}

var languages = []LanguageInfo{
	{ID: LanguageJavaScript, Name: "JavaScript", Extension: "js"},
	{ID: LanguageJSX, Name: "React JSX", Extension: "jsx"},
	{ID: LanguageTypeScript, Name: "TypeScript", Extension: "ts"},
	{ID: LanguagePython, Name: "Python", Extension: "py"},
	{ID: LanguageCSS, Name: "CSS", Extension: "css"},
	{ID: LanguageJava, Name: "Java", Extension: "java"},
	{ID: LanguagePHP, Name: "PHP", Extension: "php"},
	{ID: LanguageRust, Name: "Rust", Extension: "rs"},
	{ID: LanguageGo, Name: "Go", Extension: "go"},
	{ID: LanguageCSharp, Name: "C#", Extension: "cs"},
	{ID: LanguageSQL, Name: "SQL", Extension: "sql"},
}

// tsx has no language of its own and is edited as typescript.
var extensionAliases = map[string]Language{
	"tsx": LanguageTypeScript,
}

// Languages returns the supported languages in display order.
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage returns the info for id, reporting whether it is supported.
func LookupLanguage(id Language) (LanguageInfo, bool) {
	for _, l := range languages {
		if l.ID == id {
			return l, true
		}
	}
	return LanguageInfo{}, false
}

// IsSupported reports whether id is one of the selectable languages.
func (l Language) IsSupported() bool {
	_, ok := LookupLanguage(l)
	return ok
}

// Extension returns the download file extension for the language, or "txt".
func (l Language) Extension() string {
	if info, ok := LookupLanguage(l); ok {
		return info.Extension
	}
	return "txt"
}

// LanguageFromFilename maps a file name to a language by its extension.
func LanguageFromFilename(name string) (Language, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", false
	}
	if lang, ok := extensionAliases[ext]; ok {
		return lang, true
	}
	for _, l := range languages {
		if l.Extension == ext {
			return l.ID, true
		}
	}
	return "", false
}
