package model

import (
	"path/filepath"
	"sort"
	"strings"
)

// languageByExtension maps file extensions to language tags used in
// prompts and syntax display.
var languageByExtension = map[string]string{
	".js":     "javascript",
	".jsx":    "javascript",
	".mjs":    "javascript",
	".ts":     "typescript",
	".tsx":    "typescript",
	".py":     "python",
	".go":     "go",
	".java":   "java",
	".rb":     "ruby",
	".php":    "php",
	".c":      "c",
	".h":      "c",
	".cpp":    "cpp",
	".cc":     "cpp",
	".hpp":    "cpp",
	".cs":     "csharp",
	".rs":     "rust",
	".kt":     "kotlin",
	".swift":  "swift",
	".vue":    "vue",
	".svelte": "svelte",
	".html":   "html",
	".css":    "css",
	".scss":   "scss",
	".json":   "json",
	".yaml":   "yaml",
	".yml":    "yaml",
	".sql":    "sql",
	".sh":     "bash",
	".md":     "markdown",
}

// DetectLanguage infers a language tag from a filename's extension.
// Unknown extensions map to "plaintext".
func DetectLanguage(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := languageByExtension[ext]; ok {
		return lang
	}
	return "plaintext"
}

// AcceptedExtensions returns the fixed set of extensions the validator
// allows, sorted for stable error messages.
func AcceptedExtensions() []string {
	exts := make([]string, 0, len(languageByExtension))
	for ext := range languageByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsAcceptedExtension reports whether the filename's extension is in the
// accepted set.
func IsAcceptedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := languageByExtension[ext]
	return ok
}
