package analyzer

import (
	"io/fs"
	"math"
	"path/filepath"
	"sort"
	"strings"
)

// Directory names that hold generated or vendored content. Dot-directories
// are skipped unconditionally on top of this list.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	"target":       true,
	"__pycache__":  true,
	"venv":         true,
	"env":          true,
	"coverage":     true,
	"bower_components": true,
}

// extLanguages maps file extensions to language names. Extensions absent from
// this table are excluded from the language breakdown entirely.
var extLanguages = map[string]string{
	".go":     "Go",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".py":     "Python",
	".rs":     "Rust",
	".rb":     "Ruby",
	".java":   "Java",
	".kt":     "Kotlin",
	".c":      "C",
	".h":      "C",
	".cpp":    "C++",
	".cc":     "C++",
	".hpp":    "C++",
	".cs":     "C#",
	".php":    "PHP",
	".swift":  "Swift",
	".scala":  "Scala",
	".ex":     "Elixir",
	".exs":    "Elixir",
	".erl":    "Erlang",
	".hs":     "Haskell",
	".lua":    "Lua",
	".dart":   "Dart",
	".zig":    "Zig",
	".sh":     "Shell",
	".sql":    "SQL",
	".html":   "HTML",
	".md":     "Markdown",
	".css":    "CSS",
	".scss":   "SCSS",
	".sass":   "SCSS",
	".vue":    "Vue",
	".svelte": "Svelte",
}

var codeExts = map[string]bool{
	".go": true, ".js": true, ".jsx": true, ".mjs": true, ".ts": true, ".tsx": true,
	".py": true, ".rs": true, ".rb": true, ".java": true, ".kt": true,
	".c": true, ".h": true, ".cpp": true, ".cc": true, ".hpp": true, ".cs": true,
	".php": true, ".swift": true, ".scala": true, ".ex": true, ".exs": true,
	".erl": true, ".hs": true, ".lua": true, ".dart": true, ".zig": true,
	".sh": true, ".sql": true, ".html": true, ".css": true, ".scss": true,
	".sass": true, ".vue": true, ".svelte": true,
}

var configExts = map[string]bool{
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true, ".xml": true, ".env": true, ".lock": true,
	".mod": true, ".sum": true,
}

var docExts = map[string]bool{
	".md": true, ".rst": true, ".txt": true, ".adoc": true,
}

var assetExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".ico": true, ".webp": true, ".woff": true, ".woff2": true, ".ttf": true,
	".eot": true, ".mp3": true, ".mp4": true, ".pdf": true,
}

// tallyExtensions walks the repository tree once and counts files per
// extension. Unreadable subtrees are skipped silently; the walk itself never
// fails for a readable root.
func tallyExtensions(root string) map[string]int {
	tally := make(map[string]int)

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		tally[ext]++
		return nil
	})

	return tally
}

// classifyLanguages converts an extension tally into the ordered language
// breakdown. Percentages are computed over classified files only.
func classifyLanguages(tally map[string]int) []Language {
	counts := make(map[string]int)
	classified := 0

	for ext, n := range tally {
		lang, ok := extLanguages[ext]
		if !ok {
			continue
		}
		counts[lang] += n
		classified += n
	}

	if classified == 0 {
		return nil
	}

	languages := make([]Language, 0, len(counts))
	for name, files := range counts {
		languages = append(languages, Language{
			Name:    name,
			Files:   files,
			Percent: int(math.Round(float64(files) / float64(classified) * 100)),
		})
	}

	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Files != languages[j].Files {
			return languages[i].Files > languages[j].Files
		}
		return languages[i].Name < languages[j].Name
	})

	return languages
}

// countFiles buckets the extension tally into coarse file categories.
func countFiles(tally map[string]int) FileCounts {
	var counts FileCounts

	for ext, n := range tally {
		counts.Total += n
		switch {
		case codeExts[ext]:
			counts.Code += n
		case configExts[ext]:
			counts.Config += n
		case docExts[ext]:
			counts.Docs += n
		case assetExts[ext]:
			counts.Assets += n
		}
	}

	return counts
}
