package skills

// Level distinguishes general-purpose languages from markup, styling and
// component-framework entries in the language breakdown.
type Level string

const (
	LevelLanguage  Level = "language"
	LevelMarkup    Level = "markup"
	LevelStyling   Level = "styling"
	LevelFramework Level = "framework"
)

// languageLevels overrides the default LevelLanguage classification.
var languageLevels = map[string]Level{
	"HTML":     LevelMarkup,
	"Markdown": LevelMarkup,
	"CSS":      LevelStyling,
	"SCSS":     LevelStyling,
	"Vue":      LevelFramework,
	"Svelte":   LevelFramework,
}

// languageAliases lists alternate names job postings use for a language.
var languageAliases = map[string][]string{
	"JavaScript": {"js", "node", "nodejs", "node.js"},
	"TypeScript": {"ts"},
	"Python":     {"py", "python3"},
	"Go":         {"golang"},
	"C#":         {"csharp", ".net", "dotnet"},
	"C++":        {"cpp"},
	"Shell":      {"bash"},
}

// FrameworkMeta describes how a detected pattern surfaces as a framework
// skill. Weight inflates the proficiency ratio for frameworks that signal
// deeper investment than their raw repository count suggests.
type FrameworkMeta struct {
	Name     string
	Category string
	Weight   float64
}

// frameworkTable maps pattern tags to framework metadata. Patterns without an
// entry stay plain patterns and never become framework skills.
var frameworkTable = map[string]FrameworkMeta{
	"react":      {Name: "React", Category: "frontend", Weight: 1.3},
	"nextjs":     {Name: "Next.js", Category: "frontend", Weight: 1.3},
	"vue":        {Name: "Vue", Category: "frontend", Weight: 1.2},
	"svelte":     {Name: "Svelte", Category: "frontend", Weight: 1.1},
	"tailwind":   {Name: "Tailwind CSS", Category: "frontend", Weight: 1.0},
	"express":    {Name: "Express", Category: "backend", Weight: 1.2},
	"fastify":    {Name: "Fastify", Category: "backend", Weight: 1.1},
	"django":     {Name: "Django", Category: "backend", Weight: 1.3},
	"flask":      {Name: "Flask", Category: "backend", Weight: 1.1},
	"fastapi":    {Name: "FastAPI", Category: "backend", Weight: 1.2},
	"gin":        {Name: "Gin", Category: "backend", Weight: 1.2},
	"actix":      {Name: "Actix", Category: "backend", Weight: 1.2},
	"tokio":      {Name: "Tokio", Category: "backend", Weight: 1.2},
	"docker":     {Name: "Docker", Category: "devops", Weight: 1.2},
	"kubernetes": {Name: "Kubernetes", Category: "devops", Weight: 1.5},
	"terraform":  {Name: "Terraform", Category: "devops", Weight: 1.4},
	"ci":         {Name: "CI/CD", Category: "devops", Weight: 1.1},
	"postgres":   {Name: "PostgreSQL", Category: "database", Weight: 1.2},
	"mongodb":    {Name: "MongoDB", Category: "database", Weight: 1.1},
	"redis":      {Name: "Redis", Category: "database", Weight: 1.1},
	"gorm":       {Name: "GORM", Category: "database", Weight: 1.0},
	"migrations": {Name: "Schema migrations", Category: "database", Weight: 1.0},
	"testing":    {Name: "Automated testing", Category: "practices", Weight: 1.0},
	"cli":        {Name: "CLI tooling", Category: "tooling", Weight: 1.0},
}

// patternDomains maps pattern tags to human-readable expertise areas.
var patternDomains = map[string]string{
	"docker":     "DevOps",
	"kubernetes": "DevOps",
	"terraform":  "DevOps",
	"ci":         "DevOps",
	"testing":    "Quality engineering",
	"migrations": "Databases",
}

// categoryDomains maps framework categories to expertise areas.
var categoryDomains = map[string]string{
	"frontend":  "Web frontend",
	"backend":   "Backend services",
	"database":  "Databases",
	"devops":    "DevOps",
	"tooling":   "Developer tooling",
	"practices": "Quality engineering",
}
