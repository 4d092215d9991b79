// Package techstack derives a heuristic technology profile from commit
// history: a change-category per commit message, language counts from
// file extensions, and framework/library/tool/database/cloud signals
// from diff text.
//
// Everything is static-table substring matching — best-effort by
// design, with no fuzzy matching and no correctness guarantee.
package techstack

import "strings"

// CategoryOther is the fallback change-category when no keyword matches.
const CategoryOther = "other"

// changeCategory pairs a category label with the keywords that select it.
type changeCategory struct {
	name     string
	keywords []string
}

// changeCategories is evaluated in order: the first category with a
// case-insensitive substring hit wins. Order encodes priority — "Fix
// login bug" must land on bugfix even though "login" could read as a
// feature elsewhere.
var changeCategories = []changeCategory{
	{"feature", []string{"feat", "feature", "add", "implement", "new"}},
	{"bugfix", []string{"fix", "bug", "issue", "problem", "error"}},
	{"refactor", []string{"refactor", "restructure", "reorganize", "rewrite", "simplify"}},
	{"documentation", []string{"doc", "readme", "comment", "changelog"}},
	{"testing", []string{"test", "spec", "coverage", "mock"}},
	{"styling", []string{"style", "format", "lint", "prettier"}},
	{"performance", []string{"perf", "performance", "optimize", "speed", "faster"}},
	{"security", []string{"security", "vulnerab", "cve", "auth", "sanitize"}},
	{"deployment", []string{"deploy", "release", "ship", "publish"}},
	{"ci", []string{"ci", "pipeline", "workflow", "github action"}},
	{"dependencies", []string{"dependenc", "upgrade", "bump", "update package"}},
	{"configuration", []string{"config", "settings", "env", "setup"}},
	{"database", []string{"database", "migration", "schema", "sql", "query"}},
	{"merge", []string{"merge", "rebase", "cherry-pick"}},
}

// ClassifyCommit maps a commit message to exactly one change-category.
// Deterministic: the same message always yields the same category.
func ClassifyCommit(message string) string {
	msg := strings.ToLower(message)
	for _, cat := range changeCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(msg, kw) {
				return cat.name
			}
		}
	}
	return CategoryOther
}

// ChangeCategories returns the ordered category labels, without the
// fallback. Used by the synthesizer for share calculations and by tests.
func ChangeCategories() []string {
	names := make([]string, len(changeCategories))
	for i, cat := range changeCategories {
		names[i] = cat.name
	}
	return names
}
