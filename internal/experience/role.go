// Package experience synthesizes a work-experience narrative from a
// tech-stack profile, recent commits, and an activity summary.
//
// The synthesis is a pure function: the same inputs always produce the
// same output. Missing optional inputs degrade fields to empty values,
// never to errors.
package experience

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/gitscope/internal/techstack"
)

// RoleFallback is the inferred title when no rule matches.
const RoleFallback = "Software Engineer"

// roleSignals are the boolean category checks the decision table
// evaluates, derived once from a profile.
type roleSignals struct {
	primaryLanguage string // lower-cased, may be ""
	hasDevOps       bool
	hasFrontend     bool
	hasBackend      bool
	hasData         bool
	hasMobile       bool
}

var (
	devOpsTools        = []string{"docker", "kubernetes", "terraform", "ansible", "jenkins", "helm"}
	frontendFrameworks = []string{"react", "vue", "angular", "svelte", "nextjs"}
	backendFrameworks  = []string{"django", "flask", "fastapi", "rails", "laravel", "spring", "express", "gin", "echo", "fiber", "dotnet"}
	backendLanguages   = []string{"go", "java", "python", "ruby", "php", "c#", "kotlin"}
	dataLibraries      = []string{"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn", "matplotlib"}
	mobileFrameworks   = []string{"flutter"}
	mobileLanguages    = []string{"swift", "dart", "objective-c"}
	scriptingLanguages = []string{"python", "javascript", "typescript", "ruby", "php"}
)

func deriveSignals(p *techstack.Profile) roleSignals {
	sig := roleSignals{
		primaryLanguage: strings.ToLower(p.PrimaryLanguage()),
	}
	for _, tool := range devOpsTools {
		if p.HasTech(techstack.CategoryTools, tool) {
			sig.hasDevOps = true
			break
		}
	}
	for _, fw := range frontendFrameworks {
		if p.HasTech(techstack.CategoryFrameworks, fw) {
			sig.hasFrontend = true
			break
		}
	}
	for _, fw := range backendFrameworks {
		if p.HasTech(techstack.CategoryFrameworks, fw) {
			sig.hasBackend = true
			break
		}
	}
	if contains(backendLanguages, sig.primaryLanguage) {
		sig.hasBackend = true
	}
	for _, lib := range dataLibraries {
		if p.HasTech(techstack.CategoryLibraries, lib) {
			sig.hasData = true
			break
		}
	}
	for _, fw := range mobileFrameworks {
		if p.HasTech(techstack.CategoryFrameworks, fw) {
			sig.hasMobile = true
			break
		}
	}
	if contains(mobileLanguages, sig.primaryLanguage) {
		sig.hasMobile = true
	}
	return sig
}

// roleRule is one (predicate, title) pair of the decision table.
type roleRule struct {
	applies func(roleSignals) bool
	title   func(roleSignals) string
}

// roleRules is evaluated in order and the first match wins. The order
// IS the priority: DevOps > Data > Full Stack > Frontend > Backend >
// Mobile > Rust > scripting generic > fallback. Keep it a flat table so
// the priority stays auditable.
var roleRules = []roleRule{
	{
		applies: func(s roleSignals) bool { return s.hasDevOps },
		title:   func(roleSignals) string { return "DevOps Engineer" },
	},
	{
		applies: func(s roleSignals) bool { return s.hasData },
		title:   func(roleSignals) string { return "Data Engineer" },
	},
	{
		applies: func(s roleSignals) bool { return s.hasFrontend && s.hasBackend },
		title:   func(roleSignals) string { return "Full Stack Developer" },
	},
	{
		applies: func(s roleSignals) bool { return s.hasFrontend },
		title:   func(roleSignals) string { return "Frontend Developer" },
	},
	{
		applies: func(s roleSignals) bool { return s.hasBackend },
		title: func(s roleSignals) string {
			if s.primaryLanguage == "" {
				return "Backend Developer"
			}
			return fmt.Sprintf("%s Backend Developer", titleCase(s.primaryLanguage))
		},
	},
	{
		applies: func(s roleSignals) bool { return s.hasMobile },
		title:   func(roleSignals) string { return "Mobile Developer" },
	},
	{
		applies: func(s roleSignals) bool { return s.primaryLanguage == "rust" },
		title:   func(roleSignals) string { return "Rust Developer" },
	},
	{
		applies: func(s roleSignals) bool { return contains(scriptingLanguages, s.primaryLanguage) },
		title: func(s roleSignals) string {
			return fmt.Sprintf("%s Developer", titleCase(s.primaryLanguage))
		},
	},
}

// InferRole runs the decision table over the profile's signals.
func InferRole(p *techstack.Profile) string {
	if p == nil {
		return RoleFallback
	}
	sig := deriveSignals(p)
	for _, rule := range roleRules {
		if rule.applies(sig) {
			return rule.title(sig)
		}
	}
	return RoleFallback
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// titleCase restores display casing for a lower-cased language label.
func titleCase(lang string) string {
	switch lang {
	case "javascript":
		return "JavaScript"
	case "typescript":
		return "TypeScript"
	case "php":
		return "PHP"
	case "c#":
		return "C#"
	default:
		return strings.ToUpper(lang[:1]) + lang[1:]
	}
}
