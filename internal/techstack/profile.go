package techstack

import (
	"path/filepath"
	"sort"
	"strings"
)

// ChangePatterns tallies line and file-level churn across the analyzed
// commits.
type ChangePatterns struct {
	Additions     int `json:"additions"`
	Deletions     int `json:"deletions"`
	FilesAdded    int `json:"files_added"`
	FilesDeleted  int `json:"files_deleted"`
	FilesModified int `json:"files_modified"`
}

// CommitSummary rolls up the classified commits.
type CommitSummary struct {
	TotalCommits     int      `json:"total_commits"`
	Repositories     []string `json:"repositories"`
	ChangeCategories []string `json:"change_categories"`
}

// Profile is the aggregation root for one tech-stack analysis pass.
// Counts are non-negative and only ever grow during a pass; derived
// top-N views are computed once by Finalize, never incrementally.
type Profile struct {
	User                 string                    `json:"user"`
	PeriodDays           int                       `json:"period_days"`
	ProgrammingLanguages map[string]int            `json:"programming_languages"`
	TechStack            map[string]map[string]int `json:"tech_stack"`
	FileTypes            map[string]int            `json:"file_types"`
	ChangePatterns       ChangePatterns            `json:"change_patterns"`
	CommitSummary        CommitSummary             `json:"commit_summary"`

	TopLanguages []RankedEntry            `json:"top_languages,omitempty"`
	TopTech      map[string][]RankedEntry `json:"top_tech,omitempty"`

	repoSet map[string]struct{}
}

// NewProfile creates an empty profile for one aggregation pass.
func NewProfile(user string, days int) *Profile {
	techStack := make(map[string]map[string]int, len(TechCategoryNames))
	for _, cat := range TechCategoryNames {
		techStack[cat] = map[string]int{}
	}
	return &Profile{
		User:                 user,
		PeriodDays:           days,
		ProgrammingLanguages: map[string]int{},
		TechStack:            techStack,
		FileTypes:            map[string]int{},
		CommitSummary: CommitSummary{
			Repositories:     []string{},
			ChangeCategories: []string{},
		},
		repoSet: map[string]struct{}{},
	}
}

// AddCommit records one classified commit.
func (p *Profile) AddCommit(repoFullName, message string) {
	p.CommitSummary.TotalCommits++
	p.CommitSummary.ChangeCategories = append(p.CommitSummary.ChangeCategories, ClassifyCommit(message))
	if repoFullName != "" {
		p.repoSet[repoFullName] = struct{}{}
	}
}

// AddFile records one changed file from a commit's detail view.
// Language and file-type tallies always update; tech signals are only
// extracted when diff text is present.
func (p *Profile) AddFile(filename, status string, additions, deletions int, patch string) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if lang, ok := languageByExtension[ext]; ok {
			p.ProgrammingLanguages[lang]++
		}
		p.FileTypes[strings.TrimPrefix(ext, ".")]++
	}

	p.ChangePatterns.Additions += additions
	p.ChangePatterns.Deletions += deletions
	switch status {
	case "added":
		p.ChangePatterns.FilesAdded++
	case "removed":
		p.ChangePatterns.FilesDeleted++
	case "modified":
		p.ChangePatterns.FilesModified++
	}

	if patch != "" {
		p.extractTechSignals(patch)
	}
}

// extractTechSignals scans one file's diff text against the tech
// catalog. Each technology increments at most once per diff, on the
// first pattern hit, regardless of how often a pattern repeats.
func (p *Profile) extractTechSignals(patch string) {
	diff := strings.ToLower(patch)
	for _, cat := range TechCategoryNames {
		for _, t := range techCatalog[cat] {
			for _, pattern := range t.patterns {
				if strings.Contains(diff, pattern) {
					p.TechStack[cat][t.name]++
					break
				}
			}
		}
	}
}

// Finalize computes the derived views: the sorted repository list and
// the ranked top-N tables. Call exactly once, after the last Add.
func (p *Profile) Finalize() {
	repos := make([]string, 0, len(p.repoSet))
	for repo := range p.repoSet {
		repos = append(repos, repo)
	}
	sort.Strings(repos)
	p.CommitSummary.Repositories = repos

	p.TopLanguages = TopN(p.ProgrammingLanguages, 10)

	for _, cat := range TechCategoryNames {
		ranked := TopN(p.TechStack[cat], 5)
		if len(ranked) == 0 {
			continue
		}
		if p.TopTech == nil {
			p.TopTech = map[string][]RankedEntry{}
		}
		p.TopTech[cat] = ranked
	}
}

// PrimaryLanguage returns the top-ranked language, or "" when none was
// detected. Valid after Finalize.
func (p *Profile) PrimaryLanguage() string {
	if len(p.TopLanguages) == 0 {
		return ""
	}
	return p.TopLanguages[0].Name
}

// HasTech reports whether a named technology was detected in the given
// category.
func (p *Profile) HasTech(category, name string) bool {
	counts, ok := p.TechStack[category]
	if !ok {
		return false
	}
	return counts[name] > 0
}

// CategoryShare returns the fraction of classified commits carrying the
// given change-category label. Zero when no commits were analyzed.
func (p *Profile) CategoryShare(category string) float64 {
	if len(p.CommitSummary.ChangeCategories) == 0 {
		return 0
	}
	hits := 0
	for _, label := range p.CommitSummary.ChangeCategories {
		if label == category {
			hits++
		}
	}
	return float64(hits) / float64(len(p.CommitSummary.ChangeCategories))
}
