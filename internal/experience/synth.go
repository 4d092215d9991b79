package experience

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/gitscope/internal/activity"
	"github.com/HendryAvila/gitscope/internal/techstack"
)

// List caps and the minimum floor filled with generic sentences.
const (
	maxResponsibilities = 6
	maxAchievements     = 5
	maxMethodologies    = 5
	minListItems        = 3
)

// Estimation constants. These are stated approximations, not measured
// facts: merge rate is assumed at 80% of opened PRs and reviews at one
// per three commits.
const (
	assumedMergeRate      = 0.8
	commitsPerReview      = 3
	maxArtifactReferences = 5
)

// Input carries everything the synthesizer consumes. Profile, Commits
// and Activity are all optional; absent inputs degrade the dependent
// output fields to empty.
type Input struct {
	Username     string
	Organization string
	Repository   string
	PeriodDays   int

	Profile  *techstack.Profile
	Commits  []activity.Commit
	Activity *activity.Summary
}

// Metrics are the numeric highlights. Only TotalCommits is exact; the
// rest derive from event-type tallies and fixed ratios.
type Metrics struct {
	TotalCommits         int     `json:"total_commits"`
	PullRequestsOpened   int     `json:"pull_requests_opened"`
	IssuesWorked         int     `json:"issues_worked"`
	EstimatedMergedPRs   int     `json:"estimated_merged_prs"`
	EstimatedCodeReviews int     `json:"estimated_code_reviews"`
	AssumedMergeRate     float64 `json:"assumed_merge_rate"`
	Note                 string  `json:"note"`
}

// Collaboration captures where and how the user interacted.
type Collaboration struct {
	ActiveRepositories []string       `json:"active_repositories"`
	EventBreakdown     map[string]int `json:"event_breakdown"`
}

// WorkExperience is the synthesized record returned to the caller.
type WorkExperience struct {
	Username         string        `json:"username"`
	Organization     string        `json:"organization,omitempty"`
	Repository       string        `json:"repository,omitempty"`
	PeriodDays       int           `json:"period_days"`
	RoleTitle        string        `json:"role_title_inferred"`
	Technologies     []string      `json:"technologies"`
	Responsibilities []string      `json:"responsibilities"`
	Achievements     []string      `json:"achievements"`
	Methodologies    []string      `json:"methodologies"`
	Metrics          Metrics       `json:"metrics"`
	Collaboration    Collaboration `json:"collaboration"`
	Artifacts        []string      `json:"artifacts,omitempty"`
	Summary          string        `json:"summary"`
}

// Synthesize builds a WorkExperience from the aggregated signals.
// Deterministic given identical inputs.
func Synthesize(in Input) *WorkExperience {
	exp := &WorkExperience{
		Username:     in.Username,
		Organization: in.Organization,
		Repository:   in.Repository,
		PeriodDays:   in.PeriodDays,
		RoleTitle:    InferRole(in.Profile),
		Technologies: topTechnologies(in.Profile, 5),
		Collaboration: Collaboration{
			ActiveRepositories: []string{},
			EventBreakdown:     map[string]int{},
		},
	}

	exp.Responsibilities = capList(responsibilities(in), maxResponsibilities)
	exp.Achievements = capList(achievements(in), maxAchievements)
	exp.Methodologies = capList(methodologies(in), maxMethodologies)

	exp.Metrics = metrics(in)

	if in.Activity != nil {
		exp.Collaboration.ActiveRepositories = in.Activity.Stats.RepositoriesActive
		exp.Collaboration.EventBreakdown = in.Activity.Stats.EventTypes
	}

	for i, commit := range in.Commits {
		if i >= maxArtifactReferences {
			break
		}
		if commit.URL != "" {
			exp.Artifacts = append(exp.Artifacts, commit.URL)
		}
	}

	exp.Summary = narrative(exp)
	return exp
}

func topTechnologies(p *techstack.Profile, n int) []string {
	out := []string{}
	if p == nil {
		return out
	}
	for _, entry := range p.TopLanguages {
		if len(out) >= n {
			return out
		}
		out = append(out, entry.Name)
	}
	for _, cat := range techstack.TechCategoryNames {
		for _, entry := range p.TopTech[cat] {
			if len(out) >= n {
				return out
			}
			out = append(out, entry.Name)
		}
	}
	return out
}

func responsibilities(in Input) []string {
	var out []string
	p := in.Profile

	if p != nil {
		if lang := p.PrimaryLanguage(); lang != "" {
			out = append(out, fmt.Sprintf("Developed and maintained %s codebases across %d repositories.",
				lang, len(p.CommitSummary.Repositories)))
		}
		if p.HasTech(techstack.CategoryTools, "docker") || p.HasTech(techstack.CategoryTools, "kubernetes") {
			out = append(out, "Containerized services and maintained their build and deployment images.")
		}
		if len(p.TopTech[techstack.CategoryDatabases]) > 0 {
			out = append(out, fmt.Sprintf("Designed and evolved data layers backed by %s.",
				joinNames(p.TopTech[techstack.CategoryDatabases], 2)))
		}
		if len(p.TopTech[techstack.CategoryCloudServices]) > 0 {
			out = append(out, fmt.Sprintf("Operated workloads on %s.",
				joinNames(p.TopTech[techstack.CategoryCloudServices], 2)))
		}
		if len(p.TopTech[techstack.CategoryFrameworks]) > 0 {
			out = append(out, fmt.Sprintf("Built application features with %s.",
				joinNames(p.TopTech[techstack.CategoryFrameworks], 2)))
		}
		if p.CategoryShare("testing") > 0.10 {
			out = append(out, "Wrote and maintained automated test suites alongside feature work.")
		}
		if p.CategoryShare("ci") > 0 {
			out = append(out, "Maintained continuous integration pipelines and release workflows.")
		}
	}

	return fillFloor(out,
		"Collaborated with team members on shared codebases.",
		"Participated in code reviews and design discussions.",
		"Contributed to ongoing maintenance and technical improvements.",
	)
}

func achievements(in Input) []string {
	var out []string
	p := in.Profile

	if p != nil {
		total := p.CommitSummary.TotalCommits
		if share := p.CategoryShare("feature"); share > 0.30 {
			out = append(out, fmt.Sprintf("Led feature delivery: %.0f%% of %d recent commits introduced new functionality.",
				share*100, total))
		}
		if share := p.CategoryShare("bugfix"); share > 0.20 {
			out = append(out, "Drove stability work, resolving a substantial share of reported defects.")
		}
		if p.CategoryShare("performance") > 0 {
			out = append(out, "Delivered measurable performance optimizations.")
		}
		if p.CategoryShare("refactor") > 0.15 {
			out = append(out, "Improved long-term code health through sustained refactoring.")
		}
		if len(p.CommitSummary.Repositories) >= 3 {
			out = append(out, fmt.Sprintf("Contributed across %d repositories in the period.",
				len(p.CommitSummary.Repositories)))
		}
	}

	return fillFloor(out,
		"Maintained a consistent contribution cadence on public repositories.",
		"Shipped changes across the full development lifecycle.",
		"Kept project documentation and tooling current.",
	)
}

func methodologies(in Input) []string {
	var out []string
	p := in.Profile

	if p != nil {
		if p.CategoryShare("testing") > 0 {
			out = append(out, "Test-driven development")
		}
		if p.CategoryShare("ci") > 0 || p.HasTech(techstack.CategoryTools, "jenkins") {
			out = append(out, "Continuous integration and delivery")
		}
		if p.HasTech(techstack.CategoryTools, "docker") || p.HasTech(techstack.CategoryTools, "kubernetes") {
			out = append(out, "Containerized deployments")
		}
	}
	if in.Activity != nil && in.Activity.Stats.EventTypes["PullRequestEvent"] > 0 {
		out = append(out, "Pull-request based collaboration")
	}

	return fillFloor(out,
		"Version-controlled, incremental delivery",
		"Issue-driven planning",
		"Collaborative code review",
	)
}

func metrics(in Input) Metrics {
	m := Metrics{
		AssumedMergeRate: assumedMergeRate,
		Note:             "PR, issue, merge and review figures are estimates derived from public event tallies, not measured facts.",
	}
	if in.Profile != nil {
		m.TotalCommits = in.Profile.CommitSummary.TotalCommits
	}
	if in.Activity != nil {
		m.PullRequestsOpened = in.Activity.Stats.EventTypes["PullRequestEvent"]
		m.IssuesWorked = in.Activity.Stats.EventTypes["IssuesEvent"]
	}
	m.EstimatedMergedPRs = int(float64(m.PullRequestsOpened) * assumedMergeRate)
	m.EstimatedCodeReviews = m.TotalCommits / commitsPerReview
	return m
}

// narrative concatenates the headline fields into one paragraph: role,
// organization, top technologies, the first two achievements, and a
// fixed closing sentence.
func narrative(exp *WorkExperience) string {
	var sb strings.Builder

	sb.WriteString(exp.RoleTitle)
	if exp.Organization != "" {
		sb.WriteString(" at ")
		sb.WriteString(exp.Organization)
	}
	if len(exp.Technologies) > 0 {
		sb.WriteString(" working primarily with ")
		sb.WriteString(strings.Join(exp.Technologies, ", "))
	}
	sb.WriteString(". ")

	for i, ach := range exp.Achievements {
		if i >= 2 {
			break
		}
		sb.WriteString(ach)
		sb.WriteString(" ")
	}

	sb.WriteString("All figures are derived from public GitHub activity.")
	return sb.String()
}

func capList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

// fillFloor appends generic filler sentences until the list reaches the
// minimum floor.
func fillFloor(items []string, fillers ...string) []string {
	for _, filler := range fillers {
		if len(items) >= minListItems {
			break
		}
		items = append(items, filler)
	}
	return items
}

func joinNames(entries []techstack.RankedEntry, n int) string {
	names := make([]string, 0, n)
	for _, e := range entries {
		if len(names) >= n {
			break
		}
		names = append(names, e.Name)
	}
	return strings.Join(names, " and ")
}
