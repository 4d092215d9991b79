package techstack

// The lookup tables below are ordinary immutable structures evaluated
// once at package init. All keys are lower-case.

// languageByExtension maps a file's final extension (with dot) to a
// language label.
var languageByExtension = map[string]string{
	".go":     "Go",
	".py":     "Python",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".java":   "Java",
	".rb":     "Ruby",
	".php":    "PHP",
	".cs":     "C#",
	".c":      "C",
	".h":      "C",
	".cpp":    "C++",
	".cc":     "C++",
	".hpp":    "C++",
	".rs":     "Rust",
	".kt":     "Kotlin",
	".kts":    "Kotlin",
	".swift":  "Swift",
	".m":      "Objective-C",
	".scala":  "Scala",
	".sh":     "Shell",
	".bash":   "Shell",
	".pl":     "Perl",
	".r":      "R",
	".lua":    "Lua",
	".dart":   "Dart",
	".ex":     "Elixir",
	".exs":    "Elixir",
	".erl":    "Erlang",
	".hs":     "Haskell",
	".clj":    "Clojure",
	".ml":     "OCaml",
	".html":   "HTML",
	".css":    "CSS",
	".scss":   "CSS",
	".less":   "CSS",
	".vue":    "Vue",
	".svelte": "Svelte",
	".sql":    "SQL",
	".yml":    "YAML",
	".yaml":   "YAML",
	".json":   "JSON",
	".md":     "Markdown",
}

// Tech stack category names, in the order they appear in output.
const (
	CategoryFrameworks    = "frameworks"
	CategoryLibraries     = "libraries"
	CategoryTools         = "tools"
	CategoryDatabases     = "databases"
	CategoryCloudServices = "cloud_services"
)

// TechCategoryNames lists the five tech-signal categories in output order.
var TechCategoryNames = []string{
	CategoryFrameworks,
	CategoryLibraries,
	CategoryTools,
	CategoryDatabases,
	CategoryCloudServices,
}

// tech names one technology and the substrings that signal it in diff
// text. A technology counts at most once per file diff, on first hit.
type tech struct {
	name     string
	patterns []string
}

var techCatalog = map[string][]tech{
	CategoryFrameworks: {
		{"react", []string{"from react", "react.", "usestate", "useeffect"}},
		{"vue", []string{"from vue", "vue.component", "definecomponent"}},
		{"angular", []string{"@angular", "ngmodule"}},
		{"svelte", []string{"svelte"}},
		{"nextjs", []string{"next/", "getserversideprops", "getstaticprops"}},
		{"django", []string{"django"}},
		{"flask", []string{"flask"}},
		{"fastapi", []string{"fastapi"}},
		{"rails", []string{"rails", "activerecord"}},
		{"laravel", []string{"laravel", "illuminate\\"}},
		{"spring", []string{"springframework", "@springbootapplication"}},
		{"express", []string{"express()", "require('express')", "require(\"express\")"}},
		{"gin", []string{"gin-gonic", "gin.default()"}},
		{"echo", []string{"labstack/echo"}},
		{"fiber", []string{"gofiber/fiber"}},
		{"flutter", []string{"flutter"}},
		{"dotnet", []string{"microsoft.aspnetcore", "asp.net"}},
	},
	CategoryLibraries: {
		{"pandas", []string{"pandas", "pd.dataframe"}},
		{"numpy", []string{"numpy", "np.array"}},
		{"requests", []string{"import requests"}},
		{"axios", []string{"axios"}},
		{"lodash", []string{"lodash"}},
		{"jquery", []string{"jquery"}},
		{"tensorflow", []string{"tensorflow"}},
		{"pytorch", []string{"torch"}},
		{"scikit-learn", []string{"sklearn"}},
		{"matplotlib", []string{"matplotlib"}},
		{"redux", []string{"redux"}},
		{"rxjs", []string{"rxjs"}},
		{"sqlalchemy", []string{"sqlalchemy"}},
		{"celery", []string{"celery"}},
		{"graphql", []string{"graphql"}},
		{"grpc", []string{"grpc"}},
		{"protobuf", []string{"protobuf", ".proto"}},
	},
	CategoryTools: {
		{"docker", []string{"docker", "dockerfile"}},
		{"kubernetes", []string{"kubernetes", "kubectl", "k8s"}},
		{"terraform", []string{"terraform"}},
		{"ansible", []string{"ansible"}},
		{"jenkins", []string{"jenkins"}},
		{"helm", []string{"helm"}},
		{"webpack", []string{"webpack"}},
		{"vite", []string{"vite"}},
		{"babel", []string{"babel"}},
		{"eslint", []string{"eslint"}},
		{"gradle", []string{"gradle"}},
		{"maven", []string{"pom.xml", "mvn "}},
		{"npm", []string{"package.json", "npm install"}},
		{"yarn", []string{"yarn add", "yarn.lock"}},
		{"pip", []string{"pip install", "requirements.txt"}},
		{"cargo", []string{"cargo.toml", "cargo build"}},
		{"make", []string{"makefile"}},
	},
	CategoryDatabases: {
		{"postgresql", []string{"postgres", "psql"}},
		{"mysql", []string{"mysql"}},
		{"sqlite", []string{"sqlite"}},
		{"mongodb", []string{"mongodb", "mongoose"}},
		{"redis", []string{"redis"}},
		{"elasticsearch", []string{"elasticsearch"}},
		{"cassandra", []string{"cassandra"}},
		{"dynamodb", []string{"dynamodb"}},
		{"mariadb", []string{"mariadb"}},
		{"neo4j", []string{"neo4j"}},
		{"influxdb", []string{"influxdb"}},
		{"memcached", []string{"memcached"}},
		{"clickhouse", []string{"clickhouse"}},
		{"couchdb", []string{"couchdb"}},
		{"oracle", []string{"oracledb", "oracle database"}},
	},
	CategoryCloudServices: {
		{"aws", []string{"aws", "boto3", "amazonaws"}},
		{"s3", []string{"s3://", "s3bucket", "s3.amazonaws"}},
		{"lambda", []string{"aws lambda", "lambda_handler"}},
		{"ec2", []string{"ec2"}},
		{"azure", []string{"azure"}},
		{"gcp", []string{"google cloud", "gcloud", "googleapis"}},
		{"heroku", []string{"heroku"}},
		{"vercel", []string{"vercel"}},
		{"netlify", []string{"netlify"}},
		{"digitalocean", []string{"digitalocean"}},
		{"cloudflare", []string{"cloudflare"}},
		{"firebase", []string{"firebase"}},
		{"kafka", []string{"kafka"}},
		{"sqs", []string{"sqs"}},
		{"cloudfront", []string{"cloudfront"}},
	},
}
