package experience

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HendryAvila/gitscope/internal/techstack"
)

// profileWith builds a finalized profile from file fixtures. Each entry
// is filename plus a diff snippet feeding the tech pattern scan.
func profileWith(t *testing.T, files map[string]string) *techstack.Profile {
	t.Helper()
	p := techstack.NewProfile("alice", 365)
	for name, patch := range files {
		p.AddFile(name, "modified", 1, 0, patch)
	}
	p.Finalize()
	return p
}

func TestInferRole_NilProfile(t *testing.T) {
	assert.Equal(t, RoleFallback, InferRole(nil))
}

func TestInferRole_EmptyProfile(t *testing.T) {
	p := techstack.NewProfile("alice", 365)
	p.Finalize()
	assert.Equal(t, RoleFallback, InferRole(p))
}

func TestInferRole_DevOpsBeatsEverything(t *testing.T) {
	p := profileWith(t, map[string]string{
		"deploy.sh": "docker build -t app .",
		"app.py":    "from flask import Flask\nimport pandas",
	})
	assert.Equal(t, "DevOps Engineer", InferRole(p))
}

func TestInferRole_DataBeatsBackend(t *testing.T) {
	p := profileWith(t, map[string]string{
		"analysis.py": "import pandas as pd\nfrom flask import Flask",
	})
	assert.Equal(t, "Data Engineer", InferRole(p))
}

func TestInferRole_FullStack(t *testing.T) {
	p := profileWith(t, map[string]string{
		"App.jsx": "const [count, setCount] = useState(0)",
		"api.py":  "from flask import Flask",
	})
	assert.Equal(t, "Full Stack Developer", InferRole(p))
}

func TestInferRole_FrontendOnly(t *testing.T) {
	p := profileWith(t, map[string]string{
		"App.vue": "export default defineComponent({})",
	})
	// .vue maps to Vue, not a backend language, so frontend wins.
	assert.Equal(t, "Frontend Developer", InferRole(p))
}

func TestInferRole_BackendWithPrimaryLanguage(t *testing.T) {
	p := profileWith(t, map[string]string{
		"server.go": "r := gin.Default()",
	})
	assert.Equal(t, "Go Backend Developer", InferRole(p))
}

func TestInferRole_BackendLanguageAlone(t *testing.T) {
	p := profileWith(t, map[string]string{
		"main.go": "",
	})
	assert.Equal(t, "Go Backend Developer", InferRole(p))
}

func TestInferRole_Mobile(t *testing.T) {
	p := profileWith(t, map[string]string{
		"View.swift": "",
	})
	assert.Equal(t, "Mobile Developer", InferRole(p))
}

func TestInferRole_Rust(t *testing.T) {
	p := profileWith(t, map[string]string{
		"main.rs": "",
	})
	assert.Equal(t, "Rust Developer", InferRole(p))
}

func TestInferRole_ScriptingFallthrough(t *testing.T) {
	p := profileWith(t, map[string]string{
		"script.js": "",
	})
	assert.Equal(t, "JavaScript Developer", InferRole(p))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "JavaScript", titleCase("javascript"))
	assert.Equal(t, "TypeScript", titleCase("typescript"))
	assert.Equal(t, "PHP", titleCase("php"))
	assert.Equal(t, "C#", titleCase("c#"))
	assert.Equal(t, "Go", titleCase("go"))
}
