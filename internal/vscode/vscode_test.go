package vscode

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vscodeconfigurator/internal/clierror"
	"vscodeconfigurator/internal/config"
)

func writeWorkspaceFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, ".vscode", name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// optionsOf decodes the options of input id from the tasks file on disk.
func optionsOf(t *testing.T, path, id string) []map[string]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Inputs []struct {
			ID      string              `json:"id"`
			Options []map[string]string `json:"options"`
		} `json:"inputs"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("written tasks.json is invalid: %v\n%s", err, raw)
	}
	for _, in := range doc.Inputs {
		if in.ID == id {
			return in.Options
		}
	}
	t.Fatalf("input %s not found", id)
	return nil
}

func addPackage(root, name, friendly string) error {
	tasks, err := PrepareTasks(root, InputPackageName)
	if err != nil {
		return err
	}
	return tasks.AddPackage(name, friendly)
}

func addProject(root, projectPath, friendly string, runnable, watchable bool) error {
	ids := ProjectInputs(runnable, watchable)
	tasks, err := PrepareTasks(root, ids...)
	if err != nil {
		return err
	}
	return tasks.AddProject(projectPath, friendly, ids)
}

const packageTasks = `{
  "version": "2.0.0",
  "tasks": [{"label": "Build", "command": "cargo build && echo <done>"}],
  "inputs": [
    {"id": "packageName", "type": "pickString", "options": []}
  ]
}`

func TestAddPackage(t *testing.T) {
	root := t.TempDir()
	path := writeWorkspaceFile(t, root, "tasks.json", packageTasks)

	if err := addPackage(root, "pkg", "Pkg"); err != nil {
		t.Fatalf("addPackage: %v", err)
	}
	opts := optionsOf(t, path, InputPackageName)
	if len(opts) != 1 || opts[0]["label"] != "Pkg" || opts[0]["value"] != "pkg" {
		t.Fatalf("unexpected options after one add: %v", opts)
	}

	if err := addPackage(root, "pkg", "Pkg"); err != nil {
		t.Fatalf("addPackage: %v", err)
	}
	opts = optionsOf(t, path, InputPackageName)
	if len(opts) != 2 {
		t.Fatalf("expected two entries after two adds, got %v", opts)
	}
}

func TestAddPackageDefaultsFriendlyName(t *testing.T) {
	root := t.TempDir()
	path := writeWorkspaceFile(t, root, "tasks.json", packageTasks)

	if err := addPackage(root, "pkg", ""); err != nil {
		t.Fatal(err)
	}
	opts := optionsOf(t, path, InputPackageName)
	if opts[0]["label"] != "pkg" {
		t.Fatalf("friendly name did not default to the package name: %v", opts)
	}
}

func TestSavePreservesUnknownMembers(t *testing.T) {
	root := t.TempDir()
	path := writeWorkspaceFile(t, root, "tasks.json", packageTasks)

	if err := addPackage(root, "pkg", "Pkg"); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(path)
	out := string(raw)

	for _, want := range []string{
		`"version": "2.0.0"`,
		`"command": "cargo build && echo <done>"`,
		`"type": "pickString"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lost %s:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output should end with a newline: %q", out[len(out)-3:])
	}
	if !strings.Contains(out, "\n  \"inputs\": [") {
		t.Errorf("output is not indented with two spaces:\n%s", out)
	}
}

func TestBareStringOptionsRoundTrip(t *testing.T) {
	root := t.TempDir()
	path := writeWorkspaceFile(t, root, "tasks.json", `{
  "inputs": [
    {"id": "buildProfile", "options": ["dev", "release"]},
    {"id": "packageName", "options": []}
  ]
}`)

	if err := addPackage(root, "pkg", "Pkg"); err != nil {
		t.Fatal(err)
	}

	tasks, err := LoadTasks(path)
	if err != nil {
		t.Fatal(err)
	}
	in, ok := tasks.Input("buildProfile")
	if !ok {
		t.Fatal("buildProfile input lost")
	}
	raw, err := json.Marshal(in.Options)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `["dev","release"]` {
		t.Fatalf("bare options changed: %s", raw)
	}
}

const csharpTasks = `{
  "inputs": [
    {"id": "projectItem", "options": []},
    {"id": "runProject", "options": []},
    {"id": "watchProject", "options": []}
  ]
}`

func TestAddProjectCategories(t *testing.T) {
	tests := []struct {
		name      string
		runnable  bool
		watchable bool
		want      map[string]int
	}{
		{"plain", false, false, map[string]int{InputProjectItem: 1, InputRunProject: 0, InputWatchProject: 0}},
		{"runnable", true, false, map[string]int{InputProjectItem: 1, InputRunProject: 1, InputWatchProject: 0}},
		{"both", true, true, map[string]int{InputProjectItem: 1, InputRunProject: 1, InputWatchProject: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			path := writeWorkspaceFile(t, root, "tasks.json", csharpTasks)

			if err := addProject(root, "src/App/App.csproj", "App", tt.runnable, tt.watchable); err != nil {
				t.Fatalf("addProject: %v", err)
			}
			for id, n := range tt.want {
				opts := optionsOf(t, path, id)
				if len(opts) != n {
					t.Fatalf("%s has %d options, want %d", id, len(opts), n)
				}
				if n == 1 && (opts[0]["label"] != "App" || opts[0]["value"] != "src/App/App.csproj") {
					t.Fatalf("%s has unexpected option %v", id, opts[0])
				}
			}
		})
	}
}

func TestMalformedTasksAbortWithoutWriting(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    clierror.Kind
	}{
		{"no inputs", `{"version": "2.0.0"}`, clierror.InvalidDocument},
		{"missing id", `{"inputs": [{"id": "projectItem", "options": []}]}`, clierror.InvalidDocument},
		{"no options", `{"inputs": [{"id": "projectItem"}, {"id": "runProject", "options": []}]}`, clierror.InvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			path := writeWorkspaceFile(t, root, "tasks.json", tt.content)

			err := addProject(root, "App/App.csproj", "App", true, false)
			if kind, _ := clierror.KindOf(err); kind != tt.kind {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			raw, _ := os.ReadFile(path)
			if string(raw) != tt.content {
				t.Fatalf("file modified on failure: %s", raw)
			}
		})
	}
}

func TestLoadTasksErrors(t *testing.T) {
	root := t.TempDir()

	_, err := LoadTasks(TasksPath(root))
	if kind, _ := clierror.KindOf(err); kind != clierror.FilePathDoesNotExist {
		t.Fatalf("expected FilePathDoesNotExist, got %v", err)
	}

	path := writeWorkspaceFile(t, root, "tasks.json", `{"inputs": [`)
	_, err = LoadTasks(path)
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected a JSON syntax error, got %v", err)
	}
}

func TestUpdateCsharpLsp(t *testing.T) {
	tests := []struct {
		lsp          config.CsharpLsp
		useOmnisharp bool
		serverPath   string
	}{
		{config.CsharpLspDefault, false, ""},
		{config.CsharpLspOmniSharp, true, "latest"},
	}
	for _, tt := range tests {
		t.Run(string(tt.lsp), func(t *testing.T) {
			root := t.TempDir()
			path := writeWorkspaceFile(t, root, "settings.json", `{
  "dotnet.defaultSolution": "Foo.sln",
  "files.exclude": {"**/bin": true}
}`)

			if err := UpdateCsharpLsp(root, tt.lsp); err != nil {
				t.Fatalf("UpdateCsharpLsp: %v", err)
			}

			raw, _ := os.ReadFile(path)
			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				t.Fatal(err)
			}
			if doc["dotnet.server.useOmnisharp"] != tt.useOmnisharp {
				t.Errorf("useOmnisharp = %v", doc["dotnet.server.useOmnisharp"])
			}
			if doc["dotnet.server.path"] != tt.serverPath {
				t.Errorf("server path = %v", doc["dotnet.server.path"])
			}
			if doc["dotnet.defaultSolution"] != "Foo.sln" {
				t.Errorf("default solution lost: %v", doc["dotnet.defaultSolution"])
			}
			if _, ok := doc["files.exclude"]; !ok {
				t.Error("unknown member files.exclude lost")
			}
		})
	}
}
