package vscode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vscodeconfigurator/internal/clierror"
)

// Input ids patched by the add commands.
const (
	InputPackageName  = "packageName"
	InputProjectItem  = "projectItem"
	InputRunProject   = "runProject"
	InputWatchProject = "watchProject"
)

// Option is one entry of a pickString input. VS Code accepts either a bare
// string or a {label, value} object; both forms round-trip unchanged.
type Option struct {
	Label string
	Value string

	bare  bool
	extra members
}

// NewOption returns a {label, value} option.
func NewOption(label, value string) Option {
	return Option{Label: label, Value: value}
}

func (o *Option) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = Option{Label: s, Value: s, bare: true}
		return nil
	}

	var m members
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var opt Option
	if _, err := m.take("label", &opt.Label); err != nil {
		return err
	}
	if _, err := m.take("value", &opt.Value); err != nil {
		return err
	}
	opt.extra = m
	*o = opt
	return nil
}

func (o Option) MarshalJSON() ([]byte, error) {
	if o.bare {
		return marshal(o.Value)
	}
	m := o.extra.clone()
	if err := m.put("label", o.Label); err != nil {
		return nil, err
	}
	if err := m.put("value", o.Value); err != nil {
		return nil, err
	}
	return marshal(m)
}

// Input is an entry of the "inputs" array.
type Input struct {
	ID      string
	Options []Option

	hasOptions bool
	extra      members
}

func (in *Input) UnmarshalJSON(data []byte) error {
	var m members
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var input Input
	if _, err := m.take("id", &input.ID); err != nil {
		return err
	}
	ok, err := m.take("options", &input.Options)
	if err != nil {
		return err
	}
	input.hasOptions = ok
	input.extra = m
	*in = input
	return nil
}

func (in Input) MarshalJSON() ([]byte, error) {
	m := in.extra.clone()
	if err := m.put("id", in.ID); err != nil {
		return nil, err
	}
	if in.hasOptions || len(in.Options) > 0 {
		opts := in.Options
		if opts == nil {
			opts = []Option{}
		}
		if err := m.put("options", opts); err != nil {
			return nil, err
		}
	}
	return marshal(m)
}

// TasksFile is a decoded .vscode/tasks.json.
type TasksFile struct {
	Path   string
	Inputs []Input

	extra members
}

// TasksPath returns the tasks.json location for a workspace root.
func TasksPath(root string) string {
	return filepath.Join(root, ".vscode", "tasks.json")
}

// LoadTasks reads and decodes the tasks file at path. The document must be
// a JSON object with an "inputs" array.
func LoadTasks(path string) (*TasksFile, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, clierror.Newf(clierror.FilePathDoesNotExist,
			"The tasks file '%s' does not exist.", path)
	}
	if err != nil {
		return nil, err
	}

	var m members
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m == nil {
		return nil, clierror.Newf(clierror.InvalidDocument, "'%s' is not a JSON object.", path)
	}

	t := &TasksFile{Path: path}
	ok, err := m.take("inputs", &t.Inputs)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !ok {
		return nil, clierror.Newf(clierror.InvalidDocument,
			"'%s' does not contain an \"inputs\" array.", path)
	}
	t.extra = m
	return t, nil
}

// Input returns the input with the given id.
func (t *TasksFile) Input(id string) (*Input, bool) {
	for i := range t.Inputs {
		if t.Inputs[i].ID == id {
			return &t.Inputs[i], true
		}
	}
	return nil, false
}

// AddOption appends opt to the options of every input with the given id.
// Appending is not idempotent: adding the same option twice yields two
// entries.
func (t *TasksFile) AddOption(id string, opt Option) error {
	if err := t.requireInputs(id); err != nil {
		return err
	}
	for i := range t.Inputs {
		if t.Inputs[i].ID == id {
			t.Inputs[i].Options = append(t.Inputs[i].Options, opt)
			t.Inputs[i].hasOptions = true
		}
	}
	return nil
}

// requireInputs checks that each id has an input with an options array.
func (t *TasksFile) requireInputs(ids ...string) error {
	for _, id := range ids {
		in, ok := t.Input(id)
		if !ok {
			return clierror.Newf(clierror.InvalidDocument,
				"'%s' has no input with id \"%s\".", t.Path, id)
		}
		if !in.hasOptions {
			return clierror.Newf(clierror.InvalidDocument,
				"Input \"%s\" in '%s' has no \"options\" array.", id, t.Path)
		}
	}
	return nil
}

func (t *TasksFile) MarshalJSON() ([]byte, error) {
	m := t.extra.clone()
	inputs := t.Inputs
	if inputs == nil {
		inputs = []Input{}
	}
	if err := m.put("inputs", inputs); err != nil {
		return nil, err
	}
	return marshal(m)
}

// Save writes the document back to Path.
func (t *TasksFile) Save() error {
	return writeDocument(t.Path, t)
}

// PrepareTasks loads the tasks file of root and checks that each id has an
// input with an options array. Commands call it before they change anything
// else in the workspace.
func PrepareTasks(root string, ids ...string) (*TasksFile, error) {
	tasks, err := LoadTasks(TasksPath(root))
	if err != nil {
		return nil, err
	}
	if err := tasks.requireInputs(ids...); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AddPackage registers a Cargo package in the "packageName" input and saves
// the file.
func (t *TasksFile) AddPackage(name, friendly string) error {
	if friendly == "" {
		friendly = name
	}
	if err := t.AddOption(InputPackageName, NewOption(friendly, name)); err != nil {
		return err
	}
	return t.Save()
}

// ProjectInputs returns the inputs a C# project is registered in: always
// "projectItem", plus "runProject" and "watchProject" when flagged.
func ProjectInputs(runnable, watchable bool) []string {
	ids := []string{InputProjectItem}
	if runnable {
		ids = append(ids, InputRunProject)
	}
	if watchable {
		ids = append(ids, InputWatchProject)
	}
	return ids
}

// AddProject registers a C# project in each of ids and saves the file.
// Nothing is written unless every targeted input exists.
func (t *TasksFile) AddProject(projectPath, friendly string, ids []string) error {
	if err := t.requireInputs(ids...); err != nil {
		return err
	}
	opt := NewOption(friendly, projectPath)
	for _, id := range ids {
		if err := t.AddOption(id, opt); err != nil {
			return err
		}
	}
	return t.Save()
}
