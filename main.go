package main

import (
	"vscodeconfigurator/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// vscodeconfigurator bootstraps C# solutions and Rust workspaces pre-wired for VS Code:
//   - `csharp init` / `rust init` run the toolchains (dotnet, cargo, git) to create the
//     project skeleton and copy the .vscode settings and tasks from the bundled templates
//   - `csharp add` / `rust add` register a new project or package with the toolchain and
//     add it to the pickers of .vscode/tasks.json
//   - existing files are never replaced silently: the user is asked first unless --force is given
//
// Error handling strategy:
//   - Every failure, including a toolchain command exiting with a non-zero status,
//     stops the command and is reported in a single error banner
//   - The process exits with status 1 on any error, or when the user quits an overwrite prompt
func main() {
	cmd.Execute()
}
