package manifest

import (
	"sort"
	"strings"

	"github.com/proc-tools/appman/pkg/errors"
)

// ResolveEnv returns the effective environment of the app: the base env with
// the named profile overlaid on top. An empty profile returns the base env.
func (a *App) ResolveEnv(profile string) (Environment, error) {
	resolved := make(Environment, len(a.Env))
	for key, value := range a.Env {
		resolved[key] = value
	}

	if profile == "" {
		return resolved, nil
	}

	overlay, ok := a.EnvProfiles[profile]
	if !ok {
		return nil, errors.NewNotFoundError(
			"unknown environment profile: "+profile, nil,
		).WithContext("app_name", a.Name)
	}

	for key, value := range overlay {
		resolved[key] = value
	}

	return resolved, nil
}

// Environ renders the effective environment as a sorted KEY=VALUE slice, the
// form supervisors pass to the spawned process. Sorting keeps the output
// deterministic across runs.
func (a *App) Environ(profile string) ([]string, error) {
	env, err := a.ResolveEnv(profile)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	environ := make([]string, 0, len(keys))
	for _, key := range keys {
		environ = append(environ, key+"="+env[key])
	}

	return environ, nil
}

// CommandLine returns the launch argv: interpreter (when set), script, then
// the args string split on whitespace. Quoting inside args is not
// interpreted; descriptors needing shell quoting should wrap the command in a
// script.
func (a *App) CommandLine() []string {
	var argv []string
	if a.Interpreter != "" {
		argv = append(argv, a.Interpreter)
	}
	argv = append(argv, a.Script)
	argv = append(argv, strings.Fields(a.Args)...)
	return argv
}
