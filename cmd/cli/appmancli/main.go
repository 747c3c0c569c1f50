package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/proc-tools/appman/pkg/errors"
	"github.com/proc-tools/appman/pkg/logging"
	"github.com/proc-tools/appman/pkg/manifest"
	"github.com/proc-tools/appman/pkg/manifestfile"
)

var (
	cfg    *settings
	logger logging.Logger
)

type manifestOptions struct {
	File string `long:"file" short:"f" description:"path to the manifest file"`
}

// resolveManifestPath picks the manifest: explicit flag, configured default,
// or discovery in the standard locations.
func resolveManifestPath(opts manifestOptions) (string, error) {
	if opts.File != "" {
		return opts.File, nil
	}
	if cfg.Manifest != "" {
		return cfg.Manifest, nil
	}

	manager := manifestfile.NewManager(manifestfile.Config{}, logger)
	return manager.Discover()
}

func loadManifest(opts manifestOptions) (string, *manifest.Manifest, error) {
	path, err := resolveManifestPath(opts)
	if err != nil {
		return "", nil, err
	}

	m, err := manifest.LoadFromFile(path)
	if err != nil {
		return "", nil, err
	}

	return path, m, nil
}

type validateCommand struct {
	manifestOptions
}

func (c *validateCommand) Execute(args []string) error {
	path, m, err := loadManifest(c.manifestOptions)
	if err != nil {
		return err
	}

	if err := manifest.Validate(m); err != nil {
		return err
	}

	logger.Infof("Manifest is valid, path: %s, apps: %d", path, len(m.Apps))
	return nil
}

type showCommand struct {
	manifestOptions
}

func (c *showCommand) Execute(args []string) error {
	path, m, err := loadManifest(c.manifestOptions)
	if err != nil {
		return err
	}

	logger.Infof("Manifest: %s, apps: %d", path, len(m.Apps))
	for _, app := range m.Apps {
		logger.Infof("App, name: %s, command: %v, exec_mode: %s, instances: %d, env_vars: %d",
			app.Name, app.CommandLine(), app.ExecMode, app.Instances, len(app.Env))
		if app.Cwd != "" {
			logger.Infof("  working directory: %s", app.Cwd)
		}
		if app.MaxMemoryRestart != "" {
			logger.Infof("  max memory before restart: %s", app.MaxMemoryRestart)
		}
	}
	return nil
}

type envCommand struct {
	manifestOptions
	App     string `long:"app" description:"app name (defaults to the only app in the manifest)"`
	Profile string `long:"profile" short:"p" description:"environment profile to overlay"`
}

func (c *envCommand) Execute(args []string) error {
	_, m, err := loadManifest(c.manifestOptions)
	if err != nil {
		return err
	}

	app, err := selectApp(m, c.App)
	if err != nil {
		return err
	}

	profile := c.Profile
	if profile == "" {
		profile = cfg.Profile
	}

	environ, err := app.Environ(profile)
	if err != nil {
		return err
	}

	for _, entry := range environ {
		fmt.Println(entry)
	}
	return nil
}

type convertCommand struct {
	manifestOptions
	Out string `long:"out" short:"o" required:"true" description:"output manifest path"`
}

func (c *convertCommand) Execute(args []string) error {
	path, m, err := loadManifest(c.manifestOptions)
	if err != nil {
		return err
	}

	if err := manifest.Validate(m); err != nil {
		return err
	}

	if err := manifest.SaveToFile(m, c.Out); err != nil {
		return err
	}

	logger.Infof("Converted manifest, from: %s, to: %s", path, c.Out)
	return nil
}

func selectApp(m *manifest.Manifest, name string) (*manifest.App, error) {
	if name != "" {
		app := m.FindApp(name)
		if app == nil {
			return nil, errors.NewNotFoundError("no app with name: "+name, nil)
		}
		return app, nil
	}

	if len(m.Apps) == 1 {
		return &m.Apps[0], nil
	}

	return nil, errors.NewValidationError(
		fmt.Sprintf("manifest declares %d apps, select one with --app", len(m.Apps)), nil)
}

func main() {
	var err error
	cfg, err = loadSettings()
	if err != nil {
		fmt.Printf("Settings loading failed: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Logger setup failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	logger = logging.NewLogger("appman: ", logging.LogFuncs{
		Debugf: zapLogger.Debugf,
		Infof:  zapLogger.Infof,
		Warnf:  zapLogger.Warnf,
		Errorf: zapLogger.Errorf,
	})

	parser := flags.NewParser(nil, flags.HelpFlag|flags.PassDoubleDash)
	parser.AddCommand("validate", "Validate a manifest",
		"Load a process manifest and check it against the schema rules.", &validateCommand{})
	parser.AddCommand("show", "Show manifest contents",
		"Log a summary of every app descriptor in the manifest.", &showCommand{})
	parser.AddCommand("env", "Print the resolved environment",
		"Print the effective KEY=VALUE environment of an app, with an optional profile overlaid.", &envCommand{})
	parser.AddCommand("convert", "Convert between manifest formats",
		"Re-encode a manifest as YAML, JSON or TOML based on the output file extension.", &convertCommand{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		logger.Errorf("Command failed: %v", err)
		os.Exit(1)
	}
}
