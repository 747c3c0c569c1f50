package manifest

// Environment maps variable names to string values
type Environment map[string]string

// ExecMode represents how the supervisor is asked to run the app
type ExecMode string

const (
	ExecModeFork    ExecMode = "fork"
	ExecModeCluster ExecMode = "cluster"
)

// Well-known environment variables carried by web app descriptors
const (
	EnvKeyNodeEnv     = "NODE_ENV"
	EnvKeyPort        = "PORT"
	EnvKeyNodeOptions = "NODE_OPTIONS"
)

// Manifest is the top-level document handed to a process supervisor
type Manifest struct {
	Apps []App `yaml:"apps" json:"apps" toml:"apps"`
}

// App is a single process descriptor: what to launch and with which
// environment. The supervisor itself is external; every field here is
// declarative data forwarded to it.
type App struct {
	Name             string   `yaml:"name" json:"name" toml:"name"`
	Script           string   `yaml:"script" json:"script" toml:"script"`
	Args             string   `yaml:"args,omitempty" json:"args,omitempty" toml:"args,omitempty"`
	Interpreter      string   `yaml:"interpreter,omitempty" json:"interpreter,omitempty" toml:"interpreter,omitempty"`
	Cwd              string   `yaml:"cwd,omitempty" json:"cwd,omitempty" toml:"cwd,omitempty"`
	Instances        int      `yaml:"instances,omitempty" json:"instances,omitempty" toml:"instances,omitempty"`
	ExecMode         ExecMode `yaml:"exec_mode,omitempty" json:"exec_mode,omitempty" toml:"exec_mode,omitempty"`
	Autorestart      *bool    `yaml:"autorestart,omitempty" json:"autorestart,omitempty" toml:"autorestart,omitempty"` // Pointer to distinguish unset from false
	MaxMemoryRestart string   `yaml:"max_memory_restart,omitempty" json:"max_memory_restart,omitempty" toml:"max_memory_restart,omitempty"`

	// Base environment plus named overlays (production, staging, ...)
	Env         Environment            `yaml:"env,omitempty" json:"env,omitempty" toml:"env,omitempty"`
	EnvProfiles map[string]Environment `yaml:"env_profiles,omitempty" json:"env_profiles,omitempty" toml:"env_profiles,omitempty"`
}

// FindApp returns the descriptor with the given name, or nil.
func (m *Manifest) FindApp(name string) *App {
	for i := range m.Apps {
		if m.Apps[i].Name == name {
			return &m.Apps[i]
		}
	}
	return nil
}
