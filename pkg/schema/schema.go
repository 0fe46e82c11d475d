// Package schema defines the configuration and manifest types for matrixci.
package schema

// Configuration is the CLI configuration loaded from `matrixci.yaml`
// (system dir, home dir, current dir, ENV vars, command-line arguments).
type Configuration struct {
	BasePath     string             `yaml:"base_path" json:"base_path" mapstructure:"base_path"`
	Logs         Logs               `yaml:"logs" json:"logs" mapstructure:"logs"`
	Commands     Commands           `yaml:"commands" json:"commands" mapstructure:"commands"`
	Interpreter  InterpreterConfig  `yaml:"interpreter" json:"interpreter" mapstructure:"interpreter"`
	ManifestPath string             `yaml:"manifest_path,omitempty" json:"manifest_path,omitempty" mapstructure:"manifest_path"`

	// CliConfigPath is the path of the config file that was actually loaded.
	CliConfigPath string `yaml:"-" json:"-" mapstructure:"-"`
}

// Logs configures the log destination and level.
type Logs struct {
	File  string `yaml:"file,omitempty" json:"file,omitempty" mapstructure:"file"`
	Level string `yaml:"level,omitempty" json:"level,omitempty" mapstructure:"level"`
}

// Commands configures the external collaborators the runner shells out to.
// Each value is a command prefix; package names or test selectors are
// appended as separate arguments.
type Commands struct {
	Install   string `yaml:"install,omitempty" json:"install,omitempty" mapstructure:"install"`
	Uninstall string `yaml:"uninstall,omitempty" json:"uninstall,omitempty" mapstructure:"uninstall"`
	Test      string `yaml:"test,omitempty" json:"test,omitempty" mapstructure:"test"`
}

// InterpreterConfig selects the target interpreter and optional platform
// override used by the gate checks.
type InterpreterConfig struct {
	Executable string `yaml:"executable,omitempty" json:"executable,omitempty" mapstructure:"executable"`

	// Platform overrides the detected host platform (`darwin`, `linux`, ...).
	// Used in CI images where the runner host differs from the target.
	Platform string `yaml:"platform,omitempty" json:"platform,omitempty" mapstructure:"platform"`
}

// Matrix manifests

// MatrixManifest is the top-level document of a batch manifest file.
// Batches execute strictly in the order they are written.
type MatrixManifest struct {
	Name        string            `yaml:"name,omitempty" json:"name,omitempty" mapstructure:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
	Batches     []BatchDefinition `yaml:"batches" json:"batches" mapstructure:"batches"`

	// Env is extra environment for every command in every batch.
	// Batch-level env overrides manifest-level env key by key.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty" mapstructure:"env"`
}

// BatchDefinition is one install/test/uninstall triple with its gates.
type BatchDefinition struct {
	Name        string `yaml:"name" json:"name" mapstructure:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`

	// Requires lists packages installed before the tests and uninstalled after.
	Requires []string `yaml:"requires,omitempty" json:"requires,omitempty" mapstructure:"requires"`

	// Tests are arguments appended to the test-runner command (paths,
	// selectors). An empty list runs the whole suite.
	Tests []string `yaml:"tests,omitempty" json:"tests,omitempty" mapstructure:"tests"`

	// Run is a free-form shell command executed instead of the test runner.
	Run string `yaml:"run,omitempty" json:"run,omitempty" mapstructure:"run"`

	// Gates. A batch is skipped unless all configured gates match.
	Platforms       []string `yaml:"platforms,omitempty" json:"platforms,omitempty" mapstructure:"platforms"`
	Python          string   `yaml:"python,omitempty" json:"python,omitempty" mapstructure:"python"`
	Implementations []string `yaml:"implementations,omitempty" json:"implementations,omitempty" mapstructure:"implementations"`

	// HaltAfterOn stops the whole run successfully after this batch completes
	// on any of the listed platforms.
	HaltAfterOn []string `yaml:"halt_after_on,omitempty" json:"halt_after_on,omitempty" mapstructure:"halt_after_on"`

	// KeepInstalled skips the uninstall step after the tests.
	KeepInstalled bool `yaml:"keep_installed,omitempty" json:"keep_installed,omitempty" mapstructure:"keep_installed"`

	// Env is extra environment for every command in the batch.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty" mapstructure:"env"`
}

// InterpreterInfo is the result of probing the target interpreter.
type InterpreterInfo struct {
	Executable     string `yaml:"executable" json:"executable" mapstructure:"executable"`
	Implementation string `yaml:"implementation" json:"implementation" mapstructure:"implementation"`
	Version        string `yaml:"version" json:"version" mapstructure:"version"`
}

// DescribeBatchesItem is one row of `matrixci describe` output.
type DescribeBatchesItem struct {
	Batch    string `yaml:"batch" json:"batch" mapstructure:"batch"`
	Selected bool   `yaml:"selected" json:"selected" mapstructure:"selected"`
	Reason   string `yaml:"reason,omitempty" json:"reason,omitempty" mapstructure:"reason"`
}
