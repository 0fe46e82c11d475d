package config

const (
	// CliConfigFileName is the config file name without extension (`matrixci.yaml`).
	CliConfigFileName = "matrixci"

	// SystemDirConfigFilePath is the system-wide config location on Unix.
	SystemDirConfigFilePath = "/usr/local/etc/matrixci"

	// WindowsAppDataEnvVar locates the system config dir on Windows.
	WindowsAppDataEnvVar = "LOCALAPPDATA"

	// CliConfigPathEnvVar points at a directory containing `matrixci.yaml`.
	CliConfigPathEnvVar = "MATRIXCI_CLI_CONFIG_PATH"
)
