package config

const (
	defaultVaultDir  = "~/.setupvault"
	defaultLogDir    = "~/.local/share/setupvault/logs"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultDotfilePaths() []string {
	return []string{
		"~/.zshrc",
		"~/.bashrc",
		"~/.gitconfig",
		"~/.vimrc",
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			VaultDir: defaultVaultDir,
			LogDir:   defaultLogDir,
		},
		Scanners: Scanners{
			DotfilePaths: defaultDotfilePaths(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
