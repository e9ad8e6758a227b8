package configloader

import (
	"os"
)

// envVarPrefix is the prefix for all supa-mdx-lint environment variables.
const envVarPrefix = "SUPA_MDX_LINT_"

// Supported environment variables.
const (
	// EnvConfig names a config file to load when --config is not given.
	EnvConfig = envVarPrefix + "CONFIG"
)

// ConfigPathFromEnv returns the config path set in the environment.
func ConfigPathFromEnv() string {
	return os.Getenv(EnvConfig)
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		EnvConfig: "Path to a config file, used when --config is not set",
	}
}
