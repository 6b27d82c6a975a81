package utils

const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".concat.yaml"
	// GlobalConfigFileName is the name of the configuration file inside the global directory.
	GlobalConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory below the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".concat"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// StandardErrorSink names the zap sink for the process error stream.
	StandardErrorSink = "stderr"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal errors logged by main.
	ApplicationExecutionFailedMessage = "Error"
)
