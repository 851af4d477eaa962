package config

const (
	defaultConfigPath      = "~/.config/apertiumsrt/config.toml"
	projectConfigName      = "apertiumsrt.toml"
	defaultApertiumCommand = "apertium"
	defaultCodec           = "UTF-8"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Apertium: Apertium{
			Command:         defaultApertiumCommand,
			SuppressUnknown: true,
			NoSentenceGuess: true,
		},
		Conversion: Conversion{
			Codec: defaultCodec,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
