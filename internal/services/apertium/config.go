package apertium

// DefaultCommand is the engine binary looked up on PATH.
const DefaultCommand = "apertium"

// Config captures runtime settings for engine invocations.
type Config struct {
	// Command is the engine binary name or path.
	Command string
	// SuppressUnknown passes -u so unknown words are not marked with '*'.
	SuppressUnknown bool
	// NoSentenceGuess passes -n so the engine does not insert full stops.
	NoSentenceGuess bool
}

// DefaultConfig returns the flags the subtitle pipeline expects.
func DefaultConfig() Config {
	return Config{
		Command:         DefaultCommand,
		SuppressUnknown: true,
		NoSentenceGuess: true,
	}
}
