package logger

// Config controls log output and rotation.
type Config struct {
	LogFile     string
	MaxSize     int // megabytes
	MaxAge      int // days
	MaxBackups  int // files
	Compress    bool
	Development bool

	// ConsoleOutput mirrors logs to stdout. Must stay off while the TUI
	// owns the terminal, or log lines tear the rendered screen apart.
	ConsoleOutput bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		LogFile:    "swapdesk.log",
		MaxSize:    50,
		MaxAge:     7,
		MaxBackups: 3,
		Compress:   true,
	}
}
