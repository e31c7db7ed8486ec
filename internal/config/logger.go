package config

type Logger struct {
	// Level is the minimum level that will be logged: debug, info, warn, error.
	//
	// Default: info
	Level string `validate:"required,oneof='debug' 'info' 'warn' 'error'"`
	// JSON switches output to production JSON encoding.
	JSON bool
}
