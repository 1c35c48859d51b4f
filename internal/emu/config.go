package emu

import "log"

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace  bool        // log every executed instruction
	Logger *log.Logger // load warnings and trace lines; nil discards
	LCD    bool        // drive the LCD collaborator from Step
}

// DefaultConfig returns the settings used by the frontends.
func DefaultConfig() Config {
	return Config{LCD: true}
}
