package commands

// Globals carries flags shared by every command.
type Globals struct {
	EnvFiles []string
	Version  string
}
