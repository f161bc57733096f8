// Package config loads typed configuration structs from environment variables.
//
// Structs declare their variables with caarlos0/env tags:
//
//	type Config struct {
//	    SessionName     string `env:"SESSION_NAME" envDefault:"_my_session_id"`
//	    SessionDuration int    `env:"SESSION_DURATION" envDefault:"0"`
//	}
//
// A .env file in the working directory is read once (github.com/joho/godotenv)
// before the first parse; real environment variables win over the file.
//
// Load parses each struct type once per process and serves later calls from a
// cache, which suits startup wiring where several components ask for the same
// Config. Parse skips the cache and accepts a prefix, for tests and for
// components configured more than once (for example two Redis connections).
package config
