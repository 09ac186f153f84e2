// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (for .env files) and
// github.com/caarlos0/env/v11 (for struct tag parsing):
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct annotated with env tags and
//     caches the result per type, so the work happens once per process.
//   - MustLoadEnv and MustLoad panic instead of returning errors.
//   - ForceReloadConfig re-parses one type, ResetCache drops every cached value.
//
// # Usage
//
//	if err := config.LoadEnv("./deploy/.env"); err != nil {
//	    log.Fatalf("loading env: %v", err)
//	}
//
//	var cfg multipass.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// Parsing failures wrap ErrParsingConfig together with the env library error,
// so errors.Is works and the message still names the missing variable. A
// failed parse is not cached; the next Load tries again.
package config
