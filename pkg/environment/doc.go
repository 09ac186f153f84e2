// Package environment names the deployment environments the multipass CLI
// understands and parses them from configuration values.
//
//	env := environment.Parse(os.Getenv("MULTIPASS_ENV"))
//	if env.IsProduction() {
//	    // JSON logs, info level
//	}
package environment
