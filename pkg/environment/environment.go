package environment

import "strings"

// Environment represents the deployment environment a binary runs in.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

// Parse maps a configured value, including the short aliases "dev", "stage"
// and "prod", to an Environment. Unknown or empty values mean Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}
