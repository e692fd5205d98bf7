// Package environment names the deployment environments the service knows
// about and parses them from configuration values.
package environment

import "strings"

// Environment is a deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
	Test        Environment = "test"
)

// Parse maps a configuration value, including the short aliases "dev",
// "stage" and "prod", to an Environment. Unknown values fall back to
// Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	case "test", "testing":
		return Test
	default:
		return Development
	}
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// IsDevelopment reports whether e is Development.
func (e Environment) IsDevelopment() bool {
	return e == Development
}
