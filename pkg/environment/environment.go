// Package environment names the deployment environment the editor runs in and
// carries it through request contexts and log records.
package environment

import "strings"

// Environment is the deployment environment of the running process.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps a raw APP_ENV value to an Environment.
// Short aliases (dev, stage, prod) are accepted; anything unknown is Development.
func Parse(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
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
