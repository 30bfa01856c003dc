package transport

import (
	"fmt"
	"strings"
)

// Family selects which remote API grouping a client talks to.
type Family string

const (
	FamilyCheck        Family = "echeck"
	FamilyNotification Family = "enotification"
	FamilyReport       Family = "report"
)

// Environment selects the production or sandbox host.
type Environment string

const (
	Production Environment = "production"
	Sandbox    Environment = "sandbox"
)

const (
	productionHost = "https://greenbyphone.com"
	sandboxHost    = "https://cpsandbox.com"
)

var familyPaths = map[Family]string{
	FamilyCheck:        "/echeck.asmx",
	FamilyNotification: "/enotification.asmx",
	FamilyReport:       "/report.asmx",
}

var environmentHosts = map[Environment]string{
	Production: productionHost,
	Sandbox:    sandboxHost,
}

func (f Family) String() string { return string(f) }

func (e Environment) String() string { return string(e) }

// ParseEnvironment accepts "production"/"live" and "sandbox"/"test", case-insensitive.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "live":
		return Production, nil
	case "sandbox", "test":
		return Sandbox, nil
	}
	return "", fmt.Errorf("unknown environment %q", s)
}

// ParseFamily accepts the family names as returned by Family.String.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := familyPaths[f]; !ok {
		return "", fmt.Errorf("unknown api family %q", s)
	}
	return f, nil
}

// Resolve returns the base URL for a family in an environment. It never
// returns an empty URL: unknown values are rejected with an error.
func Resolve(family Family, env Environment) (string, error) {
	path, ok := familyPaths[family]
	if !ok {
		return "", fmt.Errorf("unknown api family %q", family)
	}
	host, ok := environmentHosts[env]
	if !ok {
		return "", fmt.Errorf("unknown environment %q", env)
	}
	return host + path, nil
}

// WSDLURL returns the service description URL for an endpoint.
func WSDLURL(endpoint string) string {
	return endpoint + "?wsdl"
}
