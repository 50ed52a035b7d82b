package manifest

import "strings"

// InitialVersion is the version every new project starts at.
const InitialVersion = "0.0.0"

// PackageJSON is the subset of the npm package.json format written for a
// Functions project.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Engines         Engines           `json:"engines"`
}

// Engines declares the Node.js runtime the project targets.
type Engines struct {
	Node string `json:"node"`
}

// Scripts returns the npm scripts of a new project.
func Scripts() map[string]string {
	return map[string]string{
		"test":   `echo "Error: no test specified" && exit 1`,
		"start":  "twilio-run",
		"deploy": "twilio-run deploy",
	}
}

// Dependencies returns the runtime dependencies shared by example and
// template projects.
func Dependencies() map[string]string {
	return map[string]string{
		"@twilio/runtime-handler": "1.3.0",
		"twilio":                  "^3.56",
	}
}

// DevDependencies returns the development dependencies of a new project.
func DevDependencies() map[string]string {
	return map[string]string{
		"twilio-run": "^3.5.4",
	}
}

// NewPackageJSON returns the package.json for a project called name that
// targets the given Node.js major or full version.
func NewPackageJSON(name, nodeVersion string) *PackageJSON {
	return &PackageJSON{
		Name:            name,
		Version:         InitialVersion,
		Private:         true,
		Scripts:         Scripts(),
		Dependencies:    Dependencies(),
		DevDependencies: DevDependencies(),
		Engines:         Engines{Node: EngineRange(nodeVersion)},
	}
}

// EngineRange turns a Node.js version into an engines range: "18" becomes
// ">=18". Values that already carry an operator are returned unchanged.
func EngineRange(nodeVersion string) string {
	v := strings.TrimSpace(nodeVersion)
	if v == "" {
		return ""
	}
	if strings.ContainsAny(v[:1], "<>=^~*") {
		return v
	}
	return ">=" + strings.TrimPrefix(v, "v")
}
