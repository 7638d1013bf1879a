package keys

import "time"

// TTL presets paired with the builders above.
const (
	DefaultTTL      = 5 * time.Minute
	TTLDashboard    = 10 * time.Minute
	TTLCompanies    = 15 * time.Minute
	TTLWorkspaces   = 10 * time.Minute
	TTLEnvironments = 10 * time.Minute
	TTLDiagrams     = 5 * time.Minute
	TTLDiagram      = 2 * time.Minute
)
