// Package keys builds namespaced cache keys.
//
// Namespacing is a caller convention: the cache treats keys as opaque
// strings. All builders are pure functions; identical inputs always produce
// identical keys. Ids are not escaped, so an id containing ":" can make two
// calls of the same multi-part builder yield one key.
//
//	diagram:<id>
//	api:<endpoint>:<paramsHash>
//	computed:<key>
//	schema:<resourceType>
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/IvanBrykalov/ttlcache/codec"
)

const sep = ":"

// Namespace prefixes.
const (
	NSDiagram      = "diagram"
	NSAPI          = "api"
	NSComputed     = "computed"
	NSSchema       = "schema"
	NSDashboard    = "dashboard"
	NSCompanies    = "companies"
	NSWorkspaces   = "workspaces"
	NSEnvironments = "environments"
	NSDiagrams     = "diagrams"
	NSEnvDiagram   = "envdiagram"
)

// canonical encodes params with RFC 8949 Core Deterministic options
// (sorted map keys, shortest integer forms).
var canonical = codec.MustCBOR[any](true)

func join(parts ...string) string { return strings.Join(parts, sep) }

// Diagram returns diagram:<id>.
func Diagram(id string) string { return join(NSDiagram, id) }

// Computed returns computed:<key>.
func Computed(key string) string { return join(NSComputed, key) }

// Schema returns schema:<resourceType>.
func Schema(resourceType string) string { return join(NSSchema, resourceType) }

// API returns api:<endpoint>:<paramsHash>. params may be any CBOR-encodable
// value (typically map[string]any); map ordering does not affect the hash.
func API(endpoint string, params any) (string, error) {
	h, err := ParamsHash(params)
	if err != nil {
		return "", fmt.Errorf("keys: api %q: %w", endpoint, err)
	}
	return join(NSAPI, endpoint, h), nil
}

// MustAPI is like API but panics if params cannot be encoded.
func MustAPI(endpoint string, params any) string {
	k, err := API(endpoint, params)
	if err != nil {
		panic(err)
	}
	return k
}

// ParamsHash returns the first 16 hex chars of sha256 over the canonical
// encoding of params.
func ParamsHash(params any) (string, error) {
	b, err := canonical.Encode(params)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8]), nil
}

// Dashboard returns the key of the dashboard summary.
func Dashboard() string { return join(NSDashboard, "data") }

// UserCompanies returns the key of the current user's company list.
func UserCompanies() string { return join(NSCompanies, "user") }

// Workspaces returns workspaces:<companyID>.
func Workspaces(companyID string) string { return join(NSWorkspaces, companyID) }

// Environments returns environments:<companyID>.
func Environments(companyID string) string { return join(NSEnvironments, companyID) }

// Diagrams returns diagrams:<companyID>:<envID>.
func Diagrams(companyID, envID string) string { return join(NSDiagrams, companyID, envID) }

// DiagramIn returns envdiagram:<companyID>:<envID>:<diagramID>. It has its
// own namespace so that it never collides with Diagram.
func DiagramIn(companyID, envID, diagramID string) string {
	return join(NSEnvDiagram, companyID, envID, diagramID)
}
