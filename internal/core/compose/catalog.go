package compose

import "github.com/artpar/pipeforge/internal/core/docwriter"

// =============================================================================
// Infrastructure Service Catalog
// =============================================================================

// ServiceDefinition is one catalog entry: how a concrete product runs
// as a local container.
type ServiceDefinition struct {
	Image       string
	Ports       []string
	Environment map[string]string
	EnvOrder    []string // deterministic environment iteration order
	Volume      string   // named volume, empty when the service is stateless
	VolumePath  string   // mount point inside the container
	Command     []string
}

// FallbackImage backs the inert placeholder used for products the
// catalog does not recognize.
const FallbackImage = "alpine:3.20"

// catalog maps a concrete product identifier to its local container
// definition. Lookups are exact; unknown products fall back to an inert
// placeholder via Lookup.
var catalog = map[string]ServiceDefinition{
	"postgresql": {
		Image: "postgres:16-alpine",
		Ports: []string{"5432:5432"},
		Environment: map[string]string{
			"POSTGRES_DB":       "app",
			"POSTGRES_USER":     "app",
			"POSTGRES_PASSWORD": "app",
		},
		EnvOrder:   []string{"POSTGRES_DB", "POSTGRES_USER", "POSTGRES_PASSWORD"},
		Volume:     "postgres-data",
		VolumePath: "/var/lib/postgresql/data",
	},
	"mongodb": {
		Image:      "mongo:7",
		Ports:      []string{"27017:27017"},
		Volume:     "mongo-data",
		VolumePath: "/data/db",
	},
	"redis": {
		Image: "redis:7-alpine",
		Ports: []string{"6379:6379"},
	},
	"mysql": {
		Image: "mysql:8",
		Ports: []string{"3306:3306"},
		Environment: map[string]string{
			"MYSQL_DATABASE":      "app",
			"MYSQL_ROOT_PASSWORD": "app",
		},
		EnvOrder:   []string{"MYSQL_DATABASE", "MYSQL_ROOT_PASSWORD"},
		Volume:     "mysql-data",
		VolumePath: "/var/lib/mysql",
	},
	"mariadb": {
		Image: "mariadb:11",
		Ports: []string{"3306:3306"},
		Environment: map[string]string{
			"MARIADB_DATABASE":      "app",
			"MARIADB_ROOT_PASSWORD": "app",
		},
		EnvOrder:   []string{"MARIADB_DATABASE", "MARIADB_ROOT_PASSWORD"},
		Volume:     "mariadb-data",
		VolumePath: "/var/lib/mysql",
	},
	"rabbitmq": {
		Image: "rabbitmq:3-management",
		Ports: []string{"5672:5672", "15672:15672"},
	},
}

// Lookup returns the container definition for a product identifier.
// Unrecognized identifiers yield the inert placeholder: an alpine
// container that sleeps so depends_on chains still resolve locally.
func Lookup(product string) ServiceDefinition {
	if def, ok := catalog[product]; ok {
		return def
	}
	return ServiceDefinition{
		Image:   FallbackImage,
		Command: []string{"sleep", "infinity"},
	}
}

// node renders the definition as a document subtree.
func (def ServiceDefinition) node() *docwriter.Mapping {
	m := docwriter.Map().Set("image", docwriter.String(def.Image))
	if len(def.Command) > 0 {
		m.Set("command", docwriter.Strings(def.Command...))
	}
	if len(def.Ports) > 0 {
		m.Set("ports", docwriter.Strings(def.Ports...))
	}
	if len(def.EnvOrder) > 0 {
		env := docwriter.Map()
		for _, key := range def.EnvOrder {
			env.Set(key, docwriter.String(def.Environment[key]))
		}
		m.Set("environment", env)
	}
	if def.Volume != "" {
		m.Set("volumes", docwriter.Strings(def.Volume+":"+def.VolumePath))
	}
	m.Set("restart", docwriter.String("unless-stopped"))
	return m
}
