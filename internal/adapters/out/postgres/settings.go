package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Settings are the connection parameters read from configuration.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// Schema holds the job tables. Empty means the server's search_path.
	Schema string
}

// Missing lists the required settings that are empty, by their env names.
func (s Settings) Missing() []string {
	var missing []string
	for _, kv := range []struct{ key, value string }{
		{"DB_HOST", s.Host},
		{"DB_PORT", s.Port},
		{"DB_USER", s.User},
		{"DB_NAME", s.Name},
	} {
		if strings.TrimSpace(kv.value) == "" {
			missing = append(missing, kv.key)
		}
	}
	return missing
}

// DSN renders the settings as a libpq keyword/value connection string.
// SSLMode defaults to "disable". A schema becomes the session search_path.
func (s Settings) DSN() string {
	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(s.Host), dsnValue(s.Port), dsnValue(s.User),
		dsnValue(s.Password), dsnValue(s.Name), dsnValue(sslMode),
	)
	if s.Schema != "" {
		dsn += " search_path=" + dsnValue(pq.QuoteIdentifier(s.Schema))
	}
	return dsn
}

// QualifiedTable returns the quoted table name, prefixed with the quoted
// schema when one is set.
func (s Settings) QualifiedTable(table string) string {
	if s.Schema == "" {
		return pq.QuoteIdentifier(table)
	}
	return pq.QuoteIdentifier(s.Schema) + "." + pq.QuoteIdentifier(table)
}

// dsnValue quotes a value when libpq would otherwise split or misread it.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
}
