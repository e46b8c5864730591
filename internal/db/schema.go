package db

// SchemaSQL is the current audit schema. Tests load it directly; migrations
// must leave a database in exactly this shape.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS audit_logs (
	id TEXT PRIMARY KEY,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	actor_id TEXT,
	entity_type TEXT NOT NULL CHECK(entity_type IN ('player', 'unit', 'situation', 'channel')),
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity_type, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs(timestamp);
`

// GetSchemaSQL returns the schema for test databases.
func GetSchemaSQL() string {
	return SchemaSQL
}
