package sqlite

// PutRaw writes value under key, bypassing the snapshot codec.
func PutRaw(d *DB, key, value string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, 0)`, key, value)
	return err
}

// GetRaw returns the raw value stored under key.
func GetRaw(d *DB, key string) (string, error) {
	var v string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	return v, err
}
