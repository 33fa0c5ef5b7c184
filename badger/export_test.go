package badger

import "github.com/dgraph-io/badger/v4"

// PutRaw writes value under key, bypassing the snapshot codec.
func PutRaw(d *DB, key, value string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// GetRaw returns the raw value stored under key.
func GetRaw(d *DB, key string) (string, error) {
	var v []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		v, err = item.ValueCopy(nil)
		return err
	})
	return string(v), err
}
