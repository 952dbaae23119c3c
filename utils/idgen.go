package utils

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

const idRandChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrIDExhausted is returned when UniqueID gives up retrying.
var ErrIDExhausted = errors.New("unable to generate a unique id")

// GenerateID builds a business id of at most 10 characters:
// a 3-character prefix, the current minute and second, and 3 random
// alphanumerics (e.g. ORD3059ABC). The time window repeats every hour,
// so on its own the id is NOT unique; use UniqueID for anything stored.
func GenerateID(prefix string) string {
	now := time.Now()
	b := make([]byte, 3)
	for i := range b {
		b[i] = idRandChars[rand.Intn(len(idRandChars))]
	}
	return fmt.Sprintf("%s%02d%02d%s", prefix, now.Minute(), now.Second(), b)
}

// UniqueID generates an id and verifies it is absent from the given
// table column, retrying with fresh randomness on collision. Call it
// inside the transaction that inserts the row so concurrent generators
// cannot both pass the check.
func UniqueID(tx *gorm.DB, prefix, table, column string) (string, error) {
	for attempt := 0; attempt < 64; attempt++ {
		id := GenerateID(prefix)
		var count int64
		if err := tx.Table(table).Where(column+" = ?", id).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
