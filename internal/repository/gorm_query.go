package repository

import (
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dialectPostgres = "postgres"

// forUpdate row-locks the selected rows on postgres. SQLite serializes writers
// already, so the clause is skipped there.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == dialectPostgres {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// whereArrayContains filters rows whose JSON string array column holds value.
func whereArrayContains(tx *gorm.DB, column, value string) *gorm.DB {
	if tx.Dialector.Name() == dialectPostgres {
		encoded, _ := json.Marshal([]string{value})
		return tx.Where(column+" @> ?::jsonb", string(encoded))
	}
	return tx.Where("EXISTS (SELECT 1 FROM json_each("+column+") WHERE json_each.value = ?)", value)
}

// whereReactionBy filters thoughts holding at least one reaction written by username.
func whereReactionBy(tx *gorm.DB, username string) *gorm.DB {
	if tx.Dialector.Name() == dialectPostgres {
		encoded, _ := json.Marshal([]map[string]string{{"username": username}})
		return tx.Where("reactions @> ?::jsonb", string(encoded))
	}
	return tx.Where("EXISTS (SELECT 1 FROM json_each(reactions) WHERE json_extract(json_each.value, '$.username') = ?)", username)
}
