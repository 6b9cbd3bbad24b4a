package scope

import "gorm.io/gorm"

// ExcludeSoftDelete is effectively the default behavior but made explicit
// for queries that bypass the model hooks, like DISTINCT projections.
func ExcludeSoftDelete(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}
