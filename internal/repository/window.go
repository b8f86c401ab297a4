package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/student-dashboard-api/internal/period"
)

// applyWindow restricts column to the window bounds, normalised to UTC.
func applyWindow(query *gorm.DB, column string, window period.Window) *gorm.DB {
	query = query.Where(fmt.Sprintf("%s >= ?", column), window.Start.UTC())
	if window.EndExclusive {
		return query.Where(fmt.Sprintf("%s < ?", column), window.End.UTC())
	}
	return query.Where(fmt.Sprintf("%s <= ?", column), window.End.UTC())
}
