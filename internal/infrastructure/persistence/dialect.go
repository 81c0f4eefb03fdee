package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// periodExpr returns the SQL expression that renders a date column as a
// "YYYY-MM" or "YYYY" period key in the dialect of db
func periodExpr(db *gorm.DB, g report.Granularity, column string) string {
	if db.Dialector.Name() == "postgres" {
		if g == report.GranularityYear {
			return fmt.Sprintf("to_char(%s, 'YYYY')", column)
		}
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	}
	if g == report.GranularityYear {
		return fmt.Sprintf("strftime('%%Y', %s)", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern folds a keyword and wraps it for a LIKE ... ESCAPE '\'
// substring match. It returns "" when the keyword is blank.
func containsPattern(keyword string) string {
	folded := shared.FoldKeyword(keyword)
	if folded == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(folded) + "%"
}

// paginate applies the skip/limit window of a normalized filter
func paginate(query *gorm.DB, skip, limit int) *gorm.DB {
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

// isUniqueViolation reports whether err is a translated unique-key violation
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// exists reports whether query matches at least one row
func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
