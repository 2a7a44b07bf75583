package repository

import (
	"database/sql"
	"fmt"
)

// SQLStatsRepository aggregates equipment counts with plain SQL. It works
// against any database/sql handle pointed at the shared schema.
type SQLStatsRepository struct {
	db *sql.DB
}

// NewSQLStatsRepository creates a new stats repository
func NewSQLStatsRepository(db *sql.DB) *SQLStatsRepository {
	return &SQLStatsRepository{db: db}
}

// CountByStatus returns equipment counts grouped by status
func (r *SQLStatsRepository) CountByStatus() (map[string]int64, error) {
	return r.countBy("status")
}

// CountByCategory returns equipment counts grouped by category
func (r *SQLStatsRepository) CountByCategory() (map[string]int64, error) {
	return r.countBy("category")
}

func (r *SQLStatsRepository) countBy(column string) (map[string]int64, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM equipment GROUP BY %s`, column, column)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aggregate rows: %w", err)
	}
	return counts, nil
}
