package conversations

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studybuddy/internal/client/models"
	"github.com/dmitrijs2005/studybuddy/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, ownerID int, t models.ConversationThread) (bool, error) {
	courses := t.Courses
	if courses == nil {
		courses = []string{}
	}
	coursesJSON, err := json.Marshal(courses)
	if err != nil {
		return false, fmt.Errorf("failed to encode courses: %w", err)
	}

	query := `INSERT INTO conversation_threads (owner_id, user_id, name, primary_major, courses, matched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, user_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query,
		ownerID, t.UserID, t.Name, t.PrimaryMajor, string(coursesJSON), t.MatchedAt.UnixMilli())
	if err != nil {
		return false, fmt.Errorf("failed to insert thread[%d]: %w", t.UserID, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra == 1, nil
}

func (r *SQLiteRepository) List(ctx context.Context, ownerID int) ([]models.ConversationThread, error) {
	query := `SELECT user_id, name, primary_major, courses, matched_at
		FROM conversation_threads WHERE owner_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	var result []models.ConversationThread
	for rows.Next() {
		var (
			t           models.ConversationThread
			coursesJSON string
			matchedAt   int64
		)
		if err := rows.Scan(&t.UserID, &t.Name, &t.PrimaryMajor, &coursesJSON, &matchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan thread row: %w", err)
		}
		if err := json.Unmarshal([]byte(coursesJSON), &t.Courses); err != nil {
			return nil, fmt.Errorf("failed to decode courses of thread[%d]: %w", t.UserID, err)
		}
		t.MatchedAt = time.UnixMilli(matchedAt)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thread rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context, ownerID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM conversation_threads WHERE owner_id = ?`, ownerID); err != nil {
		return fmt.Errorf("failed to clear threads of owner[%d]: %w", ownerID, err)
	}
	return nil
}
