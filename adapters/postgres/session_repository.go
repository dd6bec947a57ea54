package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"ikigai/domain/session"
	"ikigai/internal/errors"
	"ikigai/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SessionRepositoryImpl implements SessionRepository for PostgreSQL.
// Context, answers and analysis are stored as JSONB documents; the unique
// index on hash is the final arbiter against hash collisions.
type SessionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new PostgreSQL session repository
func NewSessionRepository(db *sqlx.DB) *SessionRepositoryImpl {
	return &SessionRepositoryImpl{db: db}
}

var _ ports.SessionRepository = (*SessionRepositoryImpl)(nil)
var _ ports.AdminReader = (*SessionRepositoryImpl)(nil)

type sessionRow struct {
	ID         string    `db:"id"`
	Hash       string    `db:"hash"`
	Context    []byte    `db:"context"`
	Answers    []byte    `db:"answers"`
	Status     string    `db:"status"`
	AIAnalysis []byte    `db:"ai_analysis"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Create persists a new session, assigning its storage id
func (r *SessionRepositoryImpl) Create(ctx context.Context, s *session.Session) (*session.Session, error) {
	snap := s.Snapshot()
	snap.ID = uuid.New().String()

	contextJSON, answersJSON, analysisJSON, err := marshalDocs(snap)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, hash, context, answers, status, ai_analysis, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, snap.ID, snap.Hash, contextJSON, answersJSON, snap.Status, analysisJSON, snap.CreatedAt, snap.UpdatedAt)
	if err != nil {
		return nil, errors.DatabaseError("failed to insert session", err)
	}

	return session.FromSnapshot(snap)
}

// FindByHash returns the session with the given hash, or nil when absent
func (r *SessionRepositoryImpl) FindByHash(ctx context.Context, hash string) (*session.Session, error) {
	var row sessionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, hash, context, answers, status, ai_analysis, created_at, updated_at
		FROM sessions
		WHERE hash = $1
	`, hash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.DatabaseError("failed to query session", err)
	}

	return rowToSession(row)
}

// Update persists the mutable fields of a session, keyed by hash
func (r *SessionRepositoryImpl) Update(ctx context.Context, s *session.Session) (*session.Session, error) {
	snap := s.Snapshot()

	_, answersJSON, analysisJSON, err := marshalDocs(snap)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET answers = $2, status = $3, ai_analysis = $4, updated_at = $5
		WHERE hash = $1
	`, snap.Hash, answersJSON, snap.Status, analysisJSON, snap.UpdatedAt)
	if err != nil {
		return nil, errors.DatabaseError("failed to update session", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.DatabaseError("failed to read update result", err)
	}
	if affected == 0 {
		return nil, errors.NotFound("session")
	}

	return r.FindByHash(ctx, snap.Hash)
}

// HashExists reports whether a session with the given hash already exists
func (r *SessionRepositoryImpl) HashExists(ctx context.Context, hash string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM sessions WHERE hash = $1)
	`, hash)
	if err != nil {
		return false, errors.DatabaseError("failed to check hash", err)
	}
	return exists, nil
}

// CountSince returns how many sessions were created at or after the cutoff
func (r *SessionRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM sessions WHERE created_at >= $1
	`, since)
	if err != nil {
		return 0, errors.DatabaseError("failed to count sessions", err)
	}
	return count, nil
}

// CountByStatusSince returns how many sessions with the given status were
// created at or after the cutoff
func (r *SessionRepositoryImpl) CountByStatusSince(ctx context.Context, status session.Status, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM sessions WHERE status = $1 AND created_at >= $2
	`, status, since)
	if err != nil {
		return 0, errors.DatabaseError("failed to count sessions by status", err)
	}
	return count, nil
}

// ListSince returns snapshots of sessions created at or after the cutoff,
// newest first
func (r *SessionRepositoryImpl) ListSince(ctx context.Context, since time.Time, limit int) ([]session.Snapshot, error) {
	query := `
		SELECT id, hash, context, answers, status, ai_analysis, created_at, updated_at
		FROM sessions
		WHERE created_at >= $1
		ORDER BY created_at DESC
	`
	args := []interface{}{since}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.DatabaseError("failed to list sessions", err)
	}

	snapshots := make([]session.Snapshot, 0, len(rows))
	for _, row := range rows {
		sess, err := rowToSession(row)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, sess.Snapshot())
	}
	return snapshots, nil
}

func marshalDocs(snap session.Snapshot) (contextJSON, answersJSON []byte, analysisJSON interface{}, err error) {
	contextJSON, err = json.Marshal(snap.Context)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to marshal context")
	}
	answersJSON, err = json.Marshal(snap.Answers)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to marshal answers")
	}
	// nil keeps the column NULL for sessions without an analysis
	if snap.AIAnalysis != nil {
		raw, merr := json.Marshal(snap.AIAnalysis)
		if merr != nil {
			return nil, nil, nil, errors.Wrap(merr, "failed to marshal analysis")
		}
		analysisJSON = raw
	}
	return contextJSON, answersJSON, analysisJSON, nil
}

func rowToSession(row sessionRow) (*session.Session, error) {
	snap := session.Snapshot{
		ID:        row.ID,
		Hash:      row.Hash,
		Status:    session.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if err := json.Unmarshal(row.Context, &snap.Context); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal context")
	}
	if err := json.Unmarshal(row.Answers, &snap.Answers); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal answers")
	}
	if len(row.AIAnalysis) > 0 {
		var analysis session.Analysis
		if err := json.Unmarshal(row.AIAnalysis, &analysis); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal analysis")
		}
		snap.AIAnalysis = &analysis
	}

	return session.FromSnapshot(snap)
}
