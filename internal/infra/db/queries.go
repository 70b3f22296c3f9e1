package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Queries holds the SQL statements. Every method takes the DBTX to run on so the same
// statements work on the pool and inside a transaction.
type Queries struct{}

func New() *Queries {
	return &Queries{}
}

type Users struct {
	UserID    int64
	Name      string
	LastCheck pgtype.Text
	Coupon    pgtype.Text
}

type Feedback struct {
	ID                   int64
	UserID               int64
	Name                 string
	CleanerName          string
	Address              string
	CleaningType         string
	Surfaces             bool
	Floor                bool
	Bathrooms            bool
	Kitchen              bool
	Trash                bool
	Mirror               bool
	Windows              pgtype.Bool
	Cobweb               pgtype.Bool
	Balcony              pgtype.Bool
	CleanerRating        int16
	ManagerRating        int16
	RecommendationRating int16
	Suggestions          string
	CreatedAt            pgtype.Timestamptz
}

type Continuations struct {
	Ref       string
	Seq       int64
	ChatID    int64
	Token     string
	CreatedAt pgtype.Timestamptz
}

const ensureUser = `-- name: EnsureUser :exec
INSERT INTO users (user_id, name) VALUES ($1, $2)
ON CONFLICT (user_id) DO NOTHING`

func (q *Queries) EnsureUser(ctx context.Context, db DBTX, userID int64, name string) error {
	_, err := db.Exec(ctx, ensureUser, userID, name)
	return err
}

const upsertUserName = `-- name: UpsertUserName :exec
INSERT INTO users (user_id, name) VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET name = EXCLUDED.name`

func (q *Queries) UpsertUserName(ctx context.Context, db DBTX, userID int64, name string) error {
	_, err := db.Exec(ctx, upsertUserName, userID, name)
	return err
}

const lockUser = `-- name: LockUser :one
SELECT user_id, name, last_check, coupon FROM users WHERE user_id = $1 FOR UPDATE`

func (q *Queries) LockUser(ctx context.Context, db DBTX, userID int64) (Users, error) {
	var u Users
	err := db.QueryRow(ctx, lockUser, userID).Scan(&u.UserID, &u.Name, &u.LastCheck, &u.Coupon)
	return u, err
}

type UpdateUserSubmissionParams struct {
	UserID    int64
	Name      string
	LastCheck string
	Coupon    string
}

const updateUserSubmission = `-- name: UpdateUserSubmission :execrows
UPDATE users SET name = $2, last_check = $3, coupon = $4 WHERE user_id = $1`

func (q *Queries) UpdateUserSubmission(ctx context.Context, db DBTX, arg UpdateUserSubmissionParams) (int64, error) {
	tag, err := db.Exec(ctx, updateUserSubmission, arg.UserID, arg.Name, arg.LastCheck, arg.Coupon)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertFeedbackParams struct {
	UserID               int64
	Name                 string
	CleanerName          string
	Address              string
	CleaningType         string
	Surfaces             bool
	Floor                bool
	Bathrooms            bool
	Kitchen              bool
	Trash                bool
	Mirror               bool
	Windows              pgtype.Bool
	Cobweb               pgtype.Bool
	Balcony              pgtype.Bool
	CleanerRating        int16
	ManagerRating        int16
	RecommendationRating int16
	Suggestions          string
	CreatedAt            pgtype.Timestamptz
}

const insertFeedback = `-- name: InsertFeedback :one
INSERT INTO feedback (
    user_id, name, cleaner_name, address, cleaning_type,
    surfaces, floor, bathrooms, kitchen, trash, mirror,
    windows, cobweb, balcony,
    cleaner_rating, manager_rating, recommendation_rating,
    suggestions, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING id`

func (q *Queries) InsertFeedback(ctx context.Context, db DBTX, arg InsertFeedbackParams) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, insertFeedback,
		arg.UserID, arg.Name, arg.CleanerName, arg.Address, arg.CleaningType,
		arg.Surfaces, arg.Floor, arg.Bathrooms, arg.Kitchen, arg.Trash, arg.Mirror,
		arg.Windows, arg.Cobweb, arg.Balcony,
		arg.CleanerRating, arg.ManagerRating, arg.RecommendationRating,
		arg.Suggestions, arg.CreatedAt,
	).Scan(&id)
	return id, err
}

const listUsers = `-- name: ListUsers :many
SELECT user_id, name, last_check, coupon FROM users ORDER BY user_id`

func (q *Queries) ListUsers(ctx context.Context, db DBTX) ([]Users, error) {
	rows, err := db.Query(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Users, error) {
		var u Users
		err := row.Scan(&u.UserID, &u.Name, &u.LastCheck, &u.Coupon)
		return u, err
	})
}

const listFeedback = `-- name: ListFeedback :many
SELECT id, user_id, name, cleaner_name, address, cleaning_type,
       surfaces, floor, bathrooms, kitchen, trash, mirror,
       windows, cobweb, balcony,
       cleaner_rating, manager_rating, recommendation_rating,
       suggestions, created_at
FROM feedback ORDER BY id`

func (q *Queries) ListFeedback(ctx context.Context, db DBTX) ([]Feedback, error) {
	rows, err := db.Query(ctx, listFeedback)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Feedback, error) {
		var f Feedback
		err := row.Scan(
			&f.ID, &f.UserID, &f.Name, &f.CleanerName, &f.Address, &f.CleaningType,
			&f.Surfaces, &f.Floor, &f.Bathrooms, &f.Kitchen, &f.Trash, &f.Mirror,
			&f.Windows, &f.Cobweb, &f.Balcony,
			&f.CleanerRating, &f.ManagerRating, &f.RecommendationRating,
			&f.Suggestions, &f.CreatedAt,
		)
		return f, err
	})
}

const insertContinuation = `-- name: InsertContinuation :exec
INSERT INTO continuations (ref, chat_id, token) VALUES ($1, $2, $3)`

func (q *Queries) InsertContinuation(ctx context.Context, db DBTX, ref string, chatID int64, token string) error {
	_, err := db.Exec(ctx, insertContinuation, ref, chatID, token)
	return err
}

const getContinuation = `-- name: GetContinuation :one
SELECT ref, seq, chat_id, token, created_at FROM continuations WHERE ref = $1`

func (q *Queries) GetContinuation(ctx context.Context, db DBTX, ref string) (Continuations, error) {
	var c Continuations
	err := db.QueryRow(ctx, getContinuation, ref).Scan(&c.Ref, &c.Seq, &c.ChatID, &c.Token, &c.CreatedAt)
	return c, err
}

const latestContinuation = `-- name: LatestContinuation :one
SELECT ref, seq, chat_id, token, created_at FROM continuations
WHERE chat_id = $1 ORDER BY seq DESC LIMIT 1`

func (q *Queries) LatestContinuation(ctx context.Context, db DBTX, chatID int64) (Continuations, error) {
	var c Continuations
	err := db.QueryRow(ctx, latestContinuation, chatID).Scan(&c.Ref, &c.Seq, &c.ChatID, &c.Token, &c.CreatedAt)
	return c, err
}

const deleteChatContinuations = `-- name: DeleteChatContinuations :execrows
DELETE FROM continuations WHERE chat_id = $1`

func (q *Queries) DeleteChatContinuations(ctx context.Context, db DBTX, chatID int64) (int64, error) {
	tag, err := db.Exec(ctx, deleteChatContinuations, chatID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteContinuationsBefore = `-- name: DeleteContinuationsBefore :execrows
DELETE FROM continuations WHERE created_at < $1`

func (q *Queries) DeleteContinuationsBefore(ctx context.Context, db DBTX, cutoff pgtype.Timestamptz) (int64, error) {
	tag, err := db.Exec(ctx, deleteContinuationsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
