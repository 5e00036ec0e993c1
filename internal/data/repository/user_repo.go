package repository

import (
	"context"
	"fmt"

	"filmorate/internal/data/entity"
	"filmorate/pkg/apperr"
	"filmorate/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	// Create assigns an id and stores the user. Login and email
	// uniqueness is enforced here, atomically with the insert.
	Create(ctx context.Context, user *entity.User) (*entity.User, error)

	// Update replaces the stored user. Uniqueness is enforced against
	// every other user; resubmitting one's own login/email is fine.
	Update(ctx context.Context, user *entity.User) (*entity.User, error)

	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)

	// AddFriend / RemoveFriend mutate both sides of the mutual relation
	// as one atomic step.
	AddFriend(ctx context.Context, id, friendID int64) error
	RemoveFriend(ctx context.Context, id, friendID int64) error
}

type userPostgresRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserPostgresRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userPostgresRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func (r *userPostgresRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkUnique(ctx, tx, user, 0); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (id, email, login, name, birthday)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM users), $1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	).Scan(&user.ID)
	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("login", user.Login),
		)
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create user: %w", err)
	}
	return user, nil
}

func (r *userPostgresRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update user: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkUnique(ctx, tx, user, user.ID); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET email = $2, login = $3, name = $4, birthday = $5
		WHERE id = $1
	`,
		user.ID,
		user.Email,
		user.Login,
		user.Name,
		user.Birthday,
	)
	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return nil, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("user with id = %d not found", user.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update user: %w", err)
	}
	return r.FindByID(ctx, user.ID)
}

func (r *userPostgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user with id = %d not found", id)
	}
	return nil
}

func (r *userPostgresRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users WHERE id = $1`

	var user entity.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Login,
		&user.Name,
		&user.Birthday,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	friends, err := r.loadFriends(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Friends = friends
	return &user, nil
}

func (r *userPostgresRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, login, name, birthday FROM users ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to query users", zap.Error(err))
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Login,
			&user.Name,
			&user.Birthday,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	for _, user := range users {
		friends, err := r.loadFriends(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Friends = friends
	}
	return users, nil
}

func (r *userPostgresRepository) AddFriend(ctx context.Context, id, friendID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add friend: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := requireUsers(ctx, tx, id, friendID); err != nil {
		return err
	}

	// one row per direction, both inside the same transaction
	_, err = tx.Exec(ctx, `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2), ($2, $1)
		ON CONFLICT DO NOTHING
	`, id, friendID)
	if err != nil {
		r.log.Error("Failed to add friendship",
			zap.Error(err),
			zap.Int64("user_id", id),
			zap.Int64("friend_id", friendID),
		)
		return fmt.Errorf("add friendship: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *userPostgresRepository) RemoveFriend(ctx context.Context, id, friendID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin remove friend: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := requireUsers(ctx, tx, id, friendID); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`, id, friendID)
	if err != nil {
		r.log.Error("Failed to remove friendship",
			zap.Error(err),
			zap.Int64("user_id", id),
			zap.Int64("friend_id", friendID),
		)
		return fmt.Errorf("remove friendship: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *userPostgresRepository) loadFriends(ctx context.Context, id int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT friend_id FROM friendships WHERE user_id = $1 ORDER BY friend_id`, id)
	if err != nil {
		return nil, fmt.Errorf("load friends: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var friendID int64
		if err := rows.Scan(&friendID); err != nil {
			return nil, fmt.Errorf("scan friend row: %w", err)
		}
		ids = append(ids, friendID)
	}
	return ids, rows.Err()
}

// requireUsers verifies both ids exist inside the caller's transaction.
func requireUsers(ctx context.Context, tx pgx.Tx, ids ...int64) error {
	for _, userID := range ids {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if !exists {
			return apperr.NotFound("user with id = %d not found", userID)
		}
	}
	return nil
}

func checkUnique(ctx context.Context, tx pgx.Tx, user *entity.User, selfID int64) error {
	var taken bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE login = $1 AND id <> $2)`,
		user.Login, selfID).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check login: %w", err)
	}
	if taken {
		return apperr.Duplicate("login %q is already in use", user.Login)
	}

	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		user.Email, selfID).Scan(&taken)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return apperr.Duplicate("email %q is already in use", user.Email)
	}
	return nil
}
