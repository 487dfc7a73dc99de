package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/linkman/internal/model"
)

// PostgresBookmarkRepo はPostgreSQLを使用したブックマークリポジトリ。
//
// 単一レコードを対象とするクエリはすべて WHERE id = $1 AND owner_id = $2 の
// 複合条件で発行する。アプリケーション層のチェック漏れがあっても
// 他ユーザーのレコードには到達できない。
type PostgresBookmarkRepo struct {
	db *sql.DB
}

// NewPostgresBookmarkRepo はPostgresBookmarkRepoを生成する。
func NewPostgresBookmarkRepo(db *sql.DB) *PostgresBookmarkRepo {
	return &PostgresBookmarkRepo{db: db}
}

// ListByOwnerID は指定ユーザーが所有する全ブックマークを返す。
// 所有ブックマークがない場合は空スライスを返す。
func (r *PostgresBookmarkRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, title, link, description, created_at, updated_at
		 FROM bookmarks WHERE owner_id = $1
		 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []*model.Bookmark{}
	for rows.Next() {
		b := &model.Bookmark{}
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Link, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}

	return bookmarks, nil
}

// FindByOwnerAndID は指定IDのブックマークを所有者条件付きで取得する。
// 存在しない場合も、他ユーザーの所有である場合も、同じくnilを返す。
func (r *PostgresBookmarkRepo) FindByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Bookmark, error) {
	b := &model.Bookmark{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, link, description, created_at, updated_at
		 FROM bookmarks WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&b.ID, &b.OwnerID, &b.Title, &b.Link, &b.Description, &b.CreatedAt, &b.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bookmark: %w", err)
	}

	return b, nil
}

// Create はブックマークを作成する。
func (r *PostgresBookmarkRepo) Create(ctx context.Context, bookmark *model.Bookmark) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, owner_id, title, link, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		bookmark.ID, bookmark.OwnerID, bookmark.Title, bookmark.Link, bookmark.Description, bookmark.CreatedAt, bookmark.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}

	return nil
}

// Update はブックマークを所有者条件付きで上書き更新する。
// 更新対象が存在した場合はtrueを返す。
func (r *PostgresBookmarkRepo) Update(ctx context.Context, bookmark *model.Bookmark) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookmarks
		 SET title = $3, link = $4, description = $5, updated_at = $6
		 WHERE id = $1 AND owner_id = $2`,
		bookmark.ID, bookmark.OwnerID, bookmark.Title, bookmark.Link, bookmark.Description, bookmark.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update bookmark: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteByOwnerAndID は指定IDのブックマークを所有者条件付きで削除する。
// 削除できた場合はtrueを、対象が存在しない場合はfalseを返す。
func (r *PostgresBookmarkRepo) DeleteByOwnerAndID(ctx context.Context, ownerID, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete bookmark: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// compile-time interface check
var _ BookmarkRepository = (*PostgresBookmarkRepo)(nil)
