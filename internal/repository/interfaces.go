// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/linkman/internal/model"
)

// ErrDuplicateEmail はメールアドレスの一意制約違反を表す。
// PostgreSQLのunique_violation（23505）を検出した場合に返す。
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	// メールアドレスが重複する場合はErrDuplicateEmailを返す。
	Create(ctx context.Context, user *model.User) error

	// Update はユーザーのプロフィール（email, first_name, last_name）を更新する。
	// メールアドレスが重複する場合はErrDuplicateEmailを返す。
	Update(ctx context.Context, user *model.User) error

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するbookmarksはCASCADE削除される。
	DeleteByID(ctx context.Context, id string) error
}

// BookmarkRepository はブックマークデータの永続化インターフェース。
//
// すべての単一レコード操作は (id, owner_id) の複合条件でのみ行う。
// idのみで検索するメソッドは意図的に提供しない。所有者以外のレコードは
// このインターフェースを通じて到達不能であることを保証する。
type BookmarkRepository interface {
	// ListByOwnerID は指定ユーザーが所有する全ブックマークを返す。
	// 所有ブックマークがない場合は空スライスを返す。
	ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Bookmark, error)

	// FindByOwnerAndID は指定IDのブックマークを所有者条件付きで取得する。
	// 存在しない場合も、他ユーザーの所有である場合も、同じくnilを返す。
	FindByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Bookmark, error)

	// Create はブックマークを作成する。
	Create(ctx context.Context, bookmark *model.Bookmark) error

	// Update はブックマークを所有者条件付きで上書き更新する。
	// 更新対象が存在した場合はtrueを返す。
	Update(ctx context.Context, bookmark *model.Bookmark) (bool, error)

	// DeleteByOwnerAndID は指定IDのブックマークを所有者条件付きで削除する。
	// 削除できた場合はtrueを、対象が存在しない場合はfalseを返す。
	DeleteByOwnerAndID(ctx context.Context, ownerID, id string) (bool, error)
}
