// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashはbcrypt済みの不透明な文字列で、APIレスポンスには含めない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claims は検証済みベアラートークンから抽出した認証情報を表す。
// 認可判断の唯一の入力として、各サービス呼び出しに引数で明示的に渡す。
// グローバル状態には保持しない。
type Claims struct {
	UserID string
	Email  string
}
