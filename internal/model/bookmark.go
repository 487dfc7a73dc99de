// Package model はドメインモデルを定義する。
package model

import "time"

// Bookmark はユーザーが保存したブックマークを表す。
// OwnerIDは作成時に確定し、以後変更されない。
// 所有者以外のリクエストからは参照も変更もできない。
type Bookmark struct {
	ID          string
	OwnerID     string
	Title       string
	Link        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
