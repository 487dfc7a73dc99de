// Package bookmark はブックマーク管理のドメインロジックを提供する。
package bookmark

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/linkman/internal/model"
	"github.com/hitoshi/linkman/internal/repository"
	"github.com/hitoshi/linkman/internal/security"
)

// Patch はブックマーク部分更新の入力を表す。
// nilフィールドは変更せず、既存の値を維持する。
type Patch struct {
	Title       *string
	Link        *string
	Description *string
}

// Service はブックマークCRUDのサービス層。
// すべての操作は検証済みの呼び出しユーザーIDを第一引数に取り、
// 所有者スコープのリポジトリを通じてのみデータへアクセスする。
type Service struct {
	repo      repository.BookmarkRepository
	sanitizer security.TextSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.BookmarkRepository, sanitizer security.TextSanitizerService) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
	}
}

// List はユーザーが所有する全ブックマークを返す。
// 所有ブックマークがない場合はエラーではなく空スライスを返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Bookmark, error) {
	bookmarks, err := s.repo.ListByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ブックマーク一覧の取得に失敗しました: %w", err)
	}
	return bookmarks, nil
}

// GetByID は指定IDのブックマークを返す。
// 存在しない場合と他ユーザー所有の場合は、同一のBOOKMARK_NOT_FOUNDエラーを返す。
func (s *Service) GetByID(ctx context.Context, userID, bookmarkID string) (*model.Bookmark, error) {
	b, err := s.repo.FindByOwnerAndID(ctx, userID, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("ブックマークの取得に失敗しました: %w", err)
	}
	if b == nil {
		return nil, model.NewBookmarkNotFoundError(bookmarkID)
	}
	return b, nil
}

// Create は新規ブックマークを作成し、作成されたレコード全体を返す。
// タイトルとリンクは必須で、リンクはhttp(s)の絶対URLであること。
func (s *Service) Create(ctx context.Context, userID, title, link, description string) (*model.Bookmark, error) {
	title = s.sanitizer.Sanitize(title)
	description = s.sanitizer.Sanitize(description)

	if title == "" {
		return nil, model.NewEmptyTitleError()
	}
	if err := validateLink(link); err != nil {
		return nil, err
	}

	now := time.Now()
	b := &model.Bookmark{
		ID:          uuid.New().String(),
		OwnerID:     userID,
		Title:       title,
		Link:        link,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("ブックマークの作成に失敗しました: %w", err)
	}

	slog.Info("bookmark created",
		slog.String("user_id", userID),
		slog.String("bookmark_id", b.ID),
	)

	return b, nil
}

// Update は指定IDのブックマークにpatchの指定フィールドのみを適用し、
// 更新後のレコード全体を返す。
// 存在しない場合と他ユーザー所有の場合は、同一のBOOKMARK_NOT_FOUNDエラーを返す。
// 同一ブックマークへの同時更新はストア粒度の後勝ちとなる。
func (s *Service) Update(ctx context.Context, userID, bookmarkID string, patch Patch) (*model.Bookmark, error) {
	b, err := s.repo.FindByOwnerAndID(ctx, userID, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("ブックマークの取得に失敗しました: %w", err)
	}
	if b == nil {
		return nil, model.NewBookmarkNotFoundError(bookmarkID)
	}

	if patch.Title != nil {
		title := s.sanitizer.Sanitize(*patch.Title)
		if title == "" {
			return nil, model.NewEmptyTitleError()
		}
		b.Title = title
	}
	if patch.Link != nil {
		if err := validateLink(*patch.Link); err != nil {
			return nil, err
		}
		b.Link = *patch.Link
	}
	if patch.Description != nil {
		b.Description = s.sanitizer.Sanitize(*patch.Description)
	}
	b.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("ブックマークの更新に失敗しました: %w", err)
	}
	if !updated {
		// 取得と更新の間に削除された場合
		return nil, model.NewBookmarkNotFoundError(bookmarkID)
	}

	return b, nil
}

// Delete は指定IDのブックマークを削除する。
// 存在しない場合と他ユーザー所有の場合は、同一のBOOKMARK_NOT_FOUNDエラーを返す。
// 削除済みIDの再削除も同様にBOOKMARK_NOT_FOUNDとなる。
func (s *Service) Delete(ctx context.Context, userID, bookmarkID string) error {
	deleted, err := s.repo.DeleteByOwnerAndID(ctx, userID, bookmarkID)
	if err != nil {
		return fmt.Errorf("ブックマークの削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewBookmarkNotFoundError(bookmarkID)
	}

	slog.Info("bookmark deleted",
		slog.String("user_id", userID),
		slog.String("bookmark_id", bookmarkID),
	)

	return nil
}

// validateLink はブックマークのリンクがhttp(s)の絶対URLであることを検証する。
func validateLink(link string) error {
	if link == "" {
		return model.NewInvalidURLError("URLが空です")
	}
	u, err := url.Parse(link)
	if err != nil {
		return model.NewInvalidURLError("URLを解析できません")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return model.NewInvalidURLError("スキームはhttpまたはhttpsであること")
	}
	if u.Host == "" {
		return model.NewInvalidURLError("ホストが指定されていません")
	}
	return nil
}
