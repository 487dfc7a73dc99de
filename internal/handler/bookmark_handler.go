package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/linkman/internal/bookmark"
	"github.com/hitoshi/linkman/internal/middleware"
	"github.com/hitoshi/linkman/internal/model"
)

// BookmarkServiceInterface はブックマークハンドラーが必要とするサービスインターフェース。
type BookmarkServiceInterface interface {
	// List はユーザーが所有する全ブックマークを返す。
	List(ctx context.Context, userID string) ([]*model.Bookmark, error)
	// GetByID は指定IDのブックマークを返す。所有者以外には存在を開示しない。
	GetByID(ctx context.Context, userID, bookmarkID string) (*model.Bookmark, error)
	// Create は新規ブックマークを作成し、作成されたレコードを返す。
	Create(ctx context.Context, userID, title, link, description string) (*model.Bookmark, error)
	// Update は指定フィールドのみを更新し、更新後のレコードを返す。
	Update(ctx context.Context, userID, bookmarkID string, patch bookmark.Patch) (*model.Bookmark, error)
	// Delete は指定IDのブックマークを削除する。
	Delete(ctx context.Context, userID, bookmarkID string) error
}

// BookmarkHandler はブックマーク管理のHTTPハンドラー。
type BookmarkHandler struct {
	service BookmarkServiceInterface
}

// NewBookmarkHandler はBookmarkHandlerを生成する。
func NewBookmarkHandler(service BookmarkServiceInterface) *BookmarkHandler {
	return &BookmarkHandler{
		service: service,
	}
}

// bookmarkResponse はブックマークのAPIレスポンス。
type bookmarkResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// newBookmarkResponse はmodel.Bookmarkからレスポンスを構築する。
func newBookmarkResponse(b *model.Bookmark) bookmarkResponse {
	return bookmarkResponse{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Title:       b.Title,
		Link:        b.Link,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// createBookmarkRequest はブックマーク作成リクエストのボディ。
type createBookmarkRequest struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// editBookmarkRequest はブックマーク部分更新リクエストのボディ。
// 省略されたフィールドは変更しない。
type editBookmarkRequest struct {
	Title       *string `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

// ListBookmarks はユーザーのブックマーク一覧を取得する。
// GET /bookmarks
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	bookmarks, err := h.service.List(r.Context(), claims.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 所有ブックマークがない場合もnullではなく空配列を返す
	result := make([]bookmarkResponse, len(bookmarks))
	for i, b := range bookmarks {
		result[i] = newBookmarkResponse(b)
	}

	writeJSON(w, http.StatusOK, result)
}

// GetBookmark はブックマーク詳細を取得する。
// GET /bookmarks/{id}
func (h *BookmarkHandler) GetBookmark(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	bookmarkID := chi.URLParam(r, "id")

	b, err := h.service.GetByID(r.Context(), claims.UserID, bookmarkID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newBookmarkResponse(b))
}

// CreateBookmark は新規ブックマークを作成する。
// POST /bookmarks
func (h *BookmarkHandler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req createBookmarkRequest
	if err := decodeStrict(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError(err.Error()))
		return
	}

	b, err := h.service.Create(r.Context(), claims.UserID, req.Title, req.Link, req.Description)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newBookmarkResponse(b))
}

// EditBookmark はブックマークを部分更新する。
// PATCH /bookmarks/{id}
func (h *BookmarkHandler) EditBookmark(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	bookmarkID := chi.URLParam(r, "id")

	var req editBookmarkRequest
	if err := decodeStrict(r, &req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError(err.Error()))
		return
	}

	b, err := h.service.Update(r.Context(), claims.UserID, bookmarkID, bookmark.Patch{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newBookmarkResponse(b))
}

// DeleteBookmark はブックマークを削除する。
// DELETE /bookmarks/{id}
func (h *BookmarkHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	bookmarkID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), claims.UserID, bookmarkID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
