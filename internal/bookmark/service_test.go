package bookmark

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/linkman/internal/model"
	"github.com/hitoshi/linkman/internal/repository"
	"github.com/hitoshi/linkman/internal/security"
)

// fakeBookmarkRepo はBookmarkRepositoryのインメモリ実装。
// 実装と同じく、単一レコード操作はすべて (id, owner_id) で判定する。
type fakeBookmarkRepo struct {
	bookmarks map[string]*model.Bookmark // key: bookmark ID
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: make(map[string]*model.Bookmark)}
}

func (f *fakeBookmarkRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Bookmark, error) {
	result := []*model.Bookmark{}
	for _, b := range f.bookmarks {
		if b.OwnerID == ownerID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookmarkRepo) FindByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Bookmark, error) {
	b, ok := f.bookmarks[id]
	if !ok || b.OwnerID != ownerID {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookmarkRepo) Create(ctx context.Context, bookmark *model.Bookmark) error {
	copied := *bookmark
	f.bookmarks[bookmark.ID] = &copied
	return nil
}

func (f *fakeBookmarkRepo) Update(ctx context.Context, bookmark *model.Bookmark) (bool, error) {
	existing, ok := f.bookmarks[bookmark.ID]
	if !ok || existing.OwnerID != bookmark.OwnerID {
		return false, nil
	}
	copied := *bookmark
	f.bookmarks[bookmark.ID] = &copied
	return true, nil
}

func (f *fakeBookmarkRepo) DeleteByOwnerAndID(ctx context.Context, ownerID, id string) (bool, error) {
	b, ok := f.bookmarks[id]
	if !ok || b.OwnerID != ownerID {
		return false, nil
	}
	delete(f.bookmarks, id)
	return true, nil
}

var _ repository.BookmarkRepository = (*fakeBookmarkRepo)(nil)

func newTestService(repo repository.BookmarkRepository) *Service {
	return NewService(repo, security.NewTextSanitizer())
}

// assertNotFound はエラーがBOOKMARK_NOT_FOUNDであることを検証する。
func assertNotFound(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected BOOKMARK_NOT_FOUND error, got nil")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.Code != model.ErrCodeBookmarkNotFound {
		t.Fatalf("error code = %q, want %q", apiErr.Code, model.ErrCodeBookmarkNotFound)
	}
}

func strPtr(s string) *string { return &s }

func TestService_CreateAndList(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "Go Blog", "https://go.dev/blog", "official blog")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated bookmark ID")
	}
	if created.OwnerID != "user-1" {
		t.Errorf("OwnerID = %q, want %q", created.OwnerID, "user-1")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	// 作成したブックマークが一覧にちょうど1件現れること
	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].ID != created.ID {
		t.Errorf("listed ID = %q, want %q", list[0].ID, created.ID)
	}
}

func TestService_List_EmptyReturnsEmptySlice(t *testing.T) {
	svc := newTestService(newFakeBookmarkRepo())

	list, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list == nil {
		t.Fatal("List() should return an empty slice, not nil")
	}
	if len(list) != 0 {
		t.Errorf("len(list) = %d, want 0", len(list))
	}
}

func TestService_List_DoesNotIncludeOtherOwners(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-1", "mine", "https://example.com/a", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx, "user-2", "theirs", "https://example.com/b", ""); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].Title != "mine" {
		t.Errorf("Title = %q, want %q", list[0].Title, "mine")
	}
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		link     string
		wantCode string
	}{
		{"empty title", "", "https://example.com", model.ErrCodeEmptyTitle},
		{"whitespace title", "   ", "https://example.com", model.ErrCodeEmptyTitle},
		{"title only tags", "<script>alert(1)</script>", "https://example.com", model.ErrCodeEmptyTitle},
		{"empty link", "title", "", model.ErrCodeInvalidURL},
		{"relative link", "title", "/path/only", model.ErrCodeInvalidURL},
		{"ftp link", "title", "ftp://example.com/file", model.ErrCodeInvalidURL},
		{"javascript link", "title", "javascript:alert(1)", model.ErrCodeInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookmarkRepo()
			svc := newTestService(repo)

			_, err := svc.Create(context.Background(), "user-1", tt.title, tt.link, "")
			if err == nil {
				t.Fatal("Create() should fail")
			}
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", apiErr.Code, tt.wantCode)
			}

			// 検証エラー時には何も永続化されないこと
			if len(repo.bookmarks) != 0 {
				t.Errorf("repository contains %d records after failed create, want 0", len(repo.bookmarks))
			}
		})
	}
}

func TestService_Create_SanitizesTitleAndDescription(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), "user-1",
		"  <b>Go</b> Blog  ",
		"https://go.dev/blog",
		"<script>steal()</script>notes")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Title != "Go Blog" {
		t.Errorf("Title = %q, want %q", created.Title, "Go Blog")
	}
	if created.Description != "notes" {
		t.Errorf("Description = %q, want %q", created.Description, "notes")
	}
}

func TestService_GetByID_OtherOwnerLooksLikeMissing(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "mine", "https://example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	// 実在しないID
	_, errMissing := svc.GetByID(ctx, "user-2", "no-such-id")
	assertNotFound(t, errMissing)

	// 他ユーザー所有のID
	_, errForeign := svc.GetByID(ctx, "user-2", created.ID)
	assertNotFound(t, errForeign)

	// 所有者には見えること
	got, err := svc.GetByID(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}
}

func TestService_Update_PartialPatch(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "original", "https://example.com/old", "old desc")
	if err != nil {
		t.Fatal(err)
	}

	// descriptionのみ更新。他フィールドは維持されること
	updated, err := svc.Update(ctx, "user-1", created.ID, Patch{Description: strPtr("new desc")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "original" {
		t.Errorf("Title = %q, want %q", updated.Title, "original")
	}
	if updated.Link != "https://example.com/old" {
		t.Errorf("Link = %q, want %q", updated.Link, "https://example.com/old")
	}
	if updated.Description != "new desc" {
		t.Errorf("Description = %q, want %q", updated.Description, "new desc")
	}

	// 空patchでは何も変わらないこと
	unchanged, err := svc.Update(ctx, "user-1", created.ID, Patch{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if unchanged.Title != "original" || unchanged.Link != "https://example.com/old" || unchanged.Description != "new desc" {
		t.Errorf("empty patch changed the record: %+v", unchanged)
	}
}

func TestService_Update_Validation(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "original", "https://example.com", "desc")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		patch    Patch
		wantCode string
	}{
		{"empty title", Patch{Title: strPtr("")}, model.ErrCodeEmptyTitle},
		{"tag-only title", Patch{Title: strPtr("<i></i>")}, model.ErrCodeEmptyTitle},
		{"invalid link", Patch{Link: strPtr("not a url")}, model.ErrCodeInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, "user-1", created.ID, tt.patch)
			if err == nil {
				t.Fatal("Update() should fail")
			}
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("error code = %q, want %q", apiErr.Code, tt.wantCode)
			}

			// 検証エラー時には既存レコードが変化しないこと
			got, err := svc.GetByID(ctx, "user-1", created.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Title != "original" || got.Link != "https://example.com" {
				t.Errorf("record changed after failed update: %+v", got)
			}
		})
	}
}

func TestService_Update_OtherOwnerLooksLikeMissing(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "mine", "https://example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Update(ctx, "user-2", created.ID, Patch{Title: strPtr("hijacked")})
	assertNotFound(t, err)

	// 所有者のレコードが変化していないこと
	got, err := svc.GetByID(ctx, "user-1", created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "mine" {
		t.Errorf("Title = %q, want %q", got.Title, "mine")
	}
}

func TestService_Delete(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "mine", "https://example.com", "")
	if err != nil {
		t.Fatal(err)
	}

	// 他ユーザーからの削除は未検出扱いで、レコードは残ること
	assertNotFound(t, svc.Delete(ctx, "user-2", created.ID))
	if _, err := svc.GetByID(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("record should survive a foreign delete attempt: %v", err)
	}

	// 所有者による削除
	if err := svc.Delete(ctx, "user-1", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// 削除後の一覧は空であること
	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("len(list) = %d after delete, want 0", len(list))
	}

	// 同一IDの再削除は未検出エラーになること
	assertNotFound(t, svc.Delete(ctx, "user-1", created.ID))
}
