package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/linkman/internal/middleware"
	"github.com/hitoshi/linkman/internal/model"
)

// withClaims は検証済みクレームを注入したリクエストを返す。
// ベアラー認証ミドルウェア通過後の状態を再現する。
func withClaims(r *http.Request, userID string) *http.Request {
	claims := model.Claims{UserID: userID, Email: userID + "@example.com"}
	return r.WithContext(middleware.ContextWithClaims(r.Context(), claims))
}

// withURLParam はchiのルートパラメータを注入したリクエストを返す。
// ルーターを経由しない単体テストで使用する。
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonBody はJSON文字列からリクエストボディを生成する。
func jsonBody(s string) *strings.Reader {
	return strings.NewReader(s)
}

// decodeErrorBody はレスポンスから統一エラーフォーマットを読み取る。
func decodeErrorBody(t *testing.T, body io.Reader) middleware.ErrorResponseBody {
	t.Helper()
	var errBody middleware.ErrorResponseBody
	if err := json.NewDecoder(body).Decode(&errBody); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return errBody
}
