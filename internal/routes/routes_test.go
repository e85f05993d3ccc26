package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/blogverse-backend/internal/handlers"
	"github.com/AnshRaj112/blogverse-backend/internal/middleware"
	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/services"
	"github.com/AnshRaj112/blogverse-backend/internal/store/memstore"
)

type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (d *memDenylist) Revoke(_ context.Context, id string, _ time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[id] = true
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[id], nil
}

type testServer struct {
	router *chi.Mux
	tokens *services.TokenService
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens, err := services.NewTokenService("routes-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	// Each server-stamped time is one minute after the previous one.
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	h := handlers.New(memstore.New(), tokens,
		handlers.WithDenylist(&memDenylist{revoked: map[string]bool{}}),
		handlers.WithClock(now),
	)
	router := NewRouter(h, middleware.RequireToken(tokens, h.Denylist()), []string{"http://localhost:5173"})
	return &testServer{router: router, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: services.TokenCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	token, _, err := s.tokens.Issue(models.Identity{Email: email})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (s *testServer) createBlog(t *testing.T, body string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/create-new-blog", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("create blog: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res models.InsertResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode insert result: %v", err)
	}
	if !res.Acknowledged || res.InsertedID.IsZero() {
		t.Fatalf("unexpected insert result %s", w.Body.String())
	}
	return res.InsertedID.Hex()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestGatedRoutesRequireToken(t *testing.T) {
	s := setupTestServer(t)
	id := s.createBlog(t, `{"title":"A"}`)

	cases := []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/blog-details/" + id, ""},
		{http.MethodPut, "/api/v1/update-blog/" + id, `{"title":"B"}`},
		{http.MethodGet, "/api/v1/wishlist?email=a@example.com", ""},
		{http.MethodGet, "/api/v1/wishlist", ""},
		{http.MethodPost, "/api/v1/upload-image", ""},
	}
	for _, tc := range cases {
		for _, token := range []string{"", "garbage"} {
			w := s.do(t, tc.method, tc.path, tc.body, token)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("%s %s with token %q: expected 401, got %d", tc.method, tc.path, token, w.Code)
			}
			if msg := decode[map[string]string](t, w)["message"]; msg != "Unauthorized access" {
				t.Fatalf("unexpected message %q", msg)
			}
		}
	}
}

func TestIssueTokenSetsCookie(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/jwt", `{"email":"a@example.com","displayName":"Ann","photoURL":"https://img.example.com/ann.png"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !decode[map[string]bool](t, w)["success"] {
		t.Fatalf("expected success:true, got %s", w.Body.String())
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != services.TokenCookieName {
		t.Fatalf("expected one token cookie, got %+v", cookies)
	}
	c := cookies[0]
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteNoneMode {
		t.Fatalf("expected HttpOnly, Secure, SameSite=None cookie, got %+v", c)
	}

	id, err := s.tokens.Verify(c.Value)
	if err != nil {
		t.Fatalf("cookie token does not verify: %v", err)
	}
	if id.Email != "a@example.com" || id.Name != "Ann" || id.PhotoURL != "https://img.example.com/ann.png" {
		t.Fatalf("expected the login body in the claims, got %+v", id)
	}

	// The issued cookie opens the gate.
	blogID := s.createBlog(t, `{"title":"A"}`)
	if w := s.do(t, http.MethodGet, "/api/v1/blog-details/"+blogID, "", c.Value); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with issued cookie, got %d", w.Code)
	}
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	s := setupTestServer(t)
	if w := s.do(t, http.MethodPost, "/api/v1/jwt", `{"displayName":"Ann"}`, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/v1/jwt", `{`, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "a@example.com")
	blogID := s.createBlog(t, `{"title":"A"}`)

	w := s.do(t, http.MethodPost, "/api/v1/logout", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("expected cleared token cookie, got %+v", cookies)
	}

	if w := s.do(t, http.MethodGet, "/api/v1/blog-details/"+blogID, "", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}

	// Logging out without a session is fine too.
	if w := s.do(t, http.MethodPost, "/api/v1/logout", "", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous logout, got %d", w.Code)
	}
}

func TestCreateThenFetchBlog(t *testing.T) {
	s := setupTestServer(t)
	id := s.createBlog(t, `{"title":"A","category":"tech","shortDescription":"s","longDescription":"l","userMail":"a@example.com"}`)

	w := s.do(t, http.MethodGet, "/api/v1/blog/"+id, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	blogs := decode[[]models.Blog](t, w)
	if len(blogs) != 1 {
		t.Fatalf("expected one blog, got %d", len(blogs))
	}
	b := blogs[0]
	if b.ID.Hex() != id || b.Title != "A" || b.Category != "tech" || b.ShortDescription != "s" ||
		b.LongDescription != "l" || b.UserMail != "a@example.com" {
		t.Fatalf("round trip changed fields: %+v", b)
	}
	if b.AddedTime == nil || b.AddedTime.IsZero() {
		t.Fatalf("expected server-stamped addedTime")
	}

	token := s.login(t, "reader@example.com")
	w = s.do(t, http.MethodGet, "/api/v1/blog-details/"+id, "", token)
	if got := decode[models.Blog](t, w); got.Title != "A" {
		t.Fatalf("blog-details returned %+v", got)
	}
}

func TestCreateBlogIgnoresClientID(t *testing.T) {
	s := setupTestServer(t)
	client := "65a000000000000000000009"
	id := s.createBlog(t, fmt.Sprintf(`{"_id":%q,"title":"A"}`, client))
	if id == client {
		t.Fatalf("expected server-assigned id")
	}
}

func TestMissingBlog(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "reader@example.com")
	missing := "65a000000000000000000000"

	w := s.do(t, http.MethodGet, "/api/v1/blog-details/"+missing, "", token)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "null" {
		t.Fatalf("expected 200 null, got %d %q", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/v1/blog/"+missing, "", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected 200 [], got %d %q", w.Code, w.Body.String())
	}
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "reader@example.com")

	cases := []struct{ method, path, token string }{
		{http.MethodGet, "/api/v1/blog/not-an-id", ""},
		{http.MethodGet, "/api/v1/blog-details/not-an-id", token},
		{http.MethodDelete, "/api/v1/delete-comment/not-an-id", ""},
		{http.MethodDelete, "/api/v1/remove-wishlist/not-an-id", ""},
	}
	for _, tc := range cases {
		if w := s.do(t, tc.method, tc.path, "", tc.token); w.Code != http.StatusBadRequest {
			t.Fatalf("%s %s: expected 400, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestAllBlogsFilter(t *testing.T) {
	s := setupTestServer(t)
	s.createBlog(t, `{"title":"Go in practice","category":"tech"}`)
	s.createBlog(t, `{"title":"Going places","category":"travel"}`)
	s.createBlog(t, `{"title":"Rust","category":"tech"}`)
	s.createBlog(t, `{"title":"Tech-ish","category":"Tech"}`)

	tech := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/all-blogs?category=tech", "", ""))
	if len(tech) != 2 {
		t.Fatalf("expected 2 tech blogs, got %d", len(tech))
	}
	for _, b := range tech {
		if b.Category != "tech" {
			t.Fatalf("category filter returned %q", b.Category)
		}
	}

	goBlogs := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/all-blogs?q=GO", "", ""))
	if len(goBlogs) != 2 {
		t.Fatalf("expected 2 title matches, got %d", len(goBlogs))
	}

	both := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/all-blogs?q=go&category=tech", "", ""))
	if len(both) != 1 || both[0].Title != "Go in practice" {
		t.Fatalf("expected combined filter to match one blog, got %+v", both)
	}

	all := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/all-blogs", "", ""))
	if len(all) != 4 {
		t.Fatalf("expected all 4 blogs, got %d", len(all))
	}
}

func TestHomePageSections(t *testing.T) {
	s := setupTestServer(t)
	for i := 0; i < 20; i++ {
		s.createBlog(t, fmt.Sprintf(`{"title":"post-%02d","longDescription":%q}`, i, strings.Repeat("x", (i*7)%20)))
	}

	recent := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/recent-blogs", "", ""))
	if len(recent) != 6 || recent[0].Title != "post-19" || recent[5].Title != "post-14" {
		t.Fatalf("unexpected recent blogs %v", titles(recent))
	}

	trending := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/trending-blogs", "", ""))
	if len(trending) != 10 || trending[0].Title != "post-05" || trending[9].Title != "post-14" {
		t.Fatalf("unexpected trending blogs %v", titles(trending))
	}

	banner := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/banner-blogs", "", ""))
	if len(banner) != 5 || banner[0].Title != "post-00" {
		t.Fatalf("unexpected banner blogs %v", titles(banner))
	}

	featured := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/featured-blogs", "", ""))
	if len(featured) != 10 {
		t.Fatalf("expected 10 featured blogs, got %d", len(featured))
	}
	for i := 1; i < len(featured); i++ {
		if len(featured[i-1].LongDescription) < len(featured[i].LongDescription) {
			t.Fatalf("featured blogs out of order: %v", titles(featured))
		}
	}
}

func titles(blogs []models.Blog) []string {
	out := make([]string, len(blogs))
	for i, b := range blogs {
		out[i] = b.Title
	}
	return out
}

func TestUpdateBlogUpsertIsIdempotent(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "a@example.com")
	id := s.createBlog(t, `{"title":"A","category":"tech"}`)
	payload := `{"title":"B","category":"life","blogImage":"img","shortDescription":"s","longDescription":"l","displayName":"Ann","email":"a@example.com","photoURL":"p"}`

	w := s.do(t, http.MethodPut, "/api/v1/update-blog/"+id, payload, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	first := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/blog/"+id, "", ""))

	w = s.do(t, http.MethodPut, "/api/v1/update-blog/"+id, payload, token)
	res := decode[models.UpdateResult](t, w)
	if res.MatchedCount != 1 || res.ModifiedCount != 0 {
		t.Fatalf("expected repeated update to match without modifying, got %+v", res)
	}
	second := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/blog/"+id, "", ""))

	a, b := first[0], second[0]
	if a.Title != "B" || a.UserName != "Ann" || a.UserMail != "a@example.com" || a.UserPhoto != "p" {
		t.Fatalf("update not applied: %+v", a)
	}
	if a.Title != b.Title || a.Category != b.Category || a.BlogImage != b.BlogImage ||
		a.UserName != b.UserName || !a.AddedTime.Equal(*b.AddedTime) {
		t.Fatalf("repeated update changed state: %+v vs %+v", a, b)
	}
}

func TestUpdateBlogCreatesUnknownID(t *testing.T) {
	s := setupTestServer(t)
	token := s.login(t, "a@example.com")
	id := "65a0000000000000000000aa"

	res := decode[models.UpdateResult](t, s.do(t, http.MethodPut, "/api/v1/update-blog/"+id, `{"title":"New"}`, token))
	if res.UpsertedCount != 1 || res.UpsertedID == nil || res.UpsertedID.Hex() != id {
		t.Fatalf("expected upsert to insert %s, got %+v", id, res)
	}

	blogs := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/blog/"+id, "", ""))
	if len(blogs) != 1 || blogs[0].Title != "New" {
		t.Fatalf("expected upserted blog, got %+v", blogs)
	}
}

func TestComments(t *testing.T) {
	s := setupTestServer(t)
	postID := s.createBlog(t, `{"title":"A"}`)

	w := s.do(t, http.MethodPost, "/api/v1/add-blog-comment", fmt.Sprintf(`{"postID":%q,"comment":"nice"}`, postID), "")
	res := decode[models.InsertResult](t, w)
	s.do(t, http.MethodPost, "/api/v1/add-blog-comment", `{"postID":"other","comment":"elsewhere"}`, "")

	comments := decode[[]models.Comment](t, s.do(t, http.MethodGet, "/api/v1/comment/"+postID, "", ""))
	if len(comments) != 1 || comments[0].Comment != "nice" || comments[0].AddedTime == nil {
		t.Fatalf("unexpected comments %+v", comments)
	}

	del := decode[models.DeleteResult](t, s.do(t, http.MethodDelete, "/api/v1/delete-comment/"+res.InsertedID.Hex(), "", ""))
	if del.DeletedCount != 1 {
		t.Fatalf("expected one deleted comment, got %+v", del)
	}
	comments = decode[[]models.Comment](t, s.do(t, http.MethodGet, "/api/v1/comment/"+postID, "", ""))
	if len(comments) != 0 {
		t.Fatalf("expected no comments after delete, got %+v", comments)
	}

	// Deleting comments leaves the post alone.
	if blogs := decode[[]models.Blog](t, s.do(t, http.MethodGet, "/api/v1/blog/"+postID, "", "")); len(blogs) != 1 {
		t.Fatalf("expected post to survive comment deletion")
	}
}

func TestWishlistAuthorizer(t *testing.T) {
	s := setupTestServer(t)
	for _, body := range []string{
		`{"userMail":"a@example.com","blogId":"1","title":"one"}`,
		`{"userMail":"b@example.com","blogId":"2","title":"two"}`,
		`{"userMail":"a@example.com","blogId":"3","title":"three"}`,
	} {
		if w := s.do(t, http.MethodPost, "/api/v1/create-wishlist", body, ""); w.Code != http.StatusOK {
			t.Fatalf("create wishlist: expected 200, got %d", w.Code)
		}
	}
	token := s.login(t, "a@example.com")

	w := s.do(t, http.MethodGet, "/api/v1/wishlist?email=b@example.com", "", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another owner, got %d", w.Code)
	}
	if msg := decode[map[string]string](t, w)["message"]; msg != "Forbidden access" {
		t.Fatalf("unexpected message %q", msg)
	}

	// A present but empty owner is a mismatch, not an unscoped read.
	if w := s.do(t, http.MethodGet, "/api/v1/wishlist?email=", "", token); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for empty owner, got %d", w.Code)
	}

	// Forbidden does not depend on whether the other owner has entries.
	if w := s.do(t, http.MethodGet, "/api/v1/wishlist?email=nobody@example.com", "", token); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown owner, got %d", w.Code)
	}

	mine := decode[[]models.WishlistItem](t, s.do(t, http.MethodGet, "/api/v1/wishlist?email=a@example.com", "", token))
	if len(mine) != 2 {
		t.Fatalf("expected 2 own entries, got %d", len(mine))
	}
	for _, item := range mine {
		if item.UserMail != "a@example.com" {
			t.Fatalf("got entry of another owner: %+v", item)
		}
	}

	// Without an owner parameter the list is unscoped.
	all := decode[[]models.WishlistItem](t, s.do(t, http.MethodGet, "/api/v1/wishlist", "", token))
	if len(all) != 3 {
		t.Fatalf("expected unscoped list of 3, got %d", len(all))
	}

	del := decode[models.DeleteResult](t, s.do(t, http.MethodDelete, "/api/v1/remove-wishlist/"+mine[0].ID.Hex(), "", ""))
	if del.DeletedCount != 1 {
		t.Fatalf("expected one removed entry, got %+v", del)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := setupTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/wishlist", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials to be allowed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/wishlist", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected unknown origin to be refused, got %q", got)
	}
}

func TestRootAndHealth(t *testing.T) {
	s := setupTestServer(t)
	if w := s.do(t, http.MethodGet, "/", "", ""); w.Body.String() != "Server is running." {
		t.Fatalf("unexpected root body %q", w.Body.String())
	}
	if w := s.do(t, http.MethodGet, "/health", "", ""); w.Body.String() != "OK" {
		t.Fatalf("unexpected health body %q", w.Body.String())
	}
}
