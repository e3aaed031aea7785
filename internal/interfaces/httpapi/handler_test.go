package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/plwordle/plwordle/internal/domain/game"
	"github.com/plwordle/plwordle/internal/infrastructure/repository/memory"
	"github.com/plwordle/plwordle/internal/platform/cache"
	"github.com/plwordle/plwordle/internal/platform/id"
	"github.com/plwordle/plwordle/internal/platform/logging"
	"github.com/plwordle/plwordle/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	catalogRepo := memory.SeededCatalogRepository()
	gameRepo := memory.NewGameRepository()

	authService := usecase.NewAuthService(
		memory.NewUserRepository(),
		memory.NewSessionRepository(),
		id.NewRandomGenerator(),
		time.Hour,
		logger,
	)
	catalogService := usecase.NewCatalogService(catalogRepo, cache.NewStore(time.Minute))
	gameService := usecase.NewGameService(gameRepo, logger)
	targetService := usecase.NewDailyTargetService(gameRepo, catalogRepo, logger)

	handler := NewHandler(authService, catalogService, gameService, targetService, logger)

	return NewRouter(handler, authService, logger, nil)
}

func signUpTestUser(t *testing.T, router http.Handler, email string) *http.Cookie {
	t.Helper()

	payload := `{"email":"` + email + `","password":"corr3ct-horse"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("signup returned %d: %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("signup did not set a session cookie")
	return nil
}

func postGuess(t *testing.T, router http.Handler, cookie *http.Cookie, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/play", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodePlayView(t *testing.T, body []byte) playViewDTO {
	t.Helper()

	var envelope struct {
		Data playViewDTO `json:"data"`
	}
	if err := sonic.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal play view: %v", err)
	}
	return envelope.Data
}

func TestRouter_PlayRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/play", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}
}

func TestRouter_GetPlay_EmptyBoardForNewUser(t *testing.T) {
	router := newTestRouter(t)
	cookie := signUpTestUser(t, router, "fan@example.com")

	req := httptest.NewRequest(http.MethodGet, "/play", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("get play returned %d: %s", rec.Code, rec.Body.String())
	}

	view := decodePlayView(t, rec.Body.Bytes())
	if view.GuessesUsed != 0 || len(view.Guesses) != 0 {
		t.Fatalf("expected empty board, got %+v", view)
	}
	if view.GuessesRemaining != game.MaxGuesses {
		t.Fatalf("expected %d guesses remaining, got %d", game.MaxGuesses, view.GuessesRemaining)
	}
	if len(view.Players) == 0 {
		t.Fatal("expected the autocomplete name list")
	}
	if view.Answer != nil {
		t.Fatal("answer must stay hidden on a fresh board")
	}
}

func TestRouter_SubmitGuess_ByNameRevealsAttributes(t *testing.T) {
	router := newTestRouter(t)
	cookie := signUpTestUser(t, router, "fan@example.com")

	rec := postGuess(t, router, cookie, url.Values{
		"guess[name]": {"mohamed salah"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit guess returned %d: %s", rec.Code, rec.Body.String())
	}

	view := decodePlayView(t, rec.Body.Bytes())
	if view.GuessesUsed != 1 || len(view.Guesses) != 1 {
		t.Fatalf("expected one guess, got %+v", view)
	}
	row := view.Guesses[0]
	if row.Name != "Mohamed Salah" {
		t.Fatalf("expected Mohamed Salah, got %q", row.Name)
	}
	if row.TeamLabel != "L" {
		t.Fatalf("expected Liverpool label L, got %q", row.TeamLabel)
	}
	if row.Height != `5'8"` {
		t.Fatalf("expected height 5'8\" for 175cm, got %q", row.Height)
	}
	if row.Age < 34 {
		t.Fatalf("expected a plausible age, got %d", row.Age)
	}
}

func TestRouter_SubmitGuess_UnknownPlayerIs404(t *testing.T) {
	router := newTestRouter(t)
	cookie := signUpTestUser(t, router, "fan@example.com")

	rec := postGuess(t, router, cookie, url.Values{
		"guess[name]": {"Zinedine Zidane"},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown player, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid player guessed") {
		t.Fatalf("expected invalid-player message, got %s", rec.Body.String())
	}
}

func TestRouter_SubmitGuess_MalformedTodayIs500(t *testing.T) {
	router := newTestRouter(t)
	cookie := signUpTestUser(t, router, "fan@example.com")

	rec := postGuess(t, router, cookie, url.Values{
		"guess[name]": {"Mohamed Salah"},
		"today":       {"not-a-number"},
	})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for malformed today, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "please refresh the page") {
		t.Fatalf("expected refresh message, got %s", rec.Body.String())
	}
}

func TestRouter_SubmitGuess_CapIs400AfterEight(t *testing.T) {
	router := newTestRouter(t)
	cookie := signUpTestUser(t, router, "fan@example.com")

	form := url.Values{"guess[id]": {"1"}, "today": {"1756382400000"}}
	for i := 0; i < game.MaxGuesses; i++ {
		rec := postGuess(t, router, cookie, form)
		if rec.Code != http.StatusOK {
			t.Fatalf("guess %d returned %d: %s", i+1, rec.Code, rec.Body.String())
		}
	}

	rec := postGuess(t, router, cookie, form)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 past the cap, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "out of guesses") {
		t.Fatalf("expected out-of-guesses message, got %s", rec.Body.String())
	}
}

func TestRouter_Landing_ServesHTML(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("landing returned %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Premier League Wordle") {
		t.Fatal("expected page title in body")
	}
}

func TestRouter_AuthFlow_LoginAndLogout(t *testing.T) {
	router := newTestRouter(t)
	signUpTestUser(t, router, "fan@example.com")

	loginReq := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"fan@example.com","password":"corr3ct-horse"}`))
	loginReq.Header.Set("Content-Type", "application/json")
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, loginReq)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", loginRec.Code, loginRec.Body.String())
	}

	var loginCookie *http.Cookie
	for _, cookie := range loginRec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			loginCookie = cookie
		}
	}
	if loginCookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	logoutReq := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	logoutReq.AddCookie(loginCookie)
	logoutRec := httptest.NewRecorder()
	router.ServeHTTP(logoutRec, logoutReq)
	if logoutRec.Code != http.StatusOK {
		t.Fatalf("logout returned %d: %s", logoutRec.Code, logoutRec.Body.String())
	}

	playReq := httptest.NewRequest(http.MethodGet, "/play", nil)
	playReq.AddCookie(loginCookie)
	playRec := httptest.NewRecorder()
	router.ServeHTTP(playRec, playReq)
	if playRec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", playRec.Code)
	}
}

func TestRouter_Signup_RejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(`{"email":"not-an-email","password":"corr3ct-horse"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d: %s", rec.Code, rec.Body.String())
	}
}
