package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/plwordle/plwordle/internal/domain/game"
	"github.com/plwordle/plwordle/internal/platform/logging"
	"github.com/plwordle/plwordle/internal/usecase"
)

type Handler struct {
	authService    *usecase.AuthService
	catalogService *usecase.CatalogService
	gameService    *usecase.GameService
	targetService  *usecase.DailyTargetService
	logger         *logging.Logger
	validator      *validator.Validate
	now            func() time.Time
}

func NewHandler(
	authService *usecase.AuthService,
	catalogService *usecase.CatalogService,
	gameService *usecase.GameService,
	targetService *usecase.DailyTargetService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:    authService,
		catalogService: catalogService,
		gameService:    gameService,
		targetService:  targetService,
		logger:         logger,
		validator:      validator.New(),
		now:            time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUp")
	defer span.End()

	var req signupRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "signup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	writeSuccess(ctx, w, http.StatusCreated, sessionDTO{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) LogIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LogIn")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.LogIn(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	writeSuccess(ctx, w, http.StatusOK, sessionDTO{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) LogOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LogOut")
	defer span.End()

	if token, err := sessionToken(r); err == nil {
		if err := h.authService.LogOut(ctx, token); err != nil {
			h.logger.WarnContext(ctx, "logout failed", "error", err)
			writeError(ctx, w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "logged out"})
}

// GetPlay renders today's board for the authenticated user: the name list for
// the autocomplete widget and the guesses made so far with revealed
// attributes. Before the first guess of the day the board is empty.
func (h *Handler) GetPlay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlay")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	target, err := h.targetService.EnsureToday(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "ensure daily target failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	session, err := h.gameService.CurrentSession(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "load session failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	view, err := h.buildPlayView(ctx, target, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "build play view failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

// SubmitGuess handles the board's form post. Fields: guess[id] (preferred),
// guess[name] (autocomplete fallback), today (epoch millis echoed by the
// widget; validated but the server clock decides the game day).
func (h *Handler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitGuess")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: malformed form payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	if todayRaw := strings.TrimSpace(r.PostFormValue("today")); todayRaw != "" {
		if _, err := strconv.ParseInt(todayRaw, 10, 64); err != nil {
			h.logger.WarnContext(ctx, "malformed today field", "user_id", principal.UserID, "value", todayRaw)
			writeError(ctx, w, errRefreshPage)
			return
		}
	}

	playerID, err := h.catalogService.ResolveGuess(ctx, r.PostFormValue("guess[id]"), r.PostFormValue("guess[name]"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	target, err := h.targetService.EnsureToday(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "ensure daily target failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	session, err := h.gameService.SubmitGuess(ctx, principal.UserID, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.buildPlayView(ctx, target, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "build play view failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, view)
}

// buildPlayView assembles the board DTO: rows in descending guess order, the
// answer revealed only once the session is solved or exhausted.
func (h *Handler) buildPlayView(ctx context.Context, target game.DailyTarget, session game.Session) (playViewDTO, error) {
	names, err := h.catalogService.ListNames(ctx)
	if err != nil {
		return playViewDTO{}, err
	}

	playerIDs := make([]int64, 0, len(session.Guesses))
	for _, g := range session.Guesses {
		playerIDs = append(playerIDs, g.PlayerID)
	}
	players, err := h.catalogService.GetPlayers(ctx, playerIDs)
	if err != nil {
		return playViewDTO{}, err
	}
	playersByID := make(map[int64]struct{ idx int }, len(players))
	for i, p := range players {
		playersByID[p.ID] = struct{ idx int }{i}
	}

	now := h.now()
	solved := false
	rows := make([]guessRowDTO, 0, len(session.Guesses))
	for _, g := range session.Guesses {
		ref, ok := playersByID[g.PlayerID]
		if !ok {
			continue
		}
		row := guessToRowDTO(ctx, g, players[ref.idx], target.PlayerID, now)
		if row.Correct {
			solved = true
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Number > rows[j].Number })

	view := playViewDTO{
		Day:              session.Day.String(),
		GuessesUsed:      session.LastNumber(),
		GuessesRemaining: game.MaxGuesses - session.LastNumber(),
		Solved:           solved,
		Exhausted:        session.Exhausted(),
		Guesses:          rows,
		Players:          make([]nameEntryDTO, 0, len(names)),
	}
	for _, entry := range names {
		view.Players = append(view.Players, nameEntryToDTO(entry))
	}

	if solved || view.Exhausted {
		answers, err := h.catalogService.GetPlayers(ctx, []int64{target.PlayerID})
		if err != nil {
			return playViewDTO{}, err
		}
		if len(answers) == 1 {
			view.Answer = &nameEntryDTO{ID: answers[0].ID, Name: answers[0].Name, ImageURL: answers[0].ImageURL}
		}
	}

	return view, nil
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
