package httpapi

import (
	"html/template"
	"net/http"

	"github.com/valyala/bytebufferpool"

	"github.com/plwordle/plwordle/internal/domain/game"
)

var landingTemplate = template.Must(template.New("landing").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Premier League Wordle</title>
</head>
<body>
<main>
<h1>Premier League Wordle</h1>
<p>Guess the mystery Premier League footballer. Each guess reveals the
player's club, position, age, jersey number and height. You have
{{.MaxGuesses}} guesses, and there is a new player every day.</p>
<p><a href="/play">Play today's game</a></p>
</main>
</body>
</html>
`))

type landingData struct {
	MaxGuesses int
}

// Landing renders the static entry page. The template is executed into a
// pooled buffer so a render error never leaves a half-written response.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Landing")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := landingTemplate.Execute(buf, landingData{MaxGuesses: game.MaxGuesses}); err != nil {
		h.logger.ErrorContext(ctx, "render landing page failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
