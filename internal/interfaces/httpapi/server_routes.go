package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /{$}", handler.Landing)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/signup", handler.SignUp)
	mux.HandleFunc("POST /v1/auth/login", handler.LogIn)
	mux.HandleFunc("POST /v1/auth/logout", handler.LogOut)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("GET /play", RequireSession(verifier, http.HandlerFunc(handler.GetPlay)))
	mux.Handle("POST /play", RequireSession(verifier, http.HandlerFunc(handler.SubmitGuess)))
}
