package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/skylt/dbopen"
	"github.com/hazyhaar/skylt/kit"
	"github.com/hazyhaar/skylt/runstore"
	"github.com/hazyhaar/skylt/scan"
)

// maxAnalyzeBody caps POST /api/analyze request bodies.
const maxAnalyzeBody = 10 << 20

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := scan.LoadConfig(configPath)
			if err != nil {
				return err
			}
			db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll())
			if err != nil {
				return err
			}
			defer db.Close()

			svc, err := scan.New(db, *cfg)
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if _, err := svc.Cleanup(ctx); err != nil {
				slog.Warn("skylt: retention cleanup", "error", err)
			}

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.Recoverer)
			r.Use(kitContext)

			r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ok"))
			})

			r.Route("/api", func(r chi.Router) {
				if mw := authMiddleware(os.Getenv("AUTH_PASSWORD")); mw != nil {
					r.Use(mw)
				}
				r.Post("/analyze", handleAnalyzeHTML(svc))
				r.Post("/analyze/url", handleAnalyzeURL(svc))
				r.Get("/runs", handleListRuns(svc))
				r.Get("/runs/{runID}", handleGetRun(svc))
				r.Delete("/runs/{runID}", handleDeleteRun(svc))
				r.Get("/runs/{runID}/export", handleExportRun(svc))
			})

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				slog.Info("skylt: listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Warn("skylt: shutdown", "error", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", envOr("PORT", "8086"), "HTTP listen port")
	return cmd
}

// kitContext copies per-request metadata into the context keys the service
// layer logs with. Must run after chi's RequestID middleware.
func kitContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := kit.WithTransport(req.Context(), "http")
		ctx = kit.WithRequestID(ctx, middleware.GetReqID(ctx))
		ctx = kit.WithRemoteAddr(ctx, req.RemoteAddr)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// authMiddleware returns a bearer-token check against the configured
// password, or nil when no password is set (open dev mode).
func authMiddleware(password string) func(http.Handler) http.Handler {
	if password == "" {
		slog.Warn("skylt: AUTH_PASSWORD not set, API is unauthenticated")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("skylt: hash password", "error", err)
		os.Exit(1)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
			if token == "" || bcrypt.CompareHashAndPassword(hash, []byte(token)) != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

type analyzeHTMLBody struct {
	HTML    string `json:"html"`
	PageURL string `json:"page_url,omitempty"`
}

func handleAnalyzeHTML(svc *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(io.LimitReader(req.Body, maxAnalyzeBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, "read body")
			return
		}

		var pageHTML []byte
		var pageURL string
		if strings.HasPrefix(req.Header.Get("Content-Type"), "application/json") {
			var in analyzeHTMLBody
			if err := json.Unmarshal(body, &in); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json")
				return
			}
			pageHTML = []byte(in.HTML)
			pageURL = in.PageURL
		} else {
			// Raw HTML body.
			pageHTML = body
			pageURL = req.URL.Query().Get("page_url")
		}

		run, err := svc.AnalyzeHTML(req.Context(), pageHTML, pageURL)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

type analyzeURLBody struct {
	URL string `json:"url"`
}

func handleAnalyzeURL(svc *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var in analyzeURLBody
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil || in.URL == "" {
			writeError(w, http.StatusBadRequest, "url required")
			return
		}
		run, err := svc.AnalyzeURL(req.Context(), in.URL)
		if err != nil {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

func handleListRuns(svc *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		runs, err := svc.ListRuns(req.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	}
}

func handleGetRun(svc *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		run, err := svc.GetRun(req.Context(), chi.URLParam(req, "runID"))
		if errors.Is(err, runstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, run)
	}
}

func handleDeleteRun(svc *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := svc.DeleteRun(req.Context(), chi.URLParam(req, "runID"))
		if errors.Is(err, runstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleExportRun(svc *scan.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		path, err := svc.ExportRun(req.Context(), chi.URLParam(req, "runID"), nil)
		if errors.Is(err, runstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"path": path})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("skylt: encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
