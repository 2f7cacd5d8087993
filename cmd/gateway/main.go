package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/paperforge/paperforge/internal/aigen"
	api "github.com/paperforge/paperforge/internal/api/http"
	"github.com/paperforge/paperforge/internal/auth"
	"github.com/paperforge/paperforge/internal/config"
	"github.com/paperforge/paperforge/internal/db"
	"github.com/paperforge/paperforge/internal/paper"
	"github.com/paperforge/paperforge/internal/question"
	"github.com/paperforge/paperforge/internal/subject"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	questions := question.NewSQLStore(dbh)
	subjects := subject.NewSQLStore(dbh)
	papers := paper.NewService(paper.NewSQLStore(dbh), questions, nil)

	var labeler question.Labeler = question.NoopLabeler{}
	if cfg.ClassifierURL != "" {
		labeler = question.NewHTTPLabeler(cfg.ClassifierURL)
	}
	gen := aigen.NewFromEnv(cfg.OpenAIModel)

	authSvc := auth.NewAuthService(cfg.AuthSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/signup", api.SignupHandler(dbh, authSvc))
	r.Post("/auth/login", api.LoginHandler(dbh, authSvc))

	// Protected API: everything below is scoped to the token's account.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.Get("/auth/me", api.MeHandler(dbh))
		pr.Put("/auth/me", api.UpdateMeHandler(dbh))

		pr.Route("/subjects", func(sr chi.Router) {
			sr.Post("/", api.CreateSubjectHandler(subjects))
			sr.Get("/", api.ListSubjectsHandler(subjects))
			sr.Delete("/{subjectID}", api.DeleteSubjectHandler(subjects))
		})

		pr.Route("/questions", func(qr chi.Router) {
			qr.Post("/upload", api.UploadQuestionsHandler(subjects, questions, labeler))
			qr.Get("/", api.ListQuestionsHandler(questions))
			qr.Post("/ai-generate", api.AIGenerateHandler(gen))
			qr.Get("/ai-status", api.AIStatusHandler(gen))
		})

		pr.Route("/papers", func(ppr chi.Router) {
			ppr.Post("/generate", api.GeneratePaperHandler(papers))
			ppr.Post("/{paperID}/accept", api.AcceptItemHandler(papers))
			ppr.Post("/{paperID}/replace", api.ReplaceItemHandler(papers))
			ppr.Get("/{paperID}/details", api.PaperDetailsHandler(papers))
			ppr.Get("/{paperID}/export", api.ExportPaperHandler(papers))
			ppr.Get("/", api.ListPapersHandler(papers))
		})

		pr.Get("/stats", api.StatsHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
