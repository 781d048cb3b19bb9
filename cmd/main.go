package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"centratutor/internal/handlers"
	"centratutor/internal/logger"
	"centratutor/internal/sweeper"
)

func main() {
	godotenv.Load()
	logger.Init(os.Getenv("ENVIRONMENT"))
	defer logger.Sync()

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := []string{"http://localhost:4200"}
	if raw := os.Getenv("CORS_ORIGIN"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "x-auth-token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handlers.SignUp)
			r.Post("/login", handlers.Login)
			r.Post("/token/refresh", handlers.RefreshToken)
			r.With(handlers.Authentication).Get("/me", handlers.Me)
		})

		r.Route("/exams", func(r chi.Router) {
			r.Get("/", handlers.GetExams)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/", handlers.CreateExam)
			r.With(handlers.Authentication, handlers.AdminOnly).Put("/{id}", handlers.UpdateExam)
			r.With(handlers.Authentication, handlers.AdminOnly).Delete("/{id}", handlers.DeleteExam)

			r.Route("/subcategories", func(r chi.Router) {
				r.Use(handlers.Authentication, handlers.AdminOnly)
				r.Put("/{id}", handlers.UpdateSubCategory)
				r.Delete("/{id}", handlers.DeleteSubCategory)
			})

			r.Route("/tracks", func(r chi.Router) {
				r.Use(handlers.Authentication, handlers.AdminOnly)
				r.Post("/", handlers.CreateTrack)
				r.Post("/bulk", handlers.BulkCreateTracks)
				r.Put("/{id}", handlers.UpdateTrack)
				r.Delete("/{id}", handlers.DeleteTrack)
				r.Delete("/{id}/hard", handlers.HardDeleteTrack)
			})

			r.Route("/topics", func(r chi.Router) {
				r.Post("/validate", handlers.ValidateTopic)
				r.With(handlers.Authentication, handlers.AdminOnly).Post("/", handlers.CreateTopic)
				r.With(handlers.Authentication, handlers.AdminOnly).Post("/bulk", handlers.BulkCreateTopics)
				r.With(handlers.Authentication, handlers.AdminOnly).Put("/{id}", handlers.UpdateTopic)
				r.With(handlers.Authentication, handlers.AdminOnly).Delete("/{id}", handlers.DeleteTopic)
			})

			r.Get("/{examName}", handlers.GetExamByName)
			r.Get("/{examName}/subcategories", handlers.GetSubCategories)
			r.Get("/{examName}/subjects", handlers.GetSubjects)
			r.Get("/{examId}/user-flow", handlers.UserFlow)

			r.With(handlers.Authentication, handlers.AdminOnly).Post("/{examId}/subcategories", handlers.CreateSubCategory)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/{examId}/subjects", handlers.CreateSubject)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/{examId}/subjects/bulk", handlers.BulkCreateSubjects)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/{examId}/subjects/availability", handlers.BulkCreateAvailability)

			r.Get("/{examName}/{subCategoryName}/tracks", handlers.GetTracks)
			r.Get("/{examName}/{subjectName}/topics", handlers.GetTopics)
			r.Get("/{examName}/{subjectName}/{trackName}/question-topics", handlers.TrackTopicsWithQuestions)
			r.Get("/{examName}/{subCategoryName}/{subjectName}/{trackName}/topics", handlers.TrackTopicsWithContent)
		})

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", handlers.GetQuestions)
			r.Get("/grouped", handlers.GroupedQuestions)
			r.Get("/quick-practice", handlers.QuickPractice)
			r.Get("/export", handlers.ExportQuestions)
			r.Post("/multi-selection", handlers.QuestionsMultiSelection)
			r.Post("/practice-session", handlers.PracticeSession)
			r.Get("/{id}", handlers.GetQuestionByID)

			r.With(handlers.Authentication, handlers.AdminOnly).Post("/", handlers.CreateQuestion)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/bulk", handlers.BulkUploadQuestions)
			r.With(handlers.Authentication, handlers.AdminOnly).Put("/{id}", handlers.UpdateQuestion)
			r.With(handlers.Authentication, handlers.AdminOnly).Delete("/{id}", handlers.DeleteQuestion)
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/", handlers.GetContent)
			r.Get("/grouped", handlers.GroupedContent)

			r.With(handlers.Authentication, handlers.AdminOnly).Post("/", handlers.CreateContent)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/bulk", handlers.BulkContent)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/bulk/validated", handlers.BulkContentValidated)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/upload", handlers.UploadContentMedia)
			r.With(handlers.Authentication, handlers.AdminOnly).Put("/{id}", handlers.UpdateContent)
			r.With(handlers.Authentication, handlers.AdminOnly).Delete("/{id}", handlers.DeleteContent)
		})

		r.Route("/subscription", func(r chi.Router) {
			r.Use(handlers.Authentication)
			r.Get("/me", handlers.MySubscription)
			r.Post("/", handlers.CreateSubscription)
			r.With(handlers.AdminOnly).Get("/", handlers.ListSubscriptions)
			r.With(handlers.AdminOnly).Post("/sweep", handlers.SweepSubscriptions)
		})

		r.Route("/tutorial-skill", func(r chi.Router) {
			r.Get("/tree", handlers.GetTutorialTree)
			r.With(handlers.Authentication, handlers.AdminOnly).Post("/", handlers.CreateTutorialNode)
			r.With(handlers.Authentication, handlers.AdminOnly).Put("/{id}", handlers.UpdateTutorialNode)
			r.With(handlers.Authentication, handlers.AdminOnly).Delete("/{id}", handlers.DeleteTutorialNode)
		})
	})

	hourlySweep := sweeper.NewHourly()
	hourlySweep.Start()
	defer hourlySweep.Stop()

	dailySweep := sweeper.NewDaily()
	dailySweep.Start()
	defer dailySweep.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		logger.Infof("server listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
}
