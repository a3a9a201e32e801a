package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moverq1337/hr-core/internal/auth"
	"github.com/moverq1337/hr-core/internal/clients"
	"github.com/moverq1337/hr-core/internal/config"
	"github.com/moverq1337/hr-core/internal/db"
	"github.com/moverq1337/hr-core/internal/handlers"
	"github.com/moverq1337/hr-core/internal/service"
	"github.com/moverq1337/hr-core/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}

	store := storage.New(dbConn)
	if err := store.AutoMigrate(); err != nil {
		log.Fatal(err)
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	llm := clients.NewLLMClient(cfg.LLMServiceURL, httpClient)
	score := clients.NewScoreClient(cfg.ScoreServiceURL, httpClient)
	parser := clients.NewParserClient(cfg.ParserServiceURL, httpClient)

	authManager := auth.NewManager(cfg.JWTSecret)

	users := service.NewUserService(store, authManager)
	resumes := service.NewResumeService(store, llm, llm)
	vacancies := service.NewVacancyService(store, parser, llm)
	matches := service.NewMatchService(store, score)
	statuses := service.NewCandidateStatusService(store)
	applications := service.NewJobApplicationService(store)
	offers := service.NewOfferService(store)

	r := gin.Default()
	h := handlers.New(users, resumes, vacancies, matches, statuses, applications, offers, authManager)
	h.SetupRoutes(r)

	log.Printf("Core Service запущен на порту %s", cfg.HTTPPort)
	if err := r.Run(cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
