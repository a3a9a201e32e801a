// scripts/migrate.go
package scripts

import (
	"log"

	"github.com/moverq1337/hr-core/internal/config"
	"github.com/moverq1337/hr-core/internal/db"
	"github.com/moverq1337/hr-core/internal/storage"
)

func Migrate() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbConn, err := db.Connect(cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}

	// Автомиграция обновит схему и досеет справочник статусов
	if err := storage.New(dbConn).AutoMigrate(); err != nil {
		log.Fatal(err)
	}

	log.Println("Миграции завершены")
}
