package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect открывает соединение с Postgres. TranslateError нужен, чтобы
// нарушение уникального индекса поднималось как gorm.ErrDuplicatedKey,
// а не как сырая ошибка драйвера.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("подключение к postgres: %w", err)
	}
	return conn, nil
}
