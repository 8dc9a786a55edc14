// @title Trip Planner API
// @version 1.0
// @description API агрегатора мест для планирования поездок. Поиск ресторанов, отелей, транспорта и достопримечательностей через OpenStreetMap с локальным кэшем в SQLite.

// @contact.name API Support
// @contact.email support@example.com

// @license.name Internal Use Only
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tripserver/database"
	"tripserver/internal/config"
	"tripserver/server"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════")
	log.Println("🚀 Запуск Trip Planner сервера...")

	// Загружаем конфигурацию из переменных окружения
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("✗ Ошибка загрузки конфигурации: %v", err)
	}

	// Открываем базу данных с настройками пула соединений
	dbConfig := database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	db, err := database.NewDBWithConfig(cfg.DatabasePath, dbConfig)
	if err != nil {
		log.Fatalf("✗ Ошибка создания базы данных: %v", err)
	}
	defer db.Close()

	// Начальное заполнение: категории и запасные демо-места
	if err := db.EnsureSeedCategories(); err != nil {
		log.Fatalf("✗ Ошибка заполнения категорий: %v", err)
	}
	if err := db.EnsureSeedPlaces(); err != nil {
		log.Printf("⚠ Не удалось создать демонстрационные места: %v", err)
	}

	srv := server.NewServer(db, cfg)

	// Запускаем сервер в отдельной горутине
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Паника при запуске сервера: %v", r)
			}
		}()
		if err := srv.Start(); err != nil {
			log.Fatalf("✗ КРИТИЧЕСКАЯ ОШИБКА: Ошибка запуска сервера: %v", err)
		}
	}()

	// Обработка сигналов для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("═══════════════════════════════════════════════════════")
		log.Println("⏹  Получен сигнал завершения, останавливаю сервер...")

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("✗ Ошибка при остановке сервера: %v", err)
		} else {
			log.Println("✓ Сервер успешно остановлен")
		}

		cancel()
	}()

	log.Println("═══════════════════════════════════════════════════════")
	log.Printf("✓ Сервер успешно запущен на порту %s", cfg.Port)
	log.Printf("✓ API доступно: http://localhost:%s/api", cfg.Port)
	log.Printf("✓ Swagger UI: http://localhost:%s/swagger/index.html", cfg.Port)
	log.Printf("✓ База данных: %s", cfg.DatabasePath)
	log.Println("  Для остановки нажмите Ctrl+C")
	log.Println("═══════════════════════════════════════════════════════")

	<-ctx.Done()
}
