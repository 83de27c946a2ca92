package main

import (
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-library-manager/internal/core/config"
	"go-library-manager/internal/core/logger"
	"go-library-manager/internal/repo"
	"go-library-manager/internal/service"
	"go-library-manager/internal/transport/cli"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()
	undo := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undo()

	// 目录数据加载（坏数据直接 Fatal）
	lib := mustLoadLibrary(cfg, log)
	log.Info("catalog loaded",
		zap.String("store", cfg.Store.Dir),
		zap.Int("books", len(lib.ListBooks())),
		zap.Int("users", len(lib.ListUsers())),
	)

	// Ctrl-C 也要先落盘再退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		if err := lib.SaveAll(); err != nil {
			log.Error("save on signal", zap.Error(err))
		}
		cleanup()
		os.Exit(0)
	}()

	menu := cli.NewMenu(lib, os.Stdin, os.Stdout, log)
	menu.Run()

	// 正常退出前再整体写一遍
	if err := lib.SaveAll(); err != nil {
		log.Fatal("final save FAILED", zap.Error(err))
	}
	log.Info("library stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File == "" {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(
		cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
		cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress,
	)
}

func mustLoadLibrary(cfg *config.Config, l *zap.Logger) *service.Library {
	books := repo.NewBookRepo(cfg.Store.BooksPath())
	users := repo.NewUserRepo(cfg.Store.UsersPath())
	loans := repo.NewLoanRepo(cfg.Store.LoansPath())

	lib, err := service.New(books, users, loans, l)
	if err != nil {
		l.Fatal("store load", zap.Error(err))
	}
	return lib
}
