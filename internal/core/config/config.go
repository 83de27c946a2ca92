package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type App struct {
	Name string
	Env  string
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 为空则只写控制台
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Store struct {
	Dir       string
	BooksFile string
	UsersFile string
	LoansFile string
}

func (s Store) BooksPath() string { return filepath.Join(s.Dir, s.BooksFile) }
func (s Store) UsersPath() string { return filepath.Join(s.Dir, s.UsersFile) }
func (s Store) LoansPath() string { return filepath.Join(s.Dir, s.LoansFile) }

type Config struct {
	App   App
	Log   Log
	Store Store
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "library")
	v.SetDefault("app.env", "local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/library.log")
	v.SetDefault("log.maxsizemb", 10)
	v.SetDefault("log.maxbackups", 3)
	v.SetDefault("log.maxagedays", 14)
	v.SetDefault("store.dir", "./data")
	v.SetDefault("store.booksfile", "books.csv")
	v.SetDefault("store.usersfile", "users.csv")
	v.SetDefault("store.loansfile", "loans.csv")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
