// file: config/config.go
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// RankPolicy 段位判定策略：score（按总分）或 completions（按完成任务数）
type RankPolicy string

const (
	RankPolicyScore       RankPolicy = "score"
	RankPolicyCompletions RankPolicy = "completions"
)

type Config struct {
	ListenAddr    string
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	FlagPrefix    string     // Flag 模板前缀，如 ARLab → ARLab{...}
	RankPolicy    RankPolicy // 部署时二选一，默认 score
	SeedMissions  bool
}

var App Config

// Load 从环境变量加载配置（.env 文件存在时优先读取）
func Load() {
	// .env 不存在不算错误，生产环境直接用环境变量
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	App = Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:123456@tcp(localhost:3306)/arlab_portal?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", "a-very-secure-secret-that-should-be-in-env"),
		FlagPrefix:    getEnv("FLAG_PREFIX", "ARLab"),
		RankPolicy:    RankPolicy(getEnv("RANK_POLICY", string(RankPolicyScore))),
		SeedMissions:  getEnv("SEED_MISSIONS", "false") == "true",
	}

	if App.RankPolicy != RankPolicyScore && App.RankPolicy != RankPolicyCompletions {
		log.Printf("Unknown RANK_POLICY %q, falling back to score", App.RankPolicy)
		App.RankPolicy = RankPolicyScore
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
