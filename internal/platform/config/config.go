package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerName string
	APIPort    string

	SigningKey      []byte
	MaskTokenTTL    time.Duration
	SessionSecret   []byte
	SessionDuration time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBConnStr  string

	SSHEnabled  bool
	SSHUser     string
	SSHPassword string
	SSHPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MailQueueName string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string

	RecoveryClientURL  string
	RecoverySaltRounds int

	SignupWhiteList []string

	MaxKeyItemNameLength int
	MaxFolderNameLength  int
	MaxCardsPerFolder    int
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		ServerName:           getEnv("SERVER_NAME", "NetBattle Web API"),
		APIPort:              getEnv("API_PORT", "3000"),
		SigningKey:           []byte(getEnv("SIGNING_KEY", "defaultsigningkey")),
		MaskTokenTTL:         time.Duration(getEnvAsInt("MASK_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		SessionSecret:        []byte(getEnv("SESSION_SECRET", "defaultsessionsecret")),
		SessionDuration:      time.Duration(getEnvAsInt("SESSION_DURATION_SECONDS", 86400)) * time.Second,
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "27017"),
		DBUser:               getEnv("DB_USER", "user"),
		DBPassword:           getEnv("DB_PASSWORD", "password"),
		DBName:               getEnv("DB_NAME", "netbattle"),
		SSHEnabled:           getEnvAsBool("SSH_TUNNEL_ENABLED", false),
		SSHUser:              getEnv("SSH_USER", ""),
		SSHPassword:          getEnv("SSH_PASSWORD", ""),
		SSHPort:              getEnv("SSH_PORT", "22"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		MailQueueName:        getEnv("MAIL_QUEUE_NAME", "outbound_mail_queue"),
		SMTPHost:             getEnv("SMTP_HOST", "localhost"),
		SMTPPort:             getEnvAsInt("SMTP_PORT", 25),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASSWORD", ""),
		MailFrom:             getEnv("MAIL_FROM", "buddy@battlenetwork.io"),
		RecoveryClientURL:    getEnv("RECOVERY_CLIENT_URL", "http://battlenetwork.io"),
		RecoverySaltRounds:   getEnvAsInt("RECOVERY_SALT_ROUNDS", 10),
		SignupWhiteList:      getEnvAsSlice("SIGNUP_WHITELIST", []string{"127.0.0.1"}),
		MaxKeyItemNameLength: getEnvAsInt("MAX_KEYITEM_NAME_LENGTH", 20),
		MaxFolderNameLength:  getEnvAsInt("MAX_FOLDER_NAME_LENGTH", 10),
		MaxCardsPerFolder:    getEnvAsInt("MAX_CARDS_PER_FOLDER", 30),
	}

	AppConfig.DBConnStr = "mongodb://" + AppConfig.DBUser + ":" + AppConfig.DBPassword +
		"@" + AppConfig.DBHost + ":" + AppConfig.DBPort +
		"/" + AppConfig.DBName + "?authSource=admin"
}

// Preferences exposes the tunable gameplay limits under the keys the
// settings endpoint serves them by.
func (c *Config) Preferences() map[string]any {
	return map[string]any{
		"maxKeyItemNameLength": c.MaxKeyItemNameLength,
		"maxFolderNameLength":  c.MaxFolderNameLength,
		"maxCardsPerFolder":    c.MaxCardsPerFolder,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSlice(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
