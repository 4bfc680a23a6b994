package repositories

import (
	"log"
	"time"

	"roost/internal/config"
	"roost/internal/models"
	"roost/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is the global redis-backed cache.
var CacheService *cache.CacheService

// InitDB initializes the postgres connection, tunes the pool, runs the
// schema migration and connects the redis cache.
func InitDB() error {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "roost") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(config.GetIntEnv("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetMaxOpenConns(config.GetIntEnv("DB_MAX_OPEN_CONNS", 100))
	sqlDB.SetConnMaxLifetime(config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour))
	sqlDB.SetConnMaxIdleTime(config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute))

	if err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Room{},
		&models.Member{},
		&models.KYCVerification{},
		&models.Payment{},
	); err != nil {
		return err
	}

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	CacheService = cache.NewCacheService(cache.NewRedisClient(redisCfg), config.GetDurationEnv("CACHE_TTL", 24*time.Hour))

	log.Println("database initialized")
	return nil
}
