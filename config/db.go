package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/op/go-logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var log = logging.MustGetLogger("log")

var (
	DB          *sql.DB
	MongoDB     *mongo.Database
	MongoClient *mongo.Client
)

const retryDelay = 5 * time.Second

// InitDBWithRetry attempts to connect to PostgreSQL with retries.
// Survey databases are often restored right before the dashboard
// starts, so the first attempts may race the restore.
func InitDBWithRetry(maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = InitDB()
		if err == nil {
			return nil
		}
		log.Warningf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryDelay)
	}
	return fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %w", maxRetries, err)
}

func InitDB() error {
	db, err := sql.Open("postgres", Cfg.PostgresConnString())
	if err != nil {
		return fmt.Errorf("opening postgres connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}

	DB = db
	log.Infof("Connected to PostgreSQL at %s:%s/%s", Cfg.DBHost, Cfg.DBPort, Cfg.DBName)
	return nil
}

func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Warningf("Error closing PostgreSQL connection: %v", err)
		}
	}
}

// InitMongo connects to MongoDB and selects the survey database.
func InitMongo() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(Cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return fmt.Errorf("pinging mongo: %w", err)
	}

	MongoClient = client
	MongoDB = client.Database(Cfg.MongoDBName)
	log.Infof("Connected to MongoDB database %s", Cfg.MongoDBName)
	return nil
}

func CloseMongo() {
	if MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := MongoClient.Disconnect(ctx); err != nil {
			log.Warningf("Error closing MongoDB connection: %v", err)
		}
	}
}
