package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"netbattle_api/internal/platform/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func Connect() {
	opts := options.Client().ApplyURI(config.AppConfig.DBConnStr)

	if config.AppConfig.SSHEnabled {
		dialer, err := NewSSHDialer(
			config.AppConfig.DBHost+":"+config.AppConfig.SSHPort,
			config.AppConfig.SSHUser,
			config.AppConfig.SSHPassword,
		)
		if err != nil {
			log.Fatalf("SSH connection error: %v", err)
		}
		// All database traffic rides the tunnel to the remote host.
		opts.SetDialer(dialer)
	}

	var err error
	Client, err = mongo.Connect(opts)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = Client.Ping(ctx, nil); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	DB = Client.Database(config.AppConfig.DBName)
	fmt.Println("Successfully connected to MongoDB database!")
}

func Close() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		Client.Disconnect(ctx)
		fmt.Println("Database connection closed.")
	}
}
