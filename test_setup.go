package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	// Test MongoDB
	fmt.Println("Testing MongoDB connection...")
	mongoURI := os.Getenv("MONGODB_URI")
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(context.Background(), nil); err != nil {
		log.Fatal("MongoDB ping failed:", err)
	}
	fmt.Println("✅ MongoDB connected successfully!")

	// Test Cloudinary
	fmt.Println("\nTesting Cloudinary connection...")
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	if cloudName == "" {
		fmt.Println("⚠️  Cloudinary not configured, uploads will return placeholders")
	} else {
		cldURL := fmt.Sprintf("cloudinary://%s:%s@%s",
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
			cloudName,
		)
		cld, err := cloudinary.NewFromURL(cldURL)
		if err != nil {
			log.Fatal("Cloudinary init failed:", err)
		}
		if _, err := cld.Admin.Ping(context.Background()); err != nil {
			log.Fatal("Cloudinary ping failed:", err)
		}
		fmt.Println("✅ Cloudinary connected successfully!")
	}

	// Check Google OAuth config
	fmt.Println("\nChecking Google OAuth configuration...")
	if os.Getenv("GOOGLE_CLIENT_ID") == "" || os.Getenv("GOOGLE_CLIENT_SECRET") == "" {
		fmt.Println("⚠️  Google OAuth not configured, /api/auth/google will be disabled")
	} else {
		fmt.Println("✅ Google OAuth configured!")
	}
}
