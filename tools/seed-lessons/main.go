package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"learnhub-backend/models"
	"learnhub-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seedLesson is the JSON shape of a catalog entry in the seed file.
type seedLesson struct {
	Subject  string  `json:"subject"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Spaces   int     `json:"spaces"`
	Image    string  `json:"image"`
}

func main() {
	var mongoURI, dbName, seedFile string
	var drop bool
	flag.StringVar(&mongoURI, "mongo", os.Getenv("MONGO_URL"), "MongoDB URI")
	flag.StringVar(&dbName, "db", os.Getenv("MONGO_DB"), "MongoDB database name")
	flag.StringVar(&seedFile, "file", "lessons.json", "Seed file with lesson records")
	flag.BoolVar(&drop, "drop", false, "Drop the lessons collection before seeding")
	flag.Parse()

	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	if dbName == "" {
		dbName = "learnhub"
	}

	data, err := os.ReadFile(seedFile)
	if err != nil {
		log.Fatalf("read seed file: %v", err)
	}
	var seeds []seedLesson
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatalf("parse seed file: %v", err)
	}
	if len(seeds) == 0 {
		log.Fatal("seed file contains no lessons")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(mongoURI)
	mclient, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mclient.Disconnect(ctx)

	db := mclient.Database(dbName)
	if drop {
		if err := db.Collection("lessons").Drop(ctx); err != nil {
			log.Fatalf("drop lessons: %v", err)
		}
	} else {
		count, err := db.Collection("lessons").CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Fatalf("count lessons: %v", err)
		}
		if count > 0 {
			log.Printf("lessons collection already has %d documents; use -drop to reseed", count)
			return
		}
	}

	lessons := make([]models.Lesson, 0, len(seeds))
	for _, s := range seeds {
		if s.Subject == "" || s.Price < 0 || s.Spaces < 0 {
			log.Fatalf("invalid seed lesson: %+v", s)
		}
		lessons = append(lessons, models.Lesson{
			ID:       uuid.New(),
			Subject:  s.Subject,
			Location: s.Location,
			Price:    s.Price,
			Spaces:   s.Spaces,
			Image:    s.Image,
		})
	}

	repo := repository.NewLessonRepository(db)
	if err := repo.CreateMany(ctx, lessons); err != nil {
		log.Fatalf("insert lessons: %v", err)
	}
	log.Printf("seeded %d lessons into %s.lessons", len(lessons), dbName)
}
