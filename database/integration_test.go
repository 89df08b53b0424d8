package database_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	database "quizify/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Requires a running MongoDB (MONGODB_URL); skipped otherwise. Verifies the
// unique index closes the duplicate-submission race: of N concurrent inserts
// for the same (quiz, student) pair, exactly one succeeds.
func TestSubmissionUniqueIndexUnderConcurrency(t *testing.T) {
	if os.Getenv("MONGODB_URL") == "" {
		t.Skip("MONGODB_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := database.Client
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongodb not reachable: %v", err)
	}

	if err := database.EnsureIndexes(client); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	collection := database.OpenCollection(client, "submission")
	quizID := fmt.Sprintf("it-quiz-%d", time.Now().UnixNano())
	studentID := "it-student"
	defer collection.DeleteMany(context.Background(), bson.M{"quiz_id": quizID})

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = collection.InsertOne(context.Background(), bson.M{
				"quiz_id":    quizID,
				"student_id": studentID,
				"score":      i,
			})
		}(i)
	}
	wg.Wait()

	accepted := 0
	for i, err := range errs {
		switch {
		case err == nil:
			accepted++
		case mongo.IsDuplicateKeyError(err):
			// expected for all but one attempt
		default:
			t.Errorf("attempt %d: unexpected error: %v", i, err)
		}
	}

	if accepted != 1 {
		t.Errorf("accepted = %d inserts, want exactly 1", accepted)
	}
}
