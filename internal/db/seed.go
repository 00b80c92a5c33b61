package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns into the viewpulse database. It is intended
// for local development only.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	videoIDs := []string{
		"dQw4w9WgXcQ",
		"9bZkp7q19f0",
		"kJQP7kiw5Fk",
		"JGwWNGJdvx8",
		"OPf0YbXqDm0",
	}
	statuses := []string{"pending", "active", "active", "completed", "cancelled"}

	for i, videoID := range videoIDs {
		id := uuid.NewString()
		userID := fmt.Sprintf("user-%d", r.Intn(10)+1)
		title := fmt.Sprintf("Demo campaign %d", i+1)
		videoURL := "https://www.youtube.com/watch?v=" + videoID
		status := statuses[i]
		budget := int64((r.Intn(10) + 1) * 5000) // 50.00 .. 500.00 units
		target := int64((r.Intn(20) + 1) * 1000)

		var starting, current int64
		if status == "active" || status == "completed" {
			starting = int64(r.Intn(500000) + 10000)
			current = starting + int64(r.Intn(int(target)))
			if status == "completed" {
				current = starting + target + int64(r.Intn(1000))
			}
		}

		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, user_id, title, video_url, status, budget, target_views,
     starting_views, current_views, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now()) ON CONFLICT DO NOTHING`,
			id, userID, title, videoURL, status, budget, target, starting, current)
		if err != nil {
			return err
		}
	}
	return nil
}
