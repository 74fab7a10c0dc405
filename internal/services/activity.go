package services

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/models"
	"github.com/segmentio/kafka-go"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for users. Save reports whether the
// row was inserted; false means the username was already taken.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash string, profilePic *string) (bool, error)
}

// FileSaver persists an uploaded stream and returns its public reference,
// or an empty reference when the file is rejected or absent.
type FileSaver interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// newActivity builds an activity event for the given type and user.
func newActivity(activityType, username string) models.Activity {
	return models.Activity{
		ActivityID: uuid.NewString(),
		Timestamp:  time.Now().Unix(),
		Type:       activityType,
		Username:   username,
	}
}

// publishActivity publishes an activity event to Kafka. Publishing is
// best-effort: failures are logged and never surfaced to the request.
func publishActivity(ctx context.Context, w KafkaWriter, activity models.Activity) {
	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "activity_id", activity.ActivityID)
		return
	}

	data, err := json.Marshal(activity)
	if err != nil {
		logger.Log.Errorw("Failed to marshal activity for Kafka", "activity_id", activity.ActivityID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(activity.ActivityID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish activity to Kafka", "activity_id", activity.ActivityID, "error", err)
	} else {
		logger.Log.Infow("Activity published to Kafka", "activity_id", activity.ActivityID, "type", activity.Type)
	}
}
