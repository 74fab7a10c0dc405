package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestSessionRepositories(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	writeRepo := NewSessionWriteRepository(rdb, time.Minute)
	readRepo := NewSessionReadRepository(rdb)

	t.Run("Save and Get session", func(t *testing.T) {
		sessionID := uuid.New()

		err := writeRepo.Save(ctx, sessionID, "alice")
		assert.NoError(t, err)

		username, err := readRepo.Get(ctx, sessionID)
		assert.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("Get unknown session", func(t *testing.T) {
		username, err := readRepo.Get(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Empty(t, username)
	})

	t.Run("Delete session", func(t *testing.T) {
		sessionID := uuid.New()

		err := writeRepo.Save(ctx, sessionID, "bob")
		assert.NoError(t, err)

		err = writeRepo.Delete(ctx, sessionID)
		assert.NoError(t, err)

		username, err := readRepo.Get(ctx, sessionID)
		assert.NoError(t, err)
		assert.Empty(t, username)
	})

	t.Run("Session expires", func(t *testing.T) {
		shortRepo := NewSessionWriteRepository(rdb, time.Second)
		sessionID := uuid.New()

		err := shortRepo.Save(ctx, sessionID, "carol")
		assert.NoError(t, err)

		time.Sleep(2 * time.Second)

		username, err := readRepo.Get(ctx, sessionID)
		assert.NoError(t, err)
		assert.Empty(t, username)
	})
}
