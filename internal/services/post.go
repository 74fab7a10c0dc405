package services

import (
	"context"
	"io"

	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/models"
)

// PostReader defines read-only operations for posts.
type PostReader interface {
	GetAll(ctx context.Context) ([]models.PostDB, error)
	GetByUsername(ctx context.Context, username string) ([]models.PostDB, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, username, content string, image, profilePic *string) error
}

// PostService handles the shared feed, the dashboard and post creation.
type PostService struct {
	users       UserReader
	reader      PostReader
	writer      PostWriter
	files       FileSaver
	kafkaWriter KafkaWriter
}

// NewPostService creates a new PostService instance.
func NewPostService(
	users UserReader,
	reader PostReader,
	writer PostWriter,
	files FileSaver,
	kafkaWriter KafkaWriter,
) *PostService {
	return &PostService{
		users:       users,
		reader:      reader,
		writer:      writer,
		files:       files,
		kafkaWriter: kafkaWriter,
	}
}

// Feed returns every post for the shared feed, newest first.
func (svc *PostService) Feed(ctx context.Context) ([]models.PostDB, error) {
	posts, err := svc.reader.GetAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to load feed", "err", err)
		return nil, err
	}
	return posts, nil
}

// Create inserts a new post for the author. An accepted file upload
// overrides any externally supplied image URL. The author's profile picture
// is copied onto the post at this moment and never updated afterwards.
func (svc *PostService) Create(ctx context.Context, username, content, imageURL, imageName string, image io.Reader) error {
	user, err := svc.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get author", "username", username, "err", err)
		return err
	}
	if user == nil {
		logger.Log.Errorw("author does not exist", "username", username)
		return ErrUserDoesNotExist
	}

	if image != nil {
		ref, err := svc.files.Save(ctx, imageName, image)
		if err != nil {
			logger.Log.Errorw("failed to store post image", "username", username, "err", err)
			return err
		}
		if ref != "" {
			imageURL = ref
		}
	}

	var img *string
	if imageURL != "" {
		img = &imageURL
	}

	if err := svc.writer.Save(ctx, username, content, img, user.ProfilePic); err != nil {
		logger.Log.Errorw("failed to save post", "username", username, "err", err)
		return err
	}

	publishActivity(ctx, svc.kafkaWriter, newActivity(models.ActivityPostCreated, username))

	return nil
}

// Dashboard aggregates a user's posts, post count and profile picture.
// Users without an avatar get the static placeholder.
func (svc *PostService) Dashboard(ctx context.Context, username string) (*models.Dashboard, error) {
	user, err := svc.users.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return nil, ErrUserDoesNotExist
	}

	posts, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to load user posts", "username", username, "err", err)
		return nil, err
	}

	count, err := svc.reader.CountByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to count user posts", "username", username, "err", err)
		return nil, err
	}

	profilePic := models.DefaultProfilePic
	if user.ProfilePic != nil && *user.ProfilePic != "" {
		profilePic = *user.ProfilePic
	}

	return &models.Dashboard{
		Username:   username,
		ProfilePic: profilePic,
		PostCount:  count,
		Posts:      posts,
	}, nil
}
