package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

var (
	ErrPostNotFound        = repository.ErrPostNotFound
	ErrTestimonialNotFound = repository.ErrTestimonialNotFound
)

type ContentRepository interface {
	CreatePost(ctx context.Context, post domain.Post) (domain.Post, error)
	FindPostByID(ctx context.Context, id uint) (domain.Post, error)
	FindPosts(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Post, error)
	UpdatePost(ctx context.Context, post domain.Post) (domain.Post, error)
	DeletePost(ctx context.Context, id uint) error
	AddPostImage(ctx context.Context, image domain.PostImage) (domain.PostImage, error)
	CreateTestimonial(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error)
	FindTestimonials(ctx context.Context, publishedOnly bool) ([]domain.Testimonial, error)
	UpdateTestimonial(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id uint) error
}

type ContentService struct {
	repo     ContentRepository
	markdown goldmark.Markdown
}

func NewContentService(repo ContentRepository) *ContentService {
	return &ContentService{
		repo:     repo,
		markdown: goldmark.New(),
	}
}

// render converts the stored markdown body to HTML for the response. A
// render failure leaves BodyHTML empty; the raw markdown is still served.
func (s *ContentService) render(post domain.Post) domain.Post {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Body), &buf); err == nil {
		post.BodyHTML = buf.String()
	}

	return post
}

func (s *ContentService) CreatePost(ctx context.Context, identity domain.Identity, post domain.Post) (domain.Post, error) {
	if !identity.IsAdmin() {
		return domain.Post{}, ErrPermissionDenied
	}

	post.AuthorID = identity.UserID
	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.CreatePost -> %w", err)
	}

	return s.render(created), nil
}

func (s *ContentService) GetPost(ctx context.Context, identity domain.Identity, id uint) (domain.Post, error) {
	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.FindPostByID -> %w", err)
	}

	if !post.Published && !identity.IsAdmin() {
		return domain.Post{}, ErrPostNotFound
	}

	return s.render(post), nil
}

func (s *ContentService) ListPosts(ctx context.Context, identity domain.Identity, limit, offset int) ([]domain.Post, error) {
	publishedOnly := !identity.IsAdmin()

	posts, err := s.repo.FindPosts(ctx, publishedOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPosts -> %w", err)
	}

	for i := range posts {
		posts[i] = s.render(posts[i])
	}

	return posts, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, identity domain.Identity, post domain.Post) (domain.Post, error) {
	if !identity.IsAdmin() {
		return domain.Post{}, ErrPermissionDenied
	}

	existing, err := s.repo.FindPostByID(ctx, post.ID)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.FindPostByID -> %w", err)
	}
	post.AuthorID = existing.AuthorID
	post.CreatedAt = existing.CreatedAt

	updated, err := s.repo.UpdatePost(ctx, post)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.UpdatePost -> %w", err)
	}

	return s.render(updated), nil
}

func (s *ContentService) DeletePost(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeletePost -> %w", err)
	}

	return nil
}

// AttachImage registers an uploaded image under a fresh object key. The
// binary itself lives in external object storage keyed by ObjectKey.
func (s *ContentService) AttachImage(ctx context.Context, identity domain.Identity, postID uint, position int) (domain.PostImage, error) {
	if !identity.IsAdmin() {
		return domain.PostImage{}, ErrPermissionDenied
	}

	if _, err := s.repo.FindPostByID(ctx, postID); err != nil {
		return domain.PostImage{}, fmt.Errorf("s.repo.FindPostByID -> %w", err)
	}

	image, err := s.repo.AddPostImage(ctx, domain.PostImage{
		PostID:    postID,
		ObjectKey: uuid.NewString(),
		Position:  position,
	})
	if err != nil {
		return domain.PostImage{}, fmt.Errorf("s.repo.AddPostImage -> %w", err)
	}

	return image, nil
}

func (s *ContentService) CreateTestimonial(ctx context.Context, identity domain.Identity, testimonial domain.Testimonial) (domain.Testimonial, error) {
	if !identity.IsAdmin() {
		return domain.Testimonial{}, ErrPermissionDenied
	}

	created, err := s.repo.CreateTestimonial(ctx, testimonial)
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("s.repo.CreateTestimonial -> %w", err)
	}

	return created, nil
}

func (s *ContentService) ListTestimonials(ctx context.Context, identity domain.Identity) ([]domain.Testimonial, error) {
	publishedOnly := !identity.IsAdmin()

	testimonials, err := s.repo.FindTestimonials(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTestimonials -> %w", err)
	}

	return testimonials, nil
}

func (s *ContentService) UpdateTestimonial(ctx context.Context, identity domain.Identity, testimonial domain.Testimonial) (domain.Testimonial, error) {
	if !identity.IsAdmin() {
		return domain.Testimonial{}, ErrPermissionDenied
	}

	updated, err := s.repo.UpdateTestimonial(ctx, testimonial)
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("s.repo.UpdateTestimonial -> %w", err)
	}

	return updated, nil
}

func (s *ContentService) DeleteTestimonial(ctx context.Context, identity domain.Identity, id uint) error {
	if !identity.IsAdmin() {
		return ErrPermissionDenied
	}

	if err := s.repo.DeleteTestimonial(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteTestimonial -> %w", err)
	}

	return nil
}
