package repository

import (
	"context"
	"fmt"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository/dao"
)

var (
	ErrPostNotFound        = dao.ErrPostNotFound
	ErrTestimonialNotFound = dao.ErrTestimonialNotFound
)

type ContentDAO interface {
	InsertPost(ctx context.Context, post dao.Post) (dao.Post, error)
	FindPostByID(ctx context.Context, id uint) (dao.Post, error)
	FindPosts(ctx context.Context, publishedOnly bool, limit, offset int) ([]dao.Post, error)
	UpdatePost(ctx context.Context, post dao.Post) (dao.Post, error)
	DeletePost(ctx context.Context, id uint) error
	InsertPostImage(ctx context.Context, image dao.PostImage) (dao.PostImage, error)
	InsertTestimonial(ctx context.Context, testimonial dao.Testimonial) (dao.Testimonial, error)
	FindTestimonials(ctx context.Context, publishedOnly bool) ([]dao.Testimonial, error)
	UpdateTestimonial(ctx context.Context, testimonial dao.Testimonial) (dao.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id uint) error
}

type ContentRepository struct {
	dao ContentDAO
}

func NewContentRepository(dao ContentDAO) *ContentRepository {
	return &ContentRepository{
		dao: dao,
	}
}

func (r *ContentRepository) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	created, err := r.dao.InsertPost(ctx, r.postDomainToDao(post))
	if err != nil {
		return domain.Post{}, fmt.Errorf("r.dao.InsertPost -> %w", err)
	}

	return r.postDaoToDomain(created), nil
}

func (r *ContentRepository) FindPostByID(ctx context.Context, id uint) (domain.Post, error) {
	found, err := r.dao.FindPostByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("r.dao.FindPostByID -> %w", err)
	}

	return r.postDaoToDomain(found), nil
}

func (r *ContentRepository) FindPosts(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.Post, error) {
	found, err := r.dao.FindPosts(ctx, publishedOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPosts -> %w", err)
	}

	posts := make([]domain.Post, len(found))
	for i, p := range found {
		posts[i] = r.postDaoToDomain(p)
	}

	return posts, nil
}

func (r *ContentRepository) UpdatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	updated, err := r.dao.UpdatePost(ctx, r.postDomainToDao(post))
	if err != nil {
		return domain.Post{}, fmt.Errorf("r.dao.UpdatePost -> %w", err)
	}

	return r.postDaoToDomain(updated), nil
}

func (r *ContentRepository) DeletePost(ctx context.Context, id uint) error {
	if err := r.dao.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeletePost -> %w", err)
	}

	return nil
}

func (r *ContentRepository) AddPostImage(ctx context.Context, image domain.PostImage) (domain.PostImage, error) {
	created, err := r.dao.InsertPostImage(ctx, dao.PostImage{
		PostID:    image.PostID,
		ObjectKey: image.ObjectKey,
		Position:  image.Position,
	})
	if err != nil {
		return domain.PostImage{}, fmt.Errorf("r.dao.InsertPostImage -> %w", err)
	}

	return r.imageDaoToDomain(created), nil
}

func (r *ContentRepository) CreateTestimonial(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
	created, err := r.dao.InsertTestimonial(ctx, dao.Testimonial{
		AuthorName: testimonial.AuthorName,
		Quote:      testimonial.Quote,
		Published:  testimonial.Published,
	})
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("r.dao.InsertTestimonial -> %w", err)
	}

	return r.testimonialDaoToDomain(created), nil
}

func (r *ContentRepository) FindTestimonials(ctx context.Context, publishedOnly bool) ([]domain.Testimonial, error) {
	found, err := r.dao.FindTestimonials(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTestimonials -> %w", err)
	}

	testimonials := make([]domain.Testimonial, len(found))
	for i, t := range found {
		testimonials[i] = r.testimonialDaoToDomain(t)
	}

	return testimonials, nil
}

func (r *ContentRepository) UpdateTestimonial(ctx context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
	updated, err := r.dao.UpdateTestimonial(ctx, dao.Testimonial{
		ID:         testimonial.ID,
		AuthorName: testimonial.AuthorName,
		Quote:      testimonial.Quote,
		Published:  testimonial.Published,
		CreatedAt:  testimonial.CreatedAt,
	})
	if err != nil {
		return domain.Testimonial{}, fmt.Errorf("r.dao.UpdateTestimonial -> %w", err)
	}

	return r.testimonialDaoToDomain(updated), nil
}

func (r *ContentRepository) DeleteTestimonial(ctx context.Context, id uint) error {
	if err := r.dao.DeleteTestimonial(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteTestimonial -> %w", err)
	}

	return nil
}

func (r *ContentRepository) postDaoToDomain(p dao.Post) domain.Post {
	post := domain.Post{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	for _, img := range p.Images {
		post.Images = append(post.Images, r.imageDaoToDomain(img))
	}

	return post
}

func (r *ContentRepository) postDomainToDao(p domain.Post) dao.Post {
	return dao.Post{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ContentRepository) imageDaoToDomain(i dao.PostImage) domain.PostImage {
	return domain.PostImage{
		ID:        i.ID,
		PostID:    i.PostID,
		ObjectKey: i.ObjectKey,
		Position:  i.Position,
	}
}

func (r *ContentRepository) testimonialDaoToDomain(t dao.Testimonial) domain.Testimonial {
	return domain.Testimonial{
		ID:         t.ID,
		AuthorName: t.AuthorName,
		Quote:      t.Quote,
		Published:  t.Published,
		CreatedAt:  t.CreatedAt,
	}
}
