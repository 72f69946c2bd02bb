package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrPostNotFound        = errors.New("post not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
)

type Post struct {
	ID uint `gorm:"primaryKey"`

	Title     string `gorm:"not null"`
	Body      string `gorm:"not null"` // markdown source
	Published bool   `gorm:"not null;default:false"`
	AuthorID  uint   `gorm:"not null"`

	Images []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PostImage struct {
	ID        uint   `gorm:"primaryKey"`
	PostID    uint   `gorm:"not null;index"`
	ObjectKey string `gorm:"not null;unique"`
	Position  int    `gorm:"not null;default:0"`
}

type Testimonial struct {
	ID uint `gorm:"primaryKey"`

	AuthorName string `gorm:"not null"`
	Quote      string `gorm:"not null"`
	Published  bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type ContentDAO struct {
	db *gorm.DB
}

func NewContentDAO(db *gorm.DB) *ContentDAO {
	return &ContentDAO{
		db: db,
	}
}

func (d *ContentDAO) InsertPost(ctx context.Context, post Post) (Post, error) {
	result := d.db.WithContext(ctx).Create(&post)
	if result.Error != nil {
		return Post{}, result.Error
	}

	return post, nil
}

func (d *ContentDAO) FindPostByID(ctx context.Context, id uint) (Post, error) {
	var post Post

	result := d.db.WithContext(ctx).Preload("Images").First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Post{}, ErrPostNotFound
		}

		return Post{}, result.Error
	}

	return post, nil
}

func (d *ContentDAO) FindPosts(ctx context.Context, publishedOnly bool, limit, offset int) ([]Post, error) {
	var posts []Post

	query := d.db.WithContext(ctx).Preload("Images")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	result := query.Order("created_at DESC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

func (d *ContentDAO) UpdatePost(ctx context.Context, post Post) (Post, error) {
	result := d.db.WithContext(ctx).Omit("Images").Save(&post)
	if result.Error != nil {
		return Post{}, result.Error
	}

	return post, nil
}

func (d *ContentDAO) DeletePost(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

func (d *ContentDAO) InsertPostImage(ctx context.Context, image PostImage) (PostImage, error) {
	result := d.db.WithContext(ctx).Create(&image)
	if result.Error != nil {
		return PostImage{}, result.Error
	}

	return image, nil
}

func (d *ContentDAO) InsertTestimonial(ctx context.Context, testimonial Testimonial) (Testimonial, error) {
	result := d.db.WithContext(ctx).Create(&testimonial)
	if result.Error != nil {
		return Testimonial{}, result.Error
	}

	return testimonial, nil
}

func (d *ContentDAO) FindTestimonials(ctx context.Context, publishedOnly bool) ([]Testimonial, error) {
	var testimonials []Testimonial

	query := d.db.WithContext(ctx)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	result := query.Order("created_at DESC").Find(&testimonials)
	if result.Error != nil {
		return nil, result.Error
	}

	return testimonials, nil
}

func (d *ContentDAO) UpdateTestimonial(ctx context.Context, testimonial Testimonial) (Testimonial, error) {
	result := d.db.WithContext(ctx).Save(&testimonial)
	if result.Error != nil {
		return Testimonial{}, result.Error
	}

	return testimonial, nil
}

func (d *ContentDAO) DeleteTestimonial(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Testimonial{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTestimonialNotFound
	}

	return nil
}
