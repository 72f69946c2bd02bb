package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/repository"
)

type fakeContentRepo struct {
	posts        map[uint]domain.Post
	testimonials map[uint]domain.Testimonial
	images       []domain.PostImage
	nextID       uint
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		posts:        map[uint]domain.Post{},
		testimonials: map[uint]domain.Testimonial{},
	}
}

func (f *fakeContentRepo) CreatePost(_ context.Context, post domain.Post) (domain.Post, error) {
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeContentRepo) FindPostByID(_ context.Context, id uint) (domain.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return domain.Post{}, repository.ErrPostNotFound
	}
	return post, nil
}

func (f *fakeContentRepo) FindPosts(_ context.Context, publishedOnly bool, _, _ int) ([]domain.Post, error) {
	var result []domain.Post
	for _, post := range f.posts {
		if publishedOnly && !post.Published {
			continue
		}
		result = append(result, post)
	}
	return result, nil
}

func (f *fakeContentRepo) UpdatePost(_ context.Context, post domain.Post) (domain.Post, error) {
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakeContentRepo) DeletePost(_ context.Context, id uint) error {
	delete(f.posts, id)
	return nil
}

func (f *fakeContentRepo) AddPostImage(_ context.Context, image domain.PostImage) (domain.PostImage, error) {
	image.ID = uint(len(f.images) + 1)
	f.images = append(f.images, image)
	return image, nil
}

func (f *fakeContentRepo) CreateTestimonial(_ context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
	f.nextID++
	testimonial.ID = f.nextID
	f.testimonials[testimonial.ID] = testimonial
	return testimonial, nil
}

func (f *fakeContentRepo) FindTestimonials(_ context.Context, publishedOnly bool) ([]domain.Testimonial, error) {
	var result []domain.Testimonial
	for _, testimonial := range f.testimonials {
		if publishedOnly && !testimonial.Published {
			continue
		}
		result = append(result, testimonial)
	}
	return result, nil
}

func (f *fakeContentRepo) UpdateTestimonial(_ context.Context, testimonial domain.Testimonial) (domain.Testimonial, error) {
	f.testimonials[testimonial.ID] = testimonial
	return testimonial, nil
}

func (f *fakeContentRepo) DeleteTestimonial(_ context.Context, id uint) error {
	delete(f.testimonials, id)
	return nil
}

func TestContentServicePosts(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}
	visitor := domain.Anonymous

	t.Run("markdown body is rendered to html", func(t *testing.T) {
		svc := NewContentService(newFakeContentRepo())

		post, err := svc.CreatePost(context.Background(), admin, domain.Post{
			Title:     "Grading results",
			Body:      "# Results\n\nWell done **everyone**.",
			Published: true,
		})
		require.NoError(t, err)
		assert.Contains(t, post.BodyHTML, "<h1>Results</h1>")
		assert.Contains(t, post.BodyHTML, "<strong>everyone</strong>")
		assert.Equal(t, uint(1), post.AuthorID)
	})

	t.Run("drafts are hidden from non-admins", func(t *testing.T) {
		repo := newFakeContentRepo()
		svc := NewContentService(repo)

		draft, err := svc.CreatePost(context.Background(), admin, domain.Post{Title: "Draft", Body: "wip"})
		require.NoError(t, err)
		_, err = svc.CreatePost(context.Background(), admin, domain.Post{Title: "Live", Body: "out", Published: true})
		require.NoError(t, err)

		public, err := svc.ListPosts(context.Background(), visitor, 20, 0)
		require.NoError(t, err)
		require.Len(t, public, 1)
		assert.Equal(t, "Live", public[0].Title)

		_, err = svc.GetPost(context.Background(), visitor, draft.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)

		all, err := svc.ListPosts(context.Background(), admin, 20, 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("update preserves the original author", func(t *testing.T) {
		repo := newFakeContentRepo()
		svc := NewContentService(repo)

		created, err := svc.CreatePost(context.Background(), admin, domain.Post{Title: "News", Body: "v1", Published: true})
		require.NoError(t, err)

		other := domain.Identity{UserID: 9, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}
		updated, err := svc.UpdatePost(context.Background(), other, domain.Post{ID: created.ID, Title: "News", Body: "v2", Published: true})
		require.NoError(t, err)
		assert.Equal(t, uint(1), updated.AuthorID)
	})

	t.Run("non-admin writes are denied", func(t *testing.T) {
		svc := NewContentService(newFakeContentRepo())
		member := domain.Identity{UserID: 2, Authenticated: true, Roles: []domain.Role{domain.RoleUser}}

		_, err := svc.CreatePost(context.Background(), member, domain.Post{Title: "Nope"})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestContentServiceAttachImage(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}

	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	post, err := svc.CreatePost(context.Background(), admin, domain.Post{Title: "Album", Body: "pics", Published: true})
	require.NoError(t, err)

	image, err := svc.AttachImage(context.Background(), admin, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, post.ID, image.PostID)
	assert.NotEmpty(t, image.ObjectKey)

	_, err = svc.AttachImage(context.Background(), admin, 99, 0)
	assert.Error(t, err)
}

func TestContentServiceTestimonials(t *testing.T) {
	admin := domain.Identity{UserID: 1, Authenticated: true, Roles: []domain.Role{domain.RoleAdmin}}

	repo := newFakeContentRepo()
	svc := NewContentService(repo)

	_, err := svc.CreateTestimonial(context.Background(), admin, domain.Testimonial{AuthorName: "Maria", Quote: "Great club", Published: true})
	require.NoError(t, err)
	hidden, err := svc.CreateTestimonial(context.Background(), admin, domain.Testimonial{AuthorName: "Rui", Quote: "wip"})
	require.NoError(t, err)

	public, err := svc.ListTestimonials(context.Background(), domain.Anonymous)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Maria", public[0].AuthorName)

	require.NoError(t, svc.DeleteTestimonial(context.Background(), admin, hidden.ID))

	all, err := svc.ListTestimonials(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
