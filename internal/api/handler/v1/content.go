package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/api/handler/v1/request"
	"github.com/move-academia/academy-api/internal/api/handler/v1/response"
	"github.com/move-academia/academy-api/internal/domain"
	"github.com/move-academia/academy-api/internal/service"
)

type ContentService interface {
	CreatePost(ctx context.Context, identity domain.Identity, post domain.Post) (domain.Post, error)
	GetPost(ctx context.Context, identity domain.Identity, id uint) (domain.Post, error)
	ListPosts(ctx context.Context, identity domain.Identity, limit, offset int) ([]domain.Post, error)
	UpdatePost(ctx context.Context, identity domain.Identity, post domain.Post) (domain.Post, error)
	DeletePost(ctx context.Context, identity domain.Identity, id uint) error
	AttachImage(ctx context.Context, identity domain.Identity, postID uint, position int) (domain.PostImage, error)
	CreateTestimonial(ctx context.Context, identity domain.Identity, testimonial domain.Testimonial) (domain.Testimonial, error)
	ListTestimonials(ctx context.Context, identity domain.Identity) ([]domain.Testimonial, error)
	UpdateTestimonial(ctx context.Context, identity domain.Identity, testimonial domain.Testimonial) (domain.Testimonial, error)
	DeleteTestimonial(ctx context.Context, identity domain.Identity, id uint) error
}

type ContentHandler struct {
	svc      ContentService
	resolver IdentityResolver
}

func NewContentHandler(svc ContentService, resolver IdentityResolver) *ContentHandler {
	return &ContentHandler{
		svc:      svc,
		resolver: resolver,
	}
}

// HandleListPosts godoc
// @Summary      List posts
// @Description  Non-admin callers only see published posts.
// @Tags         content
// @Produce      json
// @Param        limit   query  int false "page size"
// @Param        offset  query  int false "page offset"
// @Success      200  {array}   domain.Post
// @Failure      500  {object}  response.Err
// @Router       /posts [get]
func (h *ContentHandler) HandleListPosts(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	posts, err := h.svc.ListPosts(ctx.Request.Context(), identity, limit, offset)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPosts -> h.svc.ListPosts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// HandleGetPost godoc
// @Summary      Get one post rendered to HTML
// @Tags         content
// @Produce      json
// @Param        postID  path      int true "post ID"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts/{postID} [get]
func (h *ContentHandler) HandleGetPost(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	postID, err := paramUint(ctx, "postID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	post, err := h.svc.GetPost(ctx.Request.Context(), identity, postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("post", "ID", postID))

			return
		}

		err = fmt.Errorf("v1.HandleGetPost -> h.svc.GetPost -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, post)
}

// HandleCreatePost godoc
// @Summary      Create a post
// @Tags         content
// @Produce      json
// @Param        request  body      request.PostRequest true "request body"
// @Success      201  {object}  domain.Post
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts [post]
func (h *ContentHandler) HandleCreatePost(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	var req request.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	post, err := h.svc.CreatePost(ctx.Request.Context(), identity, domain.Post{
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreatePost -> h.svc.CreatePost -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, post)
}

// HandleUpdatePost godoc
// @Summary      Update a post
// @Tags         content
// @Produce      json
// @Param        postID   path      int true "post ID"
// @Param        request  body      request.PostRequest true "request body"
// @Success      200  {object}  domain.Post
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts/{postID} [put]
func (h *ContentHandler) HandleUpdatePost(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	postID, err := paramUint(ctx, "postID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	post, err := h.svc.UpdatePost(ctx.Request.Context(), identity, domain.Post{
		ID:        postID,
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrPostNotFound):
			response.RenderErr(ctx, response.ErrNotFound("post", "ID", postID))
		default:
			err = fmt.Errorf("v1.HandleUpdatePost -> h.svc.UpdatePost -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, post)
}

// HandleDeletePost godoc
// @Summary      Delete a post
// @Tags         content
// @Produce      json
// @Param        postID  path      int true "post ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts/{postID} [delete]
func (h *ContentHandler) HandleDeletePost(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	postID, err := paramUint(ctx, "postID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeletePost(ctx.Request.Context(), identity, postID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeletePost -> h.svc.DeletePost -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAttachImage godoc
// @Summary      Attach an image slot to a post
// @Tags         content
// @Produce      json
// @Param        postID   path      int true "post ID"
// @Param        request  body      request.AttachImageRequest true "request body"
// @Success      201  {object}  domain.PostImage
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts/{postID}/images [post]
func (h *ContentHandler) HandleAttachImage(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	postID, err := paramUint(ctx, "postID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.AttachImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	image, err := h.svc.AttachImage(ctx.Request.Context(), identity, postID, req.Position)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrPostNotFound):
			response.RenderErr(ctx, response.ErrNotFound("post", "ID", postID))
		default:
			err = fmt.Errorf("v1.HandleAttachImage -> h.svc.AttachImage -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, image)
}

// HandleListTestimonials godoc
// @Summary      List testimonials
// @Tags         content
// @Produce      json
// @Success      200  {array}   domain.Testimonial
// @Failure      500  {object}  response.Err
// @Router       /testimonials [get]
func (h *ContentHandler) HandleListTestimonials(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	testimonials, err := h.svc.ListTestimonials(ctx.Request.Context(), identity)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTestimonials -> h.svc.ListTestimonials -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, testimonials)
}

// HandleCreateTestimonial godoc
// @Summary      Create a testimonial
// @Tags         content
// @Produce      json
// @Param        request  body      request.TestimonialRequest true "request body"
// @Success      201  {object}  domain.Testimonial
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /testimonials [post]
func (h *ContentHandler) HandleCreateTestimonial(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	var req request.TestimonialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	testimonial, err := h.svc.CreateTestimonial(ctx.Request.Context(), identity, domain.Testimonial{
		AuthorName: req.AuthorName,
		Quote:      req.Quote,
		Published:  req.Published,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateTestimonial -> h.svc.CreateTestimonial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, testimonial)
}

// HandleUpdateTestimonial godoc
// @Summary      Update a testimonial
// @Tags         content
// @Produce      json
// @Param        testimonialID  path      int true "testimonial ID"
// @Param        request        body      request.TestimonialRequest true "request body"
// @Success      200  {object}  domain.Testimonial
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /testimonials/{testimonialID} [put]
func (h *ContentHandler) HandleUpdateTestimonial(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	testimonialID, err := paramUint(ctx, "testimonialID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.TestimonialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	testimonial, err := h.svc.UpdateTestimonial(ctx.Request.Context(), identity, domain.Testimonial{
		ID:         testimonialID,
		AuthorName: req.AuthorName,
		Quote:      req.Quote,
		Published:  req.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrTestimonialNotFound):
			response.RenderErr(ctx, response.ErrNotFound("testimonial", "ID", testimonialID))
		default:
			err = fmt.Errorf("v1.HandleUpdateTestimonial -> h.svc.UpdateTestimonial -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, testimonial)
}

// HandleDeleteTestimonial godoc
// @Summary      Delete a testimonial
// @Tags         content
// @Produce      json
// @Param        testimonialID  path      int true "testimonial ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /testimonials/{testimonialID} [delete]
func (h *ContentHandler) HandleDeleteTestimonial(ctx *gin.Context) {
	identity := callerIdentity(ctx, h.resolver)

	testimonialID, err := paramUint(ctx, "testimonialID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := h.svc.DeleteTestimonial(ctx.Request.Context(), identity, testimonialID); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteTestimonial -> h.svc.DeleteTestimonial -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
