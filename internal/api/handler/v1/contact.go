package v1

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/move-academia/academy-api/internal/api/handler/v1/request"
	"github.com/move-academia/academy-api/internal/api/handler/v1/response"
	"github.com/move-academia/academy-api/internal/config"
	"github.com/move-academia/academy-api/internal/pkg/mailer"
)

type ContactHandler struct {
	conf   *config.MailerConfig
	sender mailer.Sender
}

func NewContactHandler(conf *config.MailerConfig, sender mailer.Sender) *ContactHandler {
	return &ContactHandler{
		conf:   conf,
		sender: sender,
	}
}

// HandleContact godoc
// @Summary      Send a contact message to the academy inbox
// @Tags         contact
// @Produce      json
// @Param        request  body      request.ContactRequest true "request body"
// @Success      202  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contact [post]
func (h *ContactHandler) HandleContact(ctx *gin.Context) {
	var req request.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	body := fmt.Sprintf("<p><strong>%v</strong> (%v, %v)</p><p>%v</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Phone),
		html.EscapeString(req.Message))

	result, err := h.sender.Send(ctx.Request.Context(), mailer.SendRequest{
		To:      []string{h.conf.ContactTo},
		Subject: fmt.Sprintf("Contact form: %v", req.Name),
		HTML:    body,
		ReplyTo: req.Email,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleContact -> h.sender.Send -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{"message_id": result.MessageID})
}

// HandleTrialClass godoc
// @Summary      Request a trial class
// @Tags         contact
// @Produce      json
// @Param        request  body      request.TrialClassRequest true "request body"
// @Success      202  {object}  map[string]string
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contact/trial [post]
func (h *ContactHandler) HandleTrialClass(ctx *gin.Context) {
	var req request.TrialClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	body := fmt.Sprintf("<p><strong>%v</strong> (%v, %v) wants to try a %v class.</p>",
		html.EscapeString(req.Name),
		html.EscapeString(req.Email),
		html.EscapeString(req.Phone),
		html.EscapeString(req.Discipline))

	result, err := h.sender.Send(ctx.Request.Context(), mailer.SendRequest{
		To:      []string{h.conf.ContactTo},
		Subject: fmt.Sprintf("Trial class request: %v (%v)", req.Name, req.Discipline),
		HTML:    body,
		ReplyTo: req.Email,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleTrialClass -> h.sender.Send -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusAccepted, gin.H{"message_id": result.MessageID})
}
