package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PostRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

func (req *PostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Body, validation.Required),
	)
}

type AttachImageRequest struct {
	Position int `json:"position"`
}

func (req *AttachImageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Position, validation.Min(0)),
	)
}

type TestimonialRequest struct {
	AuthorName string `json:"author_name"`
	Quote      string `json:"quote"`
	Published  bool   `json:"published"`
}

func (req *TestimonialRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AuthorName, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Quote, validation.Required, validation.Length(2, 1000)),
	)
}
