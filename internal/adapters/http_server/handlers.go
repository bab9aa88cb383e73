package httpserver

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"tour_service/internal/app"
	"tour_service/internal/domain"
)

type Handlers struct {
	Tours     *app.TourQueryService
	Bookings  *app.BookingService
	Inquiries *app.InquiryService
	Diag      *app.DiagnosticsService
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type DiagnosticsOutput struct {
	Body app.DiagnosticsReport
}

type ListToursInput struct {
	Limit int `query:"limit" default:"20" minimum:"0" doc:"Maximum number of tours to return (0 returns all)"`
}

type ListToursOutput struct {
	Body []domain.Tour
}

type CreateBookingInput struct {
	Body domain.Booking
}

type CreateBookingOutput struct {
	Body struct {
		Status    string `json:"status" example:"success"`
		BookingID string `json:"booking_id" doc:"Datastore identifier of the new booking"`
	}
}

type SendInquiryInput struct {
	Body domain.Inquiry
}

type SendInquiryOutput struct {
	Body struct {
		Status string `json:"status" example:"received"`
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	meta := func(o *huma.Operation) { o.Tags = []string{"meta"} }
	catalog := func(o *huma.Operation) { o.Tags = []string{"catalog"} }
	intake := func(o *huma.Operation) {
		o.Tags = []string{"intake"}
		o.DefaultStatus = http.StatusOK
	}

	huma.Get(s.api, "/", h.root, meta)
	huma.Get(s.api, "/api/hello", h.hello, meta)
	huma.Get(s.api, "/test", h.diagnostics, meta)
	huma.Get(s.api, "/api/tours", h.listTours, catalog)
	huma.Post(s.api, "/api/book", h.createBooking, intake)
	huma.Post(s.api, "/api/inquiry", h.sendInquiry, intake)
}

func message(msg string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = msg
	return out
}

func (h *Handlers) root(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	return message("Tour Service API is running"), nil
}

func (h *Handlers) hello(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	return message("Welcome to the Tour Service API"), nil
}

// diagnostics never fails; problems are reported inside the body.
func (h *Handlers) diagnostics(ctx context.Context, _ *struct{}) (*DiagnosticsOutput, error) {
	return &DiagnosticsOutput{Body: h.Diag.Report(ctx)}, nil
}

func (h *Handlers) listTours(ctx context.Context, in *ListToursInput) (*ListToursOutput, error) {
	return &ListToursOutput{Body: h.Tours.ListTours(ctx, in.Limit)}, nil
}

func (h *Handlers) createBooking(ctx context.Context, in *CreateBookingInput) (*CreateBookingOutput, error) {
	id, err := h.Bookings.Create(ctx, in.Body)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}
	out := &CreateBookingOutput{}
	out.Body.Status = "success"
	out.Body.BookingID = id
	return out, nil
}

func (h *Handlers) sendInquiry(ctx context.Context, in *SendInquiryInput) (*SendInquiryOutput, error) {
	if err := h.Inquiries.Submit(ctx, in.Body); err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}
	out := &SendInquiryOutput{}
	out.Body.Status = "received"
	return out, nil
}
