package rest

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/pageforge/pageforge-backend/internal/application"
	"github.com/pageforge/pageforge-backend/internal/application/dto"
	"github.com/pageforge/pageforge-backend/internal/application/errs"
	"github.com/pageforge/pageforge-backend/internal/application/interfaces"
)

type Server struct {
	handlers *application.Handlers
	webhooks interfaces.WebhookParser
}

func NewServer(handlers *application.Handlers, webhooks interfaces.WebhookParser) *Server {
	return &Server{handlers: handlers, webhooks: webhooks}
}

func RegisterHandlers(app *fiber.App, s *Server) {
	app.Post("/generate", s.GenerateSite)
	app.Post("/checkout", s.CreateCheckout)
	app.Post("/webhook/stripe", s.StripeWebhook)
	app.Post("/verify", s.VerifySite)
	app.Post("/refine", s.RefineSite)
	app.Get("/sites/:subdomain", s.GetSite)
	app.Post("/migrate", s.Migrate)
	app.Post("/track", s.TrackEvent)
}

func (s *Server) GenerateSite(c *fiber.Ctx) error {
	var req dto.GenerateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	html, err := s.handlers.GenerateSite.Execute(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.GenerateSiteResponse{HTML: html})
}

func (s *Server) CreateCheckout(c *fiber.Ctx) error {
	var req dto.CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	url, err := s.handlers.CreateCheckout.Execute(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.CreateCheckoutResponse{URL: url})
}

// StripeWebhook acknowledges with 200 only once the publish transition is
// durable; any retryable failure answers non-2xx so the provider redelivers.
func (s *Server) StripeWebhook(c *fiber.Ctx) error {
	order, err := s.webhooks.ParseWebhookEvent(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return respondError(c, err)
	}
	if order == nil {
		// event type we don't act on
		return c.SendStatus(fiber.StatusOK)
	}

	if err = s.handlers.PublishSite.Execute(c.UserContext(), *order); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) VerifySite(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	resp, err := s.handlers.VerifyAccess.Execute(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) RefineSite(c *fiber.Ctx) error {
	var req dto.RefineSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if req.EditToken == "" {
		if auth := c.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
			req.EditToken = auth[7:]
		}
	}

	html, err := s.handlers.RefineSite.Execute(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.RefineSiteResponse{HTML: html})
}

func (s *Server) GetSite(c *fiber.Ctx) error {
	resp, err := s.handlers.GetSite.Query(c.UserContext(), c.Params("subdomain"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (s *Server) Migrate(c *fiber.Ctx) error {
	if err := s.handlers.Migrate.Execute(c.UserContext()); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.StatusResponse{Status: "ok"})
}

func (s *Server) TrackEvent(c *fiber.Ctx) error {
	var req dto.TrackEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Get("User-Agent")
	}

	if err := s.handlers.TrackEvent.Execute(c.UserContext(), req); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.StatusResponse{Status: "ok"})
}

// respondError maps the error taxonomy onto statuses. Internal detail is
// logged, callers get a safe message.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr errs.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: validationErr.Msg})
	}

	var moderationErr errs.ModerationError
	if errors.As(err, &moderationErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: moderationErr.Reason})
	}

	var notFoundErr errs.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: notFoundErr.Msg})
	}

	var authErr errs.RemoteAuthError
	if errors.As(err, &authErr) {
		return c.Status(authErr.Status).JSON(dto.ErrorResponse{Error: authErr.Message})
	}

	var contractErr errs.ContractError
	if errors.As(err, &contractErr) {
		slog.Error("content contract failure", "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "the model returned an unusable response, please try again"})
	}

	var retryableErr errs.RetryableError
	if errors.As(err, &retryableErr) {
		slog.Error("upstream failure", "err", err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "a dependency is temporarily unavailable"})
	}

	slog.Error("unhandled error", "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
}
