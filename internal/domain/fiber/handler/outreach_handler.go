package handler

import (
	"encoding/json"
	"log"
	"time"

	"github.com/fadilmartias/cold-mailer/internal/dto"
	"github.com/fadilmartias/cold-mailer/internal/middleware"
	"github.com/fadilmartias/cold-mailer/internal/model"
	"github.com/fadilmartias/cold-mailer/internal/usecase"
	"github.com/fadilmartias/cold-mailer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

type OutreachHandler struct {
	uc *usecase.OutreachUsecase
}

func NewOutreachHandler(uc *usecase.OutreachUsecase) *OutreachHandler {
	return &OutreachHandler{uc: uc}
}

func (h *OutreachHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/jobs/extract", h.ExtractJobs)
	app.Post("/links/match", h.MatchLinks)
	app.Post("/emails/compose", h.ComposeEmail)
	app.Post("/outreach", middleware.RateLimiter(1, 4*time.Second), h.Outreach)
	app.Post("/outreach/tasks", middleware.RateLimiter(1, 4*time.Second), h.SubmitTask)
	app.Get("/outreach/tasks/:id", h.Result)
	app.Get("/test", h.Test)
}

func (h *OutreachHandler) ExtractJobs(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	text, err := h.uc.PageText(c.UserContext(), req.Text, req.URL)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to load page",
		}, err)
	}

	jobs, err := h.uc.ExtractJobs(c.UserContext(), text)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success extract jobs",
		Data:    jobs,
	})
}

func (h *OutreachHandler) MatchLinks(c *fiber.Ctx) error {
	var req dto.MatchLinksRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	links, err := h.uc.MatchLinks(c.UserContext(), req.Skills, req.NResults)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to match portfolio links",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success match links",
		Data:    links,
	})
}

func (h *OutreachHandler) ComposeEmail(c *fiber.Ctx) error {
	var req dto.ComposeEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	parsed := gjson.ParseBytes(req.Job)
	if !parsed.IsObject() {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid job",
		}, util.NewFormError("invalid job", map[string]string{"job": "must be a JSON object"}))
	}
	job := model.NewJobPostingFromJSON(parsed)

	links := req.Links
	if links == nil {
		var err error
		links, err = h.uc.MatchLinks(c.UserContext(), job.SkillList(), req.NResults)
		if err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    statusFor(err),
				Message: "failed to match portfolio links",
			}, err)
		}
	}

	email, err := h.uc.ComposeEmail(c.UserContext(), job, links, usecase.OutreachRequest{
		Length:      req.Length,
		CompanyName: req.CompanyName,
		SenderName:  req.SenderName,
		Recipient:   req.Recipient,
	})
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to generate email",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success generate email",
		Data:    email,
	})
}

func (h *OutreachHandler) Outreach(c *fiber.Ctx) error {
	var req dto.OutreachRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	results, err := h.uc.Generate(c.UserContext(), toUsecaseRequest(req))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: err.Error(),
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success generate outreach emails",
		Data:    results,
	})
}

func (h *OutreachHandler) SubmitTask(c *fiber.Ctx) error {
	var req dto.OutreachRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	id, err := h.uc.Submit(toUsecaseRequest(req))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to submit outreach task",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusAccepted,
		Message: "Success submit outreach task",
		Data:    fiber.Map{"id": id, "status": model.TaskStatusProcessing},
	})
}

func (h *OutreachHandler) Result(c *fiber.Ctx) error {
	id := c.Params("id")
	task, err := h.uc.GetResult(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "task not found",
		}, nil)
	}

	results := []model.OutreachResult{}
	if task.Results != "" {
		if err := json.Unmarshal([]byte(task.Results), &results); err != nil {
			log.Printf("Could not decode results of task %s: %v", task.ID, err)
		}
	}

	data := dto.OutreachTaskDTO{
		ID:          task.ID,
		Status:      task.Status,
		SourceURL:   task.SourceURL,
		Length:      task.Length,
		CompanyName: task.CompanyName,
		SenderName:  task.SenderName,
		Results:     results,
		Error:       task.Error,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get outreach task",
		Data:    data,
	})
}

func (h *OutreachHandler) Test(c *fiber.Ctx) error {
	out, err := h.uc.Test(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to test language model",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success test",
		Data:    out,
	})
}

func toUsecaseRequest(req dto.OutreachRequest) usecase.OutreachRequest {
	return usecase.OutreachRequest{
		URL:         req.URL,
		Text:        req.Text,
		Keywords:    req.Keywords,
		Length:      req.Length,
		CompanyName: req.CompanyName,
		SenderName:  req.SenderName,
		Recipient:   req.Recipient,
		NResults:    req.NResults,
	}
}
