package handler

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/cold-mailer/internal/dto"
	"github.com/fadilmartias/cold-mailer/internal/usecase"
	"github.com/fadilmartias/cold-mailer/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxPortfolioUpload = 1 * 1024 * 1024

type PortfolioHandler struct {
	uc *usecase.PortfolioUsecase
}

func NewPortfolioHandler(uc *usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/portfolio", h.List)
	app.Post("/portfolio", h.Add)
	app.Delete("/portfolio/:index", h.Remove)
	app.Post("/portfolio/upload", h.Upload)
	app.Post("/portfolio/reindex", h.Reindex)
}

func (h *PortfolioHandler) List(c *fiber.Ctx) error {
	items, pagination := h.uc.List(c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success get portfolio",
		Data:       items,
		Pagination: pagination,
	})
}

func (h *PortfolioHandler) Add(c *fiber.Ctx) error {
	var req dto.PortfolioItemRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	if strings.TrimSpace(req.Link) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid portfolio item",
		}, util.NewFormError("invalid portfolio item", map[string]string{"link": "link is required"}))
	}

	if err := h.uc.Add(c.UserContext(), req.Techstack, req.Link); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to add portfolio item",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success add portfolio item",
		Data:    req,
	})
}

func (h *PortfolioHandler) Remove(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "index must be an integer",
		}, err)
	}

	if err := h.uc.Remove(c.UserContext(), index); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFor(err),
			Message: "failed to remove portfolio item",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success remove portfolio item",
	})
}

func (h *PortfolioHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("portfolio")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "portfolio file is required",
		}, err)
	}
	if file.Size > maxPortfolioUpload {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "portfolio file size is too large (max 1MB)",
		}, nil)
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read portfolio file",
		}, err)
	}
	defer f.Close()

	count, err := h.uc.Upload(c.UserContext(), f)
	if err != nil {
		code := statusFor(err)
		if code == fiber.StatusInternalServerError {
			code = fiber.StatusBadRequest
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    code,
			Message: "failed to import portfolio",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: fmt.Sprintf("Success import %d portfolio items", count),
		Data:    fiber.Map{"count": count},
	})
}

func (h *PortfolioHandler) Reindex(c *fiber.Ctx) error {
	count, err := h.uc.Reindex(c.UserContext())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to rebuild portfolio index",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success rebuild portfolio index",
		Data:    fiber.Map{"count": count},
	})
}
