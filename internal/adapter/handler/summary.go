package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/notes-summarizer/errors"
	dto "github.com/johnquangdev/notes-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/notes-summarizer/internal/usecase/summary"
)

// Summary handles the summarize and share endpoints
type Summary struct {
	svc    summary.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc summary.Service, logger *zap.Logger) *Summary {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summary{svc: svc, logger: logger}
}

// Summarize generates a summary of free-form text
// @Summary      Summarize text
// @Description  Sends the text and optional instructions to the completion API and returns the summary
// @Tags         Summary
// @Accept       json
// @Produce      json
// @Param        request  body      summary.SummarizeRequest   true  "Text to summarize"
// @Success      200      {object}  summary.SummarizeResponse
// @Failure      400      {object}  common.ErrorResponse  "Text content is required"
// @Failure      429      {object}  common.ErrorResponse  "Too many requests"
// @Failure      500      {object}  common.ErrorResponse  "Missing API key or upstream failure"
// @Router       /summarize [post]
func (h *Summary) Summarize(c echo.Context) error {
	var req dto.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	h.logger.Info("📝 Summarization request received",
		zap.String("request_id", getRequestID(c)),
		zap.Int("text_length", len(req.Text)),
		zap.Bool("custom_prompt", req.CustomPrompt != ""),
	)

	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("Text content is required"))
	}

	res, err := h.svc.Summarize(c.Request().Context(), summary.SummarizeInput{
		Text:         req.Text,
		CustomPrompt: req.CustomPrompt,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.SummarizeResponse{
		Summary:      res.Summary,
		OriginalText: res.OriginalText,
		CustomPrompt: res.CustomPrompt,
	})
}

// Share emails a summary to a list of recipients
// @Summary      Share summary via email
// @Description  Sends one email per recipient concurrently; any failed delivery fails the request
// @Tags         Summary
// @Accept       json
// @Produce      json
// @Param        request  body      summary.ShareRequest   true  "Summary and recipients"
// @Success      200      {object}  summary.ShareResponse
// @Failure      400      {object}  common.ErrorResponse  "Summary and recipients are required"
// @Failure      429      {object}  common.ErrorResponse  "Too many requests"
// @Failure      500      {object}  common.ErrorResponse  "Missing mail credentials or delivery failure"
// @Router       /share [post]
func (h *Summary) Share(c echo.Context) error {
	var req dto.ShareRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	h.logger.Info("📧 Email sharing request received",
		zap.String("request_id", getRequestID(c)),
		zap.Int("recipients", len(req.Recipients)),
		zap.String("subject", req.Subject),
	)

	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("Summary and recipients are required"))
	}

	res, err := h.svc.Share(c.Request().Context(), summary.ShareInput{
		Summary:    req.Summary,
		Recipients: req.Recipients,
		Subject:    req.Subject,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, dto.ShareResponse{
		Success:    true,
		Message:    res.Message,
		Recipients: res.Recipients,
	})
}
