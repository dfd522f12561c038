package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simplebanking/banking-system/internal/api/metrics"
	"github.com/simplebanking/banking-system/internal/core/ports"
)

// TransferHandler handles peer-to-peer transfer requests.
type TransferHandler struct {
	service ports.BalanceService
}

func NewTransferHandler(service ports.BalanceService) *TransferHandler {
	return &TransferHandler{service: service}
}

// Create handles POST /v1/transfers. An optional Idempotency-Key header
// makes retries of the same transfer safe.
//
// @Summary      Transfer between accounts
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Client-chosen dedup key"
// @Param        body             body      transferRequest  true   "Transfer details"
// @Success      200              {object}  transferResponse
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/transfers [post]
func (h *TransferHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.TransferInput{
		Actor:          actor,
		FromAccountID:  req.FromAccountID,
		ToAccountID:    req.ToAccountID,
		ToUserID:       req.ToUserID,
		Amount:         req.Amount,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	}

	start := time.Now()
	result, err := h.service.Transfer(c.Request().Context(), input)
	observeOp("transfer", start, err)
	if err != nil {
		return err
	}

	status := "completed"
	if result.AlreadyProcessed {
		status = "duplicate"
		metrics.TransfersReplayedTotal.Inc()
	}
	return c.JSON(http.StatusOK, transferResponse{Status: status})
}
