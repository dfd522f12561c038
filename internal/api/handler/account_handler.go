package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simplebanking/banking-system/internal/api/metrics"
	"github.com/simplebanking/banking-system/internal/core/domain"
	"github.com/simplebanking/banking-system/internal/core/ports"
)

// AccountHandler handles HTTP requests for single-account balance
// operations.
type AccountHandler struct {
	service ports.BalanceService
}

func NewAccountHandler(service ports.BalanceService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Get handles GET /v1/accounts/:id.
//
// @Summary      Get an account snapshot
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	start := time.Now()
	snap, err := h.service.GetAccount(c.Request().Context(), actor, c.Param("id"))
	observeOp("get", start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(snap))
}

// Deposit handles POST /v1/accounts/:id/deposit.
//
// @Summary      Deposit into an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Account id"
// @Param        body  body      amountRequest  true  "Amount in minor units"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/accounts/{id}/deposit [post]
func (h *AccountHandler) Deposit(c echo.Context) error {
	return h.mutate(c, "deposit", h.service.Deposit)
}

// Withdraw handles POST /v1/accounts/:id/withdraw.
//
// @Summary      Withdraw from an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Account id"
// @Param        body  body      amountRequest  true  "Amount in minor units"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/accounts/{id}/withdraw [post]
func (h *AccountHandler) Withdraw(c echo.Context) error {
	return h.mutate(c, "withdraw", h.service.Withdraw)
}

type mutateFn func(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error)

// mutate is the shared deposit/withdraw path: bind, validate, authorize,
// call the engine, observe.
func (h *AccountHandler) mutate(c echo.Context, operation string, fn mutateFn) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	snap, err := fn(c.Request().Context(), actor, c.Param("id"), req.Amount)
	observeOp(operation, start, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(snap))
}

func toAccountResponse(snap *ports.AccountSnapshot) accountResponse {
	return accountResponse{
		ID:       snap.ID,
		Currency: string(snap.Currency),
		Balance:  snap.Balance,
	}
}

func observeOp(operation string, start time.Time, err error) {
	metrics.BalanceOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.BalanceOperationsTotal.WithLabelValues(operation, outcomeLabel(err)).Inc()
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrInvalidDestination):
		return "invalid_destination"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrSameAccount):
		return "invalid_request"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
