package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/simplebanking/banking-system/internal/core/domain"
	"github.com/simplebanking/banking-system/internal/core/ports"
)

type stubBalanceService struct {
	getFn      func(ctx context.Context, actor domain.Actor, accountID string) (*ports.AccountSnapshot, error)
	depositFn  func(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error)
	withdrawFn func(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error)
	transferFn func(ctx context.Context, input ports.TransferInput) (*ports.TransferResult, error)
}

func (s *stubBalanceService) GetAccount(ctx context.Context, actor domain.Actor, accountID string) (*ports.AccountSnapshot, error) {
	return s.getFn(ctx, actor, accountID)
}

func (s *stubBalanceService) Deposit(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
	return s.depositFn(ctx, actor, accountID, amount)
}

func (s *stubBalanceService) Withdraw(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
	return s.withdrawFn(ctx, actor, accountID, amount)
}

func (s *stubBalanceService) Transfer(ctx context.Context, input ports.TransferInput) (*ports.TransferResult, error) {
	return s.transferFn(ctx, input)
}

// newTestEcho returns an Echo instance with the request validator wired, as
// the router does in production.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newOwnerContext builds a context carrying the claims the Auth middleware
// would have set for an authenticated owner.
func newOwnerContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", "u-1")
	c.Set("username", "alice")
	c.Set("role", domain.RoleOwner)
	return c
}

func TestAccountHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBalanceService{
		getFn: func(ctx context.Context, actor domain.Actor, accountID string) (*ports.AccountSnapshot, error) {
			if actor.UserID != "u-1" || actor.Role != domain.RoleOwner {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if accountID != "acc-1" {
				t.Fatalf("unexpected account id: %s", accountID)
			}
			return &ports.AccountSnapshot{ID: "acc-1", Currency: domain.CurrencyRUB, Balance: 1500}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := newOwnerContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "acc-1" || resp["currency"] != "RUB" || resp["balance"] != float64(1500) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAccountHandler_Get_NotFoundPassesThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubBalanceService{
		getFn: func(ctx context.Context, actor domain.Actor, accountID string) (*ports.AccountSnapshot, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := newOwnerContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.Get(c)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountHandler_MissingClaimsRejected(t *testing.T) {
	e := newTestEcho()
	stub := &stubBalanceService{
		getFn: func(ctx context.Context, actor domain.Actor, accountID string) (*ports.AccountSnapshot, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no claims set

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAccountHandler_Deposit_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubBalanceService{
		depositFn: func(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
			if amount != 2500 {
				t.Fatalf("unexpected amount: %d", amount)
			}
			return &ports.AccountSnapshot{ID: accountID, Currency: domain.CurrencyUSD, Balance: 2501}, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":2500}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newOwnerContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")

	if err := h.Deposit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["balance"] != float64(2501) {
		t.Fatalf("unexpected balance: %v", resp["balance"])
	}
}

func TestAccountHandler_Deposit_RejectsNonPositiveAmount(t *testing.T) {
	e := newTestEcho()
	stub := &stubBalanceService{
		depositFn: func(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAccountHandler(stub)

	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := newOwnerContext(e, req, rec)
		c.SetParamNames("id")
		c.SetParamValues("acc-1")

		err := h.Deposit(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAccountHandler_Withdraw_InsufficientFundsPassesThrough(t *testing.T) {
	e := newTestEcho()
	stub := &stubBalanceService{
		withdrawFn: func(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":999999}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newOwnerContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("acc-1")

	err := h.Withdraw(c)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestAccountHandler_Withdraw_InvalidJSON(t *testing.T) {
	e := newTestEcho()
	stub := &stubBalanceService{
		withdrawFn: func(ctx context.Context, actor domain.Actor, accountID string, amount int64) (*ports.AccountSnapshot, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newOwnerContext(e, req, rec)

	err := h.Withdraw(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
