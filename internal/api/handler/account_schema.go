package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type amountRequest struct {
	// Amount is in minor units of the account's currency.
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
	Balance  int64  `json:"balance"`
}

type transferRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required"`
	ToAccountID   string `json:"to_account_id"   validate:"required"`
	ToUserID      string `json:"to_user_id"      validate:"required"`
	Amount        int64  `json:"amount"          validate:"required,gt=0"`
}

type transferResponse struct {
	// Status is "completed" for a fresh transfer and "duplicate" when the
	// idempotency key matched an earlier one.
	Status string `json:"status"`
}
