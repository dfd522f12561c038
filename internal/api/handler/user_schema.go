package handler

import "github.com/simplebanking/banking-system/internal/core/ports"

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=4,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// accountBriefResponse appears in the public directory listing. No balance:
// other users' balances are private.
type accountBriefResponse struct {
	ID       string `json:"id"`
	Currency string `json:"currency"`
}

type userListItemResponse struct {
	ID       string                 `json:"id"`
	Username string                 `json:"username"`
	Accounts []accountBriefResponse `json:"accounts"`
}

// userProfileResponse is the owner's own view, balances included.
type userProfileResponse struct {
	ID       string            `json:"id"`
	Username string            `json:"username"`
	Accounts []accountResponse `json:"accounts"`
}

func toUserProfileResponse(p *ports.UserProfile) userProfileResponse {
	accounts := make([]accountResponse, 0, len(p.Accounts))
	for _, a := range p.Accounts {
		accounts = append(accounts, accountResponse{
			ID:       a.ID,
			Currency: string(a.Currency),
			Balance:  a.Balance,
		})
	}
	return userProfileResponse{ID: p.ID, Username: p.Username, Accounts: accounts}
}

func toUserListResponse(items []ports.UserListItem) []userListItemResponse {
	out := make([]userListItemResponse, 0, len(items))
	for _, item := range items {
		accounts := make([]accountBriefResponse, 0, len(item.Accounts))
		for _, a := range item.Accounts {
			accounts = append(accounts, accountBriefResponse{
				ID:       a.ID,
				Currency: string(a.Currency),
			})
		}
		out = append(out, userListItemResponse{
			ID:       item.ID,
			Username: item.Username,
			Accounts: accounts,
		})
	}
	return out
}
