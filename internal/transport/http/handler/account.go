package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xenowa/foodifire-backend/internal/app"
	"github.com/Xenowa/foodifire-backend/internal/pkg/datauri"
	"github.com/Xenowa/foodifire-backend/internal/transport/http/response"
)

// AccountHandler serves the condition, saved-report, and account-deletion
// CRUD routes.
type AccountHandler struct {
	accounts *app.AccountService
}

func NewAccountHandler(accounts *app.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type conditionRequest struct {
	UserEmail string `json:"userEmail"`
	Condition any    `json:"condition"`
}

type savedReportRequest struct {
	UserEmail string         `json:"userEmail"`
	Report    map[string]any `json:"report"`
}

type deleteUserRequest struct {
	UserEmail any `json:"userEmail"`
}

func (h *AccountHandler) AddDisease(c *gin.Context) {
	var req conditionRequest
	_ = c.ShouldBindJSON(&req)

	err := h.accounts.AddCondition(req.UserEmail, req.Condition)
	h.respond(c, err, "Disease inserted successfully!", "An error occured. disease adding failed!")
}

func (h *AccountHandler) RemoveDisease(c *gin.Context) {
	var req conditionRequest
	_ = c.ShouldBindJSON(&req)

	err := h.accounts.RemoveCondition(req.UserEmail, req.Condition)
	h.respond(c, err, "Disease deleted successfully!", "An error occured. disease deleting failed!")
}

func (h *AccountHandler) AddReport(c *gin.Context) {
	var req savedReportRequest
	_ = c.ShouldBindJSON(&req)

	err := h.accounts.AddReport(req.UserEmail, req.Report)
	h.respond(c, err, "Report inserted successfully!", "An error occured. report adding failed!")
}

func (h *AccountHandler) RemoveReport(c *gin.Context) {
	var req savedReportRequest
	_ = c.ShouldBindJSON(&req)

	err := h.accounts.RemoveReport(req.UserEmail, req.Report)
	h.respond(c, err, "Report deleted successfully!", "An error occured. report deleting failed!")
}

func (h *AccountHandler) DeleteUser(c *gin.Context) {
	var req deleteUserRequest
	_ = c.ShouldBindJSON(&req)

	err := h.accounts.DeleteAccount(req.UserEmail)
	h.respond(c, err, "User account deleted successfully!", "An error occured. account deletion failed!")
}

// respond maps a service error to the route's response: validation failures
// carry their own message at 400, store failures get the generic message at
// 500 with the detail logged.
func (h *AccountHandler) respond(c *gin.Context, err error, okMessage, failMessage string) {
	switch {
	case err == nil:
		response.Message(c, http.StatusOK, okMessage)
	case errors.Is(err, datauri.ErrEmpty),
		errors.Is(err, datauri.ErrNumericInput),
		errors.Is(err, datauri.ErrInvalidFormat):
		response.Message(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("account operation failed: %v", err)
		response.Message(c, http.StatusInternalServerError, failMessage)
	}
}
