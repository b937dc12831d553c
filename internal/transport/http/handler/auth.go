package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xenowa/foodifire-backend/internal/app"
	"github.com/Xenowa/foodifire-backend/internal/model"
	"github.com/Xenowa/foodifire-backend/internal/sso"
	"github.com/Xenowa/foodifire-backend/internal/transport/http/response"
)

type AuthHandler struct {
	auth *app.AuthService
}

func NewAuthHandler(auth *app.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Credential string `json:"credential"`
}

// Login verifies a Google credential, finds or creates the account, and
// answers with the profile, a fresh session token, and the stored lists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.auth.Login(c.Request.Context(), req.Credential)
	if err != nil {
		if errors.Is(err, sso.ErrInvalidCredential) {
			response.Message(c, http.StatusUnauthorized, err.Error())
			return
		}
		log.Printf("login failed: %v", err)
		response.Message(c, http.StatusInternalServerError, "An error occurred. Registration failed.")
		return
	}

	diseases := result.Diseases
	if diseases == nil {
		diseases = []string{}
	}
	savedReports := result.SavedReports
	if savedReports == nil {
		savedReports = []model.SavedReport{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"user": gin.H{
			"firstName": result.Profile.GivenName,
			"lastName":  result.Profile.FamilyName,
			"picture":   result.Profile.Picture,
			"email":     result.Profile.Email,
			"token":     result.Token,
		},
		"diseases":     diseases,
		"savedReports": savedReports,
	})
}
