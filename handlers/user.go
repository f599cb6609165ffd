package handlers

import (
	"net/http"

	"server/auth"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserCreateRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}
type UserLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	user, success := models.UserLogin(postReq.Email, postReq.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, Response{"invalid email or password"})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(&user)
	NotifySessionChange(user.ID, "login")
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name, "email": user.Email})
}

func UserLogout(c *gin.Context, user *models.User) {
	session := auth.LoadSession(c)
	session.LogoutUser()
	NotifySessionChange(user.ID, "logout")
	c.JSON(http.StatusOK, OKResponse)
}

// UserGetStatus tells the owner-facing views whether there is an
// authenticated owner right now.
func UserGetStatus(c *gin.Context) {
	session := auth.LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "name": "", "email": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name, "email": user.Email})
}

func UserCreate(c *gin.Context, user *models.User) {
	postReq := UserCreateRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	created, err := models.UserCreate(postReq.Name, postReq.Email, postReq.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": created.ID, "name": created.Name})
}
