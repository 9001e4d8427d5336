package http

import (
	"errors"
	"net/http"

	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

func (rs *RestfulServer) LoginPage(c *gin.Context) {
	rs.render(c, http.StatusOK, "login", "Log in", gin.H{"next": c.Query("next")})
}

func (rs *RestfulServer) Login(c *gin.Context) {
	var form LoginForm
	if issues := loginFormSchema.Parse(zhttp.Request(c.Request), &form); issues != nil {
		rs.render(c, http.StatusBadRequest, "login", "Log in", gin.H{
			"next":   form.Next,
			"errors": issuesToValidation(issues, "username", "password").Fields,
		})
		return
	}

	user, err := rs.Tracker.User.AuthenticateUser(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, tracker.ErrInvalidCredentials) {
			rs.render(c, http.StatusUnauthorized, "login", "Log in", gin.H{
				"next":     form.Next,
				"username": form.Username,
				"error":    "Invalid username or password",
			})
			return
		}
		rs.renderError(c, err)
		return
	}

	token, _, err := rs.Sessions.Issue(user)
	if err != nil {
		rs.renderError(c, err)
		return
	}
	auth.SetSessionCookie(c, rs.Sessions, token)
	logger().Info("User logged in", zap.Uint("user_id", user.ID))

	c.Redirect(http.StatusFound, auth.SafeNext(form.Next))
}

func (rs *RestfulServer) RegisterPage(c *gin.Context) {
	rs.render(c, http.StatusOK, "register", "Register", nil)
}

func (rs *RestfulServer) Register(c *gin.Context) {
	var form RegisterForm
	if issues := registerFormSchema.Parse(zhttp.Request(c.Request), &form); issues != nil {
		rs.render(c, http.StatusBadRequest, "register", "Register", gin.H{
			"form":   form,
			"errors": issuesToValidation(issues, registerFormFields...).Fields,
		})
		return
	}
	if form.Password != form.ConfirmPassword {
		rs.render(c, http.StatusBadRequest, "register", "Register", gin.H{
			"form":   form,
			"errors": map[string]string{"confirm_password": "must match the password"},
		})
		return
	}

	_, err := rs.Tracker.User.RegisterUser(c.Request.Context(), tracker.UserInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		if fields, ok := formErrors(err); ok {
			rs.render(c, http.StatusBadRequest, "register", "Register", gin.H{"form": form, "errors": fields})
			return
		}
		rs.renderError(c, err)
		return
	}

	setFlash(c, "success", "Registration successful. Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (rs *RestfulServer) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c)
	setFlash(c, "info", "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}
