package webapi

import (
	"github.com/gofiber/fiber/v2"
	authsvc "github.com/omarsaleh/bankd/pkg/service/auth"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates an account and returns a signed session token. The
// token is also set on the Authorization response header.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if err != nil {
			return nil // Error already written by helper
		}
		acct, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Login failed", err.Error())
		}
		token, err := authSvc.GenerateToken(acct)
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
		}
		c.Set(fiber.HeaderAuthorization, "Bearer "+token)
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Success login",
			Data:    fiber.Map{"token": token, "account": acct},
		})
	}
}
