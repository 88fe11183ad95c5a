package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/omarsaleh/bankd/config"
	domain "github.com/omarsaleh/bankd/pkg/domain/account"
	"github.com/omarsaleh/bankd/pkg/middleware"
	accountsvc "github.com/omarsaleh/bankd/pkg/service/account"
	authsvc "github.com/omarsaleh/bankd/pkg/service/auth"
)

type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdateAccountRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

type AmountRequest struct {
	Email  string  `json:"email" validate:"required,email"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// AccountRoutes registers the account endpoints. Registration and login are
// public; everything else requires a bearer token.
func AccountRoutes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.AppConfig,
) {
	app.Post("/account/create", CreateAccount(accountSvc))
	app.Post("/account/login", Login(authSvc))
	app.Post("/account/find", middleware.JwtProtected(cfg.Jwt), FindAccounts(accountSvc))
	app.Post("/account/findOne", middleware.JwtProtected(cfg.Jwt), FindOneAccount(accountSvc))
	app.Post("/account/update", middleware.JwtProtected(cfg.Jwt), UpdateAccount(accountSvc))
	app.Post("/account/deposit", middleware.JwtProtected(cfg.Jwt), Deposit(accountSvc))
	app.Post("/account/withdraw", middleware.JwtProtected(cfg.Jwt), Withdraw(accountSvc))
	app.Get("/account/all", middleware.JwtProtected(cfg.Jwt), AllAccounts(accountSvc))
}

// CreateAccount registers a new account with a zero balance.
func CreateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateAccountRequest](c)
		if err != nil {
			return nil // Error already written by helper
		}
		acct, err := accountSvc.Register(c.Context(), input.Name, input.Email, input.Password)
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to create account", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account created",
			Data:    acct,
		})
	}
}

// FindAccounts returns all accounts matching the email. An empty result is
// a 404.
func FindAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[EmailRequest](c)
		if err != nil {
			return nil
		}
		accts, err := accountSvc.Find(c.Context(), input.Email)
		if err != nil {
			log.Errorf("Failed to find accounts: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to find accounts", err.Error())
		}
		if len(accts) == 0 {
			return ProblemDetailsJSON(c, fiber.StatusNotFound, "No accounts found", nil)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Accounts found", Data: accts})
	}
}

// FindOneAccount returns the single account matching the email.
func FindOneAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[EmailRequest](c)
		if err != nil {
			return nil
		}
		acct, err := accountSvc.FindOne(c.Context(), input.Email)
		if err != nil {
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "No account found", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account found", Data: acct})
	}
}

// UpdateAccount changes the account's name and/or password.
func UpdateAccount(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[UpdateAccountRequest](c)
		if err != nil {
			return nil
		}
		acct, err := accountSvc.Update(c.Context(), input.Email, input.Name, input.Password)
		if err != nil {
			log.Errorf("Failed to update account: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to update account", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account updated", Data: acct})
	}
}

// Deposit increments the account balance by the given amount.
func Deposit(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if err != nil {
			return nil
		}
		acct, err := accountSvc.Deposit(c.Context(), input.Email, domain.Cents(input.Amount))
		if err != nil {
			log.Errorf("Failed to deposit: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to deposit", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Deposit successful",
			Data:    fiber.Map{"email": acct.Email, "balance": acct.Balance},
		})
	}
}

// Withdraw decrements the account balance by the given amount, rejecting
// withdrawals that would overdraw the account.
func Withdraw(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if err != nil {
			return nil
		}
		acct, err := accountSvc.Withdraw(c.Context(), input.Email, domain.Cents(input.Amount))
		if err != nil {
			log.Errorf("Failed to withdraw: %v", err)
			return ProblemDetailsJSON(c, ErrorToStatusCode(err), "Failed to withdraw", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Withdrawal successful",
			Data:    fiber.Map{"email": acct.Email, "balance": acct.Balance},
		})
	}
}

// AllAccounts lists every account.
func AllAccounts(accountSvc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accts, err := accountSvc.All(c.Context())
		if err != nil {
			log.Errorf("Failed to list accounts: %v", err)
			return ProblemDetailsJSON(c, fiber.StatusInternalServerError, "Failed to list accounts", err.Error())
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Accounts listed", Data: accts})
	}
}
