package controllers

import (
	"coursehub/backend/config"
	"coursehub/backend/session"
	"coursehub/backend/utils"
	"coursehub/backend/wizard"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	Session *session.Session
	Wizards *wizard.Registry
	Cfg     *config.Config
	Log     *zap.Logger
}

func NewAuthController(sess *session.Session, wizards *wizard.Registry, cfg *config.Config, log *zap.Logger) *AuthController {
	return &AuthController{Session: sess, Wizards: wizards, Cfg: cfg, Log: log}
}

// [+] Signup godoc
// @Summary Start signup
// @Description Starts a signup wizard, optionally pre-filled from the body
// @Tags auth
// @Accept json
// @Produce json
// @Param values body map[string]string false "Initial field values"
// @Success 201 {object} utils.SuccessResponse
// @Router /auth/signup [post]
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	initial := wizard.Values{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&initial); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}

	w := wizard.New(wizard.Signup(ac.Session, ac.Cfg.SignupDelay), initial)
	id := ac.Wizards.Start(w.Flow())
	ac.Log.Debug("Signup started", zap.String("wizard_id", id))

	return utils.Created(c, wizardView{ID: id, State: w.State()})
}

// [+] Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user, err := ac.Session.Login(input.Email, input.Password, input.Remember)
	if err != nil {
		return utils.HandleError(c, err)
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		ac.Log.Error("Could not generate token", zap.Error(err))
		return utils.InternalServerError(c, "Could not generate token")
	}

	ac.Log.Info("User logged in", zap.String("user_id", user.ID))
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token": token,
		"user":  user,
	})
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.Session.SignOut(); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContent(c)
}

// CurrentSession reports who is signed in and the remembered login email.
func (ac *AuthController) CurrentSession(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"loggedIn":        ac.Session.IsLoggedIn(),
		"user":            ac.Session.Current(),
		"rememberedEmail": ac.Session.Gateway().RememberedEmail(),
	})
}
