package controllers

import (
	"coursehub/backend/config"
	"coursehub/backend/models"
	"coursehub/backend/utils"
	"coursehub/backend/wizard"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type wizardView struct {
	ID    string       `json:"id"`
	State wizard.State `json:"state"`
	// set once a signup completes
	Token string `json:"token,omitempty"`
}

type WizardController struct {
	Wizards *wizard.Registry
	Cfg     *config.Config
	Log     *zap.Logger
}

func NewWizardController(wizards *wizard.Registry, cfg *config.Config, log *zap.Logger) *WizardController {
	return &WizardController{Wizards: wizards, Cfg: cfg, Log: log}
}

type SetFieldsInput map[string]string

func (wc *WizardController) GetWizard(c *fiber.Ctx) error {
	id := c.Params("id")
	f, err := wc.Wizards.Get(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, wizardView{ID: id, State: f.State()})
}

// DiscardWizard drops an unfinished or finished wizard.
func (wc *WizardController) DiscardWizard(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := wc.Wizards.Remove(id); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContent(c)
}

// SetFields applies field edits of the current step in one request.
func (wc *WizardController) SetFields(c *fiber.Ctx) error {
	id := c.Params("id")
	f, err := wc.Wizards.Get(id)
	if err != nil {
		return utils.HandleError(c, err)
	}

	var input SetFieldsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	for field, value := range input {
		if err := f.Set(field, value); err != nil {
			return wc.fail(c, id, f, err)
		}
	}
	return utils.Success(c, fiber.StatusOK, wizardView{ID: id, State: f.State()})
}

func (wc *WizardController) Next(c *fiber.Ctx) error {
	return wc.step(c, wizard.Flow.Next)
}

func (wc *WizardController) Back(c *fiber.Ctx) error {
	return wc.step(c, wizard.Flow.Back)
}

// Submit blocks for the flow's submission delay.
func (wc *WizardController) Submit(c *fiber.Ctx) error {
	id := c.Params("id")
	f, err := wc.Wizards.Get(id)
	if err != nil {
		return utils.HandleError(c, err)
	}

	result, err := f.Submit()
	if err != nil {
		wc.Log.Warn("Wizard submission failed",
			zap.String("wizard", f.Name()),
			zap.String("wizard_id", id),
			zap.Error(err),
		)
		return wc.fail(c, id, f, err)
	}

	view := wizardView{ID: id, State: f.State()}
	if user, ok := result.(models.User); ok {
		token, err := utils.GenerateJWTToken(user.ID, wc.Cfg)
		if err != nil {
			return utils.InternalServerError(c, "Could not generate token")
		}
		view.Token = token
	}

	wc.Log.Info("Wizard submitted", zap.String("wizard", f.Name()), zap.String("wizard_id", id))
	return utils.Success(c, fiber.StatusOK, view)
}

func (wc *WizardController) step(c *fiber.Ctx, move func(wizard.Flow) error) error {
	id := c.Params("id")
	f, err := wc.Wizards.Get(id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := move(f); err != nil {
		return wc.fail(c, id, f, err)
	}
	return utils.Success(c, fiber.StatusOK, wizardView{ID: id, State: f.State()})
}

// fail answers with the mapped status and the wizard state, whose errors
// carry the per-field messages.
func (wc *WizardController) fail(c *fiber.Ctx, id string, f wizard.Flow, err error) error {
	return utils.Error(c, utils.StatusFor(err), utils.PublicError(err), wizardView{ID: id, State: f.State()})
}
