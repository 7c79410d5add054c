package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain"
)

var validate = validator.New()

// LedgerHandler maneja las peticiones HTTP de entradas y salidas de inventario.
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar entrada de mercancía
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "item_id, quantity, unit_price, effective_date, operator_id; supplier_id/batch_id/expiry_date opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *LedgerHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", validationMessage(err))
	}
	movementID, err := h.uc.Receive(c.Context(), ledger.ReceiveInput{
		ItemID:        in.ItemID,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		OperatorID:    in.OperatorID,
		SupplierID:    in.SupplierID,
		BatchID:       in.BatchID,
		ExpiryDate:    in.ExpiryDate,
		EffectiveDate: in.EffectiveDate,
		ReceivedBy:    in.ReceivedBy,
		Note:          in.Note,
	})
	if err != nil {
		movementsRejected.WithLabelValues("receipt", rejectReason(err)).Inc()
		return ledgerError(c, err)
	}
	movementsAccepted.WithLabelValues("receipt").Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{MovementID: movementID})
}

// Dispatch godoc
// @Summary      Registrar salida de mercancía
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispatchRequest  true  "item_id, quantity, dispatch_type, effective_date, operator_id; destination/unit_price/responsible_id opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/dispatches [post]
func (h *LedgerHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, "VALIDATION", validationMessage(err))
	}
	movementID, err := h.uc.Dispatch(c.Context(), ledger.DispatchInput{
		ItemID:        in.ItemID,
		Quantity:      in.Quantity,
		DispatchType:  strings.ToUpper(in.DispatchType),
		OperatorID:    in.OperatorID,
		Destination:   in.Destination,
		UnitPrice:     in.UnitPrice,
		ResponsibleID: in.ResponsibleID,
		EffectiveDate: in.EffectiveDate,
		Note:          in.Note,
	})
	if err != nil {
		movementsRejected.WithLabelValues("dispatch", rejectReason(err)).Inc()
		return ledgerError(c, err)
	}
	movementsAccepted.WithLabelValues("dispatch").Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{MovementID: movementID})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// ledgerError mapea la taxonomía de errores del motor a códigos HTTP.
// Cada falla lleva una razón específica; stock insuficiente incluye la
// cantidad disponible en el mensaje.
func ledgerError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, "VALIDATION", err.Error())
	case errors.As(err, &insufficient):
		return badRequest(c, "INSUFFICIENT_STOCK", insufficient.Error())
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE", Message: err.Error()})
	}
}

func rejectReason(err error) string {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.As(err, &insufficient):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "storage"
	}
}

// validationMessage arma un mensaje legible a partir del primer error del validador.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "campo inválido: " + fe.Field() + " (" + fe.Tag() + ")"
	}
	return "datos inválidos"
}
