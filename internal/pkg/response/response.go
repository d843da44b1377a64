package response

import "github.com/gofiber/fiber/v3"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status  int         `json:"status"`
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	KindNotFound           = "not_found"
	KindValidationFailed   = "validation_failed"
	KindStorageUnavailable = "storage_unavailable"
	KindInternal           = "internal"
)

const (
	MessageOK                  = "ok"
	MessageBadRequest          = "bad request"
	MessageNotFound            = "not found"
	MessageServiceUnavailable  = "service unavailable"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

// JSON writes a successful payload as-is, without an envelope.
func JSON(c fiber.Ctx, status int, data interface{}) error {
	return c.Status(normalizeStatus(status)).JSON(data)
}

func Error(c fiber.Ctx, status int, kind, message string, data interface{}) error {
	st := normalizeStatus(status)
	if kind == "" {
		kind = defaultKindForStatus(st)
	}
	if message == "" {
		message = defaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorResponse{Status: st, Kind: kind, Message: message, Data: data})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func defaultKindForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return KindValidationFailed
	case fiber.StatusNotFound:
		return KindNotFound
	case fiber.StatusServiceUnavailable:
		return KindStorageUnavailable
	default:
		return KindInternal
	}
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusOK:
		return MessageOK
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
