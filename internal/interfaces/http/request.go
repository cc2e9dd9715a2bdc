package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/logbook-api/internal/application/dto"
	"github.com/jhoicas/logbook-api/internal/domain"
)

// decodeStrict decodifica el cuerpo JSON rechazando campos desconocidos (p. ej. status o grandTotal).
func decodeStrict(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.NewValidationError("body", "required")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return bodyError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "un solo objeto JSON")
	}
	return nil
}

// decodeLenient ignora campos desconocidos: el cuerpo de verificación suele ser el registro
// completo tal como lo devolvió GET (_id, status, createdAt...), y esos campos no se aplican.
func decodeLenient(c *fiber.Ctx, out any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return bodyError(err)
	}
	return nil
}

func bodyError(err error) error {
	const unknown = "json: unknown field "
	msg := err.Error()
	if strings.HasPrefix(msg, unknown) {
		field, _ := strconv.Unquote(strings.TrimPrefix(msg, unknown))
		return domain.NewValidationError(field, "campo no permitido")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(typeErr.Field, "tipo inválido: se esperaba "+typeErr.Type.String())
	}
	return domain.NewValidationError("body", "JSON inválido: "+msg)
}

// pageFromQuery lee page y limit; ausentes toman los valores por defecto, no numéricos o < 1 fallan.
func pageFromQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	page := dto.PageRequest{Page: dto.DefaultPage, Limit: dto.DefaultLimit}
	verr := &domain.ValidationError{}
	parse := func(name string, dst *int) {
		raw := c.Query(name)
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add(name, "entero positivo")
			return
		}
		*dst = n
	}
	parse("page", &page.Page)
	parse("limit", &page.Limit)
	if !verr.Empty() {
		return page, verr
	}
	return page, page.Check()
}
