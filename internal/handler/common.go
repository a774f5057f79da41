// Package handler holds the echo handlers of the staff API. Handlers bind and
// validate the request, call a repository or the booking service and answer
// with JSON; failures are written as {"error": "..."} with the status chosen
// by apperror.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-manager/internal/apperror"
	"github.com/iliyamo/hotel-manager/internal/model"
	"github.com/iliyamo/hotel-manager/internal/repository"
)

// requestTimeout bounds the database work of a single request.
const requestTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator reports fields by their JSON names.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

// Validate checks the `validate` tags of i and reports the first failing
// field by its JSON name.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.New(apperror.KindValidation, "invalid request")
	}
	return apperror.New(apperror.KindValidation, describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	}
	return name + " is invalid"
}

// bind decodes the body into dst and runs the validator on it.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		msg := "invalid request body"
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Internal != nil {
			msg = fmt.Sprintf("invalid request body: %v", he.Internal)
		}
		return apperror.New(apperror.KindValidation, msg)
	}
	return c.Validate(dst)
}

// writeError answers with the status and message of err. Unclassified errors
// are logged and reported as a generic 500.
func writeError(c echo.Context, err error) error {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{"error": apperror.Message(err)})
}

func badRequest(msg string) error {
	return apperror.New(apperror.KindValidation, msg)
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid id")
	}
	return id, nil
}

func queryUint(c echo.Context, name string) (uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, badRequest(name + " must be a positive integer")
	}
	return n, nil
}

func queryBool(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, badRequest(name + " must be true or false")
	}
	return b, nil
}

// queryDate parses a YYYY-MM-DD query parameter. ok is false when absent.
func queryDate(c echo.Context, name string) (d model.Date, ok bool, err error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return model.Date{}, false, nil
	}
	d, err = model.ParseDate(raw)
	if err != nil {
		return model.Date{}, false, badRequest(name + " must be a date in YYYY-MM-DD format")
	}
	return d, true, nil
}

func queryRoomType(c echo.Context) (model.RoomType, error) {
	rt := model.RoomType(strings.ToUpper(strings.TrimSpace(c.QueryParam("room_type"))))
	if rt != "" && !rt.Valid() {
		return "", badRequest("room_type must be GUEST_HOUSE or FRAME")
	}
	return rt, nil
}

// pageFrom reads skip and limit. Limits above the maximum are clamped by the
// repository.
func pageFrom(c echo.Context) (repository.Page, error) {
	var p repository.Page
	for name, dst := range map[string]*int{"skip": &p.Skip, "limit": &p.Limit} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return repository.Page{}, badRequest(name + " must be a non-negative integer")
		}
		*dst = n
	}
	return p, nil
}
