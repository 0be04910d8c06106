package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/petmeet/petmeet/middleware"
	"github.com/petmeet/petmeet/models"
	"github.com/petmeet/petmeet/policy"
	"github.com/petmeet/petmeet/serializers"
	"github.com/petmeet/petmeet/store"
	"github.com/petmeet/petmeet/utils"
)

const invalidPage = "Invalid page."

func init() {
	// Report validation failures by JSON field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// parseID reads a positive numeric path parameter; anything else is a 404 for entity.
func parseID(ctx *gin.Context, param, entity string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusNotFound, entity+" not found")
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes and validates the body, writing a 400 on failure.
func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		utils.Error(ctx, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request payload"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": This field is required."
	case "email":
		return field + ": Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s].", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: Ensure this field has no more than %s characters.", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s: Ensure this field has at least %s characters.", field, fe.Param())
	default:
		return fmt.Sprintf("%s: failed %s validation.", field, fe.Tag())
	}
}

// principal returns the authenticated user; routes behind AuthRequired always have one.
func principal(ctx *gin.Context) *models.User {
	return middleware.Principal(ctx)
}

// respondError maps domain errors to HTTP responses. entity names the
// resource looked up by the handler for not-found messages.
func respondError(ctx *gin.Context, err error, entity string) {
	var notOwner *policy.NotOwnerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, entity+" not found")
	case errors.Is(err, policy.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, policy.ErrNotGroupOwner), errors.As(err, &notOwner):
		utils.Reject(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrAlreadyAttending):
		utils.Reject(ctx, http.StatusConflict, "You are already attending this meeting")
	case errors.Is(err, store.ErrNotAttending):
		utils.Reject(ctx, http.StatusConflict, "You are already not attending this meeting")
	default:
		utils.Logger.Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, "internal server error")
	}
}

func duplicateEmail(ctx *gin.Context, email string) {
	utils.Error(ctx, http.StatusConflict, fmt.Sprintf("User with email %s already exists", email))
}

// Paginator slices listings into numbered pages of a fixed size.
type Paginator struct {
	Size int
}

// pageRequest is the page a list request asked for.
type pageRequest struct {
	number int
	size   int
}

func (r pageRequest) window() store.Page {
	return store.Page{Offset: (r.number - 1) * r.size, Limit: r.size}
}

// request parses ?page=; a non-positive or non-numeric value is a 404.
func (p Paginator) request(ctx *gin.Context) (pageRequest, bool) {
	size := p.Size
	if size <= 0 {
		size = 10
	}
	req := pageRequest{number: 1, size: size}
	if raw := strings.TrimSpace(ctx.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.Error(ctx, http.StatusNotFound, invalidPage)
			return req, false
		}
		req.number = n
	}
	return req, true
}

// writePage renders the envelope, or a 404 when the page lies past the end.
// Page 1 of an empty listing is valid.
func writePage[T any](ctx *gin.Context, req pageRequest, total int64, results []T) {
	pages := int((total + int64(req.size) - 1) / int64(req.size))
	if req.number > 1 && req.number > pages {
		utils.Error(ctx, http.StatusNotFound, invalidPage)
		return
	}

	var next, previous *string
	if req.number < pages {
		next = pageURL(ctx, req.number+1)
	}
	if req.number > 1 {
		previous = pageURL(ctx, req.number-1)
	}
	utils.Success(ctx, serializers.NewPage(total, next, previous, results))
}

// pageURL rebuilds the request URL pointing at page n. Page 1 drops the parameter.
func pageURL(ctx *gin.Context, n int) *string {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := ctx.Request.URL.Query()
	if n <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     ctx.Request.Host,
		Path:     ctx.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	s := u.String()
	return &s
}

// field pairs a JSON name with whether the body supplied it.
type field struct {
	name string
	set  bool
}

// requireFull enforces that a PUT carries every writable field; PATCH may omit any.
func requireFull(ctx *gin.Context, fields ...field) bool {
	if ctx.Request.Method != http.MethodPut {
		return true
	}
	var missing []string
	for _, f := range fields {
		if !f.set {
			missing = append(missing, f.name+": This field is required.")
		}
	}
	if len(missing) > 0 {
		utils.Error(ctx, http.StatusBadRequest, strings.Join(missing, "; "))
		return false
	}
	return true
}

// cleaner sanitises bound fields and collects the ones that end up blank or
// longer than their column once cleaned.
type cleaner struct {
	problems []string
}

// label strips markup from a required plain-text field. max <= 0 means unbounded.
func (c *cleaner) label(name, raw string, max int) string {
	return c.check(name, utils.StripTags(raw), max)
}

// text sanitises a required rich-text field.
func (c *cleaner) text(name, raw string, max int) string {
	return c.check(name, utils.Sanitize(raw), max)
}

func (c *cleaner) check(name, value string, max int) string {
	switch {
	case value == "":
		c.problems = append(c.problems, name+": This field may not be blank.")
	case max > 0 && utf8.RuneCountInString(value) > max:
		c.problems = append(c.problems, fmt.Sprintf("%s: Ensure this field has no more than %d characters.", name, max))
	}
	return value
}

// ok writes a 400 listing every problem, if any.
func (c *cleaner) ok(ctx *gin.Context) bool {
	if len(c.problems) == 0 {
		return true
	}
	utils.Error(ctx, http.StatusBadRequest, strings.Join(c.problems, "; "))
	return false
}
