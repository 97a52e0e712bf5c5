package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/auth"
	"github.com/trezcool/campus/core/campus"
	"github.com/trezcool/campus/storage/docdb"
)

const (
	schoolResource = "school"
	schoolIDField  = "schoolId"
	contextResKey  = "resource"
)

// resources maps the collections served by the API to the model documents are validated against.
var resources = map[string]func() interface{}{
	schoolResource:   func() interface{} { return new(campus.School) },
	"student":        func() interface{} { return new(campus.Student) },
	"lecturer":       func() interface{} { return new(campus.Lecturer) },
	"course":         func() interface{} { return new(campus.Course) },
	"intake":         func() interface{} { return new(campus.Intake) },
	"intake-course":  func() interface{} { return new(campus.IntakeCourse) },
	"module":         func() interface{} { return new(campus.Module) },
	"department":     func() interface{} { return new(campus.Department) },
	"semester":       func() interface{} { return new(campus.Semester) },
	"room":           func() interface{} { return new(campus.Room) },
	"class-schedule": func() interface{} { return new(campus.ClassSchedule) },
	"exam-schedule":  func() interface{} { return new(campus.ExamSchedule) },
	"attendance":     func() interface{} { return new(campus.Attendance) },
	"result":         func() interface{} { return new(campus.Result) },
	"vehicle":        func() interface{} { return new(campus.Vehicle) },
	"route":          func() interface{} { return new(campus.Route) },
	"booking":        func() interface{} { return new(campus.Booking) },
	"feedback":       func() interface{} { return new(campus.Feedback) },
}

// studentWritable are the only resources students may write to.
var studentWritable = map[string]bool{
	"booking":  true,
	"feedback": true,
}

type resourceApi struct {
	srv *server
}

func registerResourceAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := resourceApi{srv: srv}

	rg := g.Group("/:resource", jwt, resourceMiddleware)
	rg.GET("", api.list)
	rg.POST("", api.create, writeMiddleware)
	rg.GET("/school/:schoolId", api.listSchool)

	// detail endpoints
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.update, writeMiddleware)
	rg.DELETE("/:id", api.destroy, writeMiddleware)
	rg.PATCH("/:id/:action", api.action, writeMiddleware)
}

// Middlewares

func resourceMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		res := ctx.Param("resource")
		if _, ok := resources[res]; !ok {
			return errUnknownResource
		}
		ctx.Set(contextResKey, res)
		return next(ctx)
	}
}

func writeMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		if !canWrite(claims, ctx.Get(contextResKey).(string)) {
			return errHttpForbidden
		}
		return next(ctx)
	}
}

// Tenancy

// tenantOf returns the school a tenant-scoped user is confined to, or "".
func tenantOf(claims *auth.Claims) string {
	if claims.Role.IsTenantScoped() {
		return claims.SchoolID
	}
	return ""
}

// tenantField is the field holding the school of a document.
func tenantField(resource string) string {
	if resource == schoolResource {
		return docdb.IDField
	}
	return schoolIDField
}

func canAccess(claims *auth.Claims, resource string, doc docdb.Doc) bool {
	tenant := tenantOf(claims)
	return tenant == "" || doc.Str(tenantField(resource)) == tenant
}

func canWrite(claims *auth.Claims, resource string) bool {
	switch {
	case claims.Role == auth.RoleStudent:
		return studentWritable[resource]
	case resource == schoolResource:
		return claims.Role == auth.RolePlatformAdmin
	default:
		return true
	}
}

// Handlers

func (api *resourceApi) list(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res := ctx.Get(contextResKey).(string)

	match := queryMatch(ctx)
	if tenant := tenantOf(claims); tenant != "" {
		match[tenantField(res)] = tenant
	}
	return ok(ctx, http.StatusOK, api.srv.opts.DB.Find(res, match), "")
}

func (api *resourceApi) listSchool(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res := ctx.Get(contextResKey).(string)

	schoolID := ctx.Param("schoolId")
	if tenant := tenantOf(claims); tenant != "" && tenant != schoolID {
		return errWrongTenant
	}
	match := queryMatch(ctx)
	match[tenantField(res)] = schoolID
	return ok(ctx, http.StatusOK, api.srv.opts.DB.Find(res, match), "")
}

func (api *resourceApi) retrieve(ctx echo.Context) error {
	doc, err := api.getDoc(ctx)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, doc, "")
}

func (api *resourceApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res := ctx.Get(contextResKey).(string)

	var doc docdb.Doc
	if err = decodeBody(ctx, &doc); err != nil {
		return err
	}
	delete(doc, docdb.IDField) // ids are assigned by the API
	if tenant := tenantOf(claims); tenant != "" && res != schoolResource {
		switch doc.Str(schoolIDField) {
		case tenant:
		case "":
			return core.NewValidationError(nil, core.FieldError{Field: schoolIDField, Error: "this field is required"})
		default:
			return errWrongTenant
		}
	}
	if err = api.validateDoc(res, doc); err != nil {
		return err
	}
	if err = checkRules(res, doc); err != nil {
		return err
	}

	doc, err = api.srv.opts.DB.Insert(res, doc)
	if err != nil {
		return errors.Wrapf(err, "inserting %s", res)
	}
	return ok(ctx, http.StatusCreated, doc, res+" created")
}

func (api *resourceApi) update(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res := ctx.Get(contextResKey).(string)

	orig, err := api.getDoc(ctx)
	if err != nil {
		return err
	}
	var patch docdb.Doc
	if err = decodeBody(ctx, &patch); err != nil {
		return err
	}
	if sid, set := patch[schoolIDField]; set && res != schoolResource {
		if tenant := tenantOf(claims); tenant != "" && sid != tenant {
			return errWrongTenant
		}
	}

	doc, err := api.srv.opts.DB.Modify(res, orig.ID(), func(doc docdb.Doc) error {
		for k, v := range patch {
			if k != docdb.IDField {
				doc[k] = v
			}
		}
		if err := api.validateDoc(res, doc); err != nil {
			return err
		}
		return checkRules(res, doc)
	})
	if err != nil {
		return api.dbError(res, err)
	}
	return ok(ctx, http.StatusOK, doc, "")
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	res := ctx.Get(contextResKey).(string)
	doc, err := api.getDoc(ctx)
	if err != nil {
		return err
	}
	if err = api.srv.opts.DB.Delete(res, doc.ID()); err != nil {
		return api.dbError(res, err)
	}
	return ok(ctx, http.StatusOK, nil, res+" deleted")
}

// action handles the PATCH /:resource/:id/:action sub-resources.
func (api *resourceApi) action(ctx echo.Context) error {
	res := ctx.Get(contextResKey).(string)
	act, found := actions[res+"/"+ctx.Param("action")]
	if !found {
		return errNotFound(ctx.Param("action"))
	}

	orig, err := api.getDoc(ctx)
	if err != nil {
		return err
	}
	var body map[string]string
	if err = decodeBody(ctx, &body); err != nil {
		return err
	}

	doc, err := api.srv.opts.DB.Modify(res, orig.ID(), func(doc docdb.Doc) error {
		return act(doc, body)
	})
	if err != nil {
		return api.dbError(res, err)
	}
	return ok(ctx, http.StatusOK, doc, "")
}

// Helpers

// getDoc returns the document :id of :resource, as a 404 when the user cannot see it.
func (api *resourceApi) getDoc(ctx echo.Context) (docdb.Doc, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return nil, err
	}
	res := ctx.Get(contextResKey).(string)

	doc, err := api.srv.opts.DB.Get(res, ctx.Param("id"))
	if err != nil {
		return nil, api.dbError(res, err)
	}
	if !canAccess(claims, res, doc) {
		return nil, errNotFound(res)
	}
	return doc, nil
}

func (api *resourceApi) dbError(res string, err error) error {
	if errors.Cause(err) == docdb.ErrNotFound {
		return errNotFound(res)
	}
	return err
}

// validateDoc decodes doc into the model of res and validates it.
func (api *resourceApi) validateDoc(res string, doc docdb.Doc) error {
	model := resources[res]()
	raw, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	if err = json.Unmarshal(raw, model); err != nil {
		return core.NewValidationError(errors.Wrap(err, "invalid "+res))
	}
	if err = api.srv.validate.Struct(model); err != nil {
		return core.NewFieldsValidationError(err, api.srv.translator)
	}
	return nil
}

// decodeBody decodes the JSON body. echo's Bind is not used: it would also bind path params into maps.
func decodeBody(ctx echo.Context, v interface{}) error {
	if err := json.NewDecoder(ctx.Request().Body).Decode(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body").SetInternal(err)
	}
	return nil
}

// queryMatch returns the query params as equality filters.
func queryMatch(ctx echo.Context) map[string]string {
	match := make(map[string]string)
	for key, vals := range ctx.QueryParams() {
		if len(vals) > 0 && vals[0] != "" {
			match[key] = vals[0]
		}
	}
	return match
}
