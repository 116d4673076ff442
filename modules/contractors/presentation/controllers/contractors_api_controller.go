package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/facilops/facilops/modules/contractors/domain/aggregates/contractor"
	"github.com/facilops/facilops/modules/contractors/services"
	"github.com/facilops/facilops/pkg/application"
	"github.com/facilops/facilops/pkg/composables"
	"github.com/facilops/facilops/pkg/configuration"
	"github.com/facilops/facilops/pkg/middleware"
)

type ContractorsAPIController struct {
	app         application.Application
	contractors *services.ContractorService
	basePath    string
}

func NewContractorsAPIController(app application.Application) application.Controller {
	return &ContractorsAPIController{
		app:         app,
		contractors: app.Service(services.ContractorService{}).(*services.ContractorService),
		basePath:    "/contractors/api",
	}
}

func (c *ContractorsAPIController) Key() string {
	return c.basePath
}

func (c *ContractorsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/contractors", c.List).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	// The tx wrapper needs a pool; apps built without one run writes
	// unwrapped.
	if c.app.DB() != nil {
		writeRouter.Use(middleware.WithTransaction())
	}
	writeRouter.HandleFunc("/contractors", c.Create).Methods(http.MethodPost)
}

func (c *ContractorsAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()

	limit := conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			limit = parsed
		}
	}
	offset := 0
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	items, total, err := c.contractors.GetPaginated(r.Context(), &contractor.FindParams{Q: q, Limit: limit, Offset: offset})
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CONTRACTORS_INTERNAL", "internal error")
		return
	}

	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, contractorToJSON(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *ContractorsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	actingUser, err := composables.UseUserID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "CONTRACTORS_NO_USER", "acting user is required")
		return
	}

	var dto contractor.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTRACTORS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		message := "validation failed"
		for _, field := range []string{"Name", "ServiceType", "Status", "ContactEmail", "Rating"} {
			if v := strings.TrimSpace(errs[field]); v != "" {
				message = v
				break
			}
		}
		writeAPIError(w, r, http.StatusUnprocessableEntity, "CONTRACTORS_VALIDATION_FAILED", message)
		return
	}

	created, err := c.contractors.Create(r.Context(), &dto, actingUser)
	if err != nil {
		if errors.Is(err, contractor.ErrDuplicate) {
			writeAPIError(w, r, http.StatusConflict, "CONTRACTORS_DUPLICATE", "contractor already exists")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CONTRACTORS_INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, contractorToJSON(created))
}

func contractorToJSON(c contractor.Contractor) map[string]any {
	return map[string]any{
		"id":            c.ID(),
		"name":          c.Name(),
		"service_type":  c.ServiceType(),
		"status":        string(c.Status()),
		"contact_email": c.ContactEmail(),
		"contact_phone": c.ContactPhone(),
		"location":      c.Location(),
		"notes":         c.Notes(),
		"credentials":   c.Credentials(),
		"rating":        c.Rating(),
	}
}
