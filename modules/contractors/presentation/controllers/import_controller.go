package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/facilops/facilops/modules/contractors/services"
	"github.com/facilops/facilops/pkg/application"
	"github.com/facilops/facilops/pkg/composables"
	"github.com/facilops/facilops/pkg/configuration"
	"github.com/facilops/facilops/pkg/importer"
)

// importResponse extends the pipeline result with the best-effort
// success flag callers render from.
type importResponse struct {
	Imported          int      `json:"imported"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Errors            []string `json:"errors"`
	Success           bool     `json:"success"`
}

func toImportResponse(res *importer.Result) importResponse {
	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	return importResponse{
		Imported:          res.Imported,
		DuplicatesSkipped: res.DuplicatesSkipped,
		Errors:            errs,
		Success:           res.Success(),
	}
}

type ImportController struct {
	app         application.Application
	contractors *services.ContractorImportService
	insurance   *services.InsuranceImportService
	basePath    string
}

func NewImportController(app application.Application) application.Controller {
	return &ImportController{
		app:         app,
		contractors: app.Service(services.ContractorImportService{}).(*services.ContractorImportService),
		insurance:   app.Service(services.InsuranceImportService{}).(*services.InsuranceImportService),
		basePath:    "/contractors/api/imports",
	}
}

func (c *ImportController) Key() string {
	return c.basePath
}

func (c *ImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/contractors", c.ImportContractors).Methods(http.MethodPost)
	router.HandleFunc("/insurance", c.ImportInsurance).Methods(http.MethodPost)
	router.HandleFunc("/contractors/template", c.ContractorTemplate).Methods(http.MethodGet)
	router.HandleFunc("/insurance/template", c.InsuranceTemplate).Methods(http.MethodGet)
}

func (c *ImportController) ImportContractors(w http.ResponseWriter, r *http.Request) {
	c.runImport(w, r, func(ctx context.Context, file io.Reader, size int64, filename string, actingUser uuid.UUID) (*importer.Result, error) {
		return c.contractors.ImportCSV(ctx, file, size, filename, actingUser)
	})
}

func (c *ImportController) ImportInsurance(w http.ResponseWriter, r *http.Request) {
	c.runImport(w, r, func(ctx context.Context, file io.Reader, size int64, filename string, actingUser uuid.UUID) (*importer.Result, error) {
		// Progress is delivered via the eventbus; the HTTP caller only
		// sees the final result.
		return c.insurance.ImportCSV(ctx, file, size, filename, actingUser, nil)
	})
}

func (c *ImportController) runImport(
	w http.ResponseWriter,
	r *http.Request,
	run func(ctx context.Context, file io.Reader, size int64, filename string, actingUser uuid.UUID) (*importer.Result, error),
) {
	actingUser, err := composables.UseUserID(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusUnauthorized, "IMPORT_NO_USER", "acting user is required")
		return
	}

	maxUpload := configuration.Use().MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeAPIError(w, r, http.StatusRequestEntityTooLarge, "IMPORT_TOO_LARGE", "uploaded file exceeds the size limit")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_NO_FILE", "multipart part 'file' is required")
		return
	}
	defer func() { _ = file.Close() }()

	res, err := run(r.Context(), file, header.Size, header.Filename, actingUser)
	if err != nil {
		c.writeImportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toImportResponse(res))
}

func (c *ImportController) writeImportError(w http.ResponseWriter, r *http.Request, err error) {
	var sizeErr *importer.SizeLimitError
	var parseErr *importer.ParseError
	switch {
	case errors.As(err, &sizeErr):
		writeAPIError(w, r, http.StatusRequestEntityTooLarge, "IMPORT_TOO_LARGE", sizeErr.Error())
	case errors.Is(err, importer.ErrUnsupportedFileType):
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_UNSUPPORTED_TYPE", err.Error())
	case errors.As(err, &parseErr):
		writeAPIError(w, r, http.StatusBadRequest, "IMPORT_PARSE_FAILED", parseErr.Error())
	default:
		writeAPIError(w, r, http.StatusInternalServerError, "IMPORT_INTERNAL", "internal error")
	}
}

func (c *ImportController) ContractorTemplate(w http.ResponseWriter, r *http.Request) {
	writeCSVAttachment(w, "contractors-template.csv", services.ContractorTemplateCSV())
}

func (c *ImportController) InsuranceTemplate(w http.ResponseWriter, r *http.Request) {
	writeCSVAttachment(w, "insurance-template.csv", services.InsuranceTemplateCSV())
}

func writeCSVAttachment(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
