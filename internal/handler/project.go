package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jefta/portfolio-api/internal/payload"
	"github.com/jefta/portfolio-api/internal/usecase"
	"github.com/jefta/portfolio-api/shared/storage"
	sharedvalidator "github.com/jefta/portfolio-api/shared/validator"
)

const maxMultipartMemory = 8 << 20

var errBadTechStack = errors.New("techStack must be a JSON array of strings")

// ProjectHandler serves the project gallery endpoints.
type ProjectHandler struct {
	projectUsecase usecase.ProjectUsecase
	validate       *validator.Validate
	trans          ut.Translator
	logger         *zerolog.Logger
	production     bool
}

// NewProjectHandler creates a new ProjectHandler instance.
func NewProjectHandler(
	projectUsecase usecase.ProjectUsecase,
	validate *validator.Validate,
	trans ut.Translator,
	logger *zerolog.Logger,
	production bool,
) *ProjectHandler {
	return &ProjectHandler{
		projectUsecase: projectUsecase,
		validate:       validate,
		trans:          trans,
		logger:         logger,
		production:     production,
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectUsecase.ListProjects(r.Context())
	if err != nil {
		respondError(w, h.logger, h.production, err)
		return
	}

	count := len(projects)
	respondJSON(w, http.StatusOK, payload.Response{
		Success: true,
		Count:   &count,
		Data:    projects,
	})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectUsecase.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, h.production, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.Response{Success: true, Data: project})
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, err := h.createParams(r)
	if err != nil {
		h.respondFormError(w, err)
		return
	}

	project, err := h.projectUsecase.CreateProject(r.Context(), *params)
	if err != nil {
		respondError(w, h.logger, h.production, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.Response{
		Success: true,
		Message: "Project created successfully",
		Data:    project,
	})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	params, err := h.updateParams(r)
	if err != nil {
		h.respondFormError(w, err)
		return
	}

	project, err := h.projectUsecase.UpdateProject(r.Context(), chi.URLParam(r, "id"), *params)
	if err != nil {
		respondError(w, h.logger, h.production, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.Response{
		Success: true,
		Message: "Project updated successfully",
		Data:    project,
	})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projectUsecase.DeleteProject(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, h.production, err)
		return
	}

	respondMessage(w, http.StatusOK, "Project deleted successfully")
}

func (h *ProjectHandler) respondFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadTechStack):
		respondMessage(w, http.StatusBadRequest, errBadTechStack.Error())
	case errors.Is(err, storage.ErrImageTooLarge), errors.Is(err, storage.ErrUnsupportedImageType):
		respondError(w, h.logger, h.production, err)
	default:
		respondMessage(w, http.StatusBadRequest, err.Error())
	}
}

func (h *ProjectHandler) createParams(r *http.Request) (*usecase.CreateProjectParams, error) {
	if isJSONRequest(r) {
		var req payload.CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errors.New("invalid JSON body")
		}

		if err := h.validate.Struct(req); err != nil {
			return nil, errors.New(sharedvalidator.FirstError(err, h.trans))
		}

		return &usecase.CreateProjectParams{
			Title:        req.Title,
			Description:  req.Description,
			TechStack:    req.TechStack,
			GithubRepo:   req.GithubRepo,
			DeployLink:   req.DeployLink,
			DemoVideoURL: req.DemoVideoURL,
		}, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, errors.New("invalid multipart form")
	}

	params := &usecase.CreateProjectParams{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		GithubRepo:   r.FormValue("githubRepo"),
		DeployLink:   r.FormValue("deployLink"),
		DemoVideoURL: r.FormValue("demoVideoUrl"),
	}

	if raw, ok := formValue(r, "techStack"); ok {
		techStack, err := parseTechStack(raw)
		if err != nil {
			return nil, err
		}
		params.TechStack = techStack
	}

	image, err := imageUpload(r)
	if err != nil {
		return nil, err
	}
	params.Image = image

	return params, nil
}

func (h *ProjectHandler) updateParams(r *http.Request) (*usecase.UpdateProjectParams, error) {
	if isJSONRequest(r) {
		var req payload.UpdateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, errors.New("invalid JSON body")
		}

		return &usecase.UpdateProjectParams{
			Title:        req.Title,
			Description:  req.Description,
			TechStack:    req.TechStack,
			GithubRepo:   req.GithubRepo,
			DeployLink:   req.DeployLink,
			DemoVideoURL: req.DemoVideoURL,
		}, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, errors.New("invalid multipart form")
	}

	params := &usecase.UpdateProjectParams{}
	if v, ok := formValue(r, "title"); ok {
		params.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		params.Description = &v
	}
	if v, ok := formValue(r, "githubRepo"); ok {
		params.GithubRepo = &v
	}
	if v, ok := formValue(r, "deployLink"); ok {
		params.DeployLink = &v
	}
	if v, ok := formValue(r, "demoVideoUrl"); ok {
		params.DemoVideoURL = &v
	}
	if raw, ok := formValue(r, "techStack"); ok {
		techStack, err := parseTechStack(raw)
		if err != nil {
			return nil, err
		}
		params.TechStack = &techStack
	}

	image, err := imageUpload(r)
	if err != nil {
		return nil, err
	}
	params.Image = image

	return params, nil
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// formValue distinguishes an absent field from one explicitly set to "".
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}

	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

// parseTechStack enforces the canonical wire representation: a JSON array
// of strings. Anything else is a validation error, never a silent empty
// array.
func parseTechStack(raw string) ([]string, error) {
	var techStack []string
	if err := json.Unmarshal([]byte(raw), &techStack); err != nil {
		return nil, errBadTechStack
	}

	return techStack, nil
}

func imageUpload(r *http.Request) (*usecase.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("invalid image field")
	}
	defer file.Close()

	// Size and type checks happen again in the media store; this early
	// check avoids buffering an oversized body first.
	if header.Size > storage.MaxImageSize {
		return nil, storage.ErrImageTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("failed to read image upload")
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &usecase.ImageUpload{Data: data, ContentType: contentType}, nil
}
