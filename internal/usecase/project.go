package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jefta/portfolio-api/internal/model"
	"github.com/jefta/portfolio-api/internal/repository"
	"github.com/jefta/portfolio-api/shared/storage"
)

// ProjectUsecase defines the interface for project gallery use cases.
type ProjectUsecase interface {
	CreateProject(ctx context.Context, params CreateProjectParams) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	UpdateProject(ctx context.Context, id string, params UpdateProjectParams) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// ImageUpload is an image attached to a create or update request.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// CreateProjectParams defines the parameters for creating a project.
type CreateProjectParams struct {
	Title        string
	Description  string
	TechStack    []string
	GithubRepo   string
	DeployLink   string
	DemoVideoURL string
	Image        *ImageUpload
}

// UpdateProjectParams defines the optional parameters for updating a
// project. Only the fields that are not nil are changed; an explicit empty
// string clears the field.
type UpdateProjectParams struct {
	Title        *string
	Description  *string
	TechStack    *[]string
	GithubRepo   *string
	DeployLink   *string
	DemoVideoURL *string
	Image        *ImageUpload
}

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTitleRequired   = errors.New("title is required")
)

type projectUsecase struct {
	projectRepo repository.ProjectRepository
	media       storage.MediaStore
	logger      *zerolog.Logger
}

// NewProjectUsecase creates a new instance of ProjectUsecase.
func NewProjectUsecase(
	projectRepo repository.ProjectRepository,
	media storage.MediaStore,
	logger *zerolog.Logger,
) ProjectUsecase {
	return &projectUsecase{
		projectRepo: projectRepo,
		media:       media,
		logger:      logger,
	}
}

func (u *projectUsecase) CreateProject(ctx context.Context, params CreateProjectParams) (*model.Project, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}

	// Upload before persisting. If persistence then fails the remote object
	// is orphaned; accepted, never silently cleaned up.
	imageURL := ""
	if params.Image != nil {
		url, err := u.media.Store(ctx, params.Image.Data, params.Image.ContentType)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	project, err := u.projectRepo.CreateProject(ctx, &model.Project{
		Title:        strings.TrimSpace(params.Title),
		Description:  params.Description,
		TechStack:    params.TechStack,
		GithubRepo:   params.GithubRepo,
		DeployLink:   params.DeployLink,
		DemoVideoURL: params.DemoVideoURL,
		ImageURL:     imageURL,
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) GetProject(ctx context.Context, id string) (*model.Project, error) {
	project, err := u.projectRepo.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return u.projectRepo.ListProjects(ctx)
}

func (u *projectUsecase) UpdateProject(
	ctx context.Context,
	id string,
	params UpdateProjectParams,
) (*model.Project, error) {
	existing, err := u.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil && strings.TrimSpace(*params.Title) == "" {
		return nil, ErrTitleRequired
	}

	repoParams := repository.UpdateProjectParams{
		Title:        params.Title,
		Description:  params.Description,
		TechStack:    params.TechStack,
		GithubRepo:   params.GithubRepo,
		DeployLink:   params.DeployLink,
		DemoVideoURL: params.DemoVideoURL,
	}

	if params.Image != nil {
		// Never delete-before-confirm: the old object goes away only after
		// the replacement is stored.
		newURL, err := u.media.Store(ctx, params.Image.Data, params.Image.ContentType)
		if err != nil {
			return nil, err
		}

		if existing.ImageURL != "" {
			if err := u.media.Remove(ctx, existing.ImageURL); err != nil {
				u.logger.Warn().Err(err).
					Str("project_id", id).
					Str("image_url", existing.ImageURL).
					Msg("failed to delete replaced image; continuing")
			}
		}

		repoParams.ImageURL = &newURL
	}

	project, err := u.projectRepo.UpdateProject(ctx, id, repoParams)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProjectNotFound
		}

		return nil, err
	}

	return project, nil
}

func (u *projectUsecase) DeleteProject(ctx context.Context, id string) error {
	existing, err := u.GetProject(ctx, id)
	if err != nil {
		return err
	}

	// Best-effort media cleanup; a failure here must not block deletion of
	// the record itself.
	if existing.ImageURL != "" {
		if err := u.media.Remove(ctx, existing.ImageURL); err != nil {
			u.logger.Warn().Err(err).
				Str("project_id", id).
				Str("image_url", existing.ImageURL).
				Msg("failed to delete project image; continuing")
		}
	}

	if err := u.projectRepo.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProjectNotFound
		}

		return err
	}

	return nil
}
