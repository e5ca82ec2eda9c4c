package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jefta/portfolio-api/internal/model"
	"github.com/jefta/portfolio-api/internal/repository"
	"github.com/jefta/portfolio-api/shared/storage"
)

type fakeProjectRepository struct {
	projects map[string]*model.Project
	inserts  int
}

func newFakeProjectRepository() *fakeProjectRepository {
	return &fakeProjectRepository{projects: make(map[string]*model.Project)}
}

func (r *fakeProjectRepository) CreateProject(_ context.Context, project *model.Project) (*model.Project, error) {
	project.ID = bson.NewObjectID()
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	if project.TechStack == nil {
		project.TechStack = []string{}
	}

	r.projects[project.ID.Hex()] = project
	r.inserts++

	copied := *project

	return &copied, nil
}

func (r *fakeProjectRepository) GetProject(_ context.Context, id string) (*model.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *project

	return &copied, nil
}

func (r *fakeProjectRepository) ListProjects(_ context.Context) ([]*model.Project, error) {
	projects := []*model.Project{}
	for _, p := range r.projects {
		projects = append(projects, p)
	}

	return projects, nil
}

func (r *fakeProjectRepository) UpdateProject(
	_ context.Context,
	id string,
	params repository.UpdateProjectParams,
) (*model.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Title != nil {
		project.Title = *params.Title
	}
	if params.Description != nil {
		project.Description = *params.Description
	}
	if params.TechStack != nil {
		project.TechStack = *params.TechStack
	}
	if params.GithubRepo != nil {
		project.GithubRepo = *params.GithubRepo
	}
	if params.DeployLink != nil {
		project.DeployLink = *params.DeployLink
	}
	if params.DemoVideoURL != nil {
		project.DemoVideoURL = *params.DemoVideoURL
	}
	if params.ImageURL != nil {
		project.ImageURL = *params.ImageURL
	}
	project.UpdatedAt = time.Now()

	copied := *project

	return &copied, nil
}

func (r *fakeProjectRepository) DeleteProject(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return mongo.ErrNoDocuments
	}

	delete(r.projects, id)

	return nil
}

type fakeMediaStore struct {
	stores    int
	removes   []string
	storeErr  error
	removeErr error
}

func (s *fakeMediaStore) Store(_ context.Context, data []byte, contentType string) (string, error) {
	if err := storage.ValidateImage(int64(len(data)), contentType); err != nil {
		return "", err
	}
	if s.storeErr != nil {
		return "", s.storeErr
	}

	s.stores++

	return fmt.Sprintf("https://media.example.com/portfolio-projects/project-%d.png", s.stores), nil
}

func (s *fakeMediaStore) Remove(_ context.Context, url string) error {
	s.removes = append(s.removes, url)
	return s.removeErr
}

func newTestProjectUsecase() (ProjectUsecase, *fakeProjectRepository, *fakeMediaStore) {
	repo := newFakeProjectRepository()
	media := &fakeMediaStore{}
	logger := zerolog.Nop()

	return NewProjectUsecase(repo, media, &logger), repo, media
}

func pngUpload() *ImageUpload {
	return &ImageUpload{Data: []byte("\x89PNG"), ContentType: "image/png"}
}

func TestProjectUsecase_Create_TitleOnlyDefaults(t *testing.T) {
	u, _, _ := newTestProjectUsecase()

	project, err := u.CreateProject(context.Background(), CreateProjectParams{Title: "Demo"})
	require.NoError(t, err)

	assert.Equal(t, "Demo", project.Title)
	assert.Equal(t, "", project.Description)
	assert.Equal(t, []string{}, project.TechStack)
	assert.Equal(t, "", project.GithubRepo)
	assert.Equal(t, "", project.DeployLink)
	assert.Equal(t, "", project.DemoVideoURL)
	assert.Equal(t, "", project.ImageURL)
}

func TestProjectUsecase_Create_MissingTitle(t *testing.T) {
	u, repo, media := newTestProjectUsecase()

	for _, title := range []string{"", "   "} {
		_, err := u.CreateProject(context.Background(), CreateProjectParams{
			Title: title,
			Image: pngUpload(),
		})
		assert.ErrorIs(t, err, ErrTitleRequired)
	}

	// No persistence and no upload happened.
	assert.Equal(t, 0, repo.inserts)
	assert.Equal(t, 0, media.stores)
}

func TestProjectUsecase_Create_WithImage(t *testing.T) {
	u, _, media := newTestProjectUsecase()

	project, err := u.CreateProject(context.Background(), CreateProjectParams{
		Title: "Demo",
		Image: pngUpload(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, media.stores)
	assert.NotEmpty(t, project.ImageURL)
}

func TestProjectUsecase_Create_RejectedImageSkipsPersistence(t *testing.T) {
	u, repo, _ := newTestProjectUsecase()

	_, err := u.CreateProject(context.Background(), CreateProjectParams{
		Title: "Demo",
		Image: &ImageUpload{Data: []byte("%PDF"), ContentType: "application/pdf"},
	})
	assert.ErrorIs(t, err, storage.ErrUnsupportedImageType)
	assert.Equal(t, 0, repo.inserts)
}

func TestProjectUsecase_Update_PartialSemantics(t *testing.T) {
	u, _, _ := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{
		Title:       "Demo",
		Description: "old description",
		GithubRepo:  "https://github.com/jefta/demo",
	})
	require.NoError(t, err)

	// Only description supplied: everything else keeps its value.
	description := "new description"
	updated, err := u.UpdateProject(ctx, created.ID.Hex(), UpdateProjectParams{
		Description: &description,
	})
	require.NoError(t, err)
	assert.Equal(t, "Demo", updated.Title)
	assert.Equal(t, "new description", updated.Description)
	assert.Equal(t, "https://github.com/jefta/demo", updated.GithubRepo)

	// Explicit empty string clears the field.
	empty := ""
	updated, err = u.UpdateProject(ctx, created.ID.Hex(), UpdateProjectParams{
		Description: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "Demo", updated.Title)
}

func TestProjectUsecase_Update_EmptyTitleRejected(t *testing.T) {
	u, _, _ := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{Title: "Demo"})
	require.NoError(t, err)

	empty := ""
	_, err = u.UpdateProject(ctx, created.ID.Hex(), UpdateProjectParams{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestProjectUsecase_Update_NotFound(t *testing.T) {
	u, _, _ := newTestProjectUsecase()

	title := "Demo"
	_, err := u.UpdateProject(context.Background(), bson.NewObjectID().Hex(), UpdateProjectParams{
		Title: &title,
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectUsecase_Update_NewImageRemovesOldAfterUpload(t *testing.T) {
	u, _, media := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{Title: "Demo", Image: pngUpload()})
	require.NoError(t, err)
	oldURL := created.ImageURL

	updated, err := u.UpdateProject(ctx, created.ID.Hex(), UpdateProjectParams{Image: pngUpload()})
	require.NoError(t, err)

	assert.Equal(t, 2, media.stores)
	assert.Equal(t, []string{oldURL}, media.removes)
	assert.NotEqual(t, oldURL, updated.ImageURL)
}

func TestProjectUsecase_Update_UploadFailureKeepsOldImage(t *testing.T) {
	u, _, media := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{Title: "Demo", Image: pngUpload()})
	require.NoError(t, err)

	media.storeErr = errors.New("object storage unavailable")

	_, err = u.UpdateProject(ctx, created.ID.Hex(), UpdateProjectParams{Image: pngUpload()})
	require.Error(t, err)

	// The old object was never deleted.
	assert.Empty(t, media.removes)

	current, err := u.GetProject(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ImageURL, current.ImageURL)
}

func TestProjectUsecase_Update_RemoveFailureDoesNotBlock(t *testing.T) {
	u, _, media := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{Title: "Demo", Image: pngUpload()})
	require.NoError(t, err)

	media.removeErr = errors.New("object already gone")

	updated, err := u.UpdateProject(ctx, created.ID.Hex(), UpdateProjectParams{Image: pngUpload()})
	require.NoError(t, err)
	assert.Len(t, media.removes, 1)
	assert.NotEqual(t, created.ImageURL, updated.ImageURL)
}

func TestProjectUsecase_Delete_RemovesImageExactlyOnce(t *testing.T) {
	u, _, media := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{Title: "Demo", Image: pngUpload()})
	require.NoError(t, err)

	require.NoError(t, u.DeleteProject(ctx, created.ID.Hex()))

	assert.Equal(t, []string{created.ImageURL}, media.removes)

	projects, err := u.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectUsecase_Delete_RemoveFailureStillDeletesRecord(t *testing.T) {
	u, _, media := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{Title: "Demo", Image: pngUpload()})
	require.NoError(t, err)

	media.removeErr = errors.New("object storage unavailable")

	require.NoError(t, u.DeleteProject(ctx, created.ID.Hex()))
	assert.Len(t, media.removes, 1)

	_, err = u.GetProject(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectUsecase_Delete_WithoutImageSkipsRemove(t *testing.T) {
	u, _, media := newTestProjectUsecase()
	ctx := context.Background()

	created, err := u.CreateProject(ctx, CreateProjectParams{Title: "Demo"})
	require.NoError(t, err)

	require.NoError(t, u.DeleteProject(ctx, created.ID.Hex()))
	assert.Empty(t, media.removes)
}

func TestProjectUsecase_Get_malformedID(t *testing.T) {
	u, repo, _ := newTestProjectUsecase()

	// The fake treats unknown ids as missing documents, same as the mongo
	// repository does for malformed hex.
	_, err := u.GetProject(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.Empty(t, repo.projects)
}
