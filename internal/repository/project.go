package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jefta/portfolio-api/internal/model"
	"github.com/jefta/portfolio-api/shared/mongodb"
)

// ProjectRepository defines the interface for project-related database
// operations.
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *model.Project) (*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	UpdateProject(ctx context.Context, id string, params UpdateProjectParams) (*model.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// UpdateProjectParams defines the optional parameters for updating a
// project. Only the fields that are not nil will be updated.
type UpdateProjectParams struct {
	Title        *string
	Description  *string
	TechStack    *[]string
	GithubRepo   *string
	DeployLink   *string
	DemoVideoURL *string
	ImageURL     *string
}

const projectCollection = "projects"

type projectMongoRepository struct {
	manager *mongodb.Manager
}

// NewProjectMongoRepository creates a project repository backed by the
// document store. The connection is established lazily on first use.
func NewProjectMongoRepository(manager *mongodb.Manager) ProjectRepository {
	return &projectMongoRepository{manager: manager}
}

func (r *projectMongoRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.manager.Database(ctx)
	if err != nil {
		return nil, err
	}

	return db.Collection(projectCollection), nil
}

// objectIDFromHex reads malformed ids as not-found: a gallery id that
// cannot exist in the store matches no document.
func objectIDFromHex(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, mongo.ErrNoDocuments
	}

	return objectID, nil
}

func (r *projectMongoRepository) CreateProject(ctx context.Context, project *model.Project) (*model.Project, error) {
	collection, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	if project.TechStack == nil {
		project.TechStack = []string{}
	}

	result, err := collection.InsertOne(ctx, project)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		project.ID = objectID
	}

	return project, nil
}

func (r *projectMongoRepository) GetProject(ctx context.Context, id string) (*model.Project, error) {
	collection, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := collection.FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var project model.Project
	if err := result.Decode(&project); err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *projectMongoRepository) ListProjects(ctx context.Context) ([]*model.Project, error) {
	collection, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []*model.Project{}
	for cursor.Next(ctx) {
		var project model.Project
		if err := cursor.Decode(&project); err != nil {
			return nil, err
		}
		projects = append(projects, &project)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *projectMongoRepository) UpdateProject(
	ctx context.Context,
	id string,
	params UpdateProjectParams,
) (*model.Project, error) {
	collection, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.TechStack != nil {
		updateMap["tech_stack"] = *params.TechStack
	}
	if params.GithubRepo != nil {
		updateMap["github_repo"] = *params.GithubRepo
	}
	if params.DeployLink != nil {
		updateMap["deploy_link"] = *params.DeployLink
	}
	if params.DemoVideoURL != nil {
		updateMap["demo_video_url"] = *params.DemoVideoURL
	}
	if params.ImageURL != nil {
		updateMap["image_url"] = *params.ImageURL
	}

	updateMap["updated_at"] = time.Now()

	result := collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var project model.Project
	if err := result.Decode(&project); err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *projectMongoRepository) DeleteProject(ctx context.Context, id string) error {
	collection, err := r.collection(ctx)
	if err != nil {
		return err
	}

	objectID, err := objectIDFromHex(id)
	if err != nil {
		return err
	}

	result := collection.FindOneAndDelete(ctx, bson.M{"_id": objectID})

	return result.Err()
}
