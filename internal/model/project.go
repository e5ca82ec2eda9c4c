package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Project is a portfolio gallery entry. ImageURL, when non-empty, points
// at an object in external media storage owned by this record.
type Project struct {
	ID           bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Title        string        `bson:"title"          json:"title"`
	Description  string        `bson:"description"    json:"description"`
	TechStack    []string      `bson:"tech_stack"     json:"techStack"`
	GithubRepo   string        `bson:"github_repo"    json:"githubRepo"`
	DeployLink   string        `bson:"deploy_link"    json:"deployLink"`
	DemoVideoURL string        `bson:"demo_video_url" json:"demoVideoUrl"`
	ImageURL     string        `bson:"image_url"      json:"imageUrl"`
	CreatedAt    time.Time     `bson:"created_at"     json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"     json:"updatedAt"`
}
