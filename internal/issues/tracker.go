// Package issues is the optional issue-tracker integration. Nothing else in
// the module depends on it being configured or available.
package issues

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrUnavailable is returned by trackers that cannot create issues.
var ErrUnavailable = errors.New("issue tracker integration is not available")

// Config holds the connection settings of a Jira-style tracker.
type Config struct {
	Host     string `json:"host" validate:"required,url"`
	Email    string `json:"email" validate:"required,email"`
	APIToken string `json:"apiToken" validate:"required"`
	Project  string `json:"project" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every field is present and well-formed.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Issue is a created tracker issue.
type Issue struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Tracker creates issues from comments.
type Tracker interface {
	Available(ctx context.Context) bool
	TestConnection(ctx context.Context, cfg Config) (bool, error)
	CreateIssue(ctx context.Context, cfg Config, summary, description string) (*Issue, error)
}

// Disabled is the tracker used when no client library is wired in.
type Disabled struct{}

var _ Tracker = Disabled{}

// Available always reports false.
func (Disabled) Available(context.Context) bool { return false }

// TestConnection validates cfg and then reports that no connection exists.
func (Disabled) TestConnection(_ context.Context, cfg Config) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	return false, nil
}

// CreateIssue always fails with ErrUnavailable.
func (Disabled) CreateIssue(context.Context, Config, string, string) (*Issue, error) {
	return nil, ErrUnavailable
}
