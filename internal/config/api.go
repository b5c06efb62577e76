package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/aspiredu/pkg/middleware"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
)

const (
	EnvAPIBasePath     = "ASPIREDU_API_BASE_PATH"
	EnvAPISiteCourseID = "ASPIREDU_API_SITE_COURSE_ID"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "ASPIREDU_CORS_ENABLED",
	Origins:          "ASPIREDU_CORS_ORIGINS",
	AllowedMethods:   "ASPIREDU_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "ASPIREDU_CORS_ALLOWED_HEADERS",
	AllowCredentials: "ASPIREDU_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "ASPIREDU_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "ASPIREDU_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "ASPIREDU_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath string `toml:"base_path"`
	// SiteCourseID is the id of the LMS front page course.
	SiteCourseID int64                 `toml:"site_course_id"`
	CORS         middleware.CORSConfig `toml:"cors"`
	Pagination   pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.SiteCourseID < 1 {
		return fmt.Errorf("invalid site_course_id: %d", c.SiteCourseID)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.SiteCourseID != 0 {
		c.SiteCourseID = overlay.SiteCourseID
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.SiteCourseID == 0 {
		c.SiteCourseID = 1
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPISiteCourseID); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.SiteCourseID = id
		}
	}
}
