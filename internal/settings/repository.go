package settings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var levels = []int{
	lms.LevelSystem, lms.LevelUser, lms.LevelCategory,
	lms.LevelCourse, lms.LevelModule, lms.LevelBlock,
}

const settingsSQL = `
	SELECT name, value
	FROM mdl_config_plugins
	WHERE plugin = $1`

type repo struct {
	db           *sql.DB
	logger       *slog.Logger
	pagination   pagination.Config
	siteCourseID int64
	release      string
}

// New creates the settings system. base is the configured pagination that
// maxrecordsperpage overrides.
func New(
	db *sql.DB,
	logger *slog.Logger,
	base pagination.Config,
	siteCourseID int64,
	release string,
) System {
	return &repo{
		db:           db,
		logger:       logger.With("system", "settings"),
		pagination:   base,
		siteCourseID: siteCourseID,
		release:      release,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Load(ctx context.Context) (Settings, error) {
	s := Defaults()

	type pair struct{ name, value string }
	pairs, err := repository.QueryMany(ctx, r.db, settingsSQL, []any{Plugin}, func(sc repository.Scanner) (pair, error) {
		var p pair
		err := sc.Scan(&p.name, &p.value)
		return p, err
	})
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	for _, p := range pairs {
		s.set(p.name, p.value)
	}
	return s, nil
}

// Pagination applies maxrecordsperpage to the configured defaults. A failed
// lookup falls back to the configuration.
func (r *repo) Pagination(ctx context.Context) pagination.Config {
	s, err := r.Load(ctx)
	if err != nil {
		r.logger.Warn("using configured pagination", "error", err)
		return r.pagination
	}
	return r.pagination.WithDefault(s.MaxRecordsPerPage)
}

func (r *repo) Links(ctx context.Context, req *access.Requester, t Target) (*Links, error) {
	if !slices.Contains(levels, t.Level) {
		return nil, fmt.Errorf("%w: %d", ErrContextLevel, t.Level)
	}

	s, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	path := ""
	if t.Level == lms.LevelSystem {
		path = lms.SystemPath
	} else if t.InstanceID > 0 {
		c, err := lms.FindContext(ctx, r.db, t.Level, t.InstanceID)
		if err != nil {
			return nil, err
		}
		path = c.Path
		if t.Level == lms.LevelCourse && t.InstanceID == r.siteCourseID {
			t.SiteHome = true
		}
	}

	links := &Links{
		Scope: ScopeFor(t.Level, t.SiteHome),
		Admin: req.Admin(),
	}

	if links.DropoutDetective, err = r.product(req, links, s.DropoutDetectiveLinks, lms.CapViewDropoutDetective, path); err != nil {
		return nil, err
	}
	if links.InstructorInsight, err = r.product(req, links, s.InstructorInsightLinks, lms.CapViewInstructorInsight, path); err != nil {
		return nil, err
	}

	links.CourseSettings = s.ShowCourseSettings && links.Scope == CourseScope
	if path != "" {
		links.CourseSettings = links.CourseSettings && req.Can(lms.CapCourseUpdate, path)
	}

	return links, nil
}

func (r *repo) product(req *access.Requester, l *Links, mode LinkMode, capability, path string) (bool, error) {
	visible, err := Visible(l.Scope, l.Admin, mode)
	if err != nil || !visible {
		return false, err
	}
	if path != "" {
		return req.Can(capability, path), nil
	}
	return true, nil
}

func (r *repo) PluginInfo(ctx context.Context, req *access.Requester) (*PluginInfo, error) {
	if err := listquery.RequireCapability(lms.CapSiteConfigView, lms.SystemPath)(ctx, req); err != nil {
		return nil, err
	}

	s, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	info := &PluginInfo{
		Release:  r.release,
		Version:  s.Version,
		Warnings: []listquery.Warning{},
	}
	if info.Release == "" {
		info.Release = s.Version
	}
	return info, nil
}

// ParseTarget reads contextlevel, instanceid and sitehome.
func ParseTarget(level, instance, siteHome string) (Target, error) {
	var t Target
	var err error

	t.Level = lms.LevelSystem
	if level != "" {
		if t.Level, err = strconv.Atoi(level); err != nil {
			return Target{}, listquery.Invalid("contextlevel", level)
		}
	}
	if instance != "" {
		if t.InstanceID, err = strconv.ParseInt(instance, 10, 64); err != nil {
			return Target{}, listquery.Invalid("instanceid", instance)
		}
	}
	if siteHome != "" {
		if t.SiteHome, err = strconv.ParseBool(siteHome); err != nil {
			return Target{}, listquery.Invalid("sitehome", siteHome)
		}
	}
	return t, nil
}
