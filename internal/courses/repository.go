package courses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/pagination"
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

type repo struct {
	db           *sql.DB
	logger       *slog.Logger
	pagination   pagination.Source
	siteCourseID int64
	courses      *listquery.Service[Course]
	contents     *listquery.Service[Content]
}

// New creates a course repository implementing the System interface.
// siteCourseID identifies the front page course, which is never listed.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Source, siteCourseID int64) System {
	return &repo{
		db:           db,
		logger:       logger.With("system", "courses"),
		pagination:   pagination,
		siteCourseID: siteCourseID,
		courses:      listquery.New(CourseSorter()),
		contents:     listquery.New(ContentSorter()),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Courses(
	ctx context.Context,
	req listquery.Requester,
	opts CourseOptions,
	q listquery.Query,
) (*listquery.Result[Course], error) {
	src := listquery.DataSource[Course]{
		Authorize: listquery.RequireCapability(lms.CapCourseView, lms.SystemPath),
		Fetch: func(ctx context.Context) ([]Course, error) {
			stmt, args := query.
				NewBuilder(courseProjection, defaultSort).
				WhereIn("id", query.Values(opts.IDs)).
				Where("c.id <> $%d", r.siteCourseID).
				Build()

			items, err := repository.QueryMany(ctx, r.db, stmt, args, scanCourse)
			if err != nil {
				return nil, fmt.Errorf("query courses: %w", err)
			}
			return items, nil
		},
	}

	return r.courses.Execute(ctx, src, req, q)
}

func (r *repo) Contents(
	ctx context.Context,
	req listquery.Requester,
	courseID int64,
	dates listquery.DateRange,
	q listquery.Query,
) (*listquery.Result[Content], error) {
	src := listquery.DataSource[Content]{
		Authorize: func(ctx context.Context, req listquery.Requester) error {
			course, err := lms.CourseContext(ctx, r.db, courseID, r.siteCourseID)
			if err != nil {
				return err
			}
			return listquery.RequireCapability(lms.CapCourseView, course.Path)(ctx, req)
		},
		Fetch: func(ctx context.Context) ([]Content, error) {
			return r.fetchContents(ctx, courseID, dates)
		},
		Filter: ContentFilter,
	}

	return r.contents.Execute(ctx, src, req, q)
}

func (r *repo) fetchContents(ctx context.Context, courseID int64, dates listquery.DateRange) ([]Content, error) {
	modules, err := lms.ListCourseModules(ctx, r.db, courseID, "")
	if err != nil {
		return nil, fmt.Errorf("query course modules: %w", repository.MapError(err, nil))
	}

	byType := make(map[string][]int64)
	kept := modules[:0]
	for _, cm := range modules {
		if !dates.Contains(cm.Added) {
			continue
		}
		kept = append(kept, cm)
		byType[cm.ModName] = append(byType[cm.ModName], cm.Instance)
	}

	names, err := r.instanceNames(ctx, byType)
	if err != nil {
		return nil, err
	}

	contents := make([]Content, len(kept))
	for i, cm := range kept {
		contents[i] = Content{
			ID:                 cm.ID,
			ModName:            cm.ModName,
			Name:               names[cm.ModName][cm.Instance],
			Instance:           cm.Instance,
			ModPlural:          ModPlural(cm.ModName),
			Section:            cm.SectionNum,
			Added:              cm.Added,
			CompletionExpected: cm.Completion > 0,
			module:             cm,
		}
	}
	return contents, nil
}

// instanceNames reads activity names from each module type's instance table.
// Module types without a readable table are logged and left unnamed.
func (r *repo) instanceNames(ctx context.Context, byType map[string][]int64) (map[string]map[int64]string, error) {
	types := make([]string, 0, len(byType))
	for modname := range byType {
		types = append(types, modname)
	}
	slices.Sort(types)

	names := make(map[string]map[int64]string, len(types))
	for _, modname := range types {
		if !moduleName.MatchString(modname) {
			r.logger.Warn("skipping module with unusable name", "modname", modname)
			continue
		}

		stmt, args := query.
			NewBuilder(instanceProjection(modname)).
			WhereIn("id", query.Values(byType[modname])).
			Build()

		rows, err := repository.QueryMany(ctx, r.db, stmt, args, scanInstanceName)
		if err != nil {
			err = repository.MapError(err, nil)
			if errors.Is(err, repository.ErrSchema) {
				r.logger.Warn("module instance table unavailable", "modname", modname, "error", err)
				continue
			}
			return nil, fmt.Errorf("query %s names: %w", modname, err)
		}

		names[modname] = make(map[int64]string, len(rows))
		for _, row := range rows {
			names[modname][row.id] = row.name
		}
	}
	return names, nil
}

func (r *repo) ModuleFromInstance(
	ctx context.Context,
	req listquery.Requester,
	modname string,
	instance int64,
) (*ModuleResult, error) {
	if !moduleName.MatchString(modname) {
		return nil, fmt.Errorf("%w: %q", ErrModuleName, modname)
	}

	cm, err := lms.FindCourseModule(ctx, r.db, modname, instance)
	if err != nil {
		return nil, err
	}

	authorize := listquery.RequireAny(cm.ContextPath, lms.CapCourseView, lms.CapManageActivities)
	if err := authorize(ctx, req); err != nil {
		return nil, err
	}
	if cm.HiddenFrom(req) {
		return nil, listquery.Forbidden(lms.CapViewHiddenActivities)
	}

	stmt, args := query.
		NewBuilder(instanceProjection(modname)).
		WhereEquals("id", instance).
		Build()

	name, err := repository.QueryOne(ctx, r.db, stmt, args, scanInstanceName)
	if err != nil {
		return nil, repository.MapError(err, listquery.NotFound(modname, instance))
	}

	full := req.Can(lms.CapManageActivities, cm.ContextPath)
	return &ModuleResult{
		CM:       newModule(cm, name.name, full),
		Warnings: []listquery.Warning{},
	}, nil
}
