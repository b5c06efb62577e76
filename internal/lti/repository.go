package lti

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JaimeStill/aspiredu/internal/access"
	"github.com/JaimeStill/aspiredu/internal/config"
	"github.com/JaimeStill/aspiredu/internal/lms"
	"github.com/JaimeStill/aspiredu/pkg/listquery"
	"github.com/JaimeStill/aspiredu/pkg/repository"
	"github.com/JaimeStill/aspiredu/pkg/web"
)

const courseSQL = `SELECT shortname, fullname FROM mdl_course WHERE id = $1`

const userSQL = `SELECT firstname, lastname, email FROM mdl_user WHERE id = $1`

type repo struct {
	db           *sql.DB
	logger       *slog.Logger
	settings     SettingsLoader
	users        Resolver
	cfg          *config.LTIConfig
	keys         *Keys
	siteCourseID int64
	pages        *web.TemplateSet
	validate     *validator.Validate
	now          func() time.Time
}

// New creates the LTI launch system. Product URLs are read from the plugin
// settings first and fall back to cfg.
func New(
	db *sql.DB,
	logger *slog.Logger,
	settings SettingsLoader,
	users Resolver,
	cfg *config.LTIConfig,
	keys *Keys,
	siteCourseID int64,
) (System, error) {
	pages, err := newPages()
	if err != nil {
		return nil, fmt.Errorf("parse lti templates: %w", err)
	}

	return &repo{
		db:           db,
		logger:       logger.With("system", "lti"),
		settings:     settings,
		users:        users,
		cfg:          cfg,
		keys:         keys,
		siteCourseID: siteCourseID,
		pages:        pages,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		now:          time.Now,
	}, nil
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pages)
}

func (r *repo) JWKS() jose.JSONWebKeySet {
	return r.keys.JWKS()
}

func (r *repo) Launch(ctx context.Context, req listquery.Requester, launch LaunchRequest) (*url.URL, error) {
	product, err := LookupProduct(launch.Product)
	if err != nil {
		return nil, err
	}

	course, err := lms.CourseContext(ctx, r.db, launch.CourseID, r.siteCourseID)
	if err != nil {
		return nil, err
	}
	if err := listquery.RequireCapability(product.Capability, course.Path)(ctx, req); err != nil {
		return nil, err
	}

	target, err := r.productURL(ctx, product)
	if err != nil {
		return nil, err
	}

	now := r.now()
	user := strconv.FormatInt(req.UserID(), 10)
	hint, err := r.keys.Sign(hintClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    r.cfg.Issuer,
			Subject:   user,
			Audience:  jwt.ClaimStrings{r.cfg.ClientID},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.cfg.TokenTTLDuration())),
			ID:        uuid.NewString(),
		},
		Course:  launch.CourseID,
		Product: product.Code,
		Target:  target,
	})
	if err != nil {
		return nil, fmt.Errorf("sign message hint: %w", err)
	}

	login, err := url.Parse(r.cfg.LoginURL)
	if err != nil {
		return nil, fmt.Errorf("parse login url: %w", err)
	}
	q := login.Query()
	q.Set("iss", r.cfg.Issuer)
	q.Set("login_hint", user)
	q.Set("target_link_uri", target)
	q.Set("lti_message_hint", hint)
	q.Set("client_id", r.cfg.ClientID)
	q.Set("lti_deployment_id", r.cfg.DeploymentID)
	login.RawQuery = q.Encode()

	r.logger.Info("launch initiated", "user", user, "course", launch.CourseID, "product", product.Code)
	return login, nil
}

func (r *repo) productURL(ctx context.Context, product Product) (string, error) {
	s, err := r.settings.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}

	target, _ := s.Product(product.Code)
	if target == "" {
		switch product.Code {
		case "dd":
			target = r.cfg.DropoutDetectiveURL
		case "ii":
			target = r.cfg.InstructorInsightURL
		}
	}
	if target == "" {
		return "", fmt.Errorf("%w: %s", ErrProductURL, product.Name)
	}
	return target, nil
}

func (r *repo) Authorize(ctx context.Context, req AuthRequest) (*FormPost, error) {
	if err := r.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.ClientID != r.cfg.ClientID {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorizedClient, req.ClientID)
	}
	if !slices.Contains(r.cfg.RedirectURIs, req.RedirectURI) {
		return nil, fmt.Errorf("%w: %s", ErrRedirectURI, req.RedirectURI)
	}

	var hint hintClaims
	err := r.keys.Parse(req.MessageHint, &hint,
		jwt.WithIssuer(r.cfg.Issuer),
		jwt.WithAudience(r.cfg.ClientID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHint, err)
	}
	if hint.Subject != req.LoginHint {
		return nil, ErrLoginHint
	}

	product, err := LookupProduct(hint.Product)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHint, err)
	}

	user, err := r.users.Resolve(ctx, "id", hint.Subject)
	if err != nil {
		return nil, err
	}

	claims, err := r.launchClaims(ctx, user, hint, product, req.Nonce)
	if err != nil {
		return nil, err
	}

	token, err := r.keys.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("sign id token: %w", err)
	}

	return &FormPost{
		Action: req.RedirectURI,
		Fields: []Field{
			{Name: "id_token", Value: token},
			{Name: "state", Value: req.State},
		},
	}, nil
}

type launchData struct {
	course    lms.Context
	shortName string
	fullName  string
	firstName string
	lastName  string
	email     string
}

func (r *repo) launchClaims(ctx context.Context, user *access.Requester, hint hintClaims, product Product, nonce string) (*LaunchClaims, error) {
	data, err := repository.WithSnapshot(ctx, r.db, func(tx *sql.Tx) (launchData, error) {
		var d launchData
		var err error

		if d.course, err = lms.CourseContext(ctx, tx, hint.Course, r.siteCourseID); err != nil {
			return d, err
		}
		if err := tx.QueryRowContext(ctx, courseSQL, hint.Course).Scan(&d.shortName, &d.fullName); err != nil {
			return d, repository.MapError(err, listquery.NotFound("course", hint.Course))
		}
		if err := tx.QueryRowContext(ctx, userSQL, user.UserID()).Scan(&d.firstName, &d.lastName, &d.email); err != nil {
			return d, repository.MapError(err, listquery.NotFound("user", user.UserID()))
		}
		return d, nil
	})
	if err != nil {
		return nil, err
	}

	now := r.now()
	course := strconv.FormatInt(hint.Course, 10)

	return &LaunchClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    r.cfg.Issuer,
			Subject:   hint.Subject,
			Audience:  jwt.ClaimStrings{r.cfg.ClientID},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.cfg.TokenTTLDuration())),
			ID:        uuid.NewString(),
		},
		Nonce:           nonce,
		AuthorizedParty: r.cfg.ClientID,
		Name:            strings.TrimSpace(data.firstName + " " + data.lastName),
		GivenName:       data.firstName,
		FamilyName:      data.lastName,
		Email:           data.email,
		MessageType:     MessageTypeResourceLink,
		Version:         config.LTIVersion,
		DeploymentID:    r.cfg.DeploymentID,
		TargetLinkURI:   hint.Target,
		ResourceLink: ResourceLink{
			ID:    product.Code + "-" + course,
			Title: product.Name,
		},
		Context: CourseContext{
			ID:    course,
			Label: data.shortName,
			Title: data.fullName,
			Type:  []string{ContextTypeCourse},
		},
		Roles: roles(user, data.course.Path),
		ToolPlatform: Platform{
			GUID:              r.cfg.Issuer,
			ProductFamilyCode: "moodle",
		},
		Custom: map[string]string{"product": product.Code},
	}, nil
}

// roles maps the user's standing in the course to LIS roles. Site admins
// also carry the administrator roles.
func roles(user *access.Requester, coursePath string) []string {
	var out []string
	if user.SiteAdmin() {
		out = append(out, RoleInstitutionAdmin, RoleSystemAdmin)
	}
	if user.Can(lms.CapCourseUpdate, coursePath) {
		return append(out, RoleInstructor)
	}
	return append(out, RoleLearner)
}
