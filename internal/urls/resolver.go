package urls

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
)

// Resolver builds public and admin URLs for blog records using a go-urlkit
// route manager. Route groups and parameter names come from the runtime
// configuration so hosts can remap paths without touching the services.
type Resolver struct {
	manager *urlkit.RouteManager

	publicGroup string
	adminGroup  string
	postRoute   string
	editRoute   string
	slugParam   string
	idParam     string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewResolver constructs a resolver from the routes configuration. When no
// explicit route config is supplied a default map serving /blog/:slug and
// /admin/posts/:id/edit is installed.
func NewResolver(cfg runtimeconfig.RoutesConfig) *Resolver {
	routeCfg := cfg.RouteConfig
	if routeCfg == nil {
		routeCfg = defaultRouteConfig(cfg)
	}

	return &Resolver{
		manager: urlkit.NewRouteManager(routeCfg),

		publicGroup: strings.TrimSpace(cfg.PublicGroup),
		adminGroup:  strings.TrimSpace(cfg.AdminGroup),
		postRoute:   strings.TrimSpace(cfg.PostRoute),
		editRoute:   strings.TrimSpace(cfg.EditRoute),
		slugParam:   strings.TrimSpace(cfg.SlugParam),
		idParam:     strings.TrimSpace(cfg.IDParam),

		groupCache: make(map[string]*urlkit.Group),
	}
}

func defaultRouteConfig(cfg runtimeconfig.RoutesConfig) *urlkit.Config {
	slugParam := strings.TrimSpace(cfg.SlugParam)
	if slugParam == "" {
		slugParam = "slug"
	}
	idParam := strings.TrimSpace(cfg.IDParam)
	if idParam == "" {
		idParam = "id"
	}

	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name: strings.TrimSpace(cfg.PublicGroup),
				Paths: map[string]string{
					strings.TrimSpace(cfg.PostRoute): "/blog/:" + slugParam,
				},
			},
			{
				Name: strings.TrimSpace(cfg.AdminGroup),
				Paths: map[string]string{
					strings.TrimSpace(cfg.EditRoute): "/admin/posts/:" + idParam + "/edit",
				},
			},
		},
	}
}

// PostURL returns the public reading URL for a post slug.
func (r *Resolver) PostURL(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("urls: slug is required")
	}

	builder, err := r.builderFor(r.publicGroup, r.postRoute)
	if err != nil {
		return "", err
	}
	return builder.WithParam(r.slugParam, slug).Build()
}

// PostURLWithFilter returns the public post URL carrying listing filter state
// as query parameters so readers can return to a filtered index.
func (r *Resolver) PostURLWithFilter(slug, query string, categoryID *uuid.UUID) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("urls: slug is required")
	}

	builder, err := r.builderFor(r.publicGroup, r.postRoute)
	if err != nil {
		return "", err
	}

	builder.WithParam(r.slugParam, slug)
	if q := strings.TrimSpace(query); q != "" {
		builder.WithQuery("q", q)
	}
	if categoryID != nil && *categoryID != uuid.Nil {
		builder.WithQuery("category", categoryID.String())
	}
	return builder.Build()
}

// EditURL returns the admin edit URL for a post ID.
func (r *Resolver) EditURL(id uuid.UUID) (string, error) {
	if id == uuid.Nil {
		return "", fmt.Errorf("urls: post id is required")
	}

	builder, err := r.builderFor(r.adminGroup, r.editRoute)
	if err != nil {
		return "", err
	}
	return builder.WithParam(r.idParam, id.String()).Build()
}

func (r *Resolver) builderFor(groupPath, route string) (*urlkit.Builder, error) {
	if r == nil || r.manager == nil {
		return nil, fmt.Errorf("urls: route manager not configured")
	}
	if groupPath == "" || route == "" {
		return nil, fmt.Errorf("urls: route group and name are required")
	}

	group, err := r.groupForPath(groupPath)
	if err != nil {
		return nil, err
	}
	return r.safeBuilder(group, route)
}

func (r *Resolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// safeBuilder converts the panic urlkit raises for unknown routes into an
// error. Named results keep the recovered error on the panic path.
func (r *Resolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("urls: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("urls: route %q not registered: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("urls: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("urls: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("urls: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, nil
}
