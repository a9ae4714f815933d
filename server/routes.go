package server

import (
	"sort"
	"strings"
)

// System endpoint paths registered by RegisterDefaultEndpoints.
var systemPaths = map[string]bool{
	"/health":  true,
	"/info":    true,
	"/metrics": true,
	"/version": true,
	"/alive":   true,
	"/ready":   true,
}

func systemPathList() []string {
	paths := make([]string, 0, len(systemPaths))
	for p := range systemPaths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// RouteInfo describes a registered HTTP route.
type RouteInfo struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
	System  bool   `json:"system,omitempty"`
}

// Routes returns all registered routes, API routes first, with handler
// names cleaned up for display.
func (s *Server) Routes() []RouteInfo {
	ginRoutes := s.engine.Routes()

	sort.Slice(ginRoutes, func(i, j int) bool {
		iSys := systemPaths[ginRoutes[i].Path]
		jSys := systemPaths[ginRoutes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]RouteInfo, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, RouteInfo{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
			System:  systemPaths[r.Path],
		})
	}
	return routes
}

// LogRoutes writes one log line per registered route. Call after all
// routes are registered.
func (s *Server) LogRoutes() {
	for _, r := range s.Routes() {
		s.log.Info("Route registered", map[string]interface{}{
			"method":  r.Method,
			"path":    r.Path,
			"handler": r.Handler,
		})
	}
}

// formatHandlerName extracts a clean handler name from Gin's full
// handler path. Gin stores handlers like
// "github.com/skillsenselab/diascribe/api.(*Handler).Create-fm"; this
// extracts "Handler.Create".
func formatHandlerName(fullPath string) string {
	// Gin appends -fm to method values.
	name := strings.TrimSuffix(fullPath, "-fm")

	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	// "(*Handler).Create" -> "Handler.Create"
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	// Closures like "endpoint.Health.func1" reduce to the registering
	// function's name.
	if strings.Contains(name, ".func") {
		parts := strings.Split(name, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				name = strings.ToLower(parts[i])
				break
			}
		}
	}

	// Drop a leading package qualifier: "api.Handler.Create" -> "Handler.Create".
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 {
		hasUpper := false
		for _, c := range parts[0] {
			if c >= 'A' && c <= 'Z' {
				hasUpper = true
				break
			}
		}
		if !hasUpper && len(parts[1]) > 0 {
			name = parts[1]
		}
	}

	return name
}

// methodOrder returns a sort key for HTTP methods (GET first, DELETE last).
func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	default:
		return 5
	}
}
