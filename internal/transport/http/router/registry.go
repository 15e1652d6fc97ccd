package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule mounts its endpoints under /api.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// RootModule mounts endpoints directly on the engine.
type RootModule interface{ MountRoot(gin.IRouter) }

// Modules may implement prioritizer to control mount order (lower first,
// default 100).
type prioritizer interface{ Priority() int }

type Registry struct {
	apiMods  []APIModule
	rootMods []RootModule
}

// Register sorts mod into the API and/or root lists by the interfaces it
// implements.
func (r *Registry) Register(mods ...any) {
	for _, mod := range mods {
		if m, ok := mod.(APIModule); ok {
			r.apiMods = append(r.apiMods, m)
		}
		if m, ok := mod.(RootModule); ok {
			r.rootMods = append(r.rootMods, m)
		}
	}
}

func (r *Registry) MountRoot(e gin.IRouter) {
	mods := append([]RootModule(nil), r.rootMods...)
	sort.SliceStable(mods, func(i, j int) bool { return priorityOf(mods[i]) < priorityOf(mods[j]) })
	for _, m := range mods {
		m.MountRoot(e)
	}
}

func (r *Registry) MountAPI(api *gin.RouterGroup) {
	mods := append([]APIModule(nil), r.apiMods...)
	sort.SliceStable(mods, func(i, j int) bool { return priorityOf(mods[i]) < priorityOf(mods[j]) })
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
