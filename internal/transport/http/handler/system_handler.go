package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	maxCollections = 10
	maxErrRunes    = 50
)

// Prober is the slice of the store the diagnostics endpoint needs.
type Prober interface {
	CollectionNames(ctx context.Context) ([]string, error)
}

// DiagSettings mirrors the two deployment variables reported by /test.
type DiagSettings struct {
	DatabaseURLSet bool
	DatabaseName   string
}

type SystemHandler struct {
	name     string
	store    Prober
	settings DiagSettings
	log      *zap.Logger
}

// NewSystemHandler serves the liveness and diagnostics endpoints. store may
// be nil when no database was initialised.
func NewSystemHandler(name string, store Prober, s DiagSettings, l *zap.Logger) *SystemHandler {
	return &SystemHandler{name: name, store: store, settings: s, log: l}
}

type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

func (h *SystemHandler) MountRoot(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": h.name, "status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, h.Diagnose(c.Request.Context()))
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Diagnose never fails: every error ends up, truncated, in the Database field.
func (h *SystemHandler) Diagnose(ctx context.Context) (d Diagnostics) {
	d = Diagnostics{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("diagnostics panicked", zap.Any("panic", rec))
			d.Database = "❌ Error: " + truncate(fmt.Sprint(rec))
		}
	}()

	if h.store == nil {
		d.Database = "⚠️  Available but not initialized"
		return d
	}

	urlState := "❌ Not Set"
	if h.settings.DatabaseURLSet {
		urlState = "✅ Set"
	}
	name := h.settings.DatabaseName
	d.Database = "✅ Available"
	d.DatabaseURL = &urlState
	d.DatabaseName = &name
	d.ConnectionStatus = "Connected"

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	names, err := h.store.CollectionNames(ctx)
	if err != nil {
		h.log.Warn("diagnostics: list collections failed", zap.Error(err))
		d.Database = "⚠️  Connected but Error: " + truncate(err.Error())
		return d
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	if names != nil {
		d.Collections = names
	}
	d.Database = "✅ Connected & Working"
	return d
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxErrRunes {
		return string(r[:maxErrRunes])
	}
	return s
}
