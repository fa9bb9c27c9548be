package controllers

import (
	"context"
	"log"
	"lost-found/constants"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type IPageController interface {
	Health(ctx *gin.Context)
	Home(ctx *gin.Context)
	Login(ctx *gin.Context)
	NotFound(ctx *gin.Context)
}

// PageController serves the health check and the front end files in
// publicDir.
type PageController struct {
	db        Pinger
	publicDir string
}

func NewPageController(db Pinger, publicDir string) IPageController {
	return &PageController{db: db, publicDir: publicDir}
}

func (c *PageController) Health(ctx *gin.Context) {
	if err := c.db.Ping(ctx.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *PageController) Home(ctx *gin.Context) {
	c.serve(ctx, "index.html")
}

func (c *PageController) Login(ctx *gin.Context) {
	c.serve(ctx, "login.html")
}

// NotFound answers unknown API paths with JSON and everything else from the
// public directory.
func (c *PageController) NotFound(ctx *gin.Context) {
	if strings.HasPrefix(ctx.Request.URL.Path, constants.APIPathPrefix) {
		ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": constants.ErrRouteNotFound})
		return
	}
	if ctx.Request.Method != http.MethodGet && ctx.Request.Method != http.MethodHead {
		ctx.Status(http.StatusNotFound)
		return
	}
	c.serve(ctx, ctx.Request.URL.Path)
}

func (c *PageController) serve(ctx *gin.Context, name string) {
	// path.Clean on a rooted path drops any ".." segments.
	file := filepath.Join(c.publicDir, filepath.FromSlash(path.Clean("/"+name)))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.File(file)
}
