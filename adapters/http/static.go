package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// files the server reads from its working directory and never serves
var privateFiles = map[string]struct{}{
	"config.yaml": {},
	"config.yml":  {},
	"go.mod":      {},
	"go.sum":      {},
}

// StaticHandler serves the browser front end from a directory on disk.
type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) *StaticHandler {
	if root == "" {
		root = "."
	}
	return &StaticHandler{root: root}
}

func (h *StaticHandler) Index(c *gin.Context) {
	c.File(filepath.Join(h.root, indexFile))
}

// Asset is installed as the NoRoute handler. Anything that is not a regular
// file under root falls through to gin's default 404.
func (h *StaticHandler) Asset(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return
	}

	// Clean against "/" so ".." can never climb above root.
	rel := path.Clean("/" + c.Request.URL.Path)
	if isPrivate(rel) {
		return
	}
	full := filepath.Join(h.root, filepath.FromSlash(rel))

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	c.File(full)
}

// isPrivate reports whether rel names a dot-file, anything under a dot-directory,
// or a server config file.
func isPrivate(rel string) bool {
	for _, seg := range strings.Split(strings.TrimPrefix(rel, "/"), "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	_, ok := privateFiles[strings.ToLower(path.Base(rel))]
	return ok
}
