package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ShellHandler serves the minimal application shell for guarded pages. The
// actual page content is rendered client-side; reaching this handler at all
// means the route guard let the request through.
type ShellHandler struct{}

func NewShellHandler() *ShellHandler {
	return &ShellHandler{}
}

func (h *ShellHandler) Serve(c echo.Context) error {
	return c.HTML(http.StatusOK,
		`<!doctype html><html><head><title>Signalist</title></head><body><div id="root"></div></body></html>`)
}
