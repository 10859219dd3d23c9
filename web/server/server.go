package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/export"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Preview is the read-only view of a running render
type Preview interface {
	LatestImage() *image.RGBA
	Stats() renderer.Stats
}

// Server serves progress and the latest image of a render
type Server struct {
	port     int
	preview  Preview
	console  *Console
	sceneDir string
	echo     *echo.Echo
}

// NewServer creates a new web server. console and sceneDir are optional.
func NewServer(port int, preview Preview, console *Console, sceneDir string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		port:     port,
		preview:  preview,
		console:  console,
		sceneDir: sceneDir,
		echo:     e,
	}

	e.Use(corsMiddleware)
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/progress", s.handleProgress)
	e.GET("/api/image.png", s.handleImage)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/console", s.handleConsole)

	return s
}

// Handler returns the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleProgress(c echo.Context) error {
	return c.JSON(http.StatusOK, s.preview.Stats())
}

func (s *Server) handleImage(c echo.Context) error {
	img := s.preview.LatestImage()
	if img == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "no image rendered yet",
		})
	}

	var buf bytes.Buffer
	if err := export.EncodePNG(&buf, img); err != nil {
		log.Printf("Failed to encode preview: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to encode image",
		})
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListScenes(s.sceneDir)
	if err != nil {
		log.Printf("Failed to list scenes in %s: %v", s.sceneDir, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list scenes",
		})
	}
	return c.JSON(http.StatusOK, scenes)
}

func (s *Server) handleConsole(c echo.Context) error {
	if s.console == nil {
		return c.JSON(http.StatusOK, []ConsoleMessage{})
	}
	return c.JSON(http.StatusOK, s.console.Messages())
}
