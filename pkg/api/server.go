// Package api provides the REST API server for the drum part splitter
package api

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/mapping"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/smf"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/splitter"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Drum Part Splitter API
// @version 1.0
// @description API for splitting drum MIDI files into per-part files
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/split", handleSplit)
		v1.GET("/mapping/default", handleDefaultMapping)
		v1.POST("/mapping/validate", handleValidateMapping)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "drum-part-splitter",
	})
}

// handleDefaultMapping godoc
// @Summary Export the default mapping template
// @Description Returns the built-in mapping as a YAML document
// @Tags mapping
// @Produce plain
// @Success 200 {string} string
// @Router /api/v1/mapping/default [get]
func handleDefaultMapping(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=drum-mapping.yaml")
	c.Data(http.StatusOK, "application/x-yaml", []byte(mapping.DefaultDocument))
}

// handleValidateMapping godoc
// @Summary Validate a mapping document
// @Description Upload a YAML mapping and receive the resolved part table or an error
// @Tags mapping
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "YAML mapping to validate"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/v1/mapping/validate [post]
func handleValidateMapping(c *gin.Context) {
	data, _, ok := readUpload(c, "file")
	if !ok {
		return
	}
	m, err := mapping.Load(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	parts := make([]gin.H, 0, len(m.Parts))
	for _, p := range m.Parts {
		parts = append(parts, gin.H{"name": p.Name, "notes": p.Notes})
	}
	c.JSON(http.StatusOK, gin.H{"parts": parts})
}

// handleSplit godoc
// @Summary Split a drum MIDI file into parts
// @Description Upload a MIDI file (and optionally a YAML mapping) and receive a zip with one MIDI file per non-empty part
// @Tags split
// @Accept multipart/form-data
// @Produce application/zip
// @Param file formData file true "MIDI file to split"
// @Param mapping formData file false "Custom YAML mapping (defaults to the built-in mapping)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/split [post]
func handleSplit(c *gin.Context) {
	data, filename, ok := readUpload(c, "file")
	if !ok {
		return
	}

	m := mapping.Default()
	mapData, _, err := readOptionalUpload(c, "mapping")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if mapData != nil {
		m, err = mapping.Load(mapData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	src, err := smf.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if base == "" {
		base = "split"
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	written := 0
	for _, part := range splitter.Split(src, m) {
		if part.NoteCount == 0 {
			continue
		}
		partData, err := part.File.Encode()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		w, err := zw.Create(fmt.Sprintf("%s-%s.mid", base, strings.ToLower(part.Name)))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if _, err := w.Write(partData); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		written++
	}
	if err := zw.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if written == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no part matched any note in the file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-parts.zip", base))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func readUpload(c *gin.Context, field string) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return nil, "", false
	}
	return data, header.Filename, true
}

// readOptionalUpload returns nil data without error when the field is
// absent.
func readOptionalUpload(c *gin.Context, field string) ([]byte, string, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	return data, header.Filename, nil
}
