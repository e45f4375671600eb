package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"ptoimport/internal/config"
	"ptoimport/internal/importer"
)

// Import accepts an uploaded workbook and streams import progress back
// as server-sent events.
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	uploadedFile := files[0]

	tempDir := os.TempDir()
	tempFilePath := filepath.Join(tempDir, fmt.Sprintf("ptoimport_%d_%s", time.Now().Unix(), filepath.Base(uploadedFile.Filename)))

	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save upload"})
		return
	}
	defer os.Remove(tempFilePath)

	if h.cfg != nil && h.cfg.Import.KeepUploads {
		h.archiveUpload(tempFilePath, uploadedFile.Filename)
	}

	dryRun := c.DefaultPostForm("dryRun", "false") == "true"

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	coordinator := importer.NewCoordinator(h.store)

	progressChan := coordinator.Import(importer.ImportOptions{
		FilePath: tempFilePath,
		DryRun:   dryRun,
	})

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE frame: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// archiveUpload copies the uploaded workbook into data/uploads. Archive
// failures never block the import.
func (h *Handler) archiveUpload(srcPath, originalName string) {
	dataDir, err := config.EnsureDataDir(h.cfg)
	if err != nil {
		log.Printf("archive upload: %v", err)
		return
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		log.Printf("archive upload: %v", err)
		return
	}

	dst := filepath.Join(dataDir, "uploads",
		fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), filepath.Base(originalName)))
	if err := os.WriteFile(dst, data, 0644); err != nil {
		log.Printf("archive upload: %v", err)
	}
}

// ListImports returns the import history.
// GET /api/imports
func (h *Handler) ListImports(c *gin.Context) {
	imports, err := h.store.ListImports()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imports": imports})
}
