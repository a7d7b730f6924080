package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_planner/internal/planner"
)

// UploadController manages the stored route files and the import path.
type UploadController struct {
	planner *planner.Planner
}

func NewUploadController(p *planner.Planner) *UploadController {
	return &UploadController{planner: p}
}

// UploadFile reads a multipart "file" field and stores it for import. The
// read completes before the planner is touched, so a slow upload never holds
// the state lock.
func (ctl *UploadController) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("UploadFile: open failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read file"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		logrus.WithError(err).Error("UploadFile: read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read file"})
		return
	}

	stored, err := ctl.planner.AddUpload(fileHeader.Filename, fileHeader.Size, content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"file": stored})
}

// ListUploads returns the stored files, oldest first.
func (ctl *UploadController) ListUploads(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"files": ctl.planner.Uploads()})
}

// DeleteUpload removes a stored file. Idempotent.
func (ctl *UploadController) DeleteUpload(c *gin.Context) {
	ctl.planner.DeleteUpload(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

// ImportUpload parses a stored file into a new route. A file yielding zero
// waypoints still imports as an empty route; the file itself is kept.
func (ctl *UploadController) ImportUpload(c *gin.Context) {
	route, err := ctl.planner.ImportUpload(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}
