package routes

import (
	"github.com/gin-gonic/gin"

	"trip_planner/internal/controllers"
)

func UploadRoutes(api *gin.RouterGroup, ctl *controllers.UploadController) {
	uploads := api.Group("/uploads")
	{
		uploads.POST("", ctl.UploadFile)
		uploads.GET("", ctl.ListUploads)
		uploads.DELETE("/:id", ctl.DeleteUpload)
		uploads.POST("/:id/import", ctl.ImportUpload)
	}
}
