package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/content"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
)

type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

func (h *ContentHandler) Treatments(c *gin.Context) {
	httpresp.List(c, content.Treatments())
}

func (h *ContentHandler) Testimonials(c *gin.Context) {
	httpresp.List(c, content.Testimonials())
}

func (h *ContentHandler) AnatomySystems(c *gin.Context) {
	httpresp.List(c, content.AnatomySystems())
}

func (h *ContentHandler) AnatomySystem(c *gin.Context) {
	system, ok := content.AnatomySystemByID(c.Param("id"))
	if !ok {
		httperr.Respond(c, httperr.ErrBusiness("system_not_found"))
		return
	}
	httpresp.OK(c, system)
}
