package box

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/arkiva/internal/platform/request"
	"github.com/taibuivan/arkiva/internal/platform/respond"
	"github.com/taibuivan/arkiva/pkg/convert"
	"github.com/taibuivan/arkiva/pkg/pagination"
	"github.com/taibuivan/arkiva/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the box route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listBoxes)
	router.Post("/", handler.createBox)
	router.Get("/{id}", handler.getBox)
	router.Post("/{id}/activate", handler.activateBox)
	return router
}

func (handler *Handler) listBoxes(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		TitleID: request.URL.Query().Get("title_id"),
		Year:    convert.ToInt(request.URL.Query().Get("year")),
	}
	switch request.URL.Query().Get("active") {
	case "true":
		filter.Active = pointer.To(true)
	case "false":
		filter.Active = pointer.To(false)
	}

	boxes, total, err := handler.service.ListBoxes(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, boxes, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getBox(writer http.ResponseWriter, request *http.Request) {
	box, err := handler.service.GetBox(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, box)
}

func (handler *Handler) createBox(writer http.ResponseWriter, request *http.Request) {
	var box Box
	if err := requestutil.DecodeJSON(request, &box); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateBox(request.Context(), &box)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) activateBox(writer http.ResponseWriter, request *http.Request) {
	box, err := handler.service.ActivateBox(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, box)
}
