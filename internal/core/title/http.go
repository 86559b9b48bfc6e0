package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/arkiva/internal/platform/request"
	"github.com/taibuivan/arkiva/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the title route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.searchTitles)
	router.Post("/", handler.createTitle)
	router.Get("/{id}", handler.getTitle)
	return router
}

func (handler *Handler) searchTitles(writer http.ResponseWriter, request *http.Request) {
	name := request.URL.Query().Get("name")

	titles, err := handler.service.SearchTitles(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, titles)
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	title, err := handler.service.GetTitle(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, title)
}

func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Username == "" {
		input.Username = requestutil.Username(request)
	}

	title, err := handler.service.CreateTitle(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, title)
}
