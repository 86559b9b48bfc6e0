package item

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

// Routes returns the item route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{id}", handler.getItem)
	router.Post("/", handler.createItem)
	router.Put("/{id}", handler.updateItem)
	return router
}

// ManifestationRoutes returns the manifestation route group.
func (handler *Handler) ManifestationRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.createManifestation)
	return router
}

// ContainerRoutes returns the container route group.
func (handler *Handler) ContainerRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.ensureContainer)
	return router
}

func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	item, err := handler.service.GetItem(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Username == "" {
		input.Username = requestutil.Username(request)
	}

	item, err := handler.service.CreateItem(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	var input Update
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.Param(request, "id")
	if input.Username == "" {
		input.Username = requestutil.Username(request)
	}

	item, err := handler.service.UpdateItem(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) createManifestation(writer http.ResponseWriter, request *http.Request) {
	var input ManifestationInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Username == "" {
		input.Username = requestutil.Username(request)
	}

	manifestation, err := handler.service.CreateManifestation(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, manifestation)
}

func (handler *Handler) ensureContainer(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Barcode  string `json:"barcode"`
		Username string `json:"username"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Username == "" {
		input.Username = requestutil.Username(request)
	}

	container, err := handler.service.EnsureContainer(request.Context(), input.Barcode, input.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, container)
}
