package contact

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

// Routes returns the contact route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.listContacts)
	router.Post("/", handler.createContact)
	router.Get("/{id}", handler.getContact)
	router.Put("/{id}", handler.updateContact)
	router.Delete("/{id}", handler.deleteContact)
	return router
}

func (handler *Handler) listContacts(writer http.ResponseWriter, request *http.Request) {
	contacts, err := handler.service.ListContacts(request.Context(), request.URL.Query().Get("title_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, contacts)
}

func (handler *Handler) getContact(writer http.ResponseWriter, request *http.Request) {
	contact, err := handler.service.GetContact(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, contact)
}

func (handler *Handler) createContact(writer http.ResponseWriter, request *http.Request) {
	var contact Contact
	if err := requestutil.DecodeJSON(request, &contact); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateContact(request.Context(), &contact)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateContact(writer http.ResponseWriter, request *http.Request) {
	var contact Contact
	if err := requestutil.DecodeJSON(request, &contact); err != nil {
		respond.Error(writer, request, err)
		return
	}
	contact.ID = requestutil.Param(request, "id")

	updated, err := handler.service.UpdateContact(request.Context(), &contact)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteContact(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteContact(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
