package marc

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/arkiva/internal/platform/request"
	"github.com/taibuivan/arkiva/internal/platform/respond"
)

// Suggestion is the flattened form of a bibliographic record, shaped to
// prefill a title registration form.
type Suggestion struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
	Place     string `json:"place"`
	Language  string `json:"language"`
	ISSN      string `json:"issn"`
	StartYear string `json:"start_year"`
	EndYear   string `json:"end_year"`
}

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Routes returns the bibliography route group.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{id}", handler.getSuggestion)
	return router
}

func (handler *Handler) getSuggestion(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	record, err := handler.client.Lookup(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	start, end := record.Dates()
	respond.OK(writer, &Suggestion{
		ID:        id,
		Name:      record.Title(),
		Publisher: record.Publisher(),
		Place:     record.PlaceOfPublication(),
		Language:  record.Language(),
		ISSN:      record.ISSN(),
		StartYear: start,
		EndYear:   end,
	})
}
