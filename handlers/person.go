package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/personsbackend/apperrors"
	"github.com/camden-git/personsbackend/models"
	"github.com/camden-git/personsbackend/repository"
)

const maxRequestBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

type PersonHandler struct {
	Repo repository.PersonRepositoryInterface
}

// Routes mounts the person endpoints on r.
func (ph *PersonHandler) Routes(r chi.Router) {
	r.Get("/", ph.ListPersons)
	r.Post("/", ph.CreatePerson)
	r.Get("/color/{color}", ph.ListPersonsByColor)
	r.Get("/{person_id}", ph.GetPerson)
}

func (ph *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	people, err := ph.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewPersonResponses(people))
}

func (ph *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "person_id")
	personID, err := strconv.Atoi(idStr)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid person ID format")
		return
	}

	person, found, err := ph.Repo.GetByID(r.Context(), personID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !found {
		writeDomainError(w, r, &apperrors.PersonNotFoundError{ID: personID})
		return
	}
	writeJSON(w, http.StatusOK, models.NewPersonResponse(person))
}

// ListPersonsByColor accepts the color as catalog id or name.
func (ph *PersonHandler) ListPersonsByColor(w http.ResponseWriter, r *http.Request) {
	colorID, err := models.ResolveColor(chi.URLParam(r, "color"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	people, err := ph.Repo.ListByColor(r.Context(), colorID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewPersonResponses(people))
}

func (ph *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePersonRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	person, err := ph.Repo.Add(r.Context(), req.ToPerson())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	log.Printf("Created person %d", person.ID)
	w.Header().Set("Location", "/persons/"+strconv.Itoa(person.ID))
	writeJSON(w, http.StatusCreated, models.NewPersonResponse(person))
}
