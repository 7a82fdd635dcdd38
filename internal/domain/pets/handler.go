package pets

import (
	"net/http"

	"vet-records/internal/middleware"
	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
	"vet-records/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

// petResponse: dob como YYYY-MM-DD y weight como número.
type petResponse struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"user_id"`
	Name    string  `json:"name"`
	Species string  `json:"species"`
	Breed   string  `json:"breed"`
	DOB     string  `json:"dob"`
	Weight  float64 `json:"weight"`
}

// listPetsHandler godoc
// @Summary Listar mascotas de un usuario
// @Description Sin user_id se usa la identidad autenticada.
// @Tags pets
// @Produce json
// @Param user_id query int false "ID del dueño"
// @Success 200 {array} petResponse
// @Failure 400 {object} map[string]string "user_id is required"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplied, err := httpx.QueryID(r, "user_id")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		userID, err := middleware.ResolveUserID(r.Context(), supplied)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		items, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body object true "user_id, name, species, breed, dob (YYYY-MM-DD), weight"
// @Success 201 {object} petResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		f := p.Fields()
		supplied := f.OptID("user_id")
		in := CreateInput{
			Name:    f.String("name"),
			Species: f.String("species"),
			Breed:   f.String("breed"),
			DOB:     f.Date("dob"),
			Weight:  f.Float("weight"),
		}
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		userID, err := middleware.ResolveUserID(r.Context(), supplied)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		pet, err := svc.Create(r.Context(), userID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(pet))
	}
}

func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := loadOwnedPet(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(pet))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (parcial)
// @Description Los campos ausentes conservan su valor actual.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Param payload body object true "name, species, breed, dob, weight (todos opcionales)"
// @Success 200 {object} petResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedPet(w, r, svc, log)
		if !ok {
			return
		}

		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		f := p.Fields()
		in := UpdateInput{
			Name:    f.OptString("name"),
			Species: f.OptString("species"),
			Breed:   f.OptString("breed"),
			DOB:     f.OptDate("dob"),
			Weight:  f.OptFloat("weight"),
		}
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		updated, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra también sus medicaciones, facturas, turnos y registros médicos.
// @Tags pets
// @Produce json
// @Param petID path int true "ID de la mascota"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := loadOwnedPet(w, r, svc, log)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), pet.ID); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Pet deleted successfully")
	}
}

// loadOwnedPet: 404 si no existe, 403 si hay identidad y no es la dueña.
func loadOwnedPet(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Pet, bool) {
	id, err := httpx.PathID(r, "petID", "Pet")
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Pet{}, false
	}
	pet, err := svc.GetByID(r.Context(), id)
	if err == nil {
		err = middleware.CheckOwner(r.Context(), pet.UserID)
	}
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Pet{}, false
	}
	return pet, true
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:      p.ID,
		UserID:  p.UserID,
		Name:    p.Name,
		Species: p.Species,
		Breed:   p.Breed,
		DOB:     p.DOB.Format(validate.DateLayout),
		Weight:  p.Weight,
	}
}
