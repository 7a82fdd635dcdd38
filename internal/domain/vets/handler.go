package vets

import (
	"net/http"

	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
	"vet-records/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/vets", func(vr chi.Router) {
		vr.Get("/", listVetsHandler(svc, log))
		vr.Post("/", createVetHandler(svc, log))

		vr.Get("/{vetID}", getVetHandler(svc, log))
		vr.Put("/{vetID}", updateVetHandler(svc, log))
		vr.Delete("/{vetID}", deleteVetHandler(svc, log))
	})

	// ruta histórica del frontend
	r.Post("/add_vet", createVetHandler(svc, log))
}

type vetResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	Information string `json:"information"`
}

// listVetsHandler godoc
// @Summary Listar veterinarios
// @Tags vets
// @Produce json
// @Success 200 {array} vetResponse
// @Router /vets [get]
func listVetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createVetHandler godoc
// @Summary Agregar veterinario
// @Tags vets
// @Accept json
// @Produce json
// @Param payload body object true "name, specialty, information"
// @Success 201 {object} vetResponse
// @Failure 400 {object} map[string]string
// @Router /add_vet [post]
func createVetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		f := p.Fields()
		in := CreateInput{
			Name:        f.String("name"),
			Specialty:   f.String("specialty"),
			Information: f.String("information"),
		}
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		v, err := svc.Create(r.Context(), in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toVetResponse(v))
	}
}

func getVetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "vetID", "Vet")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func updateVetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "vetID", "Vet")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		f := p.Fields()
		in := UpdateInput{
			Name:        f.OptString("name"),
			Specialty:   f.OptString("specialty"),
			Information: f.OptString("information"),
		}
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		v, err := svc.Update(r.Context(), id, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toVetResponse(v))
	}
}

// deleteVetHandler godoc
// @Summary Borrar veterinario
// @Description Falla con 409 si todavía hay turnos o registros médicos que lo referencian.
// @Tags vets
// @Produce json
// @Param vetID path int true "ID del veterinario"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Vet not found"
// @Failure 409 {object} map[string]string
// @Router /vets/{vetID} [delete]
func deleteVetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.PathID(r, "vetID", "Vet")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Vet deleted successfully")
	}
}

func toVetResponse(v Vet) vetResponse {
	return vetResponse{
		ID:          v.ID,
		Name:        v.Name,
		Specialty:   v.Specialty,
		Information: v.Information,
	}
}
