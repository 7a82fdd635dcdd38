package medications

import (
	"net/http"
	"time"

	"vet-records/internal/middleware"
	"vet-records/internal/platform/httpx"
	"vet-records/internal/platform/logger"
	"vet-records/internal/platform/validate"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc, log))
		mr.Post("/", createMedicationHandler(svc, log))

		mr.Get("/{medicationID}", getMedicationHandler(svc, log))
		mr.Put("/{medicationID}", updateMedicationHandler(svc, log))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc, log))
	})
}

// medicationResponse: end_date es "Ongoing" si el tratamiento no tiene fin.
type medicationResponse struct {
	ID           int64     `json:"id"`
	PetID        int64     `json:"pet_id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage"`
	Description  *string   `json:"description"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	SideEffects  *string   `json:"side_effects"`
	Instructions *string   `json:"instructions"`
	Refill       bool      `json:"refill"`
	CreatedAt    time.Time `json:"created_at"`
}

// listMedicationsHandler godoc
// @Summary Listar medicaciones de un usuario
// @Tags medications
// @Produce json
// @Param user_id query int false "ID del dueño"
// @Success 200 {array} medicationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Router /medications [get]
func listMedicationsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Registrar medicación
// @Description end_date es opcional y no puede ser anterior a start_date.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body object true "user_id, pet_id, name, dosage, start_date, end_date?, description?, side_effects?, instructions?, refill?"
// @Success 201 {object} medicationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /medications [post]
func createMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		f := p.Fields()
		supplied := f.OptID("user_id")
		petID := f.ID("pet_id")
		in := readFields(f)
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		userID, err := middleware.ResolveUserID(r.Context(), supplied)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		m, err := svc.Create(r.Context(), userID, petID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

func getMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := loadOwnedMedication(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Reemplazar medicación
// @Description name, dosage y start_date son obligatorios; los opcionales ausentes se limpian.
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path int true "ID de la medicación"
// @Success 200 {object} medicationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Medication not found"
// @Router /medications/{medicationID} [put]
func updateMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedMedication(w, r, svc, log)
		if !ok {
			return
		}

		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		f := p.Fields()
		in := readFields(f)
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		m, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

func deleteMedicationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := loadOwnedMedication(w, r, svc, log)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), m.ID); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Medication deleted successfully")
	}
}

func readFields(f *validate.Fields) Fields {
	return Fields{
		Name:         f.String("name"),
		Dosage:       f.String("dosage"),
		StartDate:    f.Date("start_date"),
		EndDate:      f.OptDate("end_date"),
		Description:  f.OptString("description"),
		SideEffects:  f.OptString("side_effects"),
		Instructions: f.OptString("instructions"),
		Refill:       f.OptBool("refill", false),
	}
}

func loadOwnedMedication(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Medication, bool) {
	id, err := httpx.PathID(r, "medicationID", "Medication")
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Medication{}, false
	}
	m, err := svc.GetByID(r.Context(), id)
	if err == nil {
		err = middleware.CheckOwner(r.Context(), m.UserID)
	}
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Medication{}, false
	}
	return m, true
}

func toMedicationResponse(m Medication) medicationResponse {
	end := Ongoing
	if m.EndDate != nil {
		end = m.EndDate.Format(validate.DateLayout)
	}
	return medicationResponse{
		ID:           m.ID,
		PetID:        m.PetID,
		UserID:       m.UserID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Description:  m.Description,
		StartDate:    m.StartDate.Format(validate.DateLayout),
		EndDate:      end,
		SideEffects:  m.SideEffects,
		Instructions: m.Instructions,
		Refill:       m.Refill,
		CreatedAt:    m.CreatedAt,
	}
}
