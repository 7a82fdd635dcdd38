package records

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
	r.Route("/medicalrecords", func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(svc, log))
		rr.Post("/", createRecordHandler(svc, log))

		rr.Get("/{recordID}", getRecordHandler(svc, log))
		rr.Put("/{recordID}", updateRecordHandler(svc, log))
		rr.Delete("/{recordID}", deleteRecordHandler(svc, log))
	})
}

type recordResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	PetID       int64     `json:"pet_id"`
	PetName     string    `json:"pet_name"`
	VetID       int64     `json:"vet_id"`
	VetName     string    `json:"vet_name"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// listRecordsHandler godoc
// @Summary Listar historia clínica de un usuario
// @Tags medicalrecords
// @Produce json
// @Param user_id query int false "ID del dueño"
// @Success 200 {array} recordResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Router /medicalrecords [get]
func listRecordsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createRecordHandler godoc
// @Summary Agregar registro médico
// @Description type acepta el alias record_type; name (alias event_name) es opcional y por defecto toma type.
// @Tags medicalrecords
// @Accept json
// @Produce json
// @Param payload body object true "user_id, pet_id, vet_id, type, date, description, name?"
// @Success 201 {object} recordResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Pet not found / Vet not found"
// @Router /medicalrecords [post]
func createRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		rec, err := svc.Create(r.Context(), userID, petID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func getRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadOwnedRecord(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func updateRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedRecord(w, r, svc, log)
		if !ok {
			return
		}

		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		f := p.Fields()
		petID := f.OptID("pet_id")
		in := readFields(f)
		if err := f.Err(); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		rec, err := svc.Update(r.Context(), current.ID, petID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadOwnedRecord(w, r, svc, log)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), rec.ID); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Medical record deleted successfully")
	}
}

func readFields(f *validate.Fields) Fields {
	in := Fields{
		VetID:       f.ID("vet_id"),
		Type:        f.String("type", "record_type"),
		Date:        f.Date("date"),
		Description: f.String("description"),
	}
	if name := f.OptString("name", "event_name"); name != nil {
		in.Name = *name
	}
	return in
}

func loadOwnedRecord(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Record, bool) {
	id, err := httpx.PathID(r, "recordID", "Medical record")
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Record{}, false
	}
	rec, err := svc.GetByID(r.Context(), id)
	if err == nil {
		err = middleware.CheckOwner(r.Context(), rec.UserID)
	}
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Record{}, false
	}
	return rec, true
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:          rec.ID,
		UserID:      rec.UserID,
		PetID:       rec.PetID,
		PetName:     rec.PetName,
		VetID:       rec.VetID,
		VetName:     rec.VetName,
		Name:        rec.Name,
		Type:        rec.Type,
		Date:        rec.Date.Format(validate.DateLayout),
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
	}
}
