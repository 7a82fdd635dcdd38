package appointments

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
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc, log))
		ar.Post("/", createAppointmentHandler(svc, log))

		ar.Get("/{appointmentID}", getAppointmentHandler(svc, log))
		ar.Put("/{appointmentID}", updateAppointmentHandler(svc, log))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc, log))
	})
}

type appointmentResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PetID     int64     `json:"pet_id"`
	PetName   string    `json:"pet_name"`
	VetID     int64     `json:"vet_id"`
	VetName   string    `json:"vet_name"`
	Reason    string    `json:"reason"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Location  string    `json:"location"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func listAppointmentsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createAppointmentHandler godoc
// @Summary Agendar turno
// @Description date en formato YYYY-MM-DD y time en HH:MM (24h).
// @Tags appointments
// @Accept json
// @Produce json
// @Param payload body object true "user_id, pet_id, vet_id, reason, date, time, location, notes?"
// @Success 201 {object} appointmentResponse
// @Failure 400 {object} map[string]string "Invalid date format. / Invalid time format."
// @Failure 404 {object} map[string]string "Pet not found / Vet not found"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := validate.Decode(r.Body)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		f := p.Fields()
		supplied := f.OptID("user_id")
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

		a, err := svc.Create(r.Context(), userID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func getAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := loadOwnedAppointment(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func updateAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedAppointment(w, r, svc, log)
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

		a, err := svc.Update(r.Context(), current.ID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := loadOwnedAppointment(w, r, svc, log)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), a.ID); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Appointment deleted successfully")
	}
}

func readFields(f *validate.Fields) Fields {
	return Fields{
		PetID:    f.ID("pet_id"),
		VetID:    f.ID("vet_id"),
		Reason:   f.String("reason"),
		Date:     f.Date("date"),
		Time:     f.Clock("time"),
		Location: f.String("location"),
		Notes:    f.OptString("notes"),
	}
}

func loadOwnedAppointment(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Appointment, bool) {
	id, err := httpx.PathID(r, "appointmentID", "Appointment")
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Appointment{}, false
	}
	a, err := svc.GetByID(r.Context(), id)
	if err == nil {
		err = middleware.CheckOwner(r.Context(), a.UserID)
	}
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Appointment{}, false
	}
	return a, true
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		PetID:     a.PetID,
		PetName:   a.PetName,
		VetID:     a.VetID,
		VetName:   a.VetName,
		Reason:    a.Reason,
		Date:      a.Date.Format(validate.DateLayout),
		Time:      a.Time,
		Location:  a.Location,
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
	}
}
