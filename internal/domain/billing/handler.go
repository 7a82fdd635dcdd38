package billing

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
	r.Route("/billing", func(br chi.Router) {
		br.Get("/", listBillingHandler(svc, log))
		br.Post("/", createBillingHandler(svc, log))

		br.Get("/{billingID}", getBillingHandler(svc, log))
		br.Put("/{billingID}", updateBillingHandler(svc, log))
		br.Delete("/{billingID}", deleteBillingHandler(svc, log))
	})
}

type billingResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	PetID       int64     `json:"pet_id"`
	PetName     string    `json:"pet_name"`
	Type        string    `json:"type"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

// listBillingHandler godoc
// @Summary Listar facturación de un usuario
// @Tags billing
// @Produce json
// @Param user_id query int false "ID del dueño"
// @Success 200 {array} billingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "User not found"
// @Router /billing [get]
func listBillingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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
		out := make([]billingResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toBillingResponse(e))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createBillingHandler godoc
// @Summary Registrar cargo
// @Tags billing
// @Accept json
// @Produce json
// @Param payload body object true "user_id, pet_id, type, price, description, date"
// @Success 201 {object} billingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Pet not found"
// @Router /billing [post]
func createBillingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
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

		e, err := svc.Create(r.Context(), userID, petID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toBillingResponse(e))
	}
}

func getBillingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := loadOwnedEntry(w, r, svc, log)
		if !ok {
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBillingResponse(e))
	}
}

func updateBillingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, ok := loadOwnedEntry(w, r, svc, log)
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

		e, err := svc.Update(r.Context(), current.ID, petID, in)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toBillingResponse(e))
	}
}

func deleteBillingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, ok := loadOwnedEntry(w, r, svc, log)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), e.ID); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Billing entry deleted successfully")
	}
}

func readFields(f *validate.Fields) Fields {
	return Fields{
		Type:        f.String("type"),
		Price:       f.Float("price"),
		Description: f.String("description"),
		Date:        f.Date("date"),
	}
}

func loadOwnedEntry(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Entry, bool) {
	id, err := httpx.PathID(r, "billingID", "Billing entry")
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Entry{}, false
	}
	e, err := svc.GetByID(r.Context(), id)
	if err == nil {
		err = middleware.CheckOwner(r.Context(), e.UserID)
	}
	if err != nil {
		httpx.WriteError(w, r, log, err)
		return Entry{}, false
	}
	return e, true
}

func toBillingResponse(e Entry) billingResponse {
	return billingResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		PetID:       e.PetID,
		PetName:     e.PetName,
		Type:        e.Type,
		Price:       e.Price,
		Description: e.Description,
		Date:        e.Date.Format(validate.DateLayout),
		CreatedAt:   e.CreatedAt,
	}
}
