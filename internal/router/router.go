package router

import (
	"net/http"

	_ "vet-records/docs"
	"vet-records/internal/adapters/auth/debug"
	mem "vet-records/internal/adapters/storage/memory"
	pg "vet-records/internal/adapters/storage/postgres"
	"vet-records/internal/domain/appointments"
	"vet-records/internal/domain/billing"
	"vet-records/internal/domain/medications"
	"vet-records/internal/domain/pets"
	"vet-records/internal/domain/records"
	"vet-records/internal/domain/users"
	"vet-records/internal/domain/vets"
	"vet-records/internal/middleware"
	"vet-records/internal/platform/config"
	"vet-records/internal/platform/logger"
	"vet-records/internal/platform/metrics"
	"vet-records/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sqlx.DB

	Logger logger.Logger // nil => descarta

	// Scheme de identidad; nil => debug (X-Debug-User-ID).
	Scheme auth.Scheme

	Metrics *metrics.HTTP // nil => registry propio

	// PasswordHashCost de bcrypt; 0 => default. Los tests usan bcrypt.MinCost.
	PasswordHashCost int
}

type repositories struct {
	users        users.Repository
	vets         vets.Repository
	pets         pets.Repository
	medications  medications.Repository
	billing      billing.Repository
	appointments appointments.Repository
	records      records.Repository
}

func newRepositories(db *sqlx.DB) repositories {
	if db != nil {
		return repositories{
			users:        pg.NewUsersRepo(db),
			vets:         pg.NewVetsRepo(db),
			pets:         pg.NewPetsRepo(db),
			medications:  pg.NewMedicationsRepo(db),
			billing:      pg.NewBillingRepo(db),
			appointments: pg.NewAppointmentsRepo(db),
			records:      pg.NewRecordsRepo(db),
		}
	}

	store := mem.NewStore()
	return repositories{
		users:        mem.NewUserRepo(store),
		vets:         mem.NewVetRepo(store),
		pets:         mem.NewPetRepo(store),
		medications:  mem.NewMedicationRepo(store),
		billing:      mem.NewBillingRepo(store),
		appointments: mem.NewAppointmentRepo(store),
		records:      mem.NewRecordRepo(store),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewDiscard()
	}
	scheme := opts.Scheme
	if scheme == nil {
		scheme = debug.New()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewHTTP()
	}
	cfg := opts.Config

	r := chi.NewRouter()
	useCommon(r, cfg, m, log, scheme)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Welcome to NinerPets!"))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repos := newRepositories(opts.DB)

	// Services por módulo
	usersSvc := users.NewService(repos.users, users.Options{
		AllowedEmailDomains: cfg.AllowedEmailDomains,
		Logger:              log,
		HashCost:            opts.PasswordHashCost,
	})
	vetsSvc := vets.NewService(repos.vets)
	petsSvc := pets.NewService(repos.pets, usersSvc)
	medicationsSvc := medications.NewService(repos.medications, usersSvc, petsSvc)
	billingSvc := billing.NewService(repos.billing, usersSvc, petsSvc)
	appointmentsSvc := appointments.NewService(repos.appointments, usersSvc, petsSvc, vetsSvc)
	recordsSvc := records.NewService(repos.records, usersSvc, petsSvc, vetsSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, scheme, log)

	r.Group(func(rr chi.Router) {
		if cfg.RequireAuth {
			rr.Use(middleware.RequireIdentity)
		}
		vets.RegisterRoutes(rr, vetsSvc, log)
		pets.RegisterRoutes(rr, petsSvc, log)
		medications.RegisterRoutes(rr, medicationsSvc, log)
		billing.RegisterRoutes(rr, billingSvc, log)
		appointments.RegisterRoutes(rr, appointmentsSvc, log)
		records.RegisterRoutes(rr, recordsSvc, log)
	})

	return r
}

// useCommon arma la cadena de middlewares. Recoverer va después de métricas y
// access log para que un panic se registre como 500.
func useCommon(r chi.Router, cfg config.Config, m *metrics.HTTP, log logger.Logger, scheme auth.Scheme) {
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	r.Use(m.Middleware)
	r.Use(middleware.AccessLog(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.AuthContext(scheme))
}
