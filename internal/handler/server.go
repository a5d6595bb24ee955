// Package handler implements the HTTP layer of the Wayfarer API.
// All handlers are methods on Server; they decode JSON, call the service
// layer, and map sentinel errors to status codes. Handlers are split into
// resource-specific files but share the Server struct and its dependencies.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Services bundles every service dependency the Server needs. Fields are the
// consumer-side interfaces declared in this package, so handler tests can
// inject mocks without touching the service layer or the database.
type Services struct {
	Trips          TripServicer
	Accommodations AccommodationServicer
	Transports     TransportServicer
	Expenses       ExpenseServicer
	Tasks          TaskServicer
	Documents      DocumentServicer
	Packing        PackingServicer
	Itinerary      ItineraryServicer
	Stats          StatsServicer
	Gamification   GamificationServicer
	Export         ExportServicer
}

// Server holds the handler dependencies.
type Server struct {
	svc Services
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{svc: svc}
}

// Routes builds the API router. Cross-cutting middleware (logging, CORS,
// metrics, body limits) is attached by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.listTrips)
		r.Post("/", s.createTrip)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.getTrip)
			r.Put("/", s.updateTrip)
			r.Delete("/", s.deleteTrip)
			r.Get("/stats", s.getTripStats)

			r.Route("/destinations", func(r chi.Router) {
				r.Get("/", s.listDestinations)
				r.Post("/", s.addDestination)
				r.Put("/{destID}", s.updateDestination)
				r.Delete("/{destID}", s.deleteDestination)
				r.Put("/{destID}/reorder", s.reorderDestination)
			})

			r.Route("/accommodations", func(r chi.Router) {
				r.Get("/", s.listAccommodations)
				r.Post("/", s.createAccommodation)
				r.Get("/{id}", s.getAccommodation)
				r.Put("/{id}", s.updateAccommodation)
				r.Delete("/{id}", s.deleteAccommodation)
				r.Post("/{id}/toggle-paid", s.toggleAccommodationPaid)
			})

			r.Route("/transports", func(r chi.Router) {
				r.Get("/", s.listTransports)
				r.Post("/", s.createTransport)
				r.Get("/{id}", s.getTransport)
				r.Put("/{id}", s.updateTransport)
				r.Delete("/{id}", s.deleteTransport)
				r.Post("/{id}/toggle-paid", s.toggleTransportPaid)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", s.listExpenses)
				r.Post("/", s.createExpense)
				r.Get("/summary", s.getExpenseSummary)
				r.Get("/{id}", s.getExpense)
				r.Put("/{id}", s.updateExpense)
				r.Delete("/{id}", s.deleteExpense)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.listTasks)
				r.Post("/", s.createTask)
				r.Get("/overdue", s.listOverdueTasks)
				r.Get("/{id}", s.getTask)
				r.Put("/{id}", s.updateTask)
				r.Delete("/{id}", s.deleteTask)
				r.Post("/{id}/toggle-status", s.toggleTaskStatus)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", s.listDocuments)
				r.Post("/", s.createDocument)
				r.Get("/{id}", s.getDocument)
				r.Put("/{id}", s.updateDocument)
				r.Delete("/{id}", s.deleteDocument)
			})

			r.Route("/packing-lists", func(r chi.Router) {
				r.Get("/", s.listPackingLists)
				r.Post("/", s.createPackingList)
				r.Get("/{listID}", s.getPackingList)
				r.Put("/{listID}", s.updatePackingList)
				r.Delete("/{listID}", s.deletePackingList)

				r.Route("/{listID}/categories", func(r chi.Router) {
					r.Post("/", s.addPackingCategory)
					r.Put("/{catID}", s.updatePackingCategory)
					r.Delete("/{catID}", s.deletePackingCategory)

					r.Route("/{catID}/items", func(r chi.Router) {
						r.Post("/", s.addPackingItem)
						r.Put("/{itemID}", s.updatePackingItem)
						r.Delete("/{itemID}", s.deletePackingItem)
						r.Post("/{itemID}/toggle-packed", s.togglePackingItem)
					})
				})
			})

			r.Route("/day-plans", func(r chi.Router) {
				r.Get("/", s.listDayPlans)
				r.Post("/", s.createDayPlan)
				r.Get("/{planID}", s.getDayPlan)
				r.Put("/{planID}", s.updateDayPlan)
				r.Delete("/{planID}", s.deleteDayPlan)

				r.Route("/{planID}/activities", func(r chi.Router) {
					r.Post("/", s.addActivity)
					r.Put("/{activityID}", s.updateActivity)
					r.Delete("/{activityID}", s.deleteActivity)
				})
			})
		})
	})

	r.Get("/stats", s.getStats)

	r.Route("/gamification", func(r chi.Router) {
		r.Get("/", s.getGamification)
		r.Get("/achievements", s.listAchievements)
		r.Get("/progress", s.getGamificationProgress)
		r.Post("/points", s.addPoints)
		r.Post("/reset", s.resetGamification)
	})

	r.Get("/export", s.exportSnapshot)
	r.Post("/import", s.importSnapshot)

	return r
}

// pathID parses the named chi URL parameter as a UUID. On failure it writes a
// 404 (an unparsable id can never name an existing resource) and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
		return uuid.Nil, false
	}
	return id, true
}
