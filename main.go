package main

import (
	batch "Pergulator/internal/calc/batch"
	importer "Pergulator/internal/calc/importer"
	pergola "Pergulator/internal/calc/pergola"
	report "Pergulator/internal/calc/report"
	config "Pergulator/internal/config"
	dataset "Pergulator/internal/dataset"
	middleware "Pergulator/internal/middleware"
	"context"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

const (
	limiterSweepInterval = time.Minute
	limiterMaxIdle       = 10 * time.Minute
)

// route registers h for methods and answers any other method on the same path
// with 405. A subrouter alongside a catch-all route otherwise reports 404.
func route(r *mux.Router, path string, h http.HandlerFunc, methods ...string) {
	r.HandleFunc(path, h).Methods(methods...)
	allow := strings.Join(methods, ", ")
	r.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Allow", allow)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}

func HandleList(ctx context.Context, mux *mux.Router, cfg config.Config) {
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	wg.Add(1)
	go func() {
		defer wg.Done()
		limiter.Run(ctx, limiterSweepInterval, limiterMaxIdle)
	}()

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	pergolaH := &pergola.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	reportH := &report.Handler{}

	route(api, "/tools/pergola/calc", pergolaH.Calc, "POST")
	route(api, "/tools/pergola/fields", pergolaH.Fields, "GET")
	route(api, "/tools/pergola/batch", batchH.Pergola, "POST")
	route(api, "/tools/pergola/import", importerH.Pergola, "POST")
	route(api, "/tools/pergola/export", importerH.Export, "POST")
	route(api, "/tools/pergola/report", reportH.Generate, "POST")

	if cfg.DatasetEnabled {
		dataH := &dataset.Handler{Loader: dataset.NewLoader(nil), URL: cfg.DatasetURL}
		route(api, "/data/agri", dataH.Agri, "GET")
		route(api, "/data/agri/refresh", dataH.Refresh, "POST")
	}

	route(mux, "/", pergolaH.Page, "GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	mux := mux.NewRouter()
	HandleList(ctx, mux, cfg)
	handler := middleware.CORS(mux)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
