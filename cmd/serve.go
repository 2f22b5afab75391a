package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/marketplace-cli/internal/pricefeed"
	"github.com/sells-group/marketplace-cli/internal/product"
	"github.com/sells-group/marketplace-cli/internal/report"
)

const (
	maxUploadBytes = 32 << 20
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for reports, price feeds, and product extraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		srv := &http.Server{
			Addr: fmt.Sprintf(":%d", cfg.Server.Port),
			Handler: buildRouter(routerDeps{
				pages:          newPageFetcher(cfg.Product),
				feedEncoding:   cfg.PriceFeed.Encoding,
				feedSheet:      sheetOptions(cfg.PriceFeed),
				reportOpts:     reportOptions(cfg.Report),
				allowedOrigins: cfg.Server.AllowedOrigins,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

type routerDeps struct {
	pages          product.PageFetcher
	feedEncoding   string
	feedSheet      pricefeed.SheetOptions
	reportOpts     report.Options
	allowedOrigins []string
}

func buildRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/product", handleProduct(deps.pages))
		r.Post("/report", handleReport(deps.reportOpts))
		r.Post("/pricefeed", handlePriceFeed(deps.feedEncoding, deps.feedSheet))
	})

	return r
}

func handleProduct(pages product.PageFetcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := r.URL.Query().Get("url")
		if url == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		p, err := product.NewScraper(pages, url).ScrapeProductData(r.Context())
		if err != nil {
			zap.L().Warn("product scrape failed",
				zap.String("url", url),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, "fetch product page failed")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleReport(opts report.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := report.Parse(http.MaxBytesReader(w, r.Body, maxUploadBytes), opts)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var buf bytes.Buffer
		if err := rep.WriteExcel(&buf); err != nil {
			zap.L().Error("report workbook failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "build workbook failed")
			return
		}

		w.Header().Set("Content-Type", xlsxMediaType)
		w.Header().Set("Content-Disposition", `attachment; filename="Amazon_Sale_Report.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func handlePriceFeed(encoding string, sheet pricefeed.SheetOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "read request body failed")
			return
		}

		records, err := pricefeed.Parse(data, sheet)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var buf bytes.Buffer
		if err := pricefeed.Write(&buf, pricefeed.Build(records), encoding); err != nil {
			zap.L().Error("price feed encode failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "encode feed failed")
			return
		}

		w.Header().Set("Content-Type", "application/xml; charset="+encoding)
		w.Header().Set("Content-Disposition", `attachment; filename="Price_Data.xml"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
