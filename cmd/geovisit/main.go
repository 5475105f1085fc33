// Command geovisit resolves visitor locations. The lookup subcommand
// runs the resolution pipeline once and prints the record; the serve
// subcommand exposes the first-party resolution endpoint over HTTP.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/joho/godotenv"
	"github.com/lengocduc195/geovisit/internal/coordprobe"
	"github.com/lengocduc195/geovisit/internal/geoipx"
	"github.com/lengocduc195/geovisit/internal/iplocate"
	"github.com/lengocduc195/geovisit/internal/locate"
	"github.com/lengocduc195/geovisit/internal/model"
	"github.com/lengocduc195/geovisit/internal/revgeo"
	"github.com/lengocduc195/geovisit/internal/runtimex"
	"github.com/lengocduc195/geovisit/internal/webapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	// debug enables verbose logging.
	debug bool

	// endpoint is the address where serve listens.
	endpoint string

	// firstPartyURL is the first-party resolution endpoint used by lookup.
	firstPartyURL string

	// googleAPIKey enables the secondary address resolver.
	googleAPIKey string

	// latitude and longitude optionally provide a coordinate to lookup,
	// standing in for the host environment's coordinate capability.
	latitude  float64
	longitude float64

	// mmdbPath is the path of the local geolocation database.
	mmdbPath string

	// prometheusEndpoint is the address where serve exposes metrics.
	prometheusEndpoint string
)

func main() {
	// a .env file is optional and only used when present
	_ = godotenv.Load()

	log.SetHandler(cli.Default)

	root := &cobra.Command{
		Use:           "geovisit",
		Short:         "Visitor location resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&debug, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&mmdbPath, "mmdb",
		os.Getenv("GEOVISIT_MMDB"), "path of the local geolocation database")

	lookup := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve the current location once and print the record",
		RunE:  runLookup,
	}
	lookup.Flags().Float64Var(&latitude, "lat", 0, "latitude of a known coordinate")
	lookup.Flags().Float64Var(&longitude, "lon", 0, "longitude of a known coordinate")
	lookup.Flags().StringVar(&firstPartyURL, "endpoint",
		os.Getenv("GEOVISIT_ENDPOINT"), "first-party resolution endpoint URL")
	lookup.Flags().StringVar(&googleAPIKey, "google-api-key",
		os.Getenv("GEOVISIT_GOOGLE_API_KEY"), "credential for the secondary address resolver")
	root.AddCommand(lookup)

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the first-party resolution endpoint",
		RunE:  runServe,
	}
	serve.Flags().StringVar(&endpoint, "listen", "127.0.0.1:8080", "listen address")
	serve.Flags().StringVar(&prometheusEndpoint, "prometheus",
		"127.0.0.1:9091", "prometheus metrics address")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		log.WithError(err).Fatal("main exit")
	}
}

// staticCoordinateSource is a coordinate capability backed by a
// coordinate given on the command line.
type staticCoordinateSource struct {
	coordinate model.Coordinate
}

// CurrentCoordinate implements model.CoordinateSource.
func (s *staticCoordinateSource) CurrentCoordinate(
	ctx context.Context, options *model.CoordinateOptions) (*model.Coordinate, error) {
	return &s.coordinate, nil
}

// newGeoDB opens the optional local geolocation database.
func newGeoDB() *geoipx.DB {
	db, err := geoipx.Open(mmdbPath)
	if err != nil {
		log.WithError(err).Warn("cannot open geolocation database")
		return nil
	}
	return db
}

// runLookup implements the lookup subcommand.
func runLookup(cmd *cobra.Command, args []string) error {
	httpClient := &http.Client{}
	defer httpClient.CloseIdleConnections()

	db := newGeoDB()
	defer db.Close()

	resolver := &locate.Resolver{
		Logger: log.Log,
		Network: &iplocate.Client{
			DNSServer:  "1.1.1.1:53",
			Endpoint:   firstPartyURL,
			GeoDB:      db,
			HTTPClient: httpClient,
			Logger:     log.Log,
		},
		Primary: revgeo.NewNominatimResolver(httpClient, log.Log),
		Secondary: &revgeo.GoogleResolver{
			APIKey: googleAPIKey,
			Client: httpClient,
			Logger: log.Log,
		},
	}
	if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
		resolver.Prober = &coordprobe.Prober{
			Logger: log.Log,
			Source: &staticCoordinateSource{coordinate: model.Coordinate{
				Latitude:  latitude,
				Longitude: longitude,
			}},
		}
	}

	record := resolver.ResolveLocation(cmd.Context(), model.HTTPHeaderUserAgent)

	data, err := json.MarshalIndent(record, "", "  ")
	runtimex.PanicOnError(err, "cannot marshal the location record")
	cmd.Println(string(data))
	return nil
}

// runServe implements the serve subcommand.
func runServe(cmd *cobra.Command, args []string) error {
	db := newGeoDB()
	defer db.Close()

	handler := &webapi.Handler{
		IPLookup: &iplocate.Client{
			DNSServer: "1.1.1.1:53",
			GeoDB:     db,
			Logger:    log.Log,
		},
		Logger: log.Log,
	}

	mux := http.NewServeMux()
	mux.Handle("/v1/locate", handler)
	srv := &http.Server{Addr: endpoint, Handler: mux}

	promMux := http.NewServeMux()
	promMux.Handle("/metrics", promhttp.Handler())
	promSrv := &http.Server{Addr: prometheusEndpoint, Handler: promMux}

	go func() {
		log.Infof("serving metrics at http://%s/metrics", prometheusEndpoint)
		if err := promSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server exited")
		}
	}()

	errch := make(chan error, 1)
	go func() {
		log.Infof("serving the resolution endpoint at http://%s/v1/locate", endpoint)
		errch <- srv.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errch:
		return err
	case sig := <-sigs:
		log.Infof("got %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = promSrv.Shutdown(ctx)
	return srv.Shutdown(ctx)
}
