package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty/internal/eventlog"
	"github.com/SeamusWaldron/twisty/internal/recorder"
	"github.com/SeamusWaldron/twisty/internal/transport/ws"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine to render clients over websockets",
	Long: `Run the engine at the configured frame rate and serve it on /ws.

Clients receive a WELCOME with the sticker layout, a FRAME for every tick a
move is in flight and a STATE after every lock. They may send MOVE, SOLVE,
RESET and GESTURE messages.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	addRecordFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}
	log := newLogger(os.Stderr)

	e, err := newEngine(cfg, log)
	if err != nil {
		return err
	}

	if cfg.EventLogDir != "" {
		j := eventlog.Open(cfg.EventLogDir, log)
		j.Attach(e)
		defer j.Close()
	}

	var session *recorder.Session
	if recordSession {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		stateFile, err := openStateFile()
		if err != nil {
			return err
		}
		session = recorder.NewSession(db, stateFile)
		session.SetLogger(log)
		if _, err := session.Start("websocket", "", sessionNotes); err != nil {
			return err
		}
		session.Attach(e)
	}

	srv, err := ws.NewServer(e, ws.Options{
		FrameInterval:    cfg.FrameInterval(),
		GestureTolerance: cfg.GestureTolerance,
		Logger:           log,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := make(chan error, 1)
	go func() { runErr <- srv.Run(ctx) }()

	httpErr := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.ListenAddr)
		httpErr <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-httpErr:
		if !errors.Is(err, http.ErrServerClosed) {
			stop()
			<-runErr
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	<-runErr

	if session != nil {
		if err := session.End(e.Cube().Serialize()); err != nil {
			return err
		}
		fmt.Printf("Session saved: %s\n", session.SessionID())
	}
	return nil
}
