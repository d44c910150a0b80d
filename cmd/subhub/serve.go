package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/John-Robertt/subhub-go/internal/httpapi"
	"github.com/John-Robertt/subhub-go/internal/store"
)

var (
	serveListen            string
	serveConfig            string
	serveReadHeaderTimeout time.Duration
	serveConvertTimeout    time.Duration
	serveShutdownTimeout   time.Duration
	serveParallelism       int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve subscriptions over HTTP",
	Long: `Serve the subscriptions listed in --config.

Routes:
  GET /{path}         stored links, Snell lines removed
  GET /{path}/surge   Surge proxy lines
  GET /{path}/clash   Clash document
  GET /{path}/v2ray   base64 bundle
  GET /healthz
  GET /metrics

SIGHUP reloads the config file; a file that fails to load leaves the
current subscriptions in place.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "127.0.0.1:25500", "HTTP 监听地址")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "subscriptions.yaml", "订阅配置文件（YAML）")
	serveCmd.Flags().DurationVar(&serveReadHeaderTimeout, "read-header-timeout", 5*time.Second, "HTTP ReadHeaderTimeout（请求头读取超时）")
	serveCmd.Flags().DurationVar(&serveConvertTimeout, "convert-timeout", 30*time.Second, "单次转换的总超时")
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 10*time.Second, "收到退出信号后的优雅退出等待时间")
	serveCmd.Flags().IntVar(&serveParallelism, "parallelism", 0, "单次转换的解析并发数（0 表示 GOMAXPROCS）")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	st, err := store.LoadFile(serveConfig)
	if err != nil {
		return err
	}
	log.Printf("loaded config=%q subscriptions=%d", serveConfig, len(st.Paths()))

	srv := &http.Server{
		Addr: serveListen,
		Handler: httpapi.NewHandler(httpapi.Options{
			Source:         st,
			ConvertTimeout: serveConvertTimeout,
			Parallelism:    serveParallelism,
		}),
		ReadHeaderTimeout: serveReadHeaderTimeout,
	}

	log.Printf("listening on http://%s", serveListen)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go reloadOnSignal(ctx, hup, st, serveConfig)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutdown signal received")

		shCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
			_ = srv.Close()
		}

		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, st *store.Store, path string) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := reload(st, path); err != nil {
				log.Printf("reload failed config=%q err=%v", path, err)
				continue
			}
			log.Printf("reloaded config=%q subscriptions=%d", path, len(st.Paths()))
		}
	}
}

func reload(st *store.Store, path string) error {
	next, err := store.LoadFile(path)
	if err != nil {
		return err
	}
	st.Replace(next)
	return nil
}
