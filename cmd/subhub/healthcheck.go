package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	healthcheckURL     string
	healthcheckListen  string
	healthcheckTimeout time.Duration
)

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Probe /healthz of a running server",
	Long: `Exit 0 when GET /healthz answers 200. Meant for container HEALTHCHECK
lines where no curl is available.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		target := healthcheckURL
		if target == "" {
			u, err := deriveHealthzURL(healthcheckListen)
			if err != nil {
				return err
			}
			target = u
		}
		return runHealthcheck(target, healthcheckTimeout)
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&healthcheckURL, "url", "", "完整的 healthz URL（优先于 --listen）")
	healthcheckCmd.Flags().StringVar(&healthcheckListen, "listen", "127.0.0.1:25500", "服务监听地址")
	healthcheckCmd.Flags().DurationVar(&healthcheckTimeout, "timeout", 3*time.Second, "请求超时")
	rootCmd.AddCommand(healthcheckCmd)
}

// deriveHealthzURL turns a listen address into the URL a local probe should
// hit. Wildcard hosts are probed on loopback.
func deriveHealthzURL(listen string) (string, error) {
	s := strings.TrimSpace(listen)
	if s == "" {
		return "", errors.New("listen address is empty")
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("unsupported url %q", s)
		}
		u.Path = "/healthz"
		u.RawQuery = ""
		u.Fragment = ""
		return u.String(), nil
	}

	if !strings.Contains(s, ":") {
		s = ":" + s
	}
	host, port, err := net.SplitHostPort(s)
	if err != nil {
		return "", err
	}
	if port == "" {
		return "", fmt.Errorf("listen address %q has no port", listen)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/healthz", nil
}

func runHealthcheck(target string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(target)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, target)
	}
	return nil
}
